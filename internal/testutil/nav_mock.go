package testutil

import (
	"context"
	"errors"
	"io"
	"strings"
)

// SampleNavReport is a small AMFI-format fixture covering two fund-house
// blocks, an N.A. entry, and a malformed line.
const SampleNavReport = `Scheme Code;ISIN Div Payout/ ISIN Growth;ISIN Div Reinvestment;Scheme Name;Net Asset Value;Date

ABC Mutual Fund House
Equity Scheme - Growth

101;INF001;INF002;ABC Growth Fund;45.67;01-Jan-2025
102;INF003;INF004;ABC Bluechip Fund;88.12;01-Jan-2025
103;INF005;INF006;ABC Suspended Fund;N.A.;01-Jan-2025

XYZ Asset Management
Debt Scheme - Liquid

201;INF007;INF008;XYZ Liquid Fund;10.01;01-Jan-2025
bad;line
202;INF009;INF010;XYZ Growth Fund;55.50;01-Jan-2025
`

// StaticNavSource is a mock implementation of the service.NavSource
// interface serving a fixed report payload.
type StaticNavSource struct {
	// Payload is returned from Fetch as the report body.
	Payload string
	// Err is returned from Fetch when set.
	Err error
	// FetchCount tracks upstream round trips.
	FetchCount int
}

// NewStaticNavSource creates a source serving the sample report.
func NewStaticNavSource() *StaticNavSource {
	return &StaticNavSource{Payload: SampleNavReport}
}

// Fetch returns the configured payload or error.
func (s *StaticNavSource) Fetch(_ context.Context) (io.ReadCloser, error) {
	s.FetchCount++
	if s.Err != nil {
		return nil, s.Err
	}
	return io.NopCloser(strings.NewReader(s.Payload)), nil
}

// WithPayload configures the source to serve a custom report body.
func (s *StaticNavSource) WithPayload(payload string) *StaticNavSource {
	s.Payload = payload
	return s
}

// WithError configures the source to fail every fetch.
func (s *StaticNavSource) WithError() *StaticNavSource {
	s.Err = errors.New("nav feed unreachable")
	return s
}
