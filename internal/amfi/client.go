// Package amfi fetches and parses the AMFI daily NAV report, a
// semicolon-delimited flat file in which fund-house and category grouping is
// implicit in header lines carried forward over the data records below them.
package amfi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultReportURL is the public AMFI all-schemes NAV report.
const DefaultReportURL = "https://www.amfiindia.com/spages/NAVAll.txt"

// Client downloads the NAV report. The HTTP client carries a bounded timeout
// so a slow upstream cannot stall a refresh.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a report client for the given URL. An empty URL selects
// the public AMFI endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultReportURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the raw report. The caller owns the returned body and must
// close it.
func (c *Client) Fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch nav report: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("nav report returned status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
