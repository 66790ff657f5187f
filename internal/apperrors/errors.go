package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrQuoteUnavailable indicates the upstream quote source returned no
	// result for a symbol, or the source itself is unreachable.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrSchemeNotFound indicates that no NAV record exists for a scheme code.
	ErrSchemeNotFound = errors.New("scheme code not found")
)

// Dependency errors represent upstream integrations that are not configured
// or reachable at all. Affected endpoints degrade to 503; the process keeps
// serving everything else.
var (
	// ErrQuotesDisabled indicates the live-quote integration is disabled.
	ErrQuotesDisabled = errors.New("quote source not configured")

	// ErrNavFeedDisabled indicates the NAV feed integration is disabled.
	ErrNavFeedDisabled = errors.New("nav feed not configured")
)

// Business logic errors represent validation failures on inbound requests.
var (
	// ErrQueryTooShort indicates a search query below the minimum length.
	ErrQueryTooShort = errors.New("query must be at least 3 characters")

	// ErrInvalidLimit indicates a result limit outside the accepted range.
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")

	// ErrInvalidAmount indicates a non-positive invested amount.
	ErrInvalidAmount = errors.New("invested amount must be positive")

	// ErrEmptyPortfolio indicates a valuation request with no items.
	ErrEmptyPortfolio = errors.New("portfolio cannot be empty")
)
