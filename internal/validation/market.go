package validation

import (
	"strings"

	"github.com/finsightapp/market-data-backend/internal/apperrors"
)

// Search parameter bounds. The limit default applies when the caller omits
// the parameter entirely; an explicit out-of-range value is rejected.
const (
	MinQueryLength     = 3
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// ValidateSearchQuery checks that a scheme search query is long enough to
// produce a useful result set.
func ValidateSearchQuery(query string) error {
	if len(strings.TrimSpace(query)) < MinQueryLength {
		return apperrors.ErrQueryTooShort
	}
	return nil
}

// ValidateSearchLimit checks that a result limit is within the accepted range.
func ValidateSearchLimit(limit int) error {
	if limit < 1 || limit > MaxSearchLimit {
		return apperrors.ErrInvalidLimit
	}
	return nil
}
