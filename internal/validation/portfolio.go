package validation

import (
	"fmt"
	"strings"

	"github.com/finsightapp/market-data-backend/internal/api/request"
	"github.com/finsightapp/market-data-backend/internal/apperrors"
)

func ValidateValuatePortfolio(req request.ValuatePortfolioRequest) error {
	if len(req) == 0 {
		return apperrors.ErrEmptyPortfolio
	}

	errors := make(map[string]string)
	for i, item := range req {
		if strings.TrimSpace(item.Name) == "" {
			errors[fmt.Sprintf("items[%d].name", i)] = "name is required"
		}
		if item.Invested <= 0 {
			errors[fmt.Sprintf("items[%d].invested", i)] = apperrors.ErrInvalidAmount.Error()
		}
		if item.Units != nil && *item.Units <= 0 {
			errors[fmt.Sprintf("items[%d].units", i)] = "units must be positive when provided"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
