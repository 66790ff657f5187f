package request

import "github.com/finsightapp/market-data-backend/internal/model"

// ValuatePortfolioRequest is the request body for valuating a portfolio: a
// bare JSON array of items. Items arrive in presentation order and
// valuations are returned in the same order.
type ValuatePortfolioRequest []model.PortfolioItem
