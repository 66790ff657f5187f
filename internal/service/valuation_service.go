package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finsightapp/market-data-backend/internal/config"
	"github.com/finsightapp/market-data-backend/internal/model"
)

// pricing is the typed outcome of one item's primary pricing tier.
type pricing struct {
	price float64
	value float64
}

// ValuationService prices portfolio line items against live quotes and the
// NAV index. Pricing is tiered: unit-accurate where an identifier and unit
// count exist, a fixed estimation multiplier where they do not, and a
// zero-return degradation when pricing fails outright. A failure on one
// item never aborts the batch.
type ValuationService struct {
	quotes *QuoteService
	navs   *NavService
	growth config.GrowthConfig
	log    *logrus.Logger

	// now is an injection point for tests; defaults to time.Now.
	now func() time.Time
}

// NewValuationService creates a ValuationService with the provided pricing
// dependencies. navs may be nil when the NAV feed is disabled; mutual-fund
// items then fall through to the default growth policy.
func NewValuationService(
	quotes *QuoteService,
	navs *NavService,
	growth config.GrowthConfig,
	log *logrus.Logger,
) *ValuationService {
	return &ValuationService{
		quotes: quotes,
		navs:   navs,
		growth: growth,
		log:    log,
		now:    time.Now,
	}
}

// Valuate prices every item, one valuation per input in the same order. An
// item whose pricing fails degrades to a zero-return valuation (current
// value equal to invested) rather than failing the request.
func (s *ValuationService) Valuate(ctx context.Context, items []model.PortfolioItem) []model.PortfolioValuation {
	prefetched := s.prefetchQuotes(ctx, items)
	now := s.now()

	valuations := make([]model.PortfolioValuation, 0, len(items))
	for _, item := range items {
		p, err := s.priceItem(ctx, item, prefetched)
		if err != nil {
			s.log.WithError(err).WithField("item", item.Name).Warn("pricing failed, degrading to zero return")
			valuations = append(valuations, model.PortfolioValuation{
				Name:         item.Name,
				Type:         item.Type,
				Invested:     item.Invested,
				CurrentValue: item.Invested,
				LastUpdated:  now,
			})
			continue
		}

		value := round2(p.value)
		returns := round2(value - item.Invested)
		returnsPercent := 0.0
		if item.Invested > 0 {
			returnsPercent = round2(returns / item.Invested * 100)
		}

		valuations = append(valuations, model.PortfolioValuation{
			Name:           item.Name,
			Type:           item.Type,
			Invested:       item.Invested,
			CurrentValue:   value,
			Returns:        returns,
			ReturnsPercent: returnsPercent,
			CurrentPrice:   round2(p.price),
			LastUpdated:    now,
		})
	}
	return valuations
}

// prefetchQuotes gathers every stock/ETF symbol in the batch and fetches
// them in a single upstream round trip. On failure it returns an empty map;
// affected items then degrade individually.
func (s *ValuationService) prefetchQuotes(ctx context.Context, items []model.PortfolioItem) map[string]model.Quote {
	var symbols []string
	for _, item := range items {
		if (item.Type == model.AssetStock || item.Type == model.AssetETF) && item.Symbol != nil {
			symbols = append(symbols, *item.Symbol)
		}
	}
	if len(symbols) == 0 {
		return nil
	}

	quotes, err := s.quotes.GetBatch(ctx, symbols)
	if err != nil {
		s.log.WithError(err).Warn("quote prefetch failed, stock items will degrade")
		return nil
	}

	bySymbol := make(map[string]model.Quote, len(quotes))
	for _, q := range quotes {
		bySymbol[q.Symbol] = q
	}
	return bySymbol
}

// priceItem applies the asset-type pricing policy:
//
//   - mutual_fund: NAV by scheme code; NAV x units when units are known,
//     the estimation multiplier otherwise. An unknown scheme code falls
//     through to the default policy.
//   - stock/etf: prefetched live quote; price x units when units are known,
//     the estimation multiplier otherwise. A missing quote is a pricing
//     failure for this item.
//   - index: fixed simulated growth, never priced live.
//   - anything else, or a missing identifier: default growth.
//
// For estimated values the reported price stays the real unit price where
// one exists, and mirrors the estimated value where none does, keeping
// estimates distinguishable from real quotes.
func (s *ValuationService) priceItem(ctx context.Context, item model.PortfolioItem, prefetched map[string]model.Quote) (pricing, error) {
	switch {
	case item.Type == model.AssetMutualFund && item.SchemeCode != nil && s.navs != nil:
		record, ok := s.navs.Lookup(ctx, *item.SchemeCode)
		if !ok {
			break
		}
		if item.Units != nil {
			return pricing{price: record.Nav, value: record.Nav * *item.Units}, nil
		}
		return pricing{price: record.Nav, value: item.Invested * s.growth.Estimated}, nil

	case (item.Type == model.AssetStock || item.Type == model.AssetETF) && item.Symbol != nil:
		quote, ok := prefetched[normalizeSymbol(*item.Symbol)]
		if !ok {
			return pricing{}, fmt.Errorf("no quote for symbol %s", *item.Symbol)
		}
		if item.Units != nil {
			return pricing{price: quote.Price, value: quote.Price * *item.Units}, nil
		}
		return pricing{price: quote.Price, value: item.Invested * s.growth.Estimated}, nil

	case item.Type == model.AssetIndex:
		value := item.Invested * s.growth.Index
		return pricing{price: value, value: value}, nil
	}

	// Default policy: unrecognized type, missing identifier, or a scheme
	// code absent from the NAV index.
	value := item.Invested * s.growth.Default
	return pricing{price: value, value: value}, nil
}
