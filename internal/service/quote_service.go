package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finsightapp/market-data-backend/internal/apperrors"
	"github.com/finsightapp/market-data-backend/internal/cache"
	"github.com/finsightapp/market-data-backend/internal/config"
	"github.com/finsightapp/market-data-backend/internal/model"
	"github.com/finsightapp/market-data-backend/internal/yahoo"
)

// staleTTL is the freshness bound used when falling back to a previously
// cached list after an upstream failure. Anything younger than a day is
// better than an error.
const staleTTL = 24 * time.Hour

// QuoteSource is the upstream abstraction for live quotes. One call fetches
// any number of symbols in a single round trip; unresolved symbols are
// simply absent from the result.
type QuoteSource interface {
	QueryQuotes(ctx context.Context, symbols []string) ([]yahoo.Result, error)
}

// QuoteService serves live index and stock quotes, bounding upstream load
// with TTL caches. Single-symbol lookups and curated lists share the same
// batched transport underneath.
type QuoteService struct {
	source     QuoteSource
	quoteCache *cache.Store[model.Quote]
	indexCache *cache.Store[[]model.MarketIndex]
	listCache  *cache.Store[[]model.Quote]
	quoteTTL   time.Duration
	popularTTL time.Duration
	log        *logrus.Logger

	// now is an injection point for tests; defaults to time.Now.
	now func() time.Time
}

// NewQuoteService creates a QuoteService with the provided upstream source
// and cache instances.
func NewQuoteService(
	source QuoteSource,
	quoteCache *cache.Store[model.Quote],
	indexCache *cache.Store[[]model.MarketIndex],
	listCache *cache.Store[[]model.Quote],
	cfg config.MarketConfig,
	log *logrus.Logger,
) *QuoteService {
	return &QuoteService{
		source:     source,
		quoteCache: quoteCache,
		indexCache: indexCache,
		listCache:  listCache,
		quoteTTL:   cfg.QuoteTTL,
		popularTTL: cfg.PopularTTL,
		log:        log,
		now:        time.Now,
	}
}

// normalizeSymbol appends the default NSE suffix to bare symbols. Symbols
// already carrying a recognized exchange suffix or an index prefix pass
// through unchanged.
func normalizeSymbol(symbol string) string {
	if strings.HasSuffix(symbol, ".NS") || strings.HasSuffix(symbol, ".BO") {
		return symbol
	}
	if strings.HasPrefix(symbol, "^") {
		return symbol
	}
	return symbol + ".NS"
}

// displayName picks a human-readable name for a quote, preferring what the
// upstream reports and falling back to the symbol minus its suffix.
func displayName(r yahoo.Result) string {
	if r.ShortName != "" {
		return r.ShortName
	}
	if r.LongName != "" {
		return r.LongName
	}
	name := strings.TrimSuffix(r.Symbol, ".NS")
	return strings.TrimSuffix(name, ".BO")
}

// buildQuote maps an upstream result onto the wire model, deriving change
// fields and rounding prices to two decimals. Change percent is zero when
// the previous close is zero or absent.
func (s *QuoteService) buildQuote(r yahoo.Result) model.Quote {
	change := r.RegularMarketPrice - r.RegularMarketPreviousClose
	changePercent := 0.0
	if r.RegularMarketPreviousClose != 0 {
		changePercent = change / r.RegularMarketPreviousClose * 100
	}

	q := model.Quote{
		Symbol:        r.Symbol,
		Name:          displayName(r),
		Price:         round2(r.RegularMarketPrice),
		Change:        round2(change),
		ChangePercent: round2(changePercent),
		Volume:        r.RegularMarketVolume,
		LastUpdated:   s.now(),
	}
	if r.RegularMarketDayHigh != nil {
		high := round2(*r.RegularMarketDayHigh)
		q.DayHigh = &high
	}
	if r.RegularMarketDayLow != nil {
		low := round2(*r.RegularMarketDayLow)
		q.DayLow = &low
	}
	return q
}

// GetQuote returns the live quote for a single symbol, serving from cache
// while fresh. A symbol unknown upstream, or an unreachable source, yields
// apperrors.ErrQuoteUnavailable.
func (s *QuoteService) GetQuote(ctx context.Context, symbol string) (model.Quote, error) {
	sym := normalizeSymbol(symbol)
	key := "stock_" + sym

	if q, ok := s.quoteCache.Get(key, s.quoteTTL); ok {
		return q, nil
	}

	results, err := s.source.QueryQuotes(ctx, []string{sym})
	if err != nil {
		return model.Quote{}, fmt.Errorf("%w: %s: %v", apperrors.ErrQuoteUnavailable, sym, err)
	}
	if len(results) == 0 {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrQuoteUnavailable, sym)
	}

	q := s.buildQuote(results[0])
	s.quoteCache.Set(key, q)
	return q, nil
}

// GetBatch fetches quotes for the given symbols in at most one upstream
// round trip, serving individual symbols from cache where fresh. The result
// preserves input order and omits symbols the upstream could not resolve;
// those are logged, never surfaced as an error. Only a failure of the round
// trip itself errors the batch.
func (s *QuoteService) GetBatch(ctx context.Context, symbols []string) ([]model.Quote, error) {
	normalized := make([]string, len(symbols))
	found := make(map[string]model.Quote, len(symbols))
	var misses []string

	for i, symbol := range symbols {
		sym := normalizeSymbol(symbol)
		normalized[i] = sym
		if _, dup := found[sym]; dup {
			continue
		}
		if q, ok := s.quoteCache.Get("stock_"+sym, s.quoteTTL); ok {
			found[sym] = q
		} else {
			misses = append(misses, sym)
		}
	}

	if len(misses) > 0 {
		results, err := s.source.QueryQuotes(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
		}
		for _, r := range results {
			q := s.buildQuote(r)
			found[r.Symbol] = q
			s.quoteCache.Set("stock_"+r.Symbol, q)
		}
	}

	quotes := make([]model.Quote, 0, len(normalized))
	seen := make(map[string]bool, len(normalized))
	for _, sym := range normalized {
		if seen[sym] {
			continue
		}
		seen[sym] = true
		q, ok := found[sym]
		if !ok {
			s.log.WithField("symbol", sym).Warn("symbol missing from batch response, skipping")
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// Indices returns the curated index set in one upstream round trip, cached
// under a single key. An index the upstream cannot resolve degrades to a
// zero-valued entry; an upstream failure falls back to the last cached list
// when one exists.
func (s *QuoteService) Indices(ctx context.Context) ([]model.MarketIndex, error) {
	if cached, ok := s.indexCache.Get("indices", s.quoteTTL); ok {
		return cached, nil
	}

	symbols := make([]string, len(MarketIndices))
	for i, idx := range MarketIndices {
		symbols[i] = idx.Symbol
	}

	results, err := s.source.QueryQuotes(ctx, symbols)
	if err != nil {
		if stale, ok := s.indexCache.Get("indices", staleTTL); ok {
			s.log.WithError(err).Warn("index fetch failed, serving stale list")
			return stale, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
	}

	bySymbol := make(map[string]yahoo.Result, len(results))
	for _, r := range results {
		bySymbol[r.Symbol] = r
	}

	now := s.now()
	indices := make([]model.MarketIndex, 0, len(MarketIndices))
	for _, idx := range MarketIndices {
		entry := model.MarketIndex{Name: idx.Name, Symbol: idx.Symbol, LastUpdated: now}
		if r, ok := bySymbol[idx.Symbol]; ok {
			q := s.buildQuote(r)
			entry.Value = q.Price
			entry.Change = q.Change
			entry.ChangePercent = q.ChangePercent
		} else {
			// Zero-valued entry rather than dropping the index from the list.
			s.log.WithField("symbol", idx.Symbol).Warn("index missing from quote response")
		}
		indices = append(indices, entry)
	}

	s.indexCache.Set("indices", indices)
	return indices, nil
}

// PopularStocksQuotes returns the curated stock set in one upstream round
// trip, cached under a single key. Unresolved symbols are omitted; an
// upstream failure falls back to the last cached list when one exists.
func (s *QuoteService) PopularStocksQuotes(ctx context.Context) ([]model.Quote, error) {
	if cached, ok := s.listCache.Get("popular_stocks", s.popularTTL); ok {
		return cached, nil
	}

	symbols := make([]string, len(PopularStocks))
	for i, stock := range PopularStocks {
		symbols[i] = stock.Symbol
	}

	results, err := s.source.QueryQuotes(ctx, symbols)
	if err != nil {
		if stale, ok := s.listCache.Get("popular_stocks", staleTTL); ok {
			s.log.WithError(err).Warn("popular stocks fetch failed, serving stale list")
			return stale, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
	}

	bySymbol := make(map[string]yahoo.Result, len(results))
	for _, r := range results {
		bySymbol[r.Symbol] = r
	}

	quotes := make([]model.Quote, 0, len(PopularStocks))
	for _, stock := range PopularStocks {
		r, ok := bySymbol[stock.Symbol]
		if !ok {
			s.log.WithField("symbol", stock.Symbol).Warn("popular stock missing from quote response")
			continue
		}
		q := s.buildQuote(r)
		q.Name = stock.Name
		quotes = append(quotes, q)
	}

	s.listCache.Set("popular_stocks", quotes)
	return quotes, nil
}
