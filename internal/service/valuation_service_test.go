package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/finsightapp/market-data-backend/internal/config"
	"github.com/finsightapp/market-data-backend/internal/model"
	"github.com/finsightapp/market-data-backend/internal/testutil"
)

func testGrowth() config.GrowthConfig {
	return config.GrowthConfig{Default: 1.08, Estimated: 1.10, Index: 1.12}
}

func newTestValuationService(quoteSource QuoteSource, navPayload string) *ValuationService {
	quotes := newTestQuoteService(quoteSource, time.Minute)
	navs := newTestNavService(testutil.NewStaticNavSource().WithPayload(navPayload), nil)
	return NewValuationService(quotes, navs, testGrowth(), testutil.NewTestLogger())
}

func floatptr(f float64) *float64 { return &f }
func strptr(s string) *string     { return &s }

const navFixture = `ABC Mutual Fund House
Equity Scheme - Growth
101;i1;i2;ABC Growth Fund;50.00;01-Jan-2025
`

func TestValuationService_Valuate(t *testing.T) {
	t.Run("mutual fund with units prices at NAV times units", func(t *testing.T) {
		svc := newTestValuationService(testutil.NewMockQuoteSource(), navFixture)

		items := []model.PortfolioItem{{
			Name: "MF holding", Type: model.AssetMutualFund,
			SchemeCode: strptr("101"), Invested: 4000, Units: floatptr(100),
		}}
		v := svc.Valuate(context.Background(), items)[0]

		if v.CurrentValue != 5000 {
			t.Errorf("Expected current_value 5000, got %v", v.CurrentValue)
		}
		if v.CurrentPrice != 50 {
			t.Errorf("Expected current_price 50, got %v", v.CurrentPrice)
		}
		if v.Returns != 1000 || v.ReturnsPercent != 25 {
			t.Errorf("Expected returns 1000 (25%%), got %v (%v%%)", v.Returns, v.ReturnsPercent)
		}
	})

	t.Run("mutual fund without units uses the estimation multiplier", func(t *testing.T) {
		svc := newTestValuationService(testutil.NewMockQuoteSource(), navFixture)

		items := []model.PortfolioItem{{
			Name: "MF holding", Type: model.AssetMutualFund,
			SchemeCode: strptr("101"), Invested: 1000,
		}}
		v := svc.Valuate(context.Background(), items)[0]

		if v.CurrentValue != 1100 {
			t.Errorf("Expected estimated value 1100, got %v", v.CurrentValue)
		}
		// The price stays the real NAV so the estimate is distinguishable
		// from a unit-accurate valuation.
		if v.CurrentPrice != 50 {
			t.Errorf("Expected current_price 50, got %v", v.CurrentPrice)
		}
	})

	t.Run("unknown scheme code falls through to default growth", func(t *testing.T) {
		svc := newTestValuationService(testutil.NewMockQuoteSource(), navFixture)

		items := []model.PortfolioItem{{
			Name: "MF holding", Type: model.AssetMutualFund,
			SchemeCode: strptr("999"), Invested: 1000,
		}}
		v := svc.Valuate(context.Background(), items)[0]

		if v.CurrentValue != 1080 {
			t.Errorf("Expected default growth value 1080, got %v", v.CurrentValue)
		}
		if v.CurrentPrice != 1080 {
			t.Errorf("Expected price mirroring estimated value, got %v", v.CurrentPrice)
		}
	})

	t.Run("stock with units prices at quote times units", func(t *testing.T) {
		source := testutil.NewMockQuoteSource().WithQuote("RELIANCE.NS", "Reliance", 2850, 2800)
		svc := newTestValuationService(source, navFixture)

		items := []model.PortfolioItem{{
			Name: "Stock holding", Type: model.AssetStock,
			Symbol: strptr("RELIANCE"), Invested: 25000, Units: floatptr(10),
		}}
		v := svc.Valuate(context.Background(), items)[0]

		if v.CurrentValue != 28500 {
			t.Errorf("Expected current_value 28500, got %v", v.CurrentValue)
		}
		if v.CurrentPrice != 2850 {
			t.Errorf("Expected current_price 2850, got %v", v.CurrentPrice)
		}
	})

	t.Run("stock without units uses the estimation multiplier", func(t *testing.T) {
		source := testutil.NewMockQuoteSource().WithQuote("RELIANCE.NS", "Reliance", 2850, 2800)
		svc := newTestValuationService(source, navFixture)

		items := []model.PortfolioItem{{
			Name: "Stock holding", Type: model.AssetStock,
			Symbol: strptr("RELIANCE"), Invested: 1000,
		}}
		v := svc.Valuate(context.Background(), items)[0]

		if v.CurrentValue != 1100 {
			t.Errorf("Expected estimated value 1100, got %v", v.CurrentValue)
		}
		if v.CurrentPrice != 2850 {
			t.Errorf("Expected live price 2850, got %v", v.CurrentPrice)
		}
	})

	t.Run("failed quote lookup degrades to zero return", func(t *testing.T) {
		svc := newTestValuationService(testutil.NewMockQuoteSource(), navFixture)

		items := []model.PortfolioItem{{
			Name: "Stock holding", Type: model.AssetStock,
			Symbol: strptr("UNKNOWN"), Invested: 1000,
		}}
		v := svc.Valuate(context.Background(), items)[0]

		if v.CurrentValue != 1000 {
			t.Errorf("Expected current_value equal to invested, got %v", v.CurrentValue)
		}
		if v.Returns != 0 || v.ReturnsPercent != 0 {
			t.Errorf("Expected zero returns, got %v (%v%%)", v.Returns, v.ReturnsPercent)
		}
		if v.CurrentPrice != 0 {
			t.Errorf("Expected zero price on degradation, got %v", v.CurrentPrice)
		}
	})

	t.Run("index uses fixed simulated growth with price equal to value", func(t *testing.T) {
		svc := newTestValuationService(testutil.NewMockQuoteSource(), navFixture)

		items := []model.PortfolioItem{{
			Name: "Index holding", Type: model.AssetIndex, Invested: 1000,
		}}
		v := svc.Valuate(context.Background(), items)[0]

		if v.CurrentValue != 1120 {
			t.Errorf("Expected index growth value 1120, got %v", v.CurrentValue)
		}
		if v.CurrentPrice != v.CurrentValue {
			t.Errorf("Expected price equal to value, got %v vs %v", v.CurrentPrice, v.CurrentValue)
		}
	})

	t.Run("unrecognized type and missing identifiers use default growth", func(t *testing.T) {
		svc := newTestValuationService(testutil.NewMockQuoteSource(), navFixture)

		items := []model.PortfolioItem{
			{Name: "Gold", Type: model.AssetOther, Invested: 1000},
			{Name: "Symbol-less stock", Type: model.AssetStock, Invested: 1000},
			{Name: "Code-less MF", Type: model.AssetMutualFund, Invested: 1000},
		}
		for i, v := range svc.Valuate(context.Background(), items) {
			if v.CurrentValue != 1080 {
				t.Errorf("Item %d: expected default growth value 1080, got %v", i, v.CurrentValue)
			}
		}
	})

	t.Run("batch order is preserved around a failed item", func(t *testing.T) {
		source := testutil.NewMockQuoteSource().WithQuote("TCS.NS", "TCS", 3000, 2900)
		svc := newTestValuationService(source, navFixture)

		items := []model.PortfolioItem{
			{Name: "A", Type: model.AssetStock, Symbol: strptr("TCS"), Invested: 1000, Units: floatptr(1)},
			{Name: "B", Type: model.AssetStock, Symbol: strptr("MISSING"), Invested: 2000},
			{Name: "C", Type: model.AssetIndex, Invested: 3000},
		}
		valuations := svc.Valuate(context.Background(), items)

		if len(valuations) != 3 {
			t.Fatalf("Expected 3 valuations, got %d", len(valuations))
		}
		for i, name := range []string{"A", "B", "C"} {
			if valuations[i].Name != name {
				t.Errorf("Position %d: expected %s, got %s", i, name, valuations[i].Name)
			}
		}
		if valuations[1].CurrentValue != 2000 || valuations[1].Returns != 0 {
			t.Errorf("Expected middle item degraded, got %+v", valuations[1])
		}
		if valuations[0].CurrentValue != 3000 {
			t.Errorf("Expected first item priced, got %+v", valuations[0])
		}
	})

	t.Run("one prefetch round trip covers every stock in the batch", func(t *testing.T) {
		source := testutil.NewMockQuoteSource().
			WithQuote("TCS.NS", "TCS", 3000, 2900).
			WithQuote("INFY.NS", "Infosys", 1500, 1490)
		svc := newTestValuationService(source, navFixture)

		items := []model.PortfolioItem{
			{Name: "A", Type: model.AssetStock, Symbol: strptr("TCS"), Invested: 1000, Units: floatptr(1)},
			{Name: "B", Type: model.AssetETF, Symbol: strptr("INFY"), Invested: 1000, Units: floatptr(1)},
		}
		svc.Valuate(context.Background(), items)

		if source.QueryCount != 1 {
			t.Errorf("Expected single prefetch round trip, got %d", source.QueryCount)
		}
	})

	t.Run("mutual fund defaults to growth when the nav feed is absent", func(t *testing.T) {
		source := testutil.NewMockQuoteSource().WithQuote("TCS.NS", "TCS", 3000, 2900)
		quotes := newTestQuoteService(source, time.Minute)
		svc := NewValuationService(quotes, nil, testGrowth(), testutil.NewTestLogger())

		items := []model.PortfolioItem{
			{Name: "Stock", Type: model.AssetStock, Symbol: strptr("TCS"), Invested: 1000, Units: floatptr(1)},
			{Name: "Fund", Type: model.AssetMutualFund, SchemeCode: strptr("101"), Invested: 1000, Units: floatptr(20)},
		}
		valuations := svc.Valuate(context.Background(), items)

		if valuations[0].CurrentValue != 3000 {
			t.Errorf("Expected stock priced live, got %+v", valuations[0])
		}
		if valuations[1].CurrentValue != 1080 {
			t.Errorf("Expected fund defaulted to 1080, got %+v", valuations[1])
		}
	})
}

// TestValuationService_Rounding pins the uniform two-decimal rounding of
// derived figures.
func TestValuationService_Rounding(t *testing.T) {
	payload := strings.Join([]string{
		"ABC Mutual Fund House",
		"Equity Scheme - Growth",
		"101;i1;i2;ABC Growth Fund;33.333;01-Jan-2025",
	}, "\n")
	svc := newTestValuationService(testutil.NewMockQuoteSource(), payload)

	items := []model.PortfolioItem{{
		Name: "MF", Type: model.AssetMutualFund,
		SchemeCode: strptr("101"), Invested: 100, Units: floatptr(3),
	}}
	v := svc.Valuate(context.Background(), items)[0]

	if v.CurrentValue != 100 {
		t.Errorf("Expected 99.999 rounded to 100, got %v", v.CurrentValue)
	}
	if v.CurrentPrice != 33.33 {
		t.Errorf("Expected price rounded to 33.33, got %v", v.CurrentPrice)
	}
}
