package analyzer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insiderwire/internal/models"
	"insiderwire/internal/tickers"
)

type fakeLookup struct {
	activity []ActivityRef
	history  []models.InsiderTrade
	err      error
}

func (f *fakeLookup) RecentActivity(ticker string, action models.Action, windowDays int, excludeAccession string) ([]ActivityRef, error) {
	return f.activity, f.err
}

func (f *fakeLookup) InsiderHistory(insiderCIK, ticker string) ([]models.InsiderTrade, error) {
	return f.history, f.err
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestAnalyzer(lookup Lookup) *Analyzer {
	return New(lookup, tickers.Default(), WithNow(fixedNow))
}

func intPtr(n int64) *int64 { return &n }

func TestCEOFounderPurchase(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.InsiderTrade{
		AccessionNumber: "0000000001-25-000001",
		Ticker:          "ACME",
		InsiderCIK:      "0001",
		InsiderRole:     "CEO",
		OfficerTitle:    "Chief Executive Officer",
		IsOfficer:       true,
		Action:          models.ActionPurchase,
		Shares:          10_000,
		TotalValue:      2_000_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagCEOFounderBuy)
	assert.Contains(t, trade.AnomalyTags, models.TagMillionPlusBuy)
	assert.Contains(t, trade.AnomalyTexts, "CEO/Founder buying = maximum conviction signal")
	assert.True(t, trade.IsBullish)
	assert.False(t, trade.IsBearish)
}

func TestPositionDoubled(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.InsiderTrade{
		Ticker:           "ACME",
		Action:           models.ActionPurchase,
		Shares:           6_000,
		SharesOwnedAfter: intPtr(10_000),
		TotalValue:       100_000,
	}
	a.AnalyzeInsider(trade)

	// Bought 6000 on a prior 4000 position: a 150% increase.
	assert.Contains(t, trade.AnomalyTags, models.TagPositionDoubled)
}

func TestFirstEverPurchase(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.InsiderTrade{
		Ticker:           "ACME",
		Action:           models.ActionPurchase,
		Shares:           5_000,
		SharesOwnedAfter: intPtr(5_000),
		TotalValue:       50_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagFirstEverPurchase)
}

func TestMissingHoldingsSkipsPositionRules(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.InsiderTrade{
		Ticker:     "ACME",
		Action:     models.ActionSale,
		Shares:     5_000,
		TotalValue: 50_000,
		// SharesOwnedAfter not reported: must not look like a complete exit.
	}
	a.AnalyzeInsider(trade)

	assert.NotContains(t, trade.AnomalyTags, models.TagCompleteExit)
	assert.NotContains(t, trade.AnomalyTags, models.TagMajorReduction)
}

func TestCompleteExit(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.InsiderTrade{
		Ticker:           "ACME",
		Action:           models.ActionSale,
		Shares:           5_000,
		SharesOwnedAfter: intPtr(0),
		TotalValue:       250_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagCompleteExit)
	assert.True(t, trade.IsBearish)
}

func TestClusterBuyCountsDistinctInsiders(t *testing.T) {
	lookup := &fakeLookup{activity: []ActivityRef{
		{ActorID: "0002", FiledAt: "2025-06-10"},
		{ActorID: "0003", FiledAt: "2025-06-11"},
		{ActorID: "0002", FiledAt: "2025-06-12"},
	}}
	a := newTestAnalyzer(lookup)

	trade := &models.InsiderTrade{
		AccessionNumber: "0000000001-25-000002",
		Ticker:          "ACME",
		InsiderCIK:      "0001",
		Action:          models.ActionPurchase,
		Shares:          1_000,
		TotalValue:      50_000,
	}
	a.AnalyzeInsider(trade)

	require.Contains(t, trade.AnomalyTags, models.TagClusterBuy)
	assert.Contains(t, trade.AnomalyTexts, "3 insiders buying in last 2 weeks")
}

func TestTwoBuyersIsMultipleNotCluster(t *testing.T) {
	lookup := &fakeLookup{activity: []ActivityRef{
		{ActorID: "0002", FiledAt: "2025-06-10"},
	}}
	a := newTestAnalyzer(lookup)

	trade := &models.InsiderTrade{
		Ticker:     "ACME",
		InsiderCIK: "0001",
		Action:     models.ActionPurchase,
		Shares:     1_000,
		TotalValue: 50_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagMultipleBuyers)
	assert.NotContains(t, trade.AnomalyTags, models.TagClusterBuy)
}

func TestSellerTurnedBuyer(t *testing.T) {
	lookup := &fakeLookup{history: []models.InsiderTrade{
		{Action: models.ActionSale, FilingDate: "2025-01-10", TotalValue: 100_000},
		{Action: models.ActionSale, FilingDate: "2024-11-02", TotalValue: 80_000},
	}}
	a := newTestAnalyzer(lookup)

	trade := &models.InsiderTrade{
		Ticker:     "ACME",
		InsiderCIK: "0001",
		Action:     models.ActionPurchase,
		Shares:     1_000,
		TotalValue: 50_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagSellerTurnedBuyer)
	assert.Contains(t, trade.AnomalyTags, models.TagFirstPurchase)
}

func TestFirstBuyInYears(t *testing.T) {
	lookup := &fakeLookup{history: []models.InsiderTrade{
		{Action: models.ActionPurchase, FilingDate: "2025-06-14"},
		{Action: models.ActionPurchase, FilingDate: "2022-01-05"},
	}}
	a := newTestAnalyzer(lookup)

	trade := &models.InsiderTrade{
		Ticker:     "ACME",
		InsiderCIK: "0001",
		Action:     models.ActionPurchase,
		Shares:     1_000,
		TotalValue: 50_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagFirstBuyInYears)
}

func TestConsecutiveBuying(t *testing.T) {
	lookup := &fakeLookup{history: []models.InsiderTrade{
		{Action: models.ActionPurchase, FilingDate: "2025-06-01"},
		{Action: models.ActionPurchase, FilingDate: "2025-05-10"},
		{Action: models.ActionPurchase, FilingDate: "2025-04-20"},
	}}
	a := newTestAnalyzer(lookup)

	trade := &models.InsiderTrade{
		Ticker:     "ACME",
		InsiderCIK: "0001",
		Action:     models.ActionPurchase,
		Shares:     1_000,
		TotalValue: 50_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagConsecutiveBuying)
}

func TestRelativeSizeNeedsHistory(t *testing.T) {
	lookup := &fakeLookup{history: []models.InsiderTrade{
		{Action: models.ActionPurchase, FilingDate: "2025-05-01", TotalValue: 10_000},
	}}
	a := newTestAnalyzer(lookup)

	trade := &models.InsiderTrade{
		Ticker:     "ACME",
		InsiderCIK: "0001",
		Action:     models.ActionPurchase,
		Shares:     1_000,
		TotalValue: 500_000,
	}
	a.AnalyzeInsider(trade)

	// One prior value is not enough to call anything unusual.
	assert.NotContains(t, trade.AnomalyTags, models.TagUnusuallyLarge)
	assert.NotContains(t, trade.AnomalyTags, models.TagLargerThanUsual)
}

func TestRelativeSizeUnusuallyLarge(t *testing.T) {
	lookup := &fakeLookup{history: []models.InsiderTrade{
		{Action: models.ActionPurchase, FilingDate: "2025-05-01", TotalValue: 10_000},
		{Action: models.ActionPurchase, FilingDate: "2025-04-01", TotalValue: 10_000},
	}}
	a := newTestAnalyzer(lookup)

	trade := &models.InsiderTrade{
		Ticker:     "ACME",
		InsiderCIK: "0001",
		Action:     models.ActionPurchase,
		Shares:     1_000,
		TotalValue: 100_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagUnusuallyLarge)
}

func TestLookupFailureDegrades(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{err: errors.New("db closed")})

	trade := &models.InsiderTrade{
		Ticker:      "ACME",
		InsiderCIK:  "0001",
		InsiderRole: "CFO",
		Action:      models.ActionPurchase,
		Shares:      1_000,
		TotalValue:  50_000,
	}
	a.AnalyzeInsider(trade)

	// History rules are skipped, role and size rules still apply.
	assert.Contains(t, trade.AnomalyTags, models.TagCFOBuy)
	assert.NotContains(t, trade.AnomalyTags, models.TagFirstPurchase)
}

func TestReanalysisIsIdempotent(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.InsiderTrade{
		Ticker:      "ACME",
		InsiderRole: "CEO",
		Action:      models.ActionPurchase,
		Shares:      1_000,
		TotalValue:  2_000_000,
	}
	a.AnalyzeInsider(trade)
	first := append([]string{}, trade.AnomalyTags...)

	a.AnalyzeInsider(trade)
	assert.Equal(t, first, trade.AnomalyTags)
}

func TestDirectorBuyFallback(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.InsiderTrade{
		Ticker:     "ACME",
		IsDirector: true,
		Action:     models.ActionPurchase,
		Shares:     100,
		TotalValue: 5_000,
	}
	a.AnalyzeInsider(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagDirectorBuy)
}
