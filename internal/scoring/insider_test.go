package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"insiderwire/internal/models"
	"insiderwire/internal/tickers"
)

func newTestScorer() *Scorer {
	return New(tickers.Default())
}

func TestTierLadder(t *testing.T) {
	assert.Equal(t, TierUrgent, TierFor(100))
	assert.Equal(t, TierUrgent, TierFor(70))
	assert.Equal(t, TierHigh, TierFor(69))
	assert.Equal(t, TierHigh, TierFor(50))
	assert.Equal(t, TierMedium, TierFor(49))
	assert.Equal(t, TierMedium, TierFor(30))
	assert.Equal(t, TierRoundup, TierFor(29))
	assert.Equal(t, TierRoundup, TierFor(0))
}

func TestCEOMegaPurchaseScoresTier1(t *testing.T) {
	s := newTestScorer()

	trade := &models.InsiderTrade{
		Ticker:       "TSLA",
		InsiderRole:  "CEO",
		OfficerTitle: "Chief Executive Officer",
		IsOfficer:    true,
		Action:       models.ActionPurchase,
		TotalValue:   25_000_000,
		AnomalyTags:  []string{models.TagCEOFounderBuy, models.TagMassiveBuy, models.TagFirstPurchase},
	}
	score := s.ScoreInsider(trade)

	// Role 20 + size 18 + company 20 (mag7) + anomalies (15+10+6=31) +
	// strong-signal pair bonus 5 + mag7 C-suite bonus 5 = 99.
	assert.Equal(t, 99, score)
	assert.Equal(t, TierUrgent, trade.Tier)
}

func TestScoreStaysInBounds(t *testing.T) {
	s := newTestScorer()

	trade := &models.InsiderTrade{
		Ticker:       "TSLA",
		InsiderRole:  "CEO Founder",
		OfficerTitle: "Chief Executive Officer",
		Action:       models.ActionPurchase,
		TotalValue:   60_000_000,
		AnomalyTags: []string{
			models.TagCEOFounderBuy, models.TagClusterBuy, models.TagPositionDoubled,
			models.TagFirstEverPurchase, models.TagConsecutiveBuying, models.TagMassiveBuy,
			models.TagUnusuallyLarge, models.TagFirstBuyInYears,
		},
	}
	score := s.ScoreInsider(trade)

	assert.LessOrEqual(t, score, 100)
	assert.GreaterOrEqual(t, score, 0)
	assert.Equal(t, 100, score)
}

func TestAnomalyPointsCapAtForty(t *testing.T) {
	s := newTestScorer()

	b := s.ExplainInsider(&models.InsiderTrade{
		Ticker: "XYZ",
		Action: models.ActionPurchase,
		AnomalyTags: []string{
			models.TagCEOFounderBuy, models.TagCFOBuy, models.TagChairmanBuy,
			models.TagPositionDoubled, models.TagClusterBuy,
		},
	})
	assert.Equal(t, 40, b.AnomalyPoints)
}

func TestUnknownTagScoresMinimum(t *testing.T) {
	s := newTestScorer()

	with := s.ExplainInsider(&models.InsiderTrade{
		Ticker:      "XYZ",
		Action:      models.ActionPurchase,
		AnomalyTags: []string{"some_future_tag"},
	})
	without := s.ExplainInsider(&models.InsiderTrade{
		Ticker: "XYZ",
		Action: models.ActionPurchase,
	})
	assert.Equal(t, without.AnomalyPoints+2, with.AnomalyPoints)
}

func TestMissingTickerForcesRoundupTier(t *testing.T) {
	s := newTestScorer()

	trade := &models.InsiderTrade{
		InsiderRole:  "CEO",
		OfficerTitle: "Chief Executive Officer",
		Action:       models.ActionPurchase,
		TotalValue:   30_000_000,
		AnomalyTags:  []string{models.TagCEOFounderBuy, models.TagMassiveBuy, models.TagPositionDoubled},
	}
	score := s.ScoreInsider(trade)

	assert.LessOrEqual(t, score, 29)
	assert.Equal(t, TierRoundup, trade.Tier)
}

func TestBillionDollarValuePenalized(t *testing.T) {
	s := newTestScorer()

	normal := s.ScoreInsider(&models.InsiderTrade{
		Ticker:      "AAPL",
		InsiderRole: "CEO",
		Action:      models.ActionPurchase,
		TotalValue:  900_000_000,
	})
	suspect := s.ScoreInsider(&models.InsiderTrade{
		Ticker:      "AAPL",
		InsiderRole: "CEO",
		Action:      models.ActionPurchase,
		TotalValue:  1_500_000_000,
	})
	assert.Less(t, suspect, normal)
}

func TestCSuiteSaleDampened(t *testing.T) {
	s := newTestScorer()

	buy := s.ExplainInsider(&models.InsiderTrade{
		Ticker:      "XYZ",
		InsiderRole: "CEO",
		Action:      models.ActionPurchase,
		TotalValue:  100_000,
	})
	sell := s.ExplainInsider(&models.InsiderTrade{
		Ticker:      "XYZ",
		InsiderRole: "CEO",
		Action:      models.ActionSale,
		TotalValue:  100_000,
	})
	assert.Equal(t, 20, buy.RolePoints)
	assert.Equal(t, 12, sell.RolePoints)
}

func TestSaleWarningBonus(t *testing.T) {
	s := newTestScorer()

	single := s.ExplainInsider(&models.InsiderTrade{
		Ticker:      "XYZ",
		Action:      models.ActionSale,
		AnomalyTags: []string{models.TagCompleteExit},
	})
	double := s.ExplainInsider(&models.InsiderTrade{
		Ticker:      "XYZ",
		Action:      models.ActionSale,
		AnomalyTags: []string{models.TagCompleteExit, models.TagClusterSell},
	})
	assert.Equal(t, 0, single.Adjustments)
	assert.Equal(t, 8, double.Adjustments)
}

func TestScoringIsDeterministic(t *testing.T) {
	s := newTestScorer()

	trade := &models.InsiderTrade{
		Ticker:      "GME",
		InsiderRole: "Director",
		IsDirector:  true,
		Action:      models.ActionPurchase,
		TotalValue:  200_000,
		AnomalyTags: []string{models.TagClusterBuy, models.TagDirectorBuy},
	}

	first := s.ScoreInsider(trade)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.ScoreInsider(trade))
	}
}

func TestDirectorSmallBuyLandsLow(t *testing.T) {
	s := newTestScorer()

	trade := &models.InsiderTrade{
		Ticker:      "XYZ",
		InsiderRole: "Director",
		IsDirector:  true,
		Action:      models.ActionPurchase,
		TotalValue:  75_000,
		AnomalyTags: []string{models.TagDirectorBuy},
	}
	s.ScoreInsider(trade)

	assert.Equal(t, TierRoundup, trade.Tier)
}
