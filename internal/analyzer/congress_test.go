package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"insiderwire/internal/models"
)

func TestHighProfileDetectedByName(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.CongressTrade{
		PoliticianName: "Nancy Pelosi",
		Ticker:         "AAPL",
		Action:         models.ActionPurchase,
		AmountHigh:     250_000,
		DaysToDisclose: 12,
	}
	a.AnalyzeCongress(trade)

	assert.True(t, trade.IsHighProfile)
	assert.Contains(t, trade.AnomalyTags, models.TagHighProfilePolitician)
	assert.Contains(t, trade.AnomalyTexts, "Nancy Pelosi is a high-profile member")
}

func TestMillionPlusTrade(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.CongressTrade{
		PoliticianName: "John Doe",
		Ticker:         "XOM",
		Action:         models.ActionSale,
		AmountHigh:     5_000_000,
	}
	a.AnalyzeCongress(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagMillionPlusTrade)
	assert.Contains(t, trade.AnomalyTexts, "$5.0M+ trade")
	assert.NotContains(t, trade.AnomalyTags, models.TagLargeTrade)
}

func TestLateDisclosureBeatsSlow(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	late := &models.CongressTrade{
		PoliticianName: "John Doe",
		Ticker:         "XOM",
		AmountHigh:     50_000,
		DaysToDisclose: 60,
	}
	a.AnalyzeCongress(late)
	assert.Contains(t, late.AnomalyTags, models.TagLateDisclosure)
	assert.Contains(t, late.AnomalyTexts, "Disclosed 60 days after trade (45-day limit)")
	assert.NotContains(t, late.AnomalyTags, models.TagSlowDisclosure)

	slow := &models.CongressTrade{
		PoliticianName: "John Doe",
		Ticker:         "XOM",
		AmountHigh:     50_000,
		DaysToDisclose: 38,
	}
	a.AnalyzeCongress(slow)
	assert.Contains(t, slow.AnomalyTags, models.TagSlowDisclosure)
	assert.NotContains(t, slow.AnomalyTags, models.TagLateDisclosure)
}

func TestCongressMemeStockTag(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.CongressTrade{
		PoliticianName: "John Doe",
		Ticker:         "GME",
		Action:         models.ActionPurchase,
		AmountHigh:     50_000,
	}
	a.AnalyzeCongress(trade)

	assert.Contains(t, trade.AnomalyTags, models.TagMemeStock)
	assert.Contains(t, trade.AnomalyTexts, "Trading meme stock $GME")
	assert.Contains(t, trade.AnomalyTags, models.TagPurchase)
}

func TestCongressReanalysisResetsTags(t *testing.T) {
	a := newTestAnalyzer(&fakeLookup{})

	trade := &models.CongressTrade{
		PoliticianName: "John Doe",
		Ticker:         "GME",
		Action:         models.ActionPurchase,
		AmountHigh:     50_000,
	}
	a.AnalyzeCongress(trade)
	first := append([]string{}, trade.AnomalyTags...)

	a.AnalyzeCongress(trade)
	assert.Equal(t, first, trade.AnomalyTags)
}
