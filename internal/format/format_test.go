package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insiderwire/internal/models"
)

func testNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestFormatter() *Formatter {
	return NewFormatter(WithNow(testNow))
}

func tier1Trade() *models.InsiderTrade {
	shares := int64(20_000)
	return &models.InsiderTrade{
		AccessionNumber:  "0000000001-25-000001",
		FilingDate:       "2025-06-14",
		Ticker:           "NVDA",
		CompanyName:      "NVIDIA CORP",
		InsiderName:      "Jensen Huang",
		InsiderRole:      "CEO",
		Action:           models.ActionPurchase,
		Shares:           20_000,
		PricePerShare:    120.50,
		TotalValue:       2_410_000,
		SharesOwnedAfter: &shares,
		AnomalyTags:      []string{models.TagCEOFounderBuy, models.TagMillionPlusBuy},
		AnomalyTexts: []string{
			"CEO/Founder buying = maximum conviction signal",
			"$1M+ purchase",
		},
		ViralityScore: 85,
		Tier:          1,
	}
}

func TestInsiderTweetStaysUnderLimit(t *testing.T) {
	f := newTestFormatter()

	tw := f.FormatInsiderTrade(tier1Trade())

	assert.LessOrEqual(t, len([]rune(tw.Text)), 280)
	assert.Contains(t, tw.Text, "NVDA")
	assert.Contains(t, tw.Text, "CEO")
	assert.Equal(t, 1, tw.Tier)
	assert.Equal(t, "NVDA", tw.Ticker)
}

func TestInsiderTweetIsDeterministic(t *testing.T) {
	f := newTestFormatter()

	first := f.FormatInsiderTrade(tier1Trade())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Text, f.FormatInsiderTrade(tier1Trade()).Text)
	}
}

func TestTier1GetsThreeMentions(t *testing.T) {
	f := newTestFormatter()

	tw := f.FormatInsiderTrade(tier1Trade())
	assert.Len(t, tw.Tags, 3)
	for _, tag := range tw.Tags {
		assert.True(t, strings.HasPrefix(tag, "@"))
	}
}

func TestTier3GetsNoMentions(t *testing.T) {
	f := newTestFormatter()

	trade := tier1Trade()
	trade.Tier = 3
	tw := f.FormatInsiderTrade(trade)
	assert.Empty(t, tw.Tags)
}

func TestSaleUsesSaleTemplates(t *testing.T) {
	f := newTestFormatter()

	trade := tier1Trade()
	trade.Action = models.ActionSale
	trade.AnomalyTexts = []string{"Insider sold their ENTIRE position"}
	tw := f.FormatInsiderTrade(trade)

	assert.NotContains(t, tw.Text, "bought")
	assert.Contains(t, tw.Text, "NVDA")
}

func TestMissingTickerRendersNA(t *testing.T) {
	f := newTestFormatter()

	trade := tier1Trade()
	trade.Ticker = ""
	tw := f.FormatInsiderTrade(trade)

	assert.Equal(t, "N/A", tw.Ticker)
	assert.Contains(t, tw.Text, "N/A")
}

func TestCongressTweet(t *testing.T) {
	f := newTestFormatter()

	trade := &models.CongressTrade{
		ExternalID:        "ct_100",
		PoliticianName:    "Nancy Pelosi",
		PoliticianParty:   "D",
		PoliticianState:   "CA",
		PoliticianChamber: "House",
		Ticker:            "NVDA",
		Action:            models.ActionPurchase,
		TransactionDate:   "2025-05-20",
		DisclosureDate:    "2025-06-10",
		AmountRange:       "$1,000,001 - $5,000,000",
		AnomalyTexts:      []string{"Nancy Pelosi is a high-profile member"},
		Tier:              1,
	}
	tw := f.FormatCongressTrade(trade)

	assert.LessOrEqual(t, len([]rune(tw.Text)), 280)
	assert.Contains(t, tw.Text, "Nancy Pelosi")
	assert.Contains(t, tw.Text, "NVDA")
	assert.Len(t, tw.Tags, 3)
}

func TestFundTweetListsHoldings(t *testing.T) {
	f := newTestFormatter()

	filing := &models.FundFiling{
		AccessionNumber: "0003-25-000001",
		FundName:        "BERKSHIRE HATHAWAY",
		ManagerName:     "Warren Buffett",
		TotalValue:      300_000_000_000,
		PositionCount:   45,
		TopHoldings: []models.Holding{
			{Ticker: "AAPL", Value: 150_000_000_000},
			{Ticker: "BAC", Value: 30_000_000_000},
		},
		AnomalyTexts: []string{"Warren Buffett's latest moves revealed"},
		Tier:         1,
	}
	tw := f.FormatFundFiling(filing)

	assert.LessOrEqual(t, len([]rune(tw.Text)), 280)
	assert.Contains(t, tw.Text, "$AAPL")
	assert.Contains(t, tw.Text, "150.0B")
}

func TestDailyRoundup(t *testing.T) {
	f := newTestFormatter()

	trades := []models.InsiderTrade{
		{Ticker: "ACME", InsiderRole: "CFO", TotalValue: 500_000},
		{Ticker: "NVDA", InsiderRole: "CEO", TotalValue: 2_000_000},
	}
	text := f.FormatDailyRoundup(trades)

	require.NotEmpty(t, text)
	assert.LessOrEqual(t, len([]rune(text)), 280)
	// Largest trade leads the list.
	assert.Less(t, strings.Index(text, "NVDA"), strings.Index(text, "ACME"))
	assert.Contains(t, text, f.CommunityLink)
}

func TestDailyRoundupEmpty(t *testing.T) {
	f := newTestFormatter()
	assert.Empty(t, f.FormatDailyRoundup(nil))
}

func TestClusterAlertNeedsThree(t *testing.T) {
	f := newTestFormatter()

	two := []models.InsiderTrade{
		{InsiderRole: "CEO", TotalValue: 100_000},
		{InsiderRole: "CFO", TotalValue: 50_000},
	}
	assert.Empty(t, f.FormatClusterAlert("ACME", two))

	three := append(two, models.InsiderTrade{InsiderRole: "Director", TotalValue: 25_000})
	text := f.FormatClusterAlert("ACME", three)
	require.NotEmpty(t, text)
	assert.Contains(t, text, "ACME")
	assert.Contains(t, text, "3")
}

func TestTimeAgo(t *testing.T) {
	f := newTestFormatter()

	assert.Equal(t, "today", f.timeAgo("2025-06-15"))
	assert.Equal(t, "yesterday", f.timeAgo("2025-06-14"))
	assert.Equal(t, "3 days ago", f.timeAgo("2025-06-12"))
	assert.Equal(t, "1 week ago", f.timeAgo("2025-06-05"))
	assert.Equal(t, "2 weeks ago", f.timeAgo("2025-05-29"))
	assert.Equal(t, "2025-01-10", f.timeAgo("2025-01-10"))
	assert.Equal(t, "recently", f.timeAgo("not-a-date"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "2.5B", formatValue(2_500_000_000))
	assert.Equal(t, "1.2M", formatValue(1_230_000))
	assert.Equal(t, "50K", formatValue(50_400))
	assert.Equal(t, "950", formatValue(950))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "950", formatCount(950))
	assert.Equal(t, "1,000", formatCount(1_000))
	assert.Equal(t, "12,345,678", formatCount(12_345_678))
}

func TestShortenName(t *testing.T) {
	assert.Equal(t, "Unknown", shortenName(""))
	assert.Equal(t, "Jensen Huang", shortenName("Jensen Huang"))
	assert.Equal(t, "Alexander Wolfeschlegelstein",
		shortenName("Alexander Maximilian von Wolfeschlegelstein"))
}

func TestTrimToLengthCutsAtWordBoundary(t *testing.T) {
	long := strings.Repeat("insider trading alert ", 30)
	trimmed := trimToLength(long, 280)

	assert.LessOrEqual(t, len([]rune(trimmed)), 280)
	assert.True(t, strings.HasSuffix(trimmed, "..."))
	assert.NotContains(t, trimmed, "  ")
}

func TestDiscordMessageCarriesDetail(t *testing.T) {
	f := newTestFormatter()
	msg := f.DiscordInsiderTrade(tier1Trade())

	assert.Contains(t, msg, "NVDA")
	assert.Contains(t, msg, "Jensen Huang")
	assert.Contains(t, msg, "CEO/Founder buying = maximum conviction signal")
	assert.Contains(t, msg, "85")
}
