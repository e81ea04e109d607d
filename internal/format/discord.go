package format

import (
	"fmt"
	"strings"

	"insiderwire/internal/models"
)

// DiscordInsiderTrade renders the long-form Discord message for a trade.
// Discord allows far more than a tweet, so everything goes in.
func (f *Formatter) DiscordInsiderTrade(t *models.InsiderTrade) string {
	action := "SELL"
	if t.Action == models.ActionPurchase {
		action = "BUY"
	}

	value := fmt.Sprintf("$%.2f", t.TotalValue)
	if t.TotalValue >= 1_000_000 {
		value = fmt.Sprintf("$%.2fM", t.TotalValue/1_000_000)
	}

	var b strings.Builder
	b.WriteString("**🔔 INSIDER TRADE ALERT**\n\n")
	fmt.Fprintf(&b, "**Ticker:** $%s\n", orDefault(t.Ticker, "N/A"))
	fmt.Fprintf(&b, "**Company:** %s\n", orDefault(t.CompanyName, "Unknown"))
	fmt.Fprintf(&b, "**Insider:** %s (%s)\n", orDefault(t.InsiderName, "Unknown"), orDefault(t.InsiderRole, "Insider"))
	fmt.Fprintf(&b, "**Action:** %s\n", action)
	fmt.Fprintf(&b, "**Shares:** %s\n", formatCount(t.Shares))
	fmt.Fprintf(&b, "**Price:** $%.2f\n", t.PricePerShare)
	fmt.Fprintf(&b, "**Total Value:** %s\n", value)
	fmt.Fprintf(&b, "**Trade Date:** %s\n", orDefault(t.TransactionDate, "N/A"))
	fmt.Fprintf(&b, "**Filed:** %s\n", orDefault(t.FilingDate, "N/A"))

	if len(t.AnomalyTexts) > 0 {
		b.WriteString("\n**Notable:**\n")
		for _, text := range t.AnomalyTexts {
			fmt.Fprintf(&b, "• %s\n", text)
		}
	}

	fmt.Fprintf(&b, "\n**Virality Score:** %d/100 (Tier %d)", t.ViralityScore, t.Tier)

	if t.FilingURL != "" {
		fmt.Fprintf(&b, "\n\n📄 [View SEC Filing](%s)", t.FilingURL)
	}
	return strings.TrimSpace(b.String())
}

// DiscordDailySummary renders the end-of-day summary message.
func (f *Formatter) DiscordDailySummary(trades []models.InsiderTrade) string {
	if len(trades) == 0 {
		return "No significant insider trades today."
	}

	sorted := sortByValue(trades)

	var total float64
	for _, t := range sorted {
		total += t.TotalValue
	}
	totalStr := fmt.Sprintf("$%.0f", total)
	if total >= 1_000_000 {
		totalStr = fmt.Sprintf("$%.1fM", total/1_000_000)
	}

	var b strings.Builder
	b.WriteString("**📊 Daily Insider Trading Summary**\n\n")
	fmt.Fprintf(&b, "**Total Insider Buying Today:** %s\n", totalStr)
	fmt.Fprintf(&b, "**Number of Trades:** %d\n\n", len(sorted))
	b.WriteString("**Top 10 Purchases:**\n")

	for i, t := range sorted {
		if i >= 10 {
			break
		}
		valueStr := fmt.Sprintf("$%.0fK", t.TotalValue/1_000)
		if t.TotalValue >= 1_000_000 {
			valueStr = fmt.Sprintf("$%.1fM", t.TotalValue/1_000_000)
		}
		fmt.Fprintf(&b, "%d. **$%s** — %s — %s\n",
			i+1, orDefault(t.Ticker, "N/A"), orDefault(t.InsiderRole, "Insider"), valueStr)
	}
	return strings.TrimSpace(b.String())
}
