package analyzer

import (
	"fmt"

	"insiderwire/internal/models"
)

// STOCK Act filing deadline: trades must be disclosed within 45 days.
const disclosureDeadlineDays = 45

// AnalyzeCongress enriches a congressional trade with anomaly tags and texts.
func (a *Analyzer) AnalyzeCongress(t *models.CongressTrade) {
	t.AnomalyTags = nil
	t.AnomalyTexts = nil

	if t.IsHighProfile || a.ref.HighProfile(t.PoliticianName) {
		t.IsHighProfile = true
		t.AnomalyTags = append(t.AnomalyTags, models.TagHighProfilePolitician)
		t.AnomalyTexts = append(t.AnomalyTexts,
			fmt.Sprintf("%s is a high-profile member", t.PoliticianName))
	}

	switch {
	case t.AmountHigh >= 1_000_000:
		t.AnomalyTags = append(t.AnomalyTags, models.TagMillionPlusTrade)
		t.AnomalyTexts = append(t.AnomalyTexts,
			fmt.Sprintf("$%.1fM+ trade", float64(t.AmountHigh)/1_000_000))
	case t.AmountHigh >= 500_000:
		t.AnomalyTags = append(t.AnomalyTags, models.TagLargeTrade)
		t.AnomalyTexts = append(t.AnomalyTexts, "$500K+ trade")
	}

	switch {
	case t.DaysToDisclose > disclosureDeadlineDays:
		t.AnomalyTags = append(t.AnomalyTags, models.TagLateDisclosure)
		t.AnomalyTexts = append(t.AnomalyTexts,
			fmt.Sprintf("Disclosed %d days after trade (45-day limit)", t.DaysToDisclose))
	case t.DaysToDisclose > 30:
		t.AnomalyTags = append(t.AnomalyTags, models.TagSlowDisclosure)
		t.AnomalyTexts = append(t.AnomalyTexts,
			fmt.Sprintf("Disclosed %d days after trade", t.DaysToDisclose))
	}

	if a.ref.MemeStocks[t.Ticker] {
		t.AnomalyTags = append(t.AnomalyTags, models.TagMemeStock)
		t.AnomalyTexts = append(t.AnomalyTexts,
			fmt.Sprintf("Trading meme stock $%s", t.Ticker))
	}

	if t.Action == models.ActionPurchase {
		t.AnomalyTags = append(t.AnomalyTags, models.TagPurchase)
	}
}
