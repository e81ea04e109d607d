package analyzer

import (
	"fmt"

	"insiderwire/internal/models"
)

// AnalyzeFund enriches a 13F filing with anomaly tags and texts.
func (a *Analyzer) AnalyzeFund(f *models.FundFiling) {
	f.AnomalyTags = nil
	f.AnomalyTexts = nil

	if f.IsFamousFund {
		manager := f.ManagerName
		if manager == "" {
			manager = "Famous manager"
		}
		f.AnomalyTags = append(f.AnomalyTags, models.TagFamousFund)
		f.AnomalyTexts = append(f.AnomalyTexts, fmt.Sprintf("%s's latest moves revealed", manager))
	}

	switch {
	case f.TotalValue >= 10_000_000_000:
		f.AnomalyTags = append(f.AnomalyTags, models.TagHugePortfolio)
		f.AnomalyTexts = append(f.AnomalyTexts, fmt.Sprintf("$%.1fB portfolio", f.TotalValue/1e9))
	case f.TotalValue >= 1_000_000_000:
		f.AnomalyTags = append(f.AnomalyTags, models.TagBillionPortfolio)
		f.AnomalyTexts = append(f.AnomalyTexts, fmt.Sprintf("$%.1fB portfolio", f.TotalValue/1e9))
	}

	// Only the first recognizable top holding is tagged; a famous fund
	// holding NVDA and GME should read as one signal, not two.
	top := f.TopHoldings
	if len(top) > 5 {
		top = top[:5]
	}
	for _, h := range top {
		if a.ref.MemeStocks[h.Ticker] {
			f.AnomalyTags = append(f.AnomalyTags, models.TagMemeStockHolding)
			f.AnomalyTexts = append(f.AnomalyTexts, fmt.Sprintf("Holds meme stock $%s", h.Ticker))
			break
		}
		if a.ref.Magnificent7[h.Ticker] {
			f.AnomalyTags = append(f.AnomalyTags, models.TagMag7Holding)
			break
		}
	}
}
