package scoring

import "insiderwire/internal/models"

// ScoreFund scores a 13F filing and stamps ViralityScore and Tier on it.
func (s *Scorer) ScoreFund(f *models.FundFiling) int {
	score := 0

	if f.IsFamousFund {
		score += 35
	} else {
		score += 5
	}

	switch {
	case f.TotalValue >= 50_000_000_000:
		score += 25
	case f.TotalValue >= 10_000_000_000:
		score += 20
	case f.TotalValue >= 1_000_000_000:
		score += 15
	case f.TotalValue >= 100_000_000:
		score += 10
	default:
		score += 5
	}

	for _, tag := range f.AnomalyTags {
		switch tag {
		case models.TagMemeStockHolding:
			score += 15
		case models.TagFamousFund:
			score += 10
		}
	}

	// Large position counts suggest an actively traded book.
	switch {
	case f.PositionCount >= 100:
		score += 10
	case f.PositionCount >= 50:
		score += 5
	}

	score = clamp(score)
	f.ViralityScore = score
	f.Tier = TierFor(score)
	return score
}
