package scoring

import (
	"strings"

	"insiderwire/internal/models"
)

// ScoreCongress scores a congressional trade and stamps ViralityScore and
// Tier on it.
func (s *Scorer) ScoreCongress(t *models.CongressTrade) int {
	score := 0

	if t.IsHighProfile {
		score += 25
	} else {
		score += 10
	}

	if strings.EqualFold(t.PoliticianChamber, "senate") {
		score += 5
	}

	switch {
	case t.AmountHigh >= 5_000_000:
		score += 25
	case t.AmountHigh >= 1_000_000:
		score += 20
	case t.AmountHigh >= 500_000:
		score += 15
	case t.AmountHigh >= 250_000:
		score += 10
	case t.AmountHigh >= 100_000:
		score += 5
	}

	ticker := strings.ToUpper(t.Ticker)
	switch {
	case s.ref.MemeStocks[ticker]:
		score += 20
	case s.ref.SP500[ticker]:
		score += 12
	case ticker != "":
		score += 5
	}

	for _, tag := range t.AnomalyTags {
		switch tag {
		case models.TagLateDisclosure:
			score += 15
		case models.TagMillionPlusTrade:
			score += 10
		case models.TagPurchase:
			score += 5
		}
	}

	if t.Action == models.ActionPurchase {
		score += 5
	}

	score = clamp(score)
	if (ticker == "" || ticker == "N/A") && score > 29 {
		score = 29
	}

	t.ViralityScore = score
	t.Tier = TierFor(score)
	return score
}
