// Package scoring turns annotated disclosure records into a 0-100 virality
// score and a posting tier. Scores are pure functions of the record: same
// input, same score, no I/O.
package scoring

// Posting tiers. Tier 1 posts immediately with influencer tagging, tier 2
// within the hour, tier 3 in batches, tier 4 only appears in the daily
// roundup.
const (
	TierUrgent  = 1
	TierHigh    = 2
	TierMedium  = 3
	TierRoundup = 4
)

// TierFor maps a virality score to its posting tier.
func TierFor(score int) int {
	switch {
	case score >= 70:
		return TierUrgent
	case score >= 50:
		return TierHigh
	case score >= 30:
		return TierMedium
	default:
		return TierRoundup
	}
}

// TierDescription returns the operator-facing description of a tier.
func TierDescription(tier int) string {
	switch tier {
	case TierUrgent:
		return "URGENT - post immediately with full promotion"
	case TierHigh:
		return "HIGH - post within 1 hour"
	case TierMedium:
		return "MEDIUM - batch post"
	case TierRoundup:
		return "LOW - daily roundup only"
	default:
		return "unknown tier"
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
