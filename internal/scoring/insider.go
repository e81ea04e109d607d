package scoring

import (
	"strings"

	"insiderwire/internal/models"
	"insiderwire/internal/tickers"
)

// Anomaly point tables, keyed per transaction direction. Unknown tags earn a
// minimal 2 so a new analyzer tag never silently scores zero.
var buyAnomalyPoints = map[string]int{
	models.TagCEOFounderBuy:     15,
	models.TagCFOBuy:            12,
	models.TagChairmanBuy:       10,
	models.TagPositionDoubled:   12,
	models.TagFirstEverPurchase: 10,
	models.TagSellerTurnedBuyer: 10,
	models.TagConsecutiveBuying: 10,

	models.TagClusterBuy:          12,
	models.TagFirstBuyInYears:     10,
	models.TagFirstBuyInYear:      7,
	models.TagMajorShareholderBuy: 8,
	models.TagFirstPurchase:       6,
	models.TagMultipleBuyers:      5,

	models.TagMassiveBuy:      10,
	models.TagLargeBuy:        7,
	models.TagSignificantBuy:  5,
	models.TagMillionPlusBuy:  3,
	models.TagUnusuallyLarge:  8,
	models.TagLargerThanUsual: 4,

	models.TagMajorPositionUp:  6,
	models.TagSignificantPosUp: 3,

	models.TagDirectorBuy: 2,
}

var sellAnomalyPoints = map[string]int{
	models.TagCEOLargeSale:         12,
	models.TagCFOSale:              10,
	models.TagCompleteExit:         12,
	models.TagClusterSell:          15,
	models.TagMajorShareholderSale: 10,

	models.TagCEOSale:              6,
	models.TagMajorReduction:       8,
	models.TagSignificantReduction: 4,
	models.TagMassiveSale:          8,
	models.TagLargeSale:            5,
}

var strongBuySignals = map[string]bool{
	models.TagCEOFounderBuy:     true,
	models.TagCFOBuy:            true,
	models.TagClusterBuy:        true,
	models.TagPositionDoubled:   true,
	models.TagFirstEverPurchase: true,
	models.TagConsecutiveBuying: true,
	models.TagMassiveBuy:        true,
}

var saleWarningSignals = map[string]bool{
	models.TagCompleteExit: true,
	models.TagClusterSell:  true,
	models.TagCFOSale:      true,
	models.TagCEOLargeSale: true,
}

// Scorer prices annotated records against the reference tables.
type Scorer struct {
	ref *tickers.Reference
}

// New builds a Scorer over the given reference tables.
func New(ref *tickers.Reference) *Scorer {
	return &Scorer{ref: ref}
}

// Breakdown explains how an insider trade's score was assembled. Produced by
// ExplainInsider for the debug surfaces; ScoreInsider computes the same total
// without allocating one.
type Breakdown struct {
	RolePoints    int
	SizePoints    int
	CompanyPoints int
	AnomalyPoints int
	Adjustments   int
	Total         int
	Tier          int
}

// ScoreInsider scores a Form 4 trade and stamps ViralityScore and Tier on it.
func (s *Scorer) ScoreInsider(t *models.InsiderTrade) int {
	b := s.explainInsider(t)
	t.ViralityScore = b.Total
	t.Tier = b.Tier
	return b.Total
}

// ExplainInsider returns the full per-dimension breakdown without mutating
// the record.
func (s *Scorer) ExplainInsider(t *models.InsiderTrade) Breakdown {
	return s.explainInsider(t)
}

func (s *Scorer) explainInsider(t *models.InsiderTrade) Breakdown {
	var b Breakdown

	isPurchase := t.Action == models.ActionPurchase
	isSale := t.Action == models.ActionSale
	ticker := strings.ToUpper(t.Ticker)

	b.RolePoints = rolePoints(t, isSale)
	b.SizePoints = sizePoints(t.TotalValue, isPurchase)
	b.CompanyPoints = s.companyPoints(ticker)

	anomaly := 0
	for _, tag := range t.AnomalyTags {
		var pts int
		var ok bool
		if isPurchase {
			pts, ok = buyAnomalyPoints[tag]
		} else {
			pts, ok = sellAnomalyPoints[tag]
		}
		if !ok {
			pts = 2
		}
		anomaly += pts
	}
	if anomaly > 40 {
		anomaly = 40
	}
	b.AnomalyPoints = anomaly

	score := b.RolePoints + b.SizePoints + b.CompanyPoints + b.AnomalyPoints

	if isPurchase {
		strong := 0
		for _, tag := range t.AnomalyTags {
			if strongBuySignals[tag] {
				strong++
			}
		}
		switch {
		case strong >= 3:
			score += 10
			b.Adjustments += 10
		case strong == 2:
			score += 5
			b.Adjustments += 5
		}
	}
	if isSale {
		warnings := 0
		for _, tag := range t.AnomalyTags {
			if saleWarningSignals[tag] {
				warnings++
			}
		}
		if warnings >= 2 {
			score += 8
			b.Adjustments += 8
		}
	}

	tickerless := ticker == "" || ticker == "N/A" || ticker == "NONE"
	if tickerless {
		score -= 30
		b.Adjustments -= 30
		if score < 0 {
			score = 0
		}
	}

	// $1B+ single transactions are almost always parse errors.
	if t.TotalValue >= 1_000_000_000 {
		score -= 20
		b.Adjustments -= 20
		if score < 0 {
			score = 0
		}
	}

	if s.ref.Magnificent7[ticker] && b.RolePoints >= 14 {
		score += 5
		b.Adjustments += 5
	}

	score = clamp(score)

	// A record with no ticker cannot be posted standalone, so it must land
	// in the roundup tier no matter how strong the rest of the signal is.
	if tickerless && score > 29 {
		score = 29
	}

	b.Total = score
	b.Tier = TierFor(score)
	return b
}

func rolePoints(t *models.InsiderTrade, isSale bool) int {
	roleCheck := strings.ToUpper(t.InsiderRole + " " + t.OfficerTitle)

	var pts int
	switch {
	case containsAny(roleCheck, "CEO", "CHIEF EXECUTIVE"), strings.Contains(roleCheck, "FOUNDER"):
		pts = 20
	case containsAny(roleCheck, "CFO", "CHIEF FINANCIAL"):
		pts = 18
	case containsAny(roleCheck, "COO", "CHIEF OPERATING"):
		pts = 16
	case strings.Contains(roleCheck, "CHAIRMAN") && !strings.Contains(roleCheck, "VICE"):
		pts = 16
	case containsAny(roleCheck, "CTO", "CHIEF TECHNOLOGY"):
		pts = 14
	case strings.Contains(roleCheck, "PRESIDENT"):
		pts = 14
	case t.IsTenPercentOwner:
		pts = 12
	case containsAny(roleCheck, "VP", "VICE PRESIDENT"):
		pts = 8
	case strings.Contains(roleCheck, "GENERAL COUNSEL"):
		pts = 8
	case t.IsDirector:
		pts = 6
	case t.IsOfficer:
		pts = 6
	default:
		pts = 2
	}

	// C-suite sales are routine compensation events more often than signals.
	if isSale && pts >= 14 {
		pts = pts * 6 / 10
	}
	return pts
}

func sizePoints(value float64, isPurchase bool) int {
	if isPurchase {
		switch {
		case value >= 50_000_000:
			return 20
		case value >= 25_000_000:
			return 18
		case value >= 10_000_000:
			return 16
		case value >= 5_000_000:
			return 14
		case value >= 2_000_000:
			return 12
		case value >= 1_000_000:
			return 10
		case value >= 500_000:
			return 7
		case value >= 250_000:
			return 5
		case value >= 100_000:
			return 3
		default:
			return 1
		}
	}
	switch {
	case value >= 100_000_000:
		return 18
	case value >= 50_000_000:
		return 15
	case value >= 25_000_000:
		return 12
	case value >= 10_000_000:
		return 8
	case value >= 5_000_000:
		return 5
	default:
		return 2
	}
}

func (s *Scorer) companyPoints(ticker string) int {
	switch {
	case s.ref.Magnificent7[ticker]:
		return 20
	case s.ref.MemeStocks[ticker]:
		return 18
	case s.ref.FAANG[ticker]:
		return 16
	case s.ref.SP500[ticker]:
		return 10
	case ticker != "":
		return 4
	default:
		return 0
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
