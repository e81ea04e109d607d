// Package analyzer detects named, reproducible anomaly signals on disclosure
// records. Every Analyze method is deterministic for fixed inputs and fixed
// lookup results, and degrades instead of failing: a missing optional field or
// an unavailable lookup skips the dependent checks only.
package analyzer

import (
	"fmt"
	"strings"
	"time"

	"insiderwire/internal/models"
	"insiderwire/internal/tickers"
)

const dateLayout = "2006-01-02"

// ActivityRef is one row of recent same-direction activity on a ticker, used
// for cluster detection.
type ActivityRef struct {
	ActorID string
	FiledAt string
}

// Lookup provides the two read-only historical queries the analyzer needs.
// Implementations must exclude the record under analysis from RecentActivity
// (callers pass its accession number) and from InsiderHistory; both queries
// return most-recent-first.
type Lookup interface {
	RecentActivity(ticker string, action models.Action, windowDays int, excludeAccession string) ([]ActivityRef, error)
	InsiderHistory(insiderCIK, ticker string) ([]models.InsiderTrade, error)
}

// Analyzer classifies records against the rule set and the actor's history.
// Safe for concurrent use.
type Analyzer struct {
	lookup Lookup
	ref    *tickers.Reference
	now    func() time.Time
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithNow overrides the clock, for deterministic tests of the date-gap rules.
func WithNow(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New builds an Analyzer over the given lookups and reference tables.
func New(lookup Lookup, ref *tickers.Reference, opts ...Option) *Analyzer {
	a := &Analyzer{lookup: lookup, ref: ref, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeInsider enriches a Form 4 trade with anomaly tags and texts.
// Re-analyzing an already annotated record rebuilds the tags from scratch.
func (a *Analyzer) AnalyzeInsider(t *models.InsiderTrade) {
	t.AnomalyTags = nil
	t.AnomalyTexts = nil

	roleCheck := strings.ToUpper(t.InsiderRole + " " + t.OfficerTitle)
	isPurchase := t.Action == models.ActionPurchase
	isSale := t.Action == models.ActionSale

	if isPurchase {
		a.purchaseRoleSignals(t, roleCheck)
		a.positionDeltaSignals(t)
	}
	if isSale {
		a.saleRoleSignals(t, roleCheck)
		a.saleSeveritySignals(t)
	}

	a.clusterSignals(t, isPurchase, isSale)
	a.historySignals(t, isPurchase)
	a.sizeSignals(t, isPurchase, isSale)
	a.relativeSizeSignals(t)

	if t.IsDirector && isPurchase && !hasTag(t, models.TagCEOFounderBuy) && !hasTag(t, models.TagCFOBuy) {
		addTag(t, models.TagDirectorBuy)
	}

	t.IsBullish = isPurchase && anyTagMatches(t.AnomalyTags, "buy", "purchase")
	t.IsBearish = isSale && anyTagMatches(t.AnomalyTags, "sale", "sell", "exit", "reduction")
}

func (a *Analyzer) purchaseRoleSignals(t *models.InsiderTrade, roleCheck string) {
	switch {
	case containsAny(roleCheck, "CEO", "FOUNDER", "CHIEF EXECUTIVE"):
		addTagText(t, models.TagCEOFounderBuy, "CEO/Founder buying = maximum conviction signal")
	case containsAny(roleCheck, "CFO", "CHIEF FINANCIAL"):
		addTagText(t, models.TagCFOBuy, "CFO buying = knows the financials inside out")
	}

	if strings.Contains(roleCheck, "CHAIRMAN") && !strings.Contains(roleCheck, "VICE") {
		addTagText(t, models.TagChairmanBuy, "Chairman buying shares")
	}
	if t.IsTenPercentOwner {
		addTagText(t, models.TagMajorShareholderBuy, "Major shareholder (10%+ owner) adding to position")
	}
}

func (a *Analyzer) positionDeltaSignals(t *models.InsiderTrade) {
	if !t.HoldingsReported() {
		return
	}
	after := t.HoldingsAfter()

	if t.Shares > 0 && after > 0 {
		var increasePct float64
		if after > t.Shares {
			increasePct = float64(t.Shares) / float64(after-t.Shares) * 100
		}
		switch {
		case increasePct >= 100:
			addTagText(t, models.TagPositionDoubled,
				fmt.Sprintf("Doubled their position or more (+%.0f%%)", increasePct))
		case increasePct >= 50:
			addTagText(t, models.TagMajorPositionUp,
				fmt.Sprintf("Increased position by %.0f%%", increasePct))
		case increasePct >= 25:
			addTag(t, models.TagSignificantPosUp)
		}
	}

	if after > 0 && after == t.Shares {
		addTagText(t, models.TagFirstEverPurchase, "First time owning shares in this company")
	}
}

func (a *Analyzer) saleRoleSignals(t *models.InsiderTrade, roleCheck string) {
	switch {
	case containsAny(roleCheck, "CEO", "FOUNDER", "CHIEF EXECUTIVE"):
		if t.TotalValue >= 10_000_000 {
			addTagText(t, models.TagCEOLargeSale, "CEO selling significant stake")
		} else {
			addTag(t, models.TagCEOSale)
		}
	case containsAny(roleCheck, "CFO", "CHIEF FINANCIAL"):
		addTagText(t, models.TagCFOSale, "CFO reducing position - watch closely")
	}

	if t.IsTenPercentOwner {
		addTagText(t, models.TagMajorShareholderSale, "10%+ owner reducing stake")
	}
}

func (a *Analyzer) saleSeveritySignals(t *models.InsiderTrade) {
	if !t.HoldingsReported() {
		return
	}
	after := t.HoldingsAfter()

	if after == 0 && t.Shares > 0 {
		addTagText(t, models.TagCompleteExit, "Sold entire position - complete exit")
		return
	}
	if after > 0 && t.Shares > 0 {
		sellPct := float64(t.Shares) / float64(after+t.Shares) * 100
		switch {
		case sellPct >= 75:
			addTagText(t, models.TagMajorReduction, fmt.Sprintf("Sold %.0f%% of holdings", sellPct))
		case sellPct >= 50:
			addTag(t, models.TagSignificantReduction)
		}
	}
}

func (a *Analyzer) clusterSignals(t *models.InsiderTrade, isPurchase, isSale bool) {
	if t.Ticker == "" || (!isPurchase && !isSale) {
		return
	}

	refs, err := a.lookup.RecentActivity(t.Ticker, t.Action, 14, t.AccessionNumber)
	if err != nil {
		return
	}

	distinct := map[string]bool{}
	for _, ref := range refs {
		if ref.ActorID != "" && ref.ActorID != t.InsiderCIK {
			distinct[ref.ActorID] = true
		}
	}
	// The record under analysis always counts as one actor.
	n := len(distinct) + 1

	if isPurchase {
		if n >= 3 {
			addTagText(t, models.TagClusterBuy, fmt.Sprintf("%d insiders buying in last 2 weeks", n))
		} else if n == 2 {
			addTag(t, models.TagMultipleBuyers)
		}
	}
	if isSale {
		if n >= 3 {
			addTagText(t, models.TagClusterSell, fmt.Sprintf("%d insiders selling - potential red flag", n))
		} else if n == 2 {
			addTag(t, models.TagMultipleSellers)
		}
	}
}

func (a *Analyzer) historySignals(t *models.InsiderTrade, isPurchase bool) {
	if t.InsiderCIK == "" || t.Ticker == "" {
		return
	}

	history, err := a.lookup.InsiderHistory(t.InsiderCIK, t.Ticker)
	if err != nil {
		return
	}

	var purchases, sales []models.InsiderTrade
	for _, h := range history {
		switch h.Action {
		case models.ActionPurchase:
			purchases = append(purchases, h)
		case models.ActionSale:
			sales = append(sales, h)
		}
	}

	if isPurchase {
		if len(purchases) <= 1 {
			addTagText(t, models.TagFirstPurchase, "First recorded purchase at this company")
		} else {
			a.buyGapSignal(t, purchases[1].FilingDate)
		}

		if len(purchases) >= 3 {
			a.consecutiveBuySignal(t, purchases[:3])
		}

		if len(sales) > len(purchases) {
			addTagText(t, models.TagSellerTurnedBuyer, "Previously only sold, now buying")
		}
	}
}

func (a *Analyzer) buyGapSignal(t *models.InsiderTrade, priorFilingDate string) {
	prior, err := time.Parse(dateLayout, priorFilingDate)
	if err != nil {
		return
	}

	days := int(a.now().Sub(prior).Hours() / 24)
	switch {
	case days > 730:
		addTagText(t, models.TagFirstBuyInYears, fmt.Sprintf("First buy in %d+ years", days/365))
	case days > 365:
		addTagText(t, models.TagFirstBuyInYear, "First buy in over a year")
	}
}

func (a *Analyzer) consecutiveBuySignal(t *models.InsiderTrade, recent []models.InsiderTrade) {
	var dates []time.Time
	for _, p := range recent {
		d, err := time.Parse(dateLayout, p.FilingDate)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	if len(dates) < 3 {
		return
	}

	span := dates[0].Sub(dates[2]).Hours() / 24
	if span <= 90 {
		addTagText(t, models.TagConsecutiveBuying, "3rd purchase in last 90 days - high conviction")
	}
}

func (a *Analyzer) sizeSignals(t *models.InsiderTrade, isPurchase, isSale bool) {
	v := t.TotalValue
	if isPurchase {
		switch {
		case v >= 25_000_000:
			addTagText(t, models.TagMassiveBuy, fmt.Sprintf("$%.0fM+ purchase - huge conviction", v/1_000_000))
		case v >= 10_000_000:
			addTagText(t, models.TagLargeBuy, fmt.Sprintf("$%.1fM purchase", v/1_000_000))
		case v >= 5_000_000:
			addTagText(t, models.TagSignificantBuy, fmt.Sprintf("$%.1fM purchase", v/1_000_000))
		case v >= 1_000_000:
			addTag(t, models.TagMillionPlusBuy)
		}
	}
	if isSale {
		switch {
		case v >= 50_000_000:
			addTagText(t, models.TagMassiveSale, fmt.Sprintf("$%.0fM+ sale", v/1_000_000))
		case v >= 10_000_000:
			addTag(t, models.TagLargeSale)
		}
	}
}

func (a *Analyzer) relativeSizeSignals(t *models.InsiderTrade) {
	if t.InsiderCIK == "" || t.TotalValue <= 0 {
		return
	}

	history, err := a.lookup.InsiderHistory(t.InsiderCIK, "")
	if err != nil {
		return
	}

	var past []float64
	for _, h := range history {
		if h.Action == t.Action && h.TotalValue > 0 {
			past = append(past, h.TotalValue)
		}
	}
	if len(past) < 2 {
		return
	}

	var sum float64
	for _, v := range past {
		sum += v
	}
	avg := sum / float64(len(past))
	if avg <= 0 {
		return
	}

	multiple := t.TotalValue / avg
	switch {
	case multiple >= 5:
		addTagText(t, models.TagUnusuallyLarge, fmt.Sprintf("%.0fx their average transaction", multiple))
	case multiple >= 3:
		addTag(t, models.TagLargerThanUsual)
	}
}

func addTag(t *models.InsiderTrade, tag string) {
	t.AnomalyTags = append(t.AnomalyTags, tag)
}

func addTagText(t *models.InsiderTrade, tag, text string) {
	t.AnomalyTags = append(t.AnomalyTags, tag)
	t.AnomalyTexts = append(t.AnomalyTexts, text)
}

func hasTag(t *models.InsiderTrade, tag string) bool {
	for _, a := range t.AnomalyTags {
		if a == tag {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func anyTagMatches(tags []string, subs ...string) bool {
	for _, tag := range tags {
		for _, sub := range subs {
			if strings.Contains(tag, sub) {
				return true
			}
		}
	}
	return false
}
