// Package format renders scored records into tweets and Discord messages.
// Template selection is keyed on each record's natural ID, so rendering is
// repeatable for a fixed record and clock.
package format

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strings"
	"time"

	"insiderwire/internal/models"
)

const maxTweetLength = 280

const dateLayout = "2006-01-02"

// Tweet is a rendered post ready for publishing.
type Tweet struct {
	Text   string
	Tags   []string
	Tier   int
	Ticker string
}

// Formatter renders records into social posts.
type Formatter struct {
	now func() time.Time

	// Community link appended to roundups.
	CommunityLink string
}

// Option customizes a Formatter.
type Option func(*Formatter)

// WithNow overrides the clock used for "filed X ago" phrasing.
func WithNow(now func() time.Time) Option {
	return func(f *Formatter) { f.now = now }
}

// NewFormatter builds a Formatter.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{now: time.Now, CommunityLink: "discord.gg/smartmoney"}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatInsiderTrade renders a Form 4 trade as a tweet.
func (f *Formatter) FormatInsiderTrade(t *models.InsiderTrade) Tweet {
	ticker := t.Ticker
	if ticker == "" {
		ticker = "N/A"
	}

	var templates []string
	switch {
	case t.Action == models.ActionSale:
		templates = insiderSaleTemplates
	case t.Tier == 1:
		templates = insiderTier1Templates
	case t.Tier == 2:
		templates = insiderTier2Templates
	default:
		templates = insiderTier3Templates
	}
	template := pick(templates, t.AccessionNumber)

	anomalyText := ""
	if len(t.AnomalyTexts) > 0 {
		anomalyText = t.AnomalyTexts[0]
		if len(t.AnomalyTexts) > 1 {
			anomalyText += "\n" + t.AnomalyTexts[1]
		}
	}

	insight := ""
	if t.Tier <= 2 {
		insight = pick(insightTexts, t.AccessionNumber)
	}

	var tags []string
	if t.Tier <= 2 {
		maxTags := 2
		if t.Tier == 1 {
			maxTags = 3
		}
		for _, h := range tagsForStock(ticker, maxTags, t.AccessionNumber) {
			tags = append(tags, "@"+h)
		}
	}

	text := replaceAll(template, map[string]string{
		"{ticker}":        ticker,
		"{ticker_clean}":  cleanTicker(ticker),
		"{insider_role}":  orDefault(t.InsiderRole, "Insider"),
		"{insider_name}":  shortenName(t.InsiderName),
		"{shares}":        formatCount(t.Shares),
		"{value_display}": formatValue(t.TotalValue),
		"{time_ago}":      f.timeAgo(t.FilingDate),
		"{anomaly_text}":  anomalyText,
		"{insight_text}":  insight,
		"{tags}":          strings.Join(tags, " "),
	})

	return Tweet{
		Text:   trimToLength(cleanWhitespace(text), maxTweetLength),
		Tags:   tags,
		Tier:   t.Tier,
		Ticker: ticker,
	}
}

// FormatCongressTrade renders a congressional trade as a tweet.
func (f *Formatter) FormatCongressTrade(t *models.CongressTrade) Tweet {
	var templates []string
	switch t.Tier {
	case 1:
		templates = congressTier1Templates
	case 2:
		templates = congressTier2Templates
	default:
		templates = congressTier3Templates
	}
	template := pick(templates, t.ExternalID)

	action := "sold"
	if t.Action == models.ActionPurchase {
		action = "bought"
	}

	anomalyText := ""
	if len(t.AnomalyTexts) > 0 {
		anomalyText = t.AnomalyTexts[0]
	}

	var tags []string
	if t.Tier == 1 {
		for _, h := range tagsForCongress(3) {
			tags = append(tags, "@"+h)
		}
	}

	text := replaceAll(template, map[string]string{
		"{politician_name}": t.PoliticianName,
		"{party}":           orDefault(t.PoliticianParty, "?"),
		"{state}":           orDefault(t.PoliticianState, "?"),
		"{chamber}":         t.PoliticianChamber,
		"{action}":          action,
		"{ticker}":          t.Ticker,
		"{value_range}":     t.AmountRange,
		"{trade_date}":      t.TransactionDate,
		"{disclosure_date}": t.DisclosureDate,
		"{anomaly_text}":    anomalyText,
		"{tags}":            strings.Join(tags, " "),
	})

	return Tweet{
		Text:   trimToLength(cleanWhitespace(text), maxTweetLength),
		Tags:   tags,
		Tier:   t.Tier,
		Ticker: t.Ticker,
	}
}

// FormatFundFiling renders a 13F filing as a tweet.
func (f *Formatter) FormatFundFiling(filing *models.FundFiling) Tweet {
	var templates []string
	switch filing.Tier {
	case 1:
		templates = fundTier1Templates
	case 2:
		templates = fundTier2Templates
	default:
		templates = fundTier3Templates
	}
	template := pick(templates, filing.AccessionNumber)

	var holdingLines []string
	for i, h := range filing.TopHoldings {
		if i >= 5 {
			break
		}
		label := h.Ticker
		if label == "" {
			label = h.CompanyName
		} else {
			label = "$" + label
		}
		holdingLines = append(holdingLines, fmt.Sprintf("%d. %s — $%s", i+1, label, formatValue(h.Value)))
	}

	anomalyText := ""
	if len(filing.AnomalyTexts) > 0 {
		anomalyText = filing.AnomalyTexts[0]
	}

	var tags []string
	if filing.Tier == 1 {
		for _, h := range tagsForFund(3, filing.AccessionNumber) {
			tags = append(tags, "@"+h)
		}
	}

	text := replaceAll(template, map[string]string{
		"{fund_name}":         filing.FundName,
		"{manager_name}":      orDefault(filing.ManagerName, filing.FundName),
		"{total_value}":       formatValue(filing.TotalValue),
		"{position_count}":    fmt.Sprintf("%d", filing.PositionCount),
		"{top_holdings_text}": strings.Join(holdingLines, "\n"),
		"{anomaly_text}":      anomalyText,
		"{tags}":              strings.Join(tags, " "),
	})

	return Tweet{
		Text: trimToLength(cleanWhitespace(text), maxTweetLength),
		Tags: tags,
		Tier: filing.Tier,
	}
}

// FormatDailyRoundup renders the end-of-day top-10 list. Returns "" when
// there is nothing to report.
func (f *Formatter) FormatDailyRoundup(trades []models.InsiderTrade) string {
	if len(trades) == 0 {
		return ""
	}

	sorted := sortByValue(trades)
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}

	var lines []string
	var total float64
	for i, t := range sorted {
		ticker := orDefault(t.Ticker, "N/A")
		total += t.TotalValue
		lines = append(lines, fmt.Sprintf("%d. $%s — %s — $%s",
			i+1, ticker, orDefault(t.InsiderRole, "Insider"), formatValue(t.TotalValue)))
	}

	text := replaceAll(dailyRoundupTemplate, map[string]string{
		"{ranked_list}": strings.Join(lines, "\n"),
		"{total_value}": formatValue(total),
		"{link}":        f.CommunityLink,
	})
	return trimToLength(text, maxTweetLength)
}

// FormatClusterAlert renders a cluster-buying alert. Returns "" when fewer
// than three trades are involved.
func (f *Formatter) FormatClusterAlert(ticker string, trades []models.InsiderTrade) string {
	if len(trades) < 3 {
		return ""
	}

	var lines []string
	var total float64
	for i, t := range trades {
		if i >= 5 {
			break
		}
		total += t.TotalValue
		lines = append(lines, fmt.Sprintf("• %s: $%s", orDefault(t.InsiderRole, "Insider"), formatValue(t.TotalValue)))
	}

	text := replaceAll(clusterBuyTemplate, map[string]string{
		"{ticker}":       ticker,
		"{count}":        fmt.Sprintf("%d", len(trades)),
		"{days}":         "7",
		"{insider_list}": strings.Join(lines, "\n"),
		"{total_value}":  formatValue(total),
		"{tags}":         "",
	})
	return trimToLength(cleanWhitespace(text), maxTweetLength)
}

func (f *Formatter) timeAgo(dateStr string) string {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return "recently"
	}

	days := int(f.now().Sub(date).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		weeks := days / 7
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		return dateStr
	}
}

func formatValue(value float64) string {
	switch {
	case value >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", value/1_000_000_000)
	case value >= 1_000_000:
		return fmt.Sprintf("%.1fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%.0fK", value/1_000)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}

// formatCount renders an integer with thousands separators.
func formatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func cleanTicker(ticker string) string {
	return strings.NewReplacer(".", "", "-", "").Replace(ticker)
}

func shortenName(name string) string {
	if name == "" {
		return "Unknown"
	}
	if len(name) <= 25 {
		return name
	}
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		return parts[0] + " " + parts[len(parts)-1]
	}
	return name
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func replaceAll(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

var multiNewlineRe = regexp.MustCompile(`\n{3,}`)

func cleanWhitespace(text string) string {
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// trimToLength cuts text at a word boundary under the limit, counting runes
// the way Twitter does.
func trimToLength(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	trimmed := string(runes[:maxLength-3])
	cut := strings.LastIndexAny(trimmed, " \n")
	if cut > maxLength/2 {
		trimmed = trimmed[:cut]
	}
	return trimmed + "..."
}

func sortByValue(trades []models.InsiderTrade) []models.InsiderTrade {
	sorted := append([]models.InsiderTrade{}, trades...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TotalValue > sorted[j].TotalValue })
	return sorted
}

func hashSeed(seed string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return h.Sum32()
}

func pick(options []string, seed string) string {
	if len(options) == 0 {
		return ""
	}
	return options[int(hashSeed(seed)%uint32(len(options)))]
}
