package scrapers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/phuslu/log"

	"insiderwire/internal/models"
	"insiderwire/internal/tickers"
)

const (
	capitolTradesAPIURL  = "https://bff.capitoltrades.com/trades"
	capitolTradesPageURL = "https://www.capitoltrades.com/trades"
)

// Disclosure amounts come as fixed ranges, never exact values.
var amountRanges = []struct {
	label     string
	low, high int64
}{
	{"$1,001 - $15,000", 1_001, 15_000},
	{"$15,001 - $50,000", 15_001, 50_000},
	{"$50,001 - $100,000", 50_001, 100_000},
	{"$100,001 - $250,000", 100_001, 250_000},
	{"$250,001 - $500,000", 250_001, 500_000},
	{"$500,001 - $1,000,000", 500_001, 1_000_000},
	{"$1,000,001 - $5,000,000", 1_000_001, 5_000_000},
	{"$5,000,001 - $25,000,000", 5_000_001, 25_000_000},
	{"$25,000,001 - $50,000,000", 25_000_001, 50_000_000},
	{"Over $50,000,000", 50_000_001, 100_000_000},
}

var parenTickerRe = regexp.MustCompile(`\(([A-Z]{1,5})\)`)

// CongressScraper pulls congressional trade disclosures from Capitol Trades,
// falling back to their public HTML page when the API is unavailable.
type CongressScraper struct {
	http *resty.Client
	ref  *tickers.Reference
}

// NewCongress builds a congressional trade scraper.
func NewCongress(userAgent string, ref *tickers.Reference) *CongressScraper {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(2 * time.Second)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "application/json, text/html, */*")

	return &CongressScraper{http: client, ref: ref}
}

// Scrape fetches recent congressional trades, deduplicated on politician,
// ticker and trade date.
func (s *CongressScraper) Scrape(ctx context.Context, maxTrades int) ([]models.CongressTrade, error) {
	trades, err := s.scrapeAPI(ctx, maxTrades)
	if err != nil {
		log.Warn().Err(err).Msg("capitol trades API failed, trying HTML page")
		trades, err = s.scrapeHTML(ctx)
		if err != nil {
			return nil, err
		}
	}

	seen := map[string]bool{}
	unique := trades[:0]
	for _, t := range trades {
		key := t.PoliticianName + "_" + t.Ticker + "_" + t.TransactionDate
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
	}

	log.Info().Int("trades", len(unique)).Msg("congress scrape complete")
	return unique, nil
}

type capitolResponse struct {
	Data []capitolTrade `json:"data"`
}

type capitolTrade struct {
	TxID       json.Number `json:"_txId"`
	TxDate     string      `json:"txDate"`
	FilingDate string      `json:"filingDate"`
	TxType     string      `json:"txType"`
	Value      string      `json:"value"`

	Politician struct {
		Name    string `json:"name"`
		Party   string `json:"party"`
		State   string `json:"state"`
		Chamber string `json:"chamber"`
	} `json:"politician"`

	Asset struct {
		Ticker string `json:"assetTicker"`
		Name   string `json:"assetName"`
		Type   string `json:"assetType"`
	} `json:"asset"`
}

func (s *CongressScraper) scrapeAPI(ctx context.Context, maxTrades int) ([]models.CongressTrade, error) {
	pageSize := maxTrades
	if pageSize > 100 {
		pageSize = 100
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     "1",
			"pageSize": strconv.Itoa(pageSize),
			"sortBy":   "-txDate",
		}).
		Get(capitolTradesAPIURL)
	if err != nil {
		return nil, fmt.Errorf("fetch capitol trades API: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("capitol trades API: HTTP %d", resp.StatusCode())
	}

	var payload capitolResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("parse capitol trades response: %w", err)
	}

	var trades []models.CongressTrade
	for _, item := range payload.Data {
		if t := s.parseAPITrade(item); t != nil {
			trades = append(trades, *t)
		}
	}
	return trades, nil
}

func (s *CongressScraper) parseAPITrade(item capitolTrade) *models.CongressTrade {
	ticker := strings.ToUpper(item.Asset.Ticker)
	if ticker == "" {
		ticker = s.extractTicker(item.Asset.Name)
	}

	var action models.Action
	txType := strings.ToLower(item.TxType)
	switch {
	case strings.Contains(txType, "purchase"), strings.Contains(txType, "buy"):
		action = models.ActionPurchase
	case strings.Contains(txType, "sale"), strings.Contains(txType, "sell"):
		action = models.ActionSale
	default:
		return nil
	}

	txDate := clipDate(item.TxDate)
	filingDate := clipDate(item.FilingDate)

	days := 0
	if txDate != "" && filingDate != "" {
		txAt, err1 := time.Parse(dateLayout, txDate)
		filedAt, err2 := time.Parse(dateLayout, filingDate)
		if err1 == nil && err2 == nil {
			days = int(filedAt.Sub(txAt).Hours() / 24)
		}
	}

	amountRange := item.Value
	if amountRange == "" {
		amountRange = amountRanges[0].label
	}
	low, high := parseAmountRange(amountRange)

	externalID := "ct_" + item.TxID.String()
	if item.TxID.String() == "" {
		externalID = "ct_" + item.Politician.Name + "_" + ticker + "_" + txDate
	}

	name := item.Politician.Name
	if name == "" {
		name = "Unknown"
	}

	return &models.CongressTrade{
		Source:            "capitol_trades",
		ExternalID:        externalID,
		PoliticianName:    name,
		PoliticianParty:   item.Politician.Party,
		PoliticianState:   item.Politician.State,
		PoliticianChamber: item.Politician.Chamber,
		IsHighProfile:     s.ref.HighProfile(name),
		Ticker:            ticker,
		CompanyName:       item.Asset.Name,
		Action:            action,
		TransactionDate:   txDate,
		DisclosureDate:    filingDate,
		AmountRange:       amountRange,
		AmountLow:         low,
		AmountHigh:        high,
		AssetType:         item.Asset.Type,
		DaysToDisclose:    days,
	}
}

func (s *CongressScraper) scrapeHTML(ctx context.Context) ([]models.CongressTrade, error) {
	resp, err := s.http.R().SetContext(ctx).Get(capitolTradesPageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch capitol trades page: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("capitol trades page: HTTP %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse capitol trades page: %w", err)
	}

	var trades []models.CongressTrade
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 || len(trades) >= 50 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		ticker := strings.ToUpper(strings.TrimSpace(cells.Eq(1).Text()))
		action := models.ActionSale
		if strings.Contains(strings.ToLower(cells.Eq(2).Text()), "buy") {
			action = models.ActionPurchase
		}
		amountRange := strings.TrimSpace(cells.Eq(3).Text())
		txDate := strings.TrimSpace(cells.Eq(4).Text())

		chamber := "Senate"
		if strings.Contains(strings.ToLower(name), "rep.") {
			chamber = "House"
		}

		low, high := parseAmountRange(amountRange)
		trades = append(trades, models.CongressTrade{
			Source:            "capitol_trades",
			ExternalID:        "ct_" + name + "_" + ticker + "_" + txDate,
			PoliticianName:    name,
			PoliticianChamber: chamber,
			IsHighProfile:     s.ref.HighProfile(name),
			Ticker:            ticker,
			Action:            action,
			TransactionDate:   txDate,
			AmountRange:       amountRange,
			AmountLow:         low,
			AmountHigh:        high,
		})
	})

	return trades, nil
}

func parseAmountRange(amount string) (int64, int64) {
	lower := strings.ToLower(amount)
	for _, r := range amountRanges {
		if strings.Contains(lower, strings.ToLower(r.label)) {
			return r.low, r.high
		}
	}

	nums := regexp.MustCompile(`\d+`).FindAllString(strings.ReplaceAll(amount, ",", ""), -1)
	switch {
	case len(nums) >= 2:
		low, _ := strconv.ParseInt(nums[0], 10, 64)
		high, _ := strconv.ParseInt(nums[1], 10, 64)
		return low, high
	case len(nums) == 1:
		v, _ := strconv.ParseInt(nums[0], 10, 64)
		return v, v
	}
	return amountRanges[0].low, amountRanges[0].high
}

func (s *CongressScraper) extractTicker(assetName string) string {
	if assetName == "" {
		return ""
	}
	if ticker := s.ref.MatchAlias(assetName); ticker != "" {
		return ticker
	}
	if m := parenTickerRe.FindStringSubmatch(assetName); m != nil {
		return m[1]
	}
	return ""
}

func clipDate(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
