package scrapers

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"
	"github.com/shopspring/decimal"

	"insiderwire/internal/models"
	"insiderwire/internal/tickers"
)

const form4FeedURL = secBaseURL + "/cgi-bin/browse-edgar?action=getcurrent&type=4&company=&dateb=&owner=only&count=100&output=atom"

var accessionRe = regexp.MustCompile(`(\d{10}-\d{2}-\d{6})`)

// Form4Scraper pulls recent Form 4 insider-trading filings from EDGAR.
type Form4Scraper struct {
	sec *secClient
	ref *tickers.Reference

	minValue float64
	maxValue float64
}

// NewForm4 builds a Form 4 scraper. Trades valued outside [minValue,
// maxValue] are dropped; a maxValue of 0 disables the upper filter.
func NewForm4(userAgent string, ref *tickers.Reference, minValue, maxValue float64) *Form4Scraper {
	return &Form4Scraper{
		sec:      newSECClient(userAgent),
		ref:      ref,
		minValue: minValue,
		maxValue: maxValue,
	}
}

// Scrape fetches up to maxFilings recent Form 4 filings and returns the
// parsed trades that pass the value filter.
func (s *Form4Scraper) Scrape(ctx context.Context, maxFilings int) ([]models.InsiderTrade, error) {
	feed, err := s.sec.fetchAtom(ctx, form4FeedURL)
	if err != nil {
		return nil, err
	}

	entries := feed.Entries
	if len(entries) > maxFilings {
		entries = entries[:maxFilings]
	}

	var trades []models.InsiderTrade
	for _, entry := range entries {
		if ctx.Err() != nil {
			return trades, ctx.Err()
		}

		trade, err := s.parseFiling(ctx, entry.Link.Href)
		if err != nil {
			log.Warn().Err(err).Str("url", entry.Link.Href).Msg("skipping form 4 filing")
			continue
		}
		if trade == nil {
			continue
		}
		if trade.TotalValue < s.minValue {
			continue
		}
		if s.maxValue > 0 && trade.TotalValue > s.maxValue {
			log.Debug().Str("accession", trade.AccessionNumber).
				Float64("value", trade.TotalValue).Msg("dropping trade above value ceiling")
			continue
		}
		trades = append(trades, *trade)
	}

	log.Info().Int("parsed", len(trades)).Int("entries", len(entries)).Msg("form 4 scrape complete")
	return trades, nil
}

// parseFiling resolves a filing index page to its ownership XML document and
// extracts the aggregated trade.
func (s *Form4Scraper) parseFiling(ctx context.Context, indexURL string) (*models.InsiderTrade, error) {
	body, err := s.sec.get(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	var candidates []string
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !strings.HasSuffix(href, ".xml") {
			return
		}
		lower := strings.ToLower(href)
		if strings.Contains(lower, "xsl") || strings.Contains(lower, "primary_doc") {
			return
		}
		for _, seen := range candidates {
			if seen == href {
				return
			}
		}
		candidates = append(candidates, href)
	})

	for _, href := range candidates {
		xmlURL := href
		if strings.HasPrefix(href, "/") {
			xmlURL = secBaseURL + href
		}
		trade, err := s.parseOwnershipXML(ctx, xmlURL, indexURL)
		if err != nil {
			log.Debug().Err(err).Str("url", xmlURL).Msg("ownership XML candidate failed")
			continue
		}
		if trade != nil {
			return trade, nil
		}
	}
	return nil, nil
}

// Ownership document subset. SEC publishes these without a namespace.
type ownershipDocument struct {
	XMLName        xml.Name `xml:"ownershipDocument"`
	PeriodOfReport string   `xml:"periodOfReport"`

	Issuer struct {
		CIK           string `xml:"issuerCik"`
		Name          string `xml:"issuerName"`
		TradingSymbol string `xml:"issuerTradingSymbol"`
	} `xml:"issuer"`

	Owners []struct {
		ID struct {
			CIK  string `xml:"rptOwnerCik"`
			Name string `xml:"rptOwnerName"`
		} `xml:"reportingOwnerId"`
		Relationship struct {
			IsDirector        string `xml:"isDirector"`
			IsOfficer         string `xml:"isOfficer"`
			IsTenPercentOwner string `xml:"isTenPercentOwner"`
			OfficerTitle      string `xml:"officerTitle"`
		} `xml:"reportingOwnerRelationship"`
	} `xml:"reportingOwner"`

	NonDerivative struct {
		Transactions []nonDerivativeTransaction `xml:"nonDerivativeTransaction"`
	} `xml:"nonDerivativeTable"`
}

type valueElem struct {
	Value string `xml:"value"`
}

type nonDerivativeTransaction struct {
	Date   valueElem `xml:"transactionDate"`
	Coding struct {
		Code string `xml:"transactionCode"`
	} `xml:"transactionCoding"`
	Amounts struct {
		Shares valueElem `xml:"transactionShares"`
		Price  valueElem `xml:"transactionPricePerShare"`
	} `xml:"transactionAmounts"`
	Post struct {
		SharesOwned valueElem `xml:"sharesOwnedFollowingTransaction"`
	} `xml:"postTransactionAmounts"`
}

func (s *Form4Scraper) parseOwnershipXML(ctx context.Context, xmlURL, filingURL string) (*models.InsiderTrade, error) {
	body, err := s.sec.get(ctx, xmlURL)
	if err != nil {
		return nil, err
	}

	var doc ownershipDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse ownership XML: %w", err)
	}
	if doc.Issuer.CIK == "" || len(doc.Owners) == 0 {
		return nil, nil
	}

	ticker := strings.ToUpper(strings.TrimSpace(doc.Issuer.TradingSymbol))
	if ticker == "" || ticker == "NONE" || ticker == "N/A" {
		ticker = s.ref.MatchAlias(doc.Issuer.Name)
	}

	owner := doc.Owners[0]
	isDirector := xmlBool(owner.Relationship.IsDirector)
	isOfficer := xmlBool(owner.Relationship.IsOfficer)
	isTenPercent := xmlBool(owner.Relationship.IsTenPercentOwner)
	officerTitle := strings.TrimSpace(owner.Relationship.OfficerTitle)

	// Aggregate open-market purchases and sales across the filing. Grants,
	// exercises and other codes are not directional signals.
	totalShares := decimal.Zero
	var price decimal.Decimal
	var code, transactionDate string
	var sharesAfter *int64

	for _, tx := range doc.NonDerivative.Transactions {
		c := strings.TrimSpace(tx.Coding.Code)
		if c != "P" && c != "S" {
			continue
		}
		if code == "" {
			code = c
		}
		if c != code {
			continue
		}

		if v, err := decimal.NewFromString(strings.TrimSpace(tx.Amounts.Shares.Value)); err == nil {
			totalShares = totalShares.Add(v)
		}
		if v, err := decimal.NewFromString(strings.TrimSpace(tx.Amounts.Price.Value)); err == nil && !v.IsZero() {
			price = v
		}
		if tx.Date.Value != "" {
			transactionDate = strings.TrimSpace(tx.Date.Value)
		}
		if v, err := decimal.NewFromString(strings.TrimSpace(tx.Post.SharesOwned.Value)); err == nil {
			n := v.IntPart()
			sharesAfter = &n
		}
	}

	if code == "" || totalShares.IsZero() {
		return nil, nil
	}

	action := models.ActionPurchase
	if code == "S" {
		action = models.ActionSale
	}

	totalValue := totalShares.Mul(price).Round(2)

	filingDate := strings.TrimSpace(doc.PeriodOfReport)
	if filingDate == "" {
		filingDate = time.Now().Format(dateLayout)
	}

	return &models.InsiderTrade{
		AccessionNumber:   accessionFromURL(filingURL),
		FilingDate:        filingDate,
		FilingURL:         filingURL,
		Ticker:            ticker,
		CompanyName:       strings.TrimSpace(doc.Issuer.Name),
		CompanyCIK:        strings.TrimSpace(doc.Issuer.CIK),
		InsiderName:       strings.TrimSpace(owner.ID.Name),
		InsiderCIK:        strings.TrimSpace(owner.ID.CIK),
		InsiderRole:       determineRole(isDirector, isOfficer, isTenPercent, officerTitle),
		OfficerTitle:      officerTitle,
		IsDirector:        isDirector,
		IsOfficer:         isOfficer,
		IsTenPercentOwner: isTenPercent,
		TransactionCode:   code,
		Action:            action,
		TransactionDate:   transactionDate,
		Shares:            totalShares.IntPart(),
		PricePerShare:     price.InexactFloat64(),
		TotalValue:        totalValue.InexactFloat64(),
		SharesOwnedAfter:  sharesAfter,
	}, nil
}

func xmlBool(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "1" || s == "true"
}

func accessionFromURL(filingURL string) string {
	if m := accessionRe.FindStringSubmatch(filingURL); m != nil {
		return m[1]
	}
	// Fall back to the last path segment so the record still has a stable key.
	parts := strings.Split(strings.TrimRight(filingURL, "/"), "/")
	return parts[len(parts)-1]
}

// determineRole picks the display role from the relationship flags and title.
func determineRole(isDirector, isOfficer, isTenPercent bool, title string) string {
	if title != "" {
		upper := strings.ToUpper(title)
		switch {
		case strings.Contains(upper, "CEO"), strings.Contains(upper, "CHIEF EXECUTIVE"):
			return "CEO"
		case strings.Contains(upper, "CFO"), strings.Contains(upper, "CHIEF FINANCIAL"):
			return "CFO"
		case strings.Contains(upper, "COO"), strings.Contains(upper, "CHIEF OPERATING"):
			return "COO"
		case strings.Contains(upper, "CTO"), strings.Contains(upper, "CHIEF TECHNOLOGY"):
			return "CTO"
		case strings.Contains(upper, "PRESIDENT"):
			return "President"
		case strings.Contains(upper, "VP"), strings.Contains(upper, "VICE PRESIDENT"):
			return "VP"
		case strings.Contains(upper, "DIRECTOR"):
			return "Director"
		case strings.Contains(upper, "GENERAL COUNSEL"):
			return "General Counsel"
		case strings.Contains(upper, "SECRETARY"):
			return "Secretary"
		}
		if len(title) > 25 {
			return title[:25] + "..."
		}
		return title
	}

	switch {
	case isOfficer:
		return "Officer"
	case isDirector:
		return "Director"
	case isTenPercent:
		return "10% Owner"
	}
	return "Insider"
}
