package scrapers

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"

	"insiderwire/internal/models"
	"insiderwire/internal/tickers"
)

const fundFeedURL = secBaseURL + "/cgi-bin/browse-edgar?action=getcurrent&type=13F-HR&company=&dateb=&owner=include&count=100&output=atom"

var isoDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// FundScraper pulls 13F-HR institutional holdings filings from EDGAR.
type FundScraper struct {
	sec *secClient
	ref *tickers.Reference
}

// NewFunds builds a 13F scraper.
func NewFunds(userAgent string, ref *tickers.Reference) *FundScraper {
	return &FundScraper{sec: newSECClient(userAgent), ref: ref}
}

// Scrape fetches up to maxFilings recent 13F filings.
func (s *FundScraper) Scrape(ctx context.Context, maxFilings int) ([]models.FundFiling, error) {
	feed, err := s.sec.fetchAtom(ctx, fundFeedURL)
	if err != nil {
		return nil, err
	}

	entries := feed.Entries
	if len(entries) > maxFilings {
		entries = entries[:maxFilings]
	}

	var filings []models.FundFiling
	for _, entry := range entries {
		if ctx.Err() != nil {
			return filings, ctx.Err()
		}

		filing, err := s.parseFiling(ctx, entry.Link.Href, entry.Title)
		if err != nil {
			log.Warn().Err(err).Str("url", entry.Link.Href).Msg("skipping 13F filing")
			continue
		}
		if filing != nil {
			filings = append(filings, *filing)
		}
	}

	log.Info().Int("parsed", len(filings)).Msg("13F scrape complete")
	return filings, nil
}

// ScrapeFamousFunds fetches the most recent 13F filing of every tracked
// manager directly by CIK, independent of the current-events feed.
func (s *FundScraper) ScrapeFamousFunds(ctx context.Context) ([]models.FundFiling, error) {
	var filings []models.FundFiling
	for name, fund := range s.ref.FamousFunds {
		if ctx.Err() != nil {
			return filings, ctx.Err()
		}

		url := fmt.Sprintf(
			"%s/cgi-bin/browse-edgar?action=getcompany&CIK=%s&type=13F-HR&dateb=&owner=include&count=5&output=atom",
			secBaseURL, fund.CIK)
		feed, err := s.sec.fetchAtom(ctx, url)
		if err != nil {
			log.Warn().Err(err).Str("fund", name).Msg("famous fund feed failed")
			continue
		}
		if len(feed.Entries) == 0 {
			continue
		}

		filing, err := s.parseFiling(ctx, feed.Entries[0].Link.Href, name)
		if err != nil {
			log.Warn().Err(err).Str("fund", name).Msg("famous fund filing failed")
			continue
		}
		if filing != nil {
			filings = append(filings, *filing)
		}
	}
	return filings, nil
}

// infoTable is the 13F information table. EDGAR serves it under its own
// namespace; matching on local names covers both namespaced and plain forms.
type infoTable struct {
	Entries []infoTableEntry `xml:"infoTable"`
}

type infoTableEntry struct {
	NameOfIssuer string `xml:"nameOfIssuer"`
	TitleOfClass string `xml:"titleOfClass"`
	CUSIP        string `xml:"cusip"`
	Value        int64  `xml:"value"`
	Shares       struct {
		Amount int64  `xml:"sshPrnamt"`
		Type   string `xml:"sshPrnamtType"`
	} `xml:"shrsOrPrnAmt"`
}

func (s *FundScraper) parseFiling(ctx context.Context, indexURL, title string) (*models.FundFiling, error) {
	body, err := s.sec.get(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	fundName, managerName, isFamous := s.identifyFund(title)

	xmlURL := findInfoTableLink(doc)
	var holdings []models.Holding
	var totalValue float64
	if xmlURL != "" {
		holdings, totalValue, err = s.parseHoldingsXML(ctx, xmlURL)
		if err != nil {
			log.Debug().Err(err).Str("url", xmlURL).Msg("information table parse failed")
		}
	}

	filingDate := time.Now().Format(dateLayout)
	reportDate := ""
	pageText := doc.Text()
	if idx := strings.Index(pageText, "Filing Date"); idx >= 0 {
		if m := isoDateRe.FindString(pageText[idx:]); m != "" {
			filingDate = m
		}
	}
	if idx := strings.Index(pageText, "Period of Report"); idx >= 0 {
		if m := isoDateRe.FindString(pageText[idx:]); m != "" {
			reportDate = m
		}
	}

	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Value > holdings[j].Value })
	top := holdings
	if len(top) > 10 {
		top = top[:10]
	}

	return &models.FundFiling{
		AccessionNumber: accessionFromURL(indexURL),
		FilingDate:      filingDate,
		ReportDate:      reportDate,
		FilingURL:       indexURL,
		FundName:        fundName,
		ManagerName:     managerName,
		IsFamousFund:    isFamous,
		TotalValue:      totalValue,
		PositionCount:   len(holdings),
		TopHoldings:     top,
	}, nil
}

func (s *FundScraper) identifyFund(title string) (fundName, managerName string, isFamous bool) {
	if name, fund, ok := s.ref.MatchFund(title); ok {
		return name, fund.Manager, true
	}

	fundName = title
	if idx := strings.Index(fundName, " - "); idx >= 0 {
		fundName = fundName[:idx]
	}
	fundName = strings.TrimSpace(regexp.MustCompile(`\s*\(.*?\)`).ReplaceAllString(fundName, ""))
	return fundName, "", false
}

func findInfoTableLink(doc *goquery.Document) string {
	var xmlURL string
	doc.Find("table.tableFile tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return true
		}
		docType := strings.ToUpper(cells.Eq(3).Text())
		if !strings.Contains(docType, "INFORMATION TABLE") && !strings.Contains(docType, "INFOTABLE") {
			return true
		}
		href, ok := cells.Eq(2).Find("a").Attr("href")
		if !ok || !strings.HasSuffix(href, ".xml") || strings.Contains(strings.ToLower(href), "xsl") {
			return true
		}
		if strings.HasPrefix(href, "/") {
			href = secBaseURL + href
		}
		xmlURL = href
		return false
	})
	return xmlURL
}

func (s *FundScraper) parseHoldingsXML(ctx context.Context, xmlURL string) ([]models.Holding, float64, error) {
	body, err := s.sec.get(ctx, xmlURL)
	if err != nil {
		return nil, 0, err
	}

	var table infoTable
	if err := xml.Unmarshal(body, &table); err != nil {
		return nil, 0, fmt.Errorf("parse information table: %w", err)
	}

	var holdings []models.Holding
	var total float64
	for _, entry := range table.Entries {
		if entry.NameOfIssuer == "" {
			continue
		}
		// Values are reported in thousands of dollars.
		value := float64(entry.Value) * 1000
		total += value
		holdings = append(holdings, models.Holding{
			CompanyName: strings.TrimSpace(entry.NameOfIssuer),
			Ticker:      s.ref.MatchAlias(entry.NameOfIssuer),
			CUSIP:       strings.TrimSpace(entry.CUSIP),
			Value:       value,
			Shares:      entry.Shares.Amount,
			ShareType:   entry.Shares.Type,
		})
	}
	return holdings, total, nil
}
