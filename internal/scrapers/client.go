// Package scrapers pulls disclosure data from SEC EDGAR and Capitol Trades
// and normalizes it into models. Every scraper degrades on partial failures:
// an unparseable filing is skipped and logged, never fatal.
package scrapers

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phuslu/log"
	"golang.org/x/time/rate"
)

const (
	secBaseURL = "https://www.sec.gov"
	dateLayout = "2006-01-02"
)

// secClient wraps a resty client with the throttle EDGAR requires (max 10
// requests per second per client).
type secClient struct {
	http    *resty.Client
	limiter *rate.Limiter
}

func newSECClient(userAgent string) *secClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(2 * time.Second)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "application/atom+xml, application/xml, text/xml, */*")

	return &secClient{
		http:    client,
		limiter: rate.NewLimiter(rate.Every(150*time.Millisecond), 1),
	}
}

func (c *secClient) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}

// Atom feed structures for the EDGAR "current events" feeds.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	Link    atomLink `xml:"link"`
	Updated string   `xml:"updated"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
}

func (c *secClient) fetchAtom(ctx context.Context, url string) (*atomFeed, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse atom feed: %w", err)
	}
	log.Debug().Int("entries", len(feed.Entries)).Str("url", url).Msg("fetched EDGAR feed")
	return &feed, nil
}
