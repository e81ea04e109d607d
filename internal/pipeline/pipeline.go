// Package pipeline wires scraping, analysis, scoring, persistence and
// publishing into runnable jobs.
package pipeline

import (
	"context"
	"time"

	"github.com/phuslu/log"

	"insiderwire/internal/analyzer"
	"insiderwire/internal/config"
	"insiderwire/internal/format"
	"insiderwire/internal/publish"
	"insiderwire/internal/scoring"
	"insiderwire/internal/scrapers"
	"insiderwire/internal/storage"
	"insiderwire/internal/tickers"
)

// Pipeline owns the full scrape → analyze → score → store → post flow.
type Pipeline struct {
	cfg   *config.Config
	store *storage.Store

	analyzer  *analyzer.Analyzer
	scorer    *scoring.Scorer
	formatter *format.Formatter

	form4    *scrapers.Form4Scraper
	congress *scrapers.CongressScraper
	funds    *scrapers.FundScraper

	twitter publish.Publisher
	discord publish.Publisher
}

// New assembles a Pipeline from configuration. Publishing falls back to
// dry-run unless the channel is enabled, configured, and DryRun is off.
func New(cfg *config.Config, store *storage.Store) *Pipeline {
	ref := tickers.Default()

	var twitter publish.Publisher = &publish.DryRun{Channel: "twitter"}
	if cfg.TwitterEnabled && cfg.TwitterBearerToken != "" && !cfg.DryRun {
		twitter = publish.NewTwitter(cfg.TwitterBearerToken, cfg.MaxPostsPerHour)
	}

	var discord publish.Publisher = &publish.DryRun{Channel: "discord"}
	if cfg.DiscordEnabled && cfg.DiscordBotToken != "" && cfg.DiscordChannelID != "" && !cfg.DryRun {
		discord = publish.NewDiscord(cfg.DiscordBotToken, cfg.DiscordChannelID)
	}

	return &Pipeline{
		cfg:       cfg,
		store:     store,
		analyzer:  analyzer.New(store, ref),
		scorer:    scoring.New(ref),
		formatter: format.NewFormatter(),
		form4:     scrapers.NewForm4(cfg.SECUserAgent, ref, cfg.MinTransactionValue, cfg.MaxTransactionValue),
		congress:  scrapers.NewCongress(cfg.SECUserAgent, ref),
		funds:     scrapers.NewFunds(cfg.SECUserAgent, ref),
		twitter:   twitter,
		discord:   discord,
	}
}

// ScrapeInsiders pulls recent Form 4 filings, enriches and stores them.
// Returns the number of newly inserted trades.
func (p *Pipeline) ScrapeInsiders(ctx context.Context) (int, error) {
	trades, err := p.form4.Scrape(ctx, p.cfg.MaxForm4Filings)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range trades {
		t := &trades[i]
		p.analyzer.AnalyzeInsider(t)
		p.scorer.ScoreInsider(t)

		isNew, err := p.store.InsertInsiderTrade(t)
		if err != nil {
			log.Error().Err(err).Str("accession", t.AccessionNumber).Msg("insert failed")
			continue
		}
		if isNew {
			created++
			log.Info().
				Str("ticker", t.Ticker).
				Str("role", t.InsiderRole).
				Float64("value", t.TotalValue).
				Int("score", t.ViralityScore).
				Int("tier", t.Tier).
				Msg("new insider trade")
		}
	}
	return created, nil
}

// ScrapeCongress pulls recent congressional trades, enriches and stores them.
func (p *Pipeline) ScrapeCongress(ctx context.Context) (int, error) {
	trades, err := p.congress.Scrape(ctx, p.cfg.MaxCongressTrades)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range trades {
		t := &trades[i]
		p.analyzer.AnalyzeCongress(t)
		p.scorer.ScoreCongress(t)

		isNew, err := p.store.InsertCongressTrade(t)
		if err != nil {
			log.Error().Err(err).Str("external_id", t.ExternalID).Msg("insert failed")
			continue
		}
		if isNew {
			created++
			log.Info().
				Str("politician", t.PoliticianName).
				Str("ticker", t.Ticker).
				Int("score", t.ViralityScore).
				Msg("new congress trade")
		}
	}
	return created, nil
}

// ScrapeFunds pulls recent 13F filings, enriches and stores them.
func (p *Pipeline) ScrapeFunds(ctx context.Context) (int, error) {
	filings, err := p.funds.Scrape(ctx, p.cfg.MaxFundFilings)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range filings {
		f := &filings[i]
		p.analyzer.AnalyzeFund(f)
		p.scorer.ScoreFund(f)

		isNew, err := p.store.InsertFundFiling(f)
		if err != nil {
			log.Error().Err(err).Str("accession", f.AccessionNumber).Msg("insert failed")
			continue
		}
		if isNew {
			created++
			log.Info().
				Str("fund", f.FundName).
				Int("positions", f.PositionCount).
				Int("score", f.ViralityScore).
				Msg("new 13F filing")
		}
	}
	return created, nil
}

// ScrapeFamousFunds pulls the latest 13F of every tracked famous fund,
// regardless of filing recency, and stores the new ones.
func (p *Pipeline) ScrapeFamousFunds(ctx context.Context) (int, error) {
	filings, err := p.funds.ScrapeFamousFunds(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range filings {
		f := &filings[i]
		p.analyzer.AnalyzeFund(f)
		p.scorer.ScoreFund(f)

		isNew, err := p.store.InsertFundFiling(f)
		if err != nil {
			log.Error().Err(err).Str("accession", f.AccessionNumber).Msg("insert failed")
			continue
		}
		if isNew {
			created++
			log.Info().
				Str("fund", f.FundName).
				Int("score", f.ViralityScore).
				Msg("new famous-fund 13F")
		}
	}
	return created, nil
}

// PostAlerts publishes unposted tier 1-2 records to the enabled channels and
// marks them posted. Returns the number of posts sent.
func (p *Pipeline) PostAlerts(ctx context.Context) (int, error) {
	posted := 0

	trades, err := p.store.UnpostedInsiderTrades(2, 20)
	if err != nil {
		return posted, err
	}
	for i := range trades {
		t := &trades[i]
		tweet := p.formatter.FormatInsiderTrade(t)

		postID, err := p.twitter.Post(ctx, tweet.Text)
		if err != nil {
			log.Error().Err(err).Str("ticker", t.Ticker).Msg("tweet failed")
			continue
		}
		if err := p.store.MarkInsiderTwitterPosted(t.ID, postID); err != nil {
			log.Error().Err(err).Uint("id", t.ID).Msg("mark posted failed")
		}
		posted++

		if _, err := p.discord.Post(ctx, p.formatter.DiscordInsiderTrade(t)); err != nil {
			log.Error().Err(err).Str("ticker", t.Ticker).Msg("discord post failed")
		} else if err := p.store.MarkInsiderDiscordPosted(t.ID); err != nil {
			log.Error().Err(err).Uint("id", t.ID).Msg("mark discord posted failed")
		}
	}

	congress, err := p.store.UnpostedCongressTrades(2, 10)
	if err != nil {
		return posted, err
	}
	for i := range congress {
		t := &congress[i]
		tweet := p.formatter.FormatCongressTrade(t)

		postID, err := p.twitter.Post(ctx, tweet.Text)
		if err != nil {
			log.Error().Err(err).Str("politician", t.PoliticianName).Msg("tweet failed")
			continue
		}
		if err := p.store.MarkCongressTwitterPosted(t.ID, postID); err != nil {
			log.Error().Err(err).Uint("id", t.ID).Msg("mark posted failed")
		}
		posted++
	}

	filings, err := p.store.UnpostedFundFilings(2, 10)
	if err != nil {
		return posted, err
	}
	for i := range filings {
		f := &filings[i]
		tweet := p.formatter.FormatFundFiling(f)

		if _, err := p.twitter.Post(ctx, tweet.Text); err != nil {
			log.Error().Err(err).Str("fund", f.FundName).Msg("tweet failed")
			continue
		}
		if err := p.store.MarkFundTwitterPosted(f.ID); err != nil {
			log.Error().Err(err).Uint("id", f.ID).Msg("mark posted failed")
		}
		posted++
	}

	log.Info().Int("posted", posted).Msg("alert posting complete")
	return posted, nil
}

// DailyRoundup posts the end-of-day summary covering today's filings.
func (p *Pipeline) DailyRoundup(ctx context.Context) error {
	today := time.Now().Format("2006-01-02")
	trades, err := p.store.InsiderTradesSince(today, 50)
	if err != nil {
		return err
	}

	text := p.formatter.FormatDailyRoundup(trades)
	if text == "" {
		log.Info().Msg("no trades today, skipping roundup")
		return nil
	}

	if _, err := p.twitter.Post(ctx, text); err != nil {
		return err
	}
	if _, err := p.discord.Post(ctx, p.formatter.DiscordDailySummary(trades)); err != nil {
		log.Error().Err(err).Msg("discord roundup failed")
	}
	return nil
}

// RunOnce runs the full pipeline a single time: scrape all sources, post
// pending alerts, log the database summary.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	if n, err := p.ScrapeInsiders(ctx); err != nil {
		log.Error().Err(err).Msg("form 4 scrape failed")
	} else {
		log.Info().Int("new", n).Msg("form 4 scrape done")
	}

	if n, err := p.ScrapeCongress(ctx); err != nil {
		log.Error().Err(err).Msg("congress scrape failed")
	} else {
		log.Info().Int("new", n).Msg("congress scrape done")
	}

	if n, err := p.ScrapeFunds(ctx); err != nil {
		log.Error().Err(err).Msg("13F scrape failed")
	} else {
		log.Info().Int("new", n).Msg("13F scrape done")
	}

	if _, err := p.PostAlerts(ctx); err != nil {
		log.Error().Err(err).Msg("alert posting failed")
	}

	stats, err := p.store.Summary()
	if err != nil {
		return err
	}
	log.Info().
		Int64("insider_trades", stats.InsiderTrades).
		Int64("congress_trades", stats.CongressTrades).
		Int64("fund_filings", stats.FundFilings).
		Int64("unposted_tier1", stats.UnpostedTier1).
		Msg("pipeline complete")
	return nil
}

// Store exposes the underlying store for the CLI and dashboard.
func (p *Pipeline) Store() *storage.Store { return p.store }

// Formatter exposes the formatter for preview commands.
func (p *Pipeline) Formatter() *format.Formatter { return p.formatter }

// Scorer exposes the scorer for explain commands.
func (p *Pipeline) Scorer() *scoring.Scorer { return p.scorer }

var _ analyzer.Lookup = (*storage.Store)(nil)
