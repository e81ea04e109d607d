package pipeline

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// RunDaemon schedules the recurring jobs and blocks until the context is
// canceled. Cadences come from configuration; Form 4 is the most
// time-sensitive feed, 13F filings are quarterly so a slow poll suffices.
func (p *Pipeline) RunDaemon(ctx context.Context) error {
	c := cron.New()

	jobs := []struct {
		spec string
		name string
		run  func(context.Context) error
	}{
		{fmt.Sprintf("@every %dm", p.cfg.Form4IntervalMinutes), "form4", func(ctx context.Context) error {
			_, err := p.ScrapeInsiders(ctx)
			return err
		}},
		{fmt.Sprintf("@every %dm", p.cfg.CongressIntervalMinutes), "congress", func(ctx context.Context) error {
			_, err := p.ScrapeCongress(ctx)
			return err
		}},
		{fmt.Sprintf("@every %dm", p.cfg.FundsIntervalMinutes), "funds", func(ctx context.Context) error {
			_, err := p.ScrapeFunds(ctx)
			return err
		}},
		{"@every 10m", "post", func(ctx context.Context) error {
			_, err := p.PostAlerts(ctx)
			return err
		}},
		{"0 21 * * *", "roundup", p.DailyRoundup},
	}

	for _, job := range jobs {
		job := job
		_, err := c.AddFunc(job.spec, func() {
			if err := job.run(ctx); err != nil {
				log.Error().Err(err).Str("job", job.name).Msg("scheduled job failed")
			}
		})
		if err != nil {
			return fmt.Errorf("schedule %s: %w", job.name, err)
		}
	}

	// One full pass on startup so the daemon is useful immediately.
	if err := p.RunOnce(ctx); err != nil {
		log.Error().Err(err).Msg("initial pipeline run failed")
	}

	c.Start()
	log.Info().
		Int("form4_minutes", p.cfg.Form4IntervalMinutes).
		Int("congress_minutes", p.cfg.CongressIntervalMinutes).
		Int("funds_minutes", p.cfg.FundsIntervalMinutes).
		Msg("daemon started")

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info().Msg("daemon stopped")
	return nil
}
