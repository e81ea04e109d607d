// Package publish delivers rendered posts to social channels. Publishers
// enforce their own rate limits; callers only decide what and when to post.
package publish

import (
	"context"

	"github.com/phuslu/log"
)

// Publisher posts a message to one channel and returns the platform's post
// ID when it has one.
type Publisher interface {
	Name() string
	Post(ctx context.Context, text string) (string, error)
}

// DryRun logs posts instead of sending them. The default in development.
type DryRun struct {
	Channel string
}

// Name identifies the channel this dry-run stands in for.
func (d *DryRun) Name() string { return "dry-run:" + d.Channel }

// Post logs the message and reports success.
func (d *DryRun) Post(_ context.Context, text string) (string, error) {
	preview := text
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	log.Info().Str("channel", d.Channel).Msg("[DRY RUN] would post:\n" + preview)
	return "dry-run", nil
}
