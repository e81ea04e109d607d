package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phuslu/log"
	"golang.org/x/time/rate"
)

const tweetEndpoint = "https://api.twitter.com/2/tweets"

// Twitter posts tweets through the v2 API. The hourly cap is enforced
// client-side so a burst of tier-1 alerts cannot exhaust the API quota.
type Twitter struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// NewTwitter builds a Twitter publisher with the given bearer token and
// hourly post cap.
func NewTwitter(bearerToken string, maxPerHour int) *Twitter {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetAuthToken(bearerToken)

	return &Twitter{
		http:    client,
		limiter: rate.NewLimiter(rate.Every(time.Hour/time.Duration(maxPerHour)), 1),
	}
}

// Name identifies the channel.
func (t *Twitter) Name() string { return "twitter" }

// Post publishes a tweet and returns its ID. Blocks until the rate limiter
// admits the post or the context is canceled.
func (t *Twitter) Post(ctx context.Context, text string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := t.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post(tweetEndpoint)
	if err != nil {
		return "", fmt.Errorf("post tweet: %w", err)
	}
	if resp.StatusCode() != 201 {
		return "", fmt.Errorf("post tweet: HTTP %d: %s", resp.StatusCode(), resp.String())
	}

	var payload struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("parse tweet response: %w", err)
	}

	log.Info().Str("post_id", payload.Data.ID).Msg("tweet posted")
	return payload.Data.ID, nil
}
