package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phuslu/log"
)

// Discord posts messages to one channel through the bot REST API.
type Discord struct {
	http      *resty.Client
	channelID string
}

// NewDiscord builds a Discord publisher for the given bot token and channel.
func NewDiscord(botToken, channelID string) *Discord {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetBaseURL("https://discord.com/api/v10")
	client.SetHeader("Authorization", "Bot "+botToken)

	return &Discord{http: client, channelID: channelID}
}

// Name identifies the channel.
func (d *Discord) Name() string { return "discord" }

// Post sends a message to the configured channel.
func (d *Discord) Post(ctx context.Context, text string) (string, error) {
	// Discord caps messages at 2000 characters.
	if len([]rune(text)) > 2000 {
		text = string([]rune(text)[:1997]) + "..."
	}

	resp, err := d.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"content": text}).
		Post(fmt.Sprintf("/channels/%s/messages", d.channelID))
	if err != nil {
		return "", fmt.Errorf("post discord message: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("post discord message: HTTP %d: %s", resp.StatusCode(), resp.String())
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("parse discord response: %w", err)
	}

	log.Info().Str("message_id", payload.ID).Str("channel", d.channelID).Msg("discord message posted")
	return payload.ID, nil
}
