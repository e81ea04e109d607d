package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config carries everything the pipeline needs. Values come from the
// environment (a .env file is honored), with defaults matching a local
// dry-run setup.
type Config struct {
	DatabasePath string `json:"database_path" validate:"required"`

	// SEC asks every client to identify itself.
	SECUserAgent string `json:"sec_user_agent" validate:"required"`

	TwitterEnabled     bool   `json:"twitter_enabled"`
	TwitterBearerToken string `json:"twitter_bearer_token"`

	DiscordEnabled   bool   `json:"discord_enabled"`
	DiscordBotToken  string `json:"discord_bot_token"`
	DiscordChannelID string `json:"discord_channel_id"`

	DryRun bool `json:"dry_run"`
	Debug  bool `json:"debug"`

	// Scrape cadences, in minutes. Form 4 is the most time-sensitive feed;
	// 13F filings are quarterly so a slow poll suffices.
	Form4IntervalMinutes    int `json:"form4_interval_minutes" validate:"min=1"`
	CongressIntervalMinutes int `json:"congress_interval_minutes" validate:"min=1"`
	FundsIntervalMinutes    int `json:"funds_interval_minutes" validate:"min=1"`

	MaxForm4Filings   int `json:"max_form4_filings" validate:"min=1,max=100"`
	MaxCongressTrades int `json:"max_congress_trades" validate:"min=1"`
	MaxFundFilings    int `json:"max_fund_filings" validate:"min=1,max=100"`

	// Transaction value filters. Values above the max are almost always
	// data errors or institutional noise.
	MinTransactionValue float64 `json:"min_transaction_value" validate:"min=0"`
	MaxTransactionValue float64 `json:"max_transaction_value" validate:"min=0"`

	MaxPostsPerHour int `json:"max_posts_per_hour" validate:"min=1"`

	DashboardAddr string `json:"dashboard_addr" validate:"required"`
}

// Load reads configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabasePath: getEnv("DATABASE_PATH", "data/insiderwire.db"),
		SECUserAgent: getEnv("SEC_USER_AGENT", "insiderwire admin@insiderwire.dev"),

		TwitterEnabled:     getEnvBool("TWITTER_ENABLED", false),
		TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),

		DiscordEnabled:   getEnvBool("DISCORD_ENABLED", false),
		DiscordBotToken:  getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),

		DryRun: getEnvBool("DRY_RUN", true),
		Debug:  getEnvBool("DEBUG", false),

		Form4IntervalMinutes:    getEnvInt("FORM4_INTERVAL_MINUTES", 10),
		CongressIntervalMinutes: getEnvInt("CONGRESS_INTERVAL_MINUTES", 60),
		FundsIntervalMinutes:    getEnvInt("FUNDS_INTERVAL_MINUTES", 240),

		MaxForm4Filings:   getEnvInt("MAX_FORM4_FILINGS", 100),
		MaxCongressTrades: getEnvInt("MAX_CONGRESS_TRADES", 200),
		MaxFundFilings:    getEnvInt("MAX_FUND_FILINGS", 100),

		MinTransactionValue: getEnvFloat("MIN_TRANSACTION_VALUE", 10_000),
		MaxTransactionValue: getEnvFloat("MAX_TRANSACTION_VALUE", 500_000_000),

		MaxPostsPerHour: getEnvInt("MAX_POSTS_PER_HOUR", 15),

		DashboardAddr: getEnv("DASHBOARD_ADDR", ":8087"),
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
