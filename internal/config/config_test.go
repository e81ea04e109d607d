package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "data/insiderwire.db", cfg.DatabasePath)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.TwitterEnabled)
	assert.Equal(t, 10, cfg.Form4IntervalMinutes)
	assert.Equal(t, 240, cfg.FundsIntervalMinutes)
	assert.EqualValues(t, 10_000, cfg.MinTransactionValue)
	assert.Equal(t, 15, cfg.MaxPostsPerHour)
	assert.Equal(t, ":8087", cfg.DashboardAddr)

	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("DRY_RUN", "false")
	t.Setenv("FORM4_INTERVAL_MINUTES", "5")
	t.Setenv("MIN_TRANSACTION_VALUE", "25000")
	t.Setenv("TWITTER_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, 5, cfg.Form4IntervalMinutes)
	assert.EqualValues(t, 25_000, cfg.MinTransactionValue)
	assert.True(t, cfg.TwitterEnabled)
}

func TestMalformedEnvFallsBack(t *testing.T) {
	t.Setenv("FORM4_INTERVAL_MINUTES", "often")
	t.Setenv("DRY_RUN", "sure")

	cfg := Load()

	assert.Equal(t, 10, cfg.Form4IntervalMinutes)
	assert.True(t, cfg.DryRun)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Load()
	cfg.SECUserAgent = ""
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.MaxForm4Filings = 500
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.Form4IntervalMinutes = 0
	assert.Error(t, cfg.Validate())
}
