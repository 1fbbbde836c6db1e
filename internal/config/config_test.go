package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SMTP_SERVER", "SMTP_PORT", "SENDER_EMAIL", "SENDER_PASSWORD",
		"HTTPS_PROXY", "FETCH_DAYS", "CRON_DAILY", "SQLITE_PATH",
		"DASHBOARD_ADDR", "METRICS_ADDR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Len(t, cfg.Tickers, 10)
	assert.Equal(t, "yahoo", cfg.Data.Provider)
	assert.Equal(t, 150, cfg.Data.FetchDays)
	assert.Equal(t, "models", cfg.Paths.ModelsDir)
	assert.Equal(t, "logs", cfg.Paths.LogsDir)
	assert.Equal(t, "data/subscribers.json", cfg.SubscribersFile())
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Server)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "0 0 0 * * *", cfg.Schedule.DailyCron)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
tickers:
  - symbol: AAPL
    name: Apple Inc.
    sector: Technology
data:
  provider: csv
  csv_dir: testdata
  fetch_days: 90
smtp:
  sender: alerts@example.com
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SENDER_PASSWORD", "secret")
	t.Setenv("CRON_DAILY", "0 30 6 * * *")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, cfg.Tickers, 1)
	assert.Equal(t, "csv", cfg.Data.Provider)
	assert.Equal(t, "testdata", cfg.Data.CSVDir)
	assert.Equal(t, 90, cfg.Data.FetchDays)
	assert.Equal(t, "alerts@example.com", cfg.SMTP.Sender)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "secret", cfg.SMTP.Password)
	assert.Equal(t, "0 30 6 * * *", cfg.Schedule.DailyCron)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tickers: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	base := func(t *testing.T) *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	t.Run("bad provider", func(t *testing.T) {
		cfg := base(t)
		cfg.Data.Provider = "bloomberg"
		assert.Error(t, cfg.Validate())
	})

	t.Run("duplicate symbol", func(t *testing.T) {
		cfg := base(t)
		cfg.Tickers = append(cfg.Tickers, cfg.Tickers[0])
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive fetch days", func(t *testing.T) {
		cfg := base(t)
		cfg.Data.FetchDays = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestLookup(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	info, ok := cfg.Lookup("NVDA")
	require.True(t, ok)
	assert.Equal(t, "NVIDIA Corp.", info.Name)
	assert.Equal(t, "Technology", info.Sector)

	_, ok = cfg.Lookup("ENRON")
	assert.False(t, ok)

	assert.Equal(t, "AAPL", cfg.Symbols()[0])
	assert.Len(t, cfg.Symbols(), 10)
}
