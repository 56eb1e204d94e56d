package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FinVault/internal/domain/models"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	require.Equal(t, "yesterday", c.Run.TargetDate)
	require.Equal(t, "run", c.Run.AbortScope)
	require.Equal(t, 5, c.Retention.Years)
	require.Equal(t, "@daily", c.Schedule.Spec)
	require.Equal(t, 15*time.Second, c.Sources.Timeout)
	require.Equal(t, 6*time.Hour, c.Sources.AlphaVantage.CacheTTL)
	require.Equal(t, "EUR", c.Sources.ExchangeRate.Base)

	cat, err := c.Catalog()
	require.NoError(t, err)
	require.Len(t, cat.All(), 10)
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
environment: production
run:
  target_date: today
retention:
  years: 3
sources:
  timeout: 5s
instruments:
  - key: Gold
    category: rare_materials
    source: {kind: spot, symbol: XAU}
importer:
  sources:
    - instrument: Gold
      file: gold.csv
      price_column: {kind: symbol_named}
`))
	require.NoError(t, err)
	require.Equal(t, "today", c.Run.TargetDate)
	require.Equal(t, 3, c.Retention.Years)
	require.Equal(t, 5*time.Second, c.Sources.Timeout)
	require.Equal(t, "@daily", c.Schedule.Spec)

	cat, err := c.Catalog()
	require.NoError(t, err)
	require.Equal(t, []string{"Gold"}, cat.Keys())

	src := c.Importer.Sources[0]
	require.Equal(t, "date", src.DateColumn)
	require.Equal(t, "2006-01-02", src.DateLayout)

	inst, _ := cat.Get("Gold")
	header, err := src.HeaderFor(inst)
	require.NoError(t, err)
	require.Equal(t, "XAU", header)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"target date": "run: {target_date: tomorrow}",
		"abort scope": "run: {abort_scope: all}",
		"retention":   "retention: {years: 0}",
		"fixed name":  "importer: {sources: [{instrument: Gold, file: g.csv, price_column: {kind: fixed}}]}",
		"kafka":       "kafka: {enabled: true}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\n"), 0o644))

	t.Setenv("ALPHA_VANTAGE_API_KEY", "av-key")
	t.Setenv("EXCHANGE_RATE_API_KEY", "er-key")
	t.Setenv("FINVAULT_DB_PATH", "/tmp/prices.db")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	require.Equal(t, "av-key", c.Sources.AlphaVantage.APIKey)
	require.Equal(t, "er-key", c.Sources.ExchangeRate.APIKey)
	require.Equal(t, "/tmp/prices.db", c.Database.Path)
	require.True(t, c.Kafka.Enabled)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestCatalogRejectsBadInstrument(t *testing.T) {
	c := Default()
	c.Instruments = []models.Instrument{{Key: "bad key", Category: models.CategoryCrypto,
		Source: models.SourceSpec{Kind: models.SourceSpot, Symbol: "BTC"}}}

	_, err := c.Catalog()
	require.Error(t, err)
}
