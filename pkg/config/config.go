package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"FinVault/internal/domain/models"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
		// Collector aggregates warn/error entries onto the events topic.
		Collector struct {
			Enabled        bool          `yaml:"enabled"`
			Interval       time.Duration `yaml:"interval" default:"30s"`
			CountThreshold int           `yaml:"count_threshold" default:"100"`
			Topic          string        `yaml:"topic" default:"finvault.logs"`
		} `yaml:"collector"`
	} `yaml:"log"`
	Database struct {
		Path        string        `yaml:"path" default:"data/finvault.db" validate:"required"`
		BusyTimeout time.Duration `yaml:"busy_timeout" default:"5s"`
		JournalMode string        `yaml:"journal_mode" default:"WAL"`
	} `yaml:"database"`
	Run struct {
		TargetDate  string        `yaml:"target_date" default:"yesterday" validate:"oneof=yesterday today"`
		AbortScope  string        `yaml:"abort_scope" default:"run" validate:"oneof=run stage"`
		Concurrency int           `yaml:"concurrency" default:"4" validate:"min=1"`
		LockTTL     time.Duration `yaml:"lock_ttl" default:"10m"`
	} `yaml:"run"`
	Retention struct {
		Years   int           `yaml:"years" default:"5" validate:"min=1"`
		Timeout time.Duration `yaml:"timeout" default:"1m"`
	} `yaml:"retention"`
	Schedule struct {
		Spec       string `yaml:"spec" default:"@daily" validate:"required"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Sources struct {
		Timeout time.Duration `yaml:"timeout" default:"15s"`
		GoldAPI struct {
			BaseURL string `yaml:"base_url" default:"https://api.gold-api.com" validate:"url"`
		} `yaml:"gold_api"`
		AlphaVantage struct {
			BaseURL       string        `yaml:"base_url" default:"https://www.alphavantage.co" validate:"url"`
			APIKey        string        `yaml:"api_key"`
			RatePerMinute int           `yaml:"rate_per_minute" default:"5" validate:"min=1"`
			Burst         int           `yaml:"burst" default:"1" validate:"min=1"`
			CacheTTL      time.Duration `yaml:"cache_ttl" default:"6h"`
		} `yaml:"alpha_vantage"`
		ExchangeRate struct {
			BaseURL   string `yaml:"base_url" default:"https://v6.exchangerate-api.com/v6" validate:"url"`
			APIKey    string `yaml:"api_key"`
			QuoteBase string `yaml:"quote_base" default:"USD" validate:"len=3"`
			Base      string `yaml:"base" default:"EUR" validate:"len=3"`
		} `yaml:"exchange_rate"`
	} `yaml:"sources"`
	Cache struct {
		Backend  string `yaml:"backend" default:"memory" validate:"oneof=memory redis layered"`
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"finvault.runs"`
		RequiredAcks int      `yaml:"required_acks" default:"1"`
		Compression  string   `yaml:"compression" default:"snappy"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			Linger       time.Duration `yaml:"linger" default:"10ms"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Metrics struct {
		Enabled        bool   `yaml:"enabled" default:"true"`
		Path           string `yaml:"path" default:"/metrics"`
		PushgatewayURL string `yaml:"pushgateway_url"`
		Job            string `yaml:"job" default:"finvault_fetch"`
	} `yaml:"metrics"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"15s"`
	} `yaml:"server"`
	// Instruments replaces the built-in catalog when non-empty.
	Instruments []models.Instrument `yaml:"instruments" validate:"dive"`
	Importer    struct {
		Sources []ImportSource `yaml:"sources" validate:"dive"`
	} `yaml:"importer"`
}

// PriceColumnKind selects how an import file names its price column.
type PriceColumnKind string

const (
	// PriceColumnFixed uses PriceColumn.Name as the header.
	PriceColumnFixed PriceColumnKind = "fixed"
	// PriceColumnSymbolNamed uses the instrument's source symbol as the header.
	PriceColumnSymbolNamed PriceColumnKind = "symbol_named"
)

type PriceColumn struct {
	Kind PriceColumnKind `yaml:"kind" default:"fixed" validate:"oneof=fixed symbol_named"`
	Name string          `yaml:"name"`
}

// ImportSource describes one CSV file for the bulk importer.
type ImportSource struct {
	Instrument  string      `yaml:"instrument" validate:"required"`
	File        string      `yaml:"file" validate:"required"`
	DateColumn  string      `yaml:"date_column" default:"date"`
	DateLayout  string      `yaml:"date_layout" default:"2006-01-02"`
	PriceColumn PriceColumn `yaml:"price_column"`
}

var validate = validator.New()

// Default returns a configuration with every default applied.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults for list elements decoded from YAML
	for i := range c.Importer.Sources {
		if err := defaults.Set(&c.Importer.Sources[i]); err != nil {
			return nil, fmt.Errorf("importer.sources[%d] defaults: %w", i, err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads .env (if present), the YAML file (if path is set) and
// then applies environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var (
		c   *Config
		err error
	)
	if path != "" {
		if c, err = Load(path); err != nil {
			return nil, err
		}
	} else {
		c = Default()
	}

	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.Sources.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("EXCHANGE_RATE_API_KEY"); v != "" {
		c.Sources.ExchangeRate.APIKey = v
	}
	if v := os.Getenv("FINVAULT_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Enabled = true
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	for i, s := range c.Importer.Sources {
		if s.PriceColumn.Kind == PriceColumnFixed && s.PriceColumn.Name == "" {
			return fmt.Errorf("importer.sources[%d]: fixed price_column requires name", i)
		}
	}
	return nil
}

// Catalog builds the immutable instrument catalog.
func (c *Config) Catalog() (*models.Catalog, error) {
	items := c.Instruments
	if len(items) == 0 {
		items = models.DefaultInstruments()
	}
	return models.NewCatalog(items)
}

// HeaderFor resolves the price column header of an import source.
func (s ImportSource) HeaderFor(inst models.Instrument) (string, error) {
	switch s.PriceColumn.Kind {
	case PriceColumnFixed:
		return s.PriceColumn.Name, nil
	case PriceColumnSymbolNamed:
		if inst.Source.Symbol == "" {
			return "", fmt.Errorf("instrument %s has no source symbol for a symbol_named column", inst.Key)
		}
		return inst.Source.Symbol, nil
	default:
		return "", fmt.Errorf("unknown price_column kind %q", s.PriceColumn.Kind)
	}
}
