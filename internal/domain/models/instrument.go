package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Category groups instruments for presentation and scheduling.
type Category string

const (
	CategoryCurrencies    Category = "currencies"
	CategoryETF           Category = "etf"
	CategoryRareMaterials Category = "rare_materials"
	CategoryCrypto        Category = "crypto"
)

// SourceKind selects which provider and transform produce an instrument's price.
type SourceKind string

const (
	// SourceSpot is an undated spot price lookup by symbol.
	SourceSpot SourceKind = "spot"
	// SourceDailyClose is the latest close of a dated daily time series.
	SourceDailyClose SourceKind = "daily_close"
	// SourceExchangeRate is one currency out of the run's exchange rate table.
	SourceExchangeRate SourceKind = "exchange_rate"
	// SourceCrossRate is derived from two exchange rates sharing a base.
	SourceCrossRate SourceKind = "cross_rate"
)

// SourceSpec describes how an instrument is sourced. Only the fields relevant
// to Kind are read.
type SourceSpec struct {
	Kind SourceKind `yaml:"kind" validate:"required,oneof=spot daily_close exchange_rate cross_rate"`

	// spot, daily_close
	Symbol string `yaml:"symbol"`

	// daily_close: adjusted = round(close*Multiplier + Offset, 2).
	Multiplier float64 `yaml:"multiplier"`
	Offset     float64 `yaml:"offset"`
	// ScaleByCrossRate multiplies Multiplier by the run's derived cross rate.
	ScaleByCrossRate bool `yaml:"scale_by_cross_rate"`

	// exchange_rate
	Currency string `yaml:"currency"`

	// cross_rate: Numerator / Denominator, both currencies of the rate table.
	Numerator   string `yaml:"numerator"`
	Denominator string `yaml:"denominator"`
}

// Instrument is a static catalog entry.
type Instrument struct {
	Key            string     `yaml:"key" json:"key" validate:"required"`
	Category       Category   `yaml:"category" json:"category" validate:"required"`
	DisplayName    string     `yaml:"display_name" json:"display_name"`
	CurrencySymbol string     `yaml:"currency_symbol" json:"currency_symbol"`
	Source         SourceSpec `yaml:"source" json:"-"`
}

var keyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,62}$`)

// ValidKey reports whether key can name a per-instrument storage area.
func ValidKey(key string) bool { return keyPattern.MatchString(key) }

// Validate checks the source spec carries what its kind needs.
func (i Instrument) Validate() error {
	if !ValidKey(i.Key) {
		return fmt.Errorf("instrument key %q: must match %s", i.Key, keyPattern)
	}
	s := i.Source
	switch s.Kind {
	case SourceSpot:
		if s.Symbol == "" {
			return fmt.Errorf("instrument %s: spot source requires symbol", i.Key)
		}
	case SourceDailyClose:
		if s.Symbol == "" {
			return fmt.Errorf("instrument %s: daily_close source requires symbol", i.Key)
		}
		if s.Multiplier <= 0 {
			return fmt.Errorf("instrument %s: daily_close multiplier must be > 0", i.Key)
		}
	case SourceExchangeRate:
		if s.Currency == "" {
			return fmt.Errorf("instrument %s: exchange_rate source requires currency", i.Key)
		}
	case SourceCrossRate:
		if s.Numerator == "" || s.Denominator == "" {
			return fmt.Errorf("instrument %s: cross_rate source requires numerator and denominator", i.Key)
		}
	default:
		return fmt.Errorf("instrument %s: unknown source kind %q", i.Key, s.Kind)
	}
	return nil
}

// Catalog is the immutable, ordered instrument list for a process.
type Catalog struct {
	items []Instrument
	byKey map[string]int
}

// NewCatalog validates the instruments and freezes them.
func NewCatalog(items []Instrument) (*Catalog, error) {
	c := &Catalog{items: make([]Instrument, len(items)), byKey: make(map[string]int, len(items))}
	crossRates := 0
	for i, inst := range items {
		if err := inst.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byKey[inst.Key]; dup {
			return nil, fmt.Errorf("duplicate instrument key %q", inst.Key)
		}
		if inst.Source.Kind == SourceCrossRate {
			crossRates++
		}
		c.items[i] = inst
		c.byKey[inst.Key] = i
	}
	if crossRates > 1 {
		return nil, fmt.Errorf("catalog: at most one cross_rate instrument is supported, got %d", crossRates)
	}
	for _, inst := range c.items {
		if inst.Source.ScaleByCrossRate && crossRates == 0 {
			return nil, fmt.Errorf("instrument %s: scale_by_cross_rate needs a cross_rate instrument in the catalog", inst.Key)
		}
	}
	return c, nil
}

// All returns a copy of the catalog in declaration order.
func (c *Catalog) All() []Instrument {
	out := make([]Instrument, len(c.items))
	copy(out, c.items)
	return out
}

// Keys returns every instrument key in declaration order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.items))
	for i, inst := range c.items {
		out[i] = inst.Key
	}
	return out
}

// Get looks an instrument up by key.
func (c *Catalog) Get(key string) (Instrument, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Instrument{}, false
	}
	return c.items[i], true
}

// ByKind returns the instruments sourced by kind, in declaration order.
func (c *Catalog) ByKind(kind SourceKind) []Instrument {
	var out []Instrument
	for _, inst := range c.items {
		if inst.Source.Kind == kind {
			out = append(out, inst)
		}
	}
	return out
}

// Currencies returns the distinct currencies the catalog needs from the rate table.
func (c *Catalog) Currencies() []string {
	seen := map[string]bool{}
	var out []string
	add := func(cur string) {
		cur = strings.ToUpper(cur)
		if cur != "" && !seen[cur] {
			seen[cur] = true
			out = append(out, cur)
		}
	}
	for _, inst := range c.items {
		switch inst.Source.Kind {
		case SourceExchangeRate:
			add(inst.Source.Currency)
		case SourceCrossRate:
			add(inst.Source.Numerator)
			add(inst.Source.Denominator)
		}
	}
	return out
}

// DefaultInstruments is the built-in catalog: two metals, two crypto assets,
// three currency pairs against EUR/USD and three index proxies.
func DefaultInstruments() []Instrument {
	return []Instrument{
		{Key: "Rare_Materials_Gold", Category: CategoryRareMaterials, DisplayName: "Gold", CurrencySymbol: "$",
			Source: SourceSpec{Kind: SourceSpot, Symbol: "XAU"}},
		{Key: "Rare_Materials_Silver", Category: CategoryRareMaterials, DisplayName: "Silver", CurrencySymbol: "$",
			Source: SourceSpec{Kind: SourceSpot, Symbol: "XAG"}},
		{Key: "Crypto_Bitcoin", Category: CategoryCrypto, DisplayName: "Bitcoin", CurrencySymbol: "$",
			Source: SourceSpec{Kind: SourceSpot, Symbol: "BTC"}},
		{Key: "Crypto_Ethereum", Category: CategoryCrypto, DisplayName: "Ethereum", CurrencySymbol: "$",
			Source: SourceSpec{Kind: SourceSpot, Symbol: "ETH"}},
		{Key: "Currencies_EUR_USD", Category: CategoryCurrencies, DisplayName: "EUR/USD", CurrencySymbol: "$",
			Source: SourceSpec{Kind: SourceExchangeRate, Currency: "USD"}},
		{Key: "Currencies_EUR_CNY", Category: CategoryCurrencies, DisplayName: "EUR/CNY", CurrencySymbol: "¥",
			Source: SourceSpec{Kind: SourceExchangeRate, Currency: "CNY"}},
		{Key: "Currencies_USD_CNY", Category: CategoryCurrencies, DisplayName: "USD/CNY", CurrencySymbol: "¥",
			Source: SourceSpec{Kind: SourceCrossRate, Numerator: "CNY", Denominator: "USD"}},
		{Key: "ETF_SP_500", Category: CategoryETF, DisplayName: "S&P 500", CurrencySymbol: "$",
			Source: SourceSpec{Kind: SourceDailyClose, Symbol: "SPY", Multiplier: 10, Offset: 10}},
		{Key: "ETF_STOXX_600", Category: CategoryETF, DisplayName: "Stoxx 600", CurrencySymbol: "€",
			Source: SourceSpec{Kind: SourceDailyClose, Symbol: "EXSA.DE", Multiplier: 10, Offset: 5}},
		{Key: "ETF_CSI_300", Category: CategoryETF, DisplayName: "CSI 300", CurrencySymbol: "¥",
			Source: SourceSpec{Kind: SourceDailyClose, Symbol: "ASHR", Multiplier: 20, ScaleByCrossRate: true}},
	}
}
