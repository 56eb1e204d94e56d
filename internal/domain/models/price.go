package models

import (
	"fmt"
	"math"
	"time"
)

// PriceRecord is one canonical observation: an instrument's price on a day.
type PriceRecord struct {
	InstrumentKey string    `json:"instrument"`
	Date          time.Time `json:"date"`
	Price         float64   `json:"price"`
}

// Validate rejects prices that can never be stored.
func (r PriceRecord) Validate() error {
	if r.InstrumentKey == "" {
		return fmt.Errorf("price record: instrument key empty")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("price record %s: date missing", r.InstrumentKey)
	}
	if math.IsNaN(r.Price) || math.IsInf(r.Price, 0) || r.Price < 0 {
		return fmt.Errorf("price record %s: price %v not a finite non-negative number", r.InstrumentKey, r.Price)
	}
	return nil
}

// UpsertResult tells an inserting caller whether the row was new.
type UpsertResult int

const (
	UpsertInserted UpsertResult = iota
	// UpsertAlreadyPresent is the storage-conflict signal: the (key, date)
	// row existed and nothing was written.
	UpsertAlreadyPresent
)

func (r UpsertResult) String() string {
	if r == UpsertAlreadyPresent {
		return "already_present"
	}
	return "inserted"
}

// ExchangeRateSet maps currency code to its rate against Base.
// It lives for one run and is never persisted.
type ExchangeRateSet struct {
	Base  string
	Rates map[string]float64
}

// Rate returns the rate for currency and whether it was present.
func (s ExchangeRateSet) Rate(currency string) (float64, bool) {
	v, ok := s.Rates[currency]
	return v, ok
}
