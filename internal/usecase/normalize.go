package usecase

import (
	"strings"
	"time"

	"FinVault/internal/domain/models"
	"FinVault/pkg/util"
)

const (
	ratePlaces  = 5
	pricePlaces = 2
)

// NormalizeRates re-bases a rate table quoted against quoteBase onto base:
// rate(base->X) = rate(quote->X) / rate(quote->base), rounded to 5 places.
// Every currency in currencies must be present; nothing is defaulted.
func NormalizeRates(quoteBase string, raw map[string]float64, base string, currencies []string) (models.ExchangeRateSet, error) {
	const op = "normalize"
	quoteBase, base = strings.ToUpper(quoteBase), strings.ToUpper(base)

	lookup := func(cur string) (float64, bool) {
		v, ok := raw[cur]
		if !ok && cur == quoteBase {
			// the quote currency is 1 by definition
			return 1, true
		}
		return v, ok
	}

	quoteToBase, ok := lookup(base)
	if !ok {
		return models.ExchangeRateSet{}, models.SchemaError("exchangerate", op, "base currency %s missing from rates quoted in %s", base, quoteBase)
	}
	if quoteToBase <= 0 {
		return models.ExchangeRateSet{}, models.SchemaError("exchangerate", op, "rate %s->%s is %v", quoteBase, base, quoteToBase)
	}

	set := models.ExchangeRateSet{Base: base, Rates: make(map[string]float64, len(currencies))}
	for _, cur := range currencies {
		cur = strings.ToUpper(cur)
		if cur == base {
			set.Rates[cur] = 1
			continue
		}
		v, ok := lookup(cur)
		if !ok {
			return models.ExchangeRateSet{}, models.SchemaError("exchangerate", op, "currency %s missing", cur)
		}
		set.Rates[cur] = util.Div(v, quoteToBase, ratePlaces)
	}
	return set, nil
}

// SpotRecord dates an undated spot price on the run's target date.
func SpotRecord(key string, target time.Time, price float64) models.PriceRecord {
	return models.PriceRecord{InstrumentKey: key, Date: util.Day(target), Price: util.Round(price, pricePlaces)}
}

// DailyCloseRecord keeps the provider's own date so freshness can be checked.
func DailyCloseRecord(key string, day time.Time, price float64) models.PriceRecord {
	return models.PriceRecord{InstrumentKey: key, Date: util.Day(day), Price: price}
}

// RateRecord dates an exchange rate on the run's target date.
func RateRecord(key string, target time.Time, rate float64) models.PriceRecord {
	return models.PriceRecord{InstrumentKey: key, Date: util.Day(target), Price: rate}
}
