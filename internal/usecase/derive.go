package usecase

import (
	"FinVault/internal/domain/models"
	"FinVault/pkg/util"
)

// CrossRate is a rate derived from two rates of the same run. Only
// DeriveCrossRate can build one, so holding a CrossRate proves derivation
// succeeded.
type CrossRate struct {
	numerator   string
	denominator string
	value       float64
}

// Value is the derived rate, rounded to 5 places.
func (c CrossRate) Value() float64 { return c.value }

// Pair renders the rate as DENOMINATOR/NUMERATOR, e.g. USD/CNY.
func (c CrossRate) Pair() string { return c.denominator + "/" + c.numerator }

// DeriveCrossRate returns rates[numerator] / rates[denominator]; with a EUR
// base table, numerator CNY and denominator USD give USD/CNY.
func DeriveCrossRate(rates models.ExchangeRateSet, numerator, denominator string) (CrossRate, error) {
	num, ok := rates.Rate(numerator)
	if !ok {
		return CrossRate{}, models.DerivationError("%s rate unavailable", numerator)
	}
	den, ok := rates.Rate(denominator)
	if !ok {
		return CrossRate{}, models.DerivationError("%s rate unavailable", denominator)
	}
	if den == 0 {
		return CrossRate{}, models.DerivationError("%s rate is zero", denominator)
	}
	return CrossRate{
		numerator:   numerator,
		denominator: denominator,
		value:       util.Div(num, den, ratePlaces),
	}, nil
}

// ScaledMultiplier is the effective close multiplier of a proxy whose
// valuation is expressed through the cross rate.
func ScaledMultiplier(inst models.Instrument, cr CrossRate) float64 {
	return inst.Source.Multiplier * cr.value
}
