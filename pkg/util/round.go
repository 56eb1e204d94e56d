package util

import (
    "math"

    "github.com/shopspring/decimal"
)

// finite reports whether every value can be represented as a decimal.
func finite(vs ...float64) bool {
    for _, v := range vs {
        if math.IsNaN(v) || math.IsInf(v, 0) {
            return false
        }
    }
    return true
}

// Round rounds v half away from zero to the given number of decimal places.
// Non-finite input yields NaN.
func Round(v float64, places int32) float64 {
    if !finite(v) {
        return math.NaN()
    }
    return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Div divides a by b in decimal space and rounds the quotient.
// A zero divisor or non-finite operand yields NaN.
func Div(a, b float64, places int32) float64 {
    if !finite(a, b) || b == 0 {
        return math.NaN()
    }
    q := decimal.NewFromFloat(a).DivRound(decimal.NewFromFloat(b), places+4)
    return q.Round(places).InexactFloat64()
}

// Affine returns round(v*mul + offset, places). Non-finite input yields NaN.
func Affine(v, mul, offset float64, places int32) float64 {
    if !finite(v, mul, offset) {
        return math.NaN()
    }
    d := decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(mul)).Add(decimal.NewFromFloat(offset))
    return d.Round(places).InexactFloat64()
}
