package domain

import "github.com/shopspring/decimal"

// MoneyTolerance is the comparison slack for provider-reported figures.
const MoneyTolerance = 0.01

var moneyTolerance = decimal.NewFromFloat(MoneyTolerance)

// RoundMoney normalizes a currency value to 2 decimal places, rounding
// half up (half away from zero; all money here is non-negative).
// Normalizing an already-normalized value is a no-op.
func RoundMoney(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}

// MoneyEqual reports whether two already-normalized values match within tolerance.
func MoneyEqual(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(moneyTolerance)
}

// MoneyExceeds reports whether a exceeds b by more than the tolerance.
func MoneyExceeds(a, b float64) bool {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).GreaterThan(moneyTolerance)
}
