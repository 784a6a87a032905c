// internals/helpers/hourledger/hourledger.go
package hourledger

import (
	"github.com/shopspring/decimal"
)

/* =========================================================
   Decimal-safe hour & currency arithmetic.

   Every ledger path in the system goes through shopspring
   decimals; float64 never touches hours or money. Money and
   percentages round to 2 places, half-up, so dashboard
   totals stay reproducible.
========================================================= */

var (
	Zero       = decimal.Zero
	Hundred    = decimal.NewFromInt(100)
	MaxSession = decimal.NewFromInt(24)   // max hours a single session may log
	MinGig     = decimal.RequireFromString("0.50") // smallest bookable gig
)

// Round2 is the single rounding rule: 2 decimal places, half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RatioPercent returns part/whole*100 rounded to 2dp, or 0 when the
// denominator is zero or negative.
func RatioPercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.LessThanOrEqual(Zero) {
		return Zero
	}
	return Round2(part.Div(whole).Mul(Hundred))
}

// PerHour returns amount/hours rounded to 2dp, or 0 when hours is zero or
// negative.
func PerHour(amount, hours decimal.Decimal) decimal.Decimal {
	if hours.LessThanOrEqual(Zero) {
		return Zero
	}
	return Round2(amount.Div(hours))
}

// ValidSessionHours reports whether h is a legal per-session amount:
// strictly positive, at most 24.
func ValidSessionHours(h decimal.Decimal) bool {
	return h.GreaterThan(Zero) && h.LessThanOrEqual(MaxSession)
}

// WithinLedger reports whether subtracting h from remaining keeps the
// ledger non-negative.
func WithinLedger(h, remaining decimal.Decimal) bool {
	return h.LessThanOrEqual(remaining)
}
