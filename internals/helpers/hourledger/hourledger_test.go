package hourledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound2(t *testing.T) {
	assert.True(t, Round2(d("10.005")).Equal(d("10.01")))
	assert.True(t, Round2(d("10.004")).Equal(d("10.00")))
	assert.True(t, Round2(d("10")).Equal(d("10")))
}

func TestRatioPercent(t *testing.T) {
	assert.True(t, RatioPercent(d("2"), d("10")).Equal(d("20.00")))
	assert.True(t, RatioPercent(d("1"), d("3")).Equal(d("33.33")))

	// zero / negative denominators must yield a defined zero
	assert.True(t, RatioPercent(d("5"), Zero).Equal(Zero))
	assert.True(t, RatioPercent(d("5"), d("-1")).Equal(Zero))
}

func TestPerHour(t *testing.T) {
	assert.True(t, PerHour(d("450.00"), d("10")).Equal(d("45.00")))
	assert.True(t, PerHour(d("100"), d("3")).Equal(d("33.33")))
	assert.True(t, PerHour(d("100"), Zero).Equal(Zero))
}

func TestValidSessionHours(t *testing.T) {
	assert.False(t, ValidSessionHours(Zero))
	assert.False(t, ValidSessionHours(d("-0.50")))
	assert.True(t, ValidSessionHours(d("0.25")))
	assert.True(t, ValidSessionHours(d("24")))
	assert.False(t, ValidSessionHours(d("24.25")))
}

func TestWithinLedger(t *testing.T) {
	assert.True(t, WithinLedger(d("2.00"), d("2.00")))
	assert.False(t, WithinLedger(d("2.01"), d("2.00")))
}
