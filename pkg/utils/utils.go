package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// Day is the accrual unit. A calendar month is always treated as 30 of these.
const Day = 24 * time.Hour

// DaysInMonth is the fixed month length used by monthly interest rates.
var DaysInMonth = decimal.NewFromInt(30)

// RoundCents rounds to 2 decimal places, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WholeDaysBetween returns floor((to - from) / 1 day). The result is negative
// when to is before from.
func WholeDaysBetween(from, to time.Time) int64 {
	diff := to.Sub(from)
	days := int64(diff / Day)
	if diff < 0 && diff%Day != 0 {
		days--
	}
	return days
}

// AsOfOrNow returns *asOf when set, otherwise now.
func AsOfOrNow(asOf *time.Time, now time.Time) time.Time {
	if asOf == nil || asOf.IsZero() {
		return now
	}
	return *asOf
}

// IsPositive reports whether d > 0.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}
