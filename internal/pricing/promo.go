// Package pricing evaluates promotional discount windows and effective
// prices. All functions are pure; they are called on every catalogue render
// and must stay I/O free.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PromoActive reports whether a promotion window covers the given day.
// Both bounds must be present; the comparison is date-only (time of day is
// ignored) and inclusive on both ends.
func PromoActive(start, end *time.Time, today time.Time) bool {
	if start == nil || end == nil {
		return false
	}

	s := truncateToDate(*start)
	e := truncateToDate(*end)
	d := truncateToDate(today)

	return !d.Before(s) && !d.After(e)
}

// EffectivePrice returns the price a customer pays for a size variant.
// When the promotion is inactive or the discount is not positive, the base
// price is returned unchanged. Otherwise the discounted price is rounded
// half-up to 2 decimal places. A negative discount is clamped to zero rather
// than inflating the price.
func EffectivePrice(base, discountPercent decimal.Decimal, promoActive bool) decimal.Decimal {
	if !promoActive || discountPercent.Sign() <= 0 {
		return base
	}

	discounted := base.Sub(base.Mul(discountPercent).Div(hundred))
	return discounted.Round(2)
}

// truncateToDate pins a timestamp to midnight UTC so that only the calendar
// date takes part in window comparisons.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
