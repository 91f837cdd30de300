package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestPromoActive(t *testing.T) {
	today := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		start  *time.Time
		end    *time.Time
		today  time.Time
		expect bool
	}{
		{
			name:   "inside window",
			start:  datePtr(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
			end:    datePtr(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)),
			today:  today,
			expect: true,
		},
		{
			name:   "first day inclusive",
			start:  datePtr(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
			end:    datePtr(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)),
			today:  today,
			expect: true,
		},
		{
			name:   "last day inclusive despite late time of day",
			start:  datePtr(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
			end:    datePtr(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
			today:  time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC),
			expect: true,
		},
		{
			name:   "before window",
			start:  datePtr(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)),
			end:    datePtr(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)),
			today:  today,
			expect: false,
		},
		{
			name:   "after window",
			start:  datePtr(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
			end:    datePtr(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)),
			today:  today,
			expect: false,
		},
		{
			name:   "missing start",
			start:  nil,
			end:    datePtr(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)),
			today:  today,
			expect: false,
		},
		{
			name:   "missing end",
			start:  datePtr(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
			end:    nil,
			today:  today,
			expect: false,
		},
		{
			name:   "both bounds missing",
			start:  nil,
			end:    nil,
			today:  today,
			expect: false,
		},
		{
			name:   "start with late time of day still counts from that date",
			start:  datePtr(time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC)),
			end:    datePtr(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)),
			today:  time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC),
			expect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, PromoActive(tt.start, tt.end, tt.today))
		})
	}
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		discount string
		active   bool
		expect   string
	}{
		{name: "inactive promo returns base", base: "100.00", discount: "20", active: false, expect: "100.00"},
		{name: "active promo applies discount", base: "100.00", discount: "20", active: true, expect: "80.00"},
		{name: "zero discount returns base", base: "100.00", discount: "0", active: true, expect: "100.00"},
		{name: "negative discount clamped to zero", base: "100.00", discount: "-10", active: true, expect: "100.00"},
		{name: "rounds half up to 2dp", base: "99.99", discount: "33", active: true, expect: "66.99"},
		{name: "fractional discount", base: "250.00", discount: "12.5", active: true, expect: "218.75"},
		{name: "full discount", base: "49.95", discount: "100", active: true, expect: "0.00"},
		{name: "zero base", base: "0", discount: "50", active: true, expect: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := decimal.RequireFromString(tt.base)
			discount := decimal.RequireFromString(tt.discount)
			expect := decimal.RequireFromString(tt.expect)

			got := EffectivePrice(base, discount, tt.active)
			assert.True(t, expect.Equal(got), "expected %s, got %s", expect, got)
		})
	}
}

func TestEffectivePrice_NeverNegative(t *testing.T) {
	base := decimal.RequireFromString("10.00")
	got := EffectivePrice(base, decimal.RequireFromString("100"), true)
	assert.False(t, got.IsNegative())
}
