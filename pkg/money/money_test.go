package money_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"growfin.backend/pkg/money"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestTotalPayable(t *testing.T) {
	got := money.TotalPayable(d("50000"), d("5"))
	assert.True(t, got.Equal(d("52500")), "got %s", got)

	got = money.TotalPayable(d("15000"), d("0"))
	assert.True(t, got.Equal(d("15000")), "got %s", got)
}

func TestDailyInstallment_RoundsHalfUp(t *testing.T) {
	got := money.DailyInstallment(d("52500"), 30)
	assert.True(t, got.Equal(d("1750.00")), "got %s", got)

	// 10000 / 3 = 3333.333... -> 3333.33
	got = money.DailyInstallment(d("10000"), 3)
	assert.True(t, got.Equal(d("3333.33")), "got %s", got)

	// 100.01 / 2 = 50.005 -> half-up to 50.01
	got = money.DailyInstallment(d("100.01"), 2)
	assert.True(t, got.Equal(d("50.01")), "got %s", got)
}

func TestDailyInstallment_DriftWithinRoundingUnit(t *testing.T) {
	totals := []string{"52500", "10000", "99999.99", "15000.50"}
	for _, total := range totals {
		for _, days := range []int{7, 30, 90, 365} {
			installment := money.DailyInstallment(d(total), days)
			recomposed := installment.Mul(decimal.NewFromInt(int64(days)))
			drift := recomposed.Sub(d(total)).Abs()
			limit := d("0.005").Mul(decimal.NewFromInt(int64(days)))
			require.True(t, drift.LessThanOrEqual(limit),
				"total=%s days=%d drift=%s", total, days, drift)
		}
	}
}

func TestElapsedDays(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// before start
	assert.Equal(t, 0, money.ElapsedDays(start, start.AddDate(0, 0, -1), 30))
	// first day counts
	assert.Equal(t, 1, money.ElapsedDays(start, start, 30))
	// mid-tenure
	assert.Equal(t, 11, money.ElapsedDays(start, start.AddDate(0, 0, 10), 30))
	// clamped to total days
	assert.Equal(t, 30, money.ElapsedDays(start, start.AddDate(0, 0, 45), 30))
	// time-of-day is ignored
	lateEvening := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, money.ElapsedDays(start, lateEvening, 30))
}

func TestExpectedToDate(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	installment := d("1750.00")

	got := money.ExpectedToDate(installment, start, start.AddDate(0, 0, 4), 30)
	assert.True(t, got.Equal(d("8750.00")), "got %s", got)

	got = money.ExpectedToDate(installment, start, start.AddDate(0, 0, -3), 30)
	assert.True(t, got.IsZero(), "got %s", got)
}
