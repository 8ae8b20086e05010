// Package money provides exact decimal arithmetic and calendar-day accrual
// helpers for daily-installment loans. Monetary values are never represented
// as binary floating point.
package money

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits carried by monetary amounts.
const Scale = 2

var hundred = decimal.NewFromInt(100)

// Zero is the zero amount.
var Zero = decimal.Zero

// Parse parses a decimal amount from its string form.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// TotalPayable computes principal + principal*rate/100 exactly, with a flat
// simple interest rate expressed in percent.
func TotalPayable(principal, interestRate decimal.Decimal) decimal.Decimal {
	return principal.Add(principal.Mul(interestRate).Div(hundred))
}

// DailyInstallment divides the total payable across the loan tenure, rounded
// half-up to 2 decimal places.
func DailyInstallment(totalPayable decimal.Decimal, totalDays int) decimal.Decimal {
	return totalPayable.DivRound(decimal.NewFromInt(int64(totalDays)), Scale)
}

// ElapsedDays returns the number of accrual days for a loan as of today:
// min((today - start).days + 1, totalDays), clamped to 0 before the start
// date. Both dates are compared at day granularity.
func ElapsedDays(startDate, today time.Time, totalDays int) int {
	start := truncateToDay(startDate)
	now := truncateToDay(today)
	if now.Before(start) {
		return 0
	}
	days := int(now.Sub(start).Hours()/24) + 1
	if days > totalDays {
		return totalDays
	}
	return days
}

// ExpectedToDate returns dailyInstallment * elapsed days.
func ExpectedToDate(dailyInstallment decimal.Decimal, startDate, today time.Time, totalDays int) decimal.Decimal {
	elapsed := ElapsedDays(startDate, today, totalDays)
	return dailyInstallment.Mul(decimal.NewFromInt(int64(elapsed)))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
