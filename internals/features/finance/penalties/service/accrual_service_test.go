package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	model "sekolahku_backend/internals/features/finance/penalties/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dailyPolicy(rate string, grace int, cap *int64) *PolicyInput {
	return &PolicyInput{
		Mode:      model.PenaltyModeDaily,
		Rate:      decimal.RequireFromString(rate),
		GraceDays: grace,
		CapIDR:    cap,
	}
}

func TestOverdueDays_GraceInclusive(t *testing.T) {
	due := date(2025, time.August, 1)

	assert.Equal(t, 0, OverdueDays(due, date(2025, time.August, 1), 5))
	assert.Equal(t, 0, OverdueDays(due, date(2025, time.August, 6), 5)) // hari terakhir grace
	assert.Equal(t, 1, OverdueDays(due, date(2025, time.August, 7), 5)) // hari pertama denda
	assert.Equal(t, 0, OverdueDays(due, date(2025, time.July, 20), 5))  // belum jatuh tempo
}

func TestAccrue_DailyWithGrace(t *testing.T) {
	due := date(2025, time.August, 1)
	// 1% per hari dari 1000 = 10/hari, grace 5
	p := dailyPolicy("0.01", 5, nil)

	assert.Equal(t, int64(0), Accrue(p, 1000, due, date(2025, time.August, 6)))
	assert.Equal(t, int64(10), Accrue(p, 1000, due, date(2025, time.August, 7)))
	assert.Equal(t, int64(100), Accrue(p, 1000, due, date(2025, time.August, 16)))
}

func TestAccrue_CapLimitsPenalty(t *testing.T) {
	due := date(2025, time.August, 1)
	cap := int64(50)
	p := dailyPolicy("0.01", 0, &cap)

	// 20 hari × 10 = 200 → plafon 50
	assert.Equal(t, int64(50), Accrue(p, 1000, due, date(2025, time.August, 21)))
}

func TestAccrue_MonthlyPartialMonthCountsFull(t *testing.T) {
	due := date(2025, time.August, 1)
	p := &PolicyInput{
		Mode:      model.PenaltyModeMonthly,
		Rate:      decimal.RequireFromString("0.02"), // 2%/bulan
		GraceDays: 0,
	}

	// telat 1 hari = 1 bulan penuh
	assert.Equal(t, int64(20), Accrue(p, 1000, due, date(2025, time.August, 2)))
	// telat 30 hari masih 1 bulan
	assert.Equal(t, int64(20), Accrue(p, 1000, due, date(2025, time.August, 31)))
	// telat 31 hari = 2 bulan
	assert.Equal(t, int64(40), Accrue(p, 1000, due, date(2025, time.September, 1)))
}

func TestAccrue_NilPolicyOrSettled(t *testing.T) {
	due := date(2025, time.August, 1)
	assert.Equal(t, int64(0), Accrue(nil, 1000, due, date(2025, time.December, 1)))
	assert.Equal(t, int64(0), Accrue(dailyPolicy("0.01", 0, nil), 0, due, date(2025, time.December, 1)))
}

func TestAccrue_RoundingHalfUp(t *testing.T) {
	due := date(2025, time.August, 1)
	// 0.5% dari 333 = 1.665 → 2 per hari... dihitung agregat: 3 hari = 4.995 → 5
	p := dailyPolicy("0.005", 0, nil)
	assert.Equal(t, int64(5), Accrue(p, 333, due, date(2025, time.August, 4)))
}
