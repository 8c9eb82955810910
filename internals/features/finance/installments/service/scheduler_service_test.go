package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calendarService "sekolahku_backend/internals/features/academics/calendar/service"
	concessionService "sekolahku_backend/internals/features/finance/concessions/service"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSplitAmount_RemainderToLast(t *testing.T) {
	parts := SplitAmount(10_000, 3)
	require.Len(t, parts, 3)
	assert.Equal(t, []int64{3333, 3333, 3334}, parts)

	var sum int64
	for _, p := range parts {
		sum += p
	}
	assert.Equal(t, int64(10_000), sum)
}

func TestSplitAmount_ExactDivision(t *testing.T) {
	assert.Equal(t, []int64{2500, 2500, 2500, 2500}, SplitAmount(10_000, 4))
}

func TestSplitAmount_Zero(t *testing.T) {
	assert.Equal(t, []int64{0, 0, 0}, SplitAmount(0, 3))
}

func TestPlanCount(t *testing.T) {
	assert.Equal(t, 1, PlanCount("lump_sum"))
	assert.Equal(t, 2, PlanCount("half_yearly"))
	assert.Equal(t, 3, PlanCount("term"))
	assert.Equal(t, 4, PlanCount("quarterly"))
	assert.Equal(t, 12, PlanCount("monthly"))
	assert.Equal(t, 3, PlanCount("")) // fallback
}

func TestBuildDueDates_EvenlySpaced(t *testing.T) {
	cal := calendarService.NewHolidayCalendar(nil)
	// 1 Juli 2025 = Selasa
	dues := BuildDueDates(date(2025, time.July, 1), 4, cal)
	require.Len(t, dues, 4)
	assert.Equal(t, date(2025, time.July, 1), dues[0])
	assert.Equal(t, date(2025, time.October, 1), dues[1])
	assert.Equal(t, date(2026, time.January, 1), dues[2])
	assert.Equal(t, date(2026, time.April, 1), dues[3])
}

func TestBuildDueDates_RollsWeekendAndHoliday(t *testing.T) {
	// 1 Nov 2025 = Sabtu → Senin 3 Nov; tapi 3 Nov libur → 4 Nov
	cal := calendarService.NewHolidayCalendar([]time.Time{date(2025, time.November, 3)})
	dues := BuildDueDates(date(2025, time.November, 1), 1, cal)
	require.Len(t, dues, 1)
	assert.Equal(t, date(2025, time.November, 4), dues[0])
}

func TestPlanInstallments_PerHeadPlan(t *testing.T) {
	cal := calendarService.NewHolidayCalendar(nil)
	tuitionID := uuid.New()
	examID := uuid.New()

	heads := []concessionService.DiscountedHead{
		{HeadID: tuitionID, HeadCode: "TUITION", NetAmountIDR: 1_200_000},
		{HeadID: examID, HeadCode: "EXAM", NetAmountIDR: 150_000},
	}
	plans := map[uuid.UUID]string{
		tuitionID: "monthly",
		examID:    "lump_sum",
	}

	out := PlanInstallments(heads, plans, date(2025, time.July, 1), cal)
	require.Len(t, out, 13) // 12 bulanan + 1 lump sum

	var tuitionSum int64
	for _, p := range out {
		if p.FeeHeadID == tuitionID {
			tuitionSum += p.AmountIDR
		}
	}
	assert.Equal(t, int64(1_200_000), tuitionSum)

	last := out[12]
	assert.Equal(t, examID, last.FeeHeadID)
	assert.Equal(t, 1, last.Seq)
	assert.Equal(t, int64(150_000), last.AmountIDR)
}

func TestPlanInstallments_ZeroNetGetsSingleInstallment(t *testing.T) {
	cal := calendarService.NewHolidayCalendar(nil)
	id := uuid.New()

	heads := []concessionService.DiscountedHead{
		{HeadID: id, HeadCode: "TUITION", NetAmountIDR: 0},
	}
	out := PlanInstallments(heads, map[uuid.UUID]string{id: "monthly"}, date(2025, time.July, 1), cal)
	require.Len(t, out, 1)
	assert.Equal(t, int64(0), out[0].AmountIDR)
}
