package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	penaltyModel "sekolahku_backend/internals/features/finance/penalties/model"
	penaltyService "sekolahku_backend/internals/features/finance/penalties/service"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildLedgerLines_GroupsPerHead(t *testing.T) {
	tuition := uuid.New()
	exam := uuid.New()
	asOf := date(2025, time.August, 1)

	rows := []InstallmentRow{
		{HeadID: tuition, HeadCode: "TUITION", HeadType: "tuition", Priority: 10, Seq: 1, AmountIDR: 400_000, SettledIDR: 400_000, DueDate: date(2025, time.July, 1)},
		{HeadID: tuition, HeadCode: "TUITION", HeadType: "tuition", Priority: 10, Seq: 2, AmountIDR: 400_000, SettledIDR: 150_000, DueDate: date(2025, time.October, 1)},
		{HeadID: exam, HeadCode: "EXAM", HeadType: "exam", Priority: 30, Seq: 1, AmountIDR: 150_000, SettledIDR: 0, DueDate: date(2025, time.July, 1)},
	}

	lines := BuildLedgerLines(rows, nil, asOf)
	require.Len(t, lines, 2)

	// urut prioritas pos
	assert.Equal(t, "TUITION", lines[0].HeadCode)
	assert.Equal(t, int64(800_000), lines[0].DueIDR)
	assert.Equal(t, int64(550_000), lines[0].PaidIDR)
	assert.Equal(t, int64(250_000), lines[0].OutstandingIDR)

	assert.Equal(t, "EXAM", lines[1].HeadCode)
	assert.Equal(t, int64(150_000), lines[1].OutstandingIDR)
	assert.Zero(t, lines[1].PenaltyIDR) // tanpa policy = tanpa denda
}

func TestBuildLedgerLines_PenaltyPerInstallment(t *testing.T) {
	tuition := uuid.New()
	asOf := date(2025, time.August, 11)

	policies := map[uuid.UUID]penaltyService.PolicyInput{
		tuition: {
			Mode:      penaltyModel.PenaltyModeDaily,
			Rate:      decimal.RequireFromString("0.001"), // 0.1%/hari
			GraceDays: 0,
		},
	}

	rows := []InstallmentRow{
		// telat 10 hari, outstanding 100_000 → 10 × 100 = 1000
		{HeadID: tuition, HeadCode: "TUITION", HeadType: "tuition", Priority: 10, Seq: 1, AmountIDR: 100_000, SettledIDR: 0, DueDate: date(2025, time.August, 1)},
		// belum jatuh tempo → 0
		{HeadID: tuition, HeadCode: "TUITION", HeadType: "tuition", Priority: 10, Seq: 2, AmountIDR: 100_000, SettledIDR: 0, DueDate: date(2025, time.November, 1)},
		// sudah lunas → 0 walau lewat jatuh tempo
		{HeadID: tuition, HeadCode: "TUITION", HeadType: "tuition", Priority: 10, Seq: 3, AmountIDR: 100_000, SettledIDR: 100_000, DueDate: date(2025, time.July, 1)},
	}

	lines := BuildLedgerLines(rows, policies, asOf)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1000), lines[0].PenaltyIDR)
}

func TestBuildLedgerLines_Empty(t *testing.T) {
	lines := BuildLedgerLines(nil, nil, date(2025, time.August, 1))
	assert.Empty(t, lines)
}

func TestBuildOverdueSummaries_PerStudentWithPenalty(t *testing.T) {
	tuition := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	class := uuid.New()
	asOf := date(2025, time.August, 11)

	policies := map[uuid.UUID]penaltyService.PolicyInput{
		tuition: {
			Mode:      penaltyModel.PenaltyModeDaily,
			Rate:      decimal.RequireFromString("0.001"),
			GraceDays: 0,
		},
	}

	rows := []OverdueInstallmentRow{
		// alice: dua cicilan telat
		{StudentID: alice, ClassID: class, HeadID: tuition, HeadCode: "TUITION", AmountIDR: 100_000, SettledIDR: 0, DueDate: date(2025, time.August, 1)},
		{StudentID: alice, ClassID: class, HeadID: tuition, HeadCode: "TUITION", AmountIDR: 100_000, SettledIDR: 60_000, DueDate: date(2025, time.July, 1)},
		// bob: satu cicilan, tunggakan lebih kecil
		{StudentID: bob, ClassID: class, HeadID: tuition, HeadCode: "TUITION", AmountIDR: 50_000, SettledIDR: 0, DueDate: date(2025, time.August, 1)},
	}

	out := BuildOverdueSummaries(rows, policies, asOf)
	require.Len(t, out, 2)

	// urut tunggakan terbesar → alice dulu
	assert.Equal(t, alice, out[0].StudentID)
	assert.Equal(t, 2, out[0].OverdueCount)
	assert.Equal(t, int64(140_000), out[0].OverdueIDR)
	assert.Equal(t, date(2025, time.July, 1), out[0].OldestDueDate)
	// 100_000 × 0.001 × 10 hari + 40_000 × 0.001 × 41 hari
	assert.Equal(t, int64(1000+1640), out[0].PenaltyIDR)

	assert.Equal(t, bob, out[1].StudentID)
	assert.Equal(t, int64(50_000), out[1].OverdueIDR)
	assert.Equal(t, int64(500), out[1].PenaltyIDR)
}
