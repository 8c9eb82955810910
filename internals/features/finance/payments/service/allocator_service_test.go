package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "sekolahku_backend/internals/features/finance/payments/model"
)

func day(d int) time.Time {
	return time.Date(2025, time.July, d, 0, 0, 0, 0, time.UTC)
}

func inst(headID uuid.UUID, priority, dueDay int, outstanding int64) OutstandingInstallment {
	return OutstandingInstallment{
		InstallmentID:  uuid.New(),
		FeeHeadID:      headID,
		HeadPriority:   priority,
		DueDate:        day(dueDay),
		OutstandingIDR: outstanding,
	}
}

func TestBuildAllocationPlan_PartialFill(t *testing.T) {
	head := uuid.New()
	payID := uuid.New()
	is := []OutstandingInstallment{
		inst(head, 10, 1, 1000),
		inst(head, 10, 10, 1000),
		inst(head, 10, 20, 1000),
	}
	credits := []CreditSource{{PaymentID: payID, AvailableIDR: 1500, PaidAt: day(5)}}

	lines, leftover := BuildAllocationPlan(credits, is, nil)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1000), lines[0].AmountIDR)
	assert.Equal(t, is[0].InstallmentID, lines[0].InstallmentID)
	assert.Equal(t, int64(500), lines[1].AmountIDR)
	assert.Equal(t, is[1].InstallmentID, lines[1].InstallmentID)
	assert.Zero(t, leftover)
}

func TestBuildAllocationPlan_DueDateBeforePriority(t *testing.T) {
	payID := uuid.New()
	tuition := inst(uuid.New(), 10, 20, 500) // prioritas tinggi, jatuh tempo belakangan
	exam := inst(uuid.New(), 30, 1, 500)     // jatuh tempo duluan

	lines, _ := BuildAllocationPlan(
		[]CreditSource{{PaymentID: payID, AvailableIDR: 500, PaidAt: day(2)}},
		[]OutstandingInstallment{tuition, exam}, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, exam.InstallmentID, lines[0].InstallmentID)
}

func TestBuildAllocationPlan_PriorityBreaksDueDateTie(t *testing.T) {
	payID := uuid.New()
	tuition := inst(uuid.New(), 10, 1, 500)
	sports := inst(uuid.New(), 90, 1, 500)

	lines, _ := BuildAllocationPlan(
		[]CreditSource{{PaymentID: payID, AvailableIDR: 500, PaidAt: day(2)}},
		[]OutstandingInstallment{sports, tuition}, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, tuition.InstallmentID, lines[0].InstallmentID)
}

func TestBuildAllocationPlan_OldestCreditFirst(t *testing.T) {
	oldPay := uuid.New()
	newPay := uuid.New()
	target := inst(uuid.New(), 10, 1, 700)

	credits := []CreditSource{
		{PaymentID: newPay, AvailableIDR: 600, PaidAt: day(10)},
		{PaymentID: oldPay, AvailableIDR: 200, PaidAt: day(3)},
	}
	lines, leftover := BuildAllocationPlan(credits, []OutstandingInstallment{target}, nil)
	require.Len(t, lines, 2)

	// kredit tertua habis duluan, baris alokasi tetap menunjuk payment asal
	assert.Equal(t, oldPay, lines[0].PaymentID)
	assert.Equal(t, int64(200), lines[0].AmountIDR)
	assert.Equal(t, newPay, lines[1].PaymentID)
	assert.Equal(t, int64(500), lines[1].AmountIDR)
	assert.Equal(t, int64(100), leftover)
}

func TestBuildAllocationPlan_HeadHint(t *testing.T) {
	payID := uuid.New()
	transport := uuid.New()
	tuitionInst := inst(uuid.New(), 10, 1, 1000)
	transportInst := inst(transport, 110, 10, 300)

	lines, leftover := BuildAllocationPlan(
		[]CreditSource{{PaymentID: payID, AvailableIDR: 500, PaidAt: day(2)}},
		[]OutstandingInstallment{tuitionInst, transportInst}, &transport)
	require.Len(t, lines, 1)
	assert.Equal(t, transportInst.InstallmentID, lines[0].InstallmentID)
	assert.Equal(t, int64(300), lines[0].AmountIDR)
	assert.Equal(t, int64(200), leftover)
}

func TestBuildAllocationPlan_NoOutstanding(t *testing.T) {
	payID := uuid.New()
	lines, leftover := BuildAllocationPlan(
		[]CreditSource{{PaymentID: payID, AvailableIDR: 500, PaidAt: day(2)}},
		nil, nil)
	assert.Empty(t, lines)
	assert.Equal(t, int64(500), leftover)
}

func TestApplyDebits_ConsumesOldestCreditFirst(t *testing.T) {
	oldPay := uuid.New()
	newPay := uuid.New()
	credits := []CreditSource{
		{PaymentID: newPay, AvailableIDR: 100, PaidAt: day(10)},
		{PaymentID: oldPay, AvailableIDR: 400, PaidAt: day(1)},
	}

	out := ApplyDebits(credits, 400)
	require.Len(t, out, 2)
	assert.Equal(t, oldPay, out[0].PaymentID)
	assert.Zero(t, out[0].AvailableIDR)
	assert.Equal(t, int64(100), out[1].AvailableIDR)
}

func TestApplyDebits_DebitExceedsPriorCredit(t *testing.T) {
	credits := []CreditSource{
		{PaymentID: uuid.New(), AvailableIDR: 400, PaidAt: day(1)},
		{PaymentID: uuid.New(), AvailableIDR: 100, PaidAt: day(10)},
	}

	// koreksi 450 menghabiskan kredit lama dan memotong uang baru
	out := ApplyDebits(credits, 450)
	assert.Zero(t, out[0].AvailableIDR)
	assert.Equal(t, int64(50), out[1].AvailableIDR)
}

func TestApplyDebits_ZeroDebitNoop(t *testing.T) {
	credits := []CreditSource{{PaymentID: uuid.New(), AvailableIDR: 400, PaidAt: day(1)}}
	out := ApplyDebits(credits, 0)
	assert.Equal(t, credits, out)
}

func TestBuildAllocationPlan_AdjustmentDebitsCredit(t *testing.T) {
	// P1 menyisakan kredit 400, lalu adjustment −400 dibukukan, lalu P2=100:
	// hanya 100 uang riil yang boleh teralokasi.
	p1 := uuid.New()
	p2 := uuid.New()
	target := inst(uuid.New(), 10, 1, 1000)

	credits := ApplyDebits([]CreditSource{
		{PaymentID: p1, AvailableIDR: 400, PaidAt: day(1)},
		{PaymentID: p2, AvailableIDR: 100, PaidAt: day(10)},
	}, 400)

	lines, leftover := BuildAllocationPlan(credits, []OutstandingInstallment{target}, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, p2, lines[0].PaymentID)
	assert.Equal(t, int64(100), lines[0].AmountIDR)
	assert.Zero(t, leftover)
}

func TestCheckNotAllocated_RejectsReplay(t *testing.T) {
	now := time.Now()
	p := &model.PaymentModel{PaymentID: uuid.New(), PaymentAllocatedAt: &now}
	assert.ErrorIs(t, CheckNotAllocated(p), ErrAlreadyAllocated)

	p.PaymentAllocatedAt = nil
	assert.NoError(t, CheckNotAllocated(p))
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isSerializationFailure(&pgconn.PgError{Code: "40P01"}))
	// wrapped tetap terdeteksi
	assert.True(t, isSerializationFailure(fmt.Errorf("alokasi: %w", &pgconn.PgError{Code: "40001"})))
	assert.False(t, isSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")))
	assert.False(t, isSerializationFailure(nil))
}
