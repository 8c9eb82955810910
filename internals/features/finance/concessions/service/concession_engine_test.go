package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "sekolahku_backend/internals/features/finance/concessions/model"
	structureService "sekolahku_backend/internals/features/finance/fee_structures/service"
)

func head(code string, amount int64) structureService.ResolvedHead {
	return structureService.ResolvedHead{
		HeadID:    uuid.New(),
		HeadCode:  code,
		HeadType:  "tuition",
		Priority:  10,
		AmountIDR: amount,
	}
}

func fixed(amount int64) ConcessionInput {
	return ConcessionInput{ConcessionID: uuid.New(), Kind: model.ConcessionKindFixed, AmountIDR: amount}
}

func percent(p string) ConcessionInput {
	return ConcessionInput{ConcessionID: uuid.New(), Kind: model.ConcessionKindPercent, Percent: decimal.RequireFromString(p)}
}

func TestApplyConcessions_FixedBeforePercent(t *testing.T) {
	// 1000 − 100 = 900, lalu 10% → 900 − 90 = 810.
	// Urutan input dibalik pun hasil sama: fixed selalu lebih dulu.
	schedule := []structureService.ResolvedHead{head("TUITION", 1000)}

	out := ApplyConcessions(schedule, []ConcessionInput{percent("10"), fixed(100)})
	require.Len(t, out, 1)
	assert.Equal(t, int64(810), out[0].NetAmountIDR)
	assert.Equal(t, int64(190), out[0].DiscountIDR)
	assert.False(t, out[0].Clamped)
}

func TestApplyConcessions_SequentialPercents(t *testing.T) {
	// 1000 → −10% = 900 → −20% = 720 (bukan 1000−300=700)
	schedule := []structureService.ResolvedHead{head("TUITION", 1000)}

	out := ApplyConcessions(schedule, []ConcessionInput{percent("10"), percent("20")})
	require.Len(t, out, 1)
	assert.Equal(t, int64(720), out[0].NetAmountIDR)
}

func TestApplyConcessions_ClampToZero(t *testing.T) {
	schedule := []structureService.ResolvedHead{head("EXAM", 100_000)}

	out := ApplyConcessions(schedule, []ConcessionInput{fixed(150_000)})
	require.Len(t, out, 1)
	assert.Equal(t, int64(0), out[0].NetAmountIDR)
	assert.Equal(t, int64(100_000), out[0].DiscountIDR)
	assert.True(t, out[0].Clamped)
}

func TestApplyConcessions_HeadScoped(t *testing.T) {
	tuition := head("TUITION", 1_000_000)
	exam := head("EXAM", 200_000)

	scoped := fixed(100_000)
	scoped.FeeHeadID = &tuition.HeadID

	out := ApplyConcessions([]structureService.ResolvedHead{tuition, exam}, []ConcessionInput{scoped})
	require.Len(t, out, 2)
	assert.Equal(t, int64(900_000), out[0].NetAmountIDR)
	assert.Equal(t, int64(200_000), out[1].NetAmountIDR) // tidak kena
}

func TestApplyConcessions_RoundingHalfUp(t *testing.T) {
	// 12.5% dari 333 = 41.625 → 42
	schedule := []structureService.ResolvedHead{head("LAB", 333)}

	out := ApplyConcessions(schedule, []ConcessionInput{percent("12.5")})
	require.Len(t, out, 1)
	assert.Equal(t, int64(333-42), out[0].NetAmountIDR)
}

func TestApplyConcessions_NoConcessions(t *testing.T) {
	schedule := []structureService.ResolvedHead{head("TUITION", 500_000)}

	out := ApplyConcessions(schedule, nil)
	require.Len(t, out, 1)
	assert.Equal(t, int64(500_000), out[0].NetAmountIDR)
	assert.Zero(t, out[0].DiscountIDR)
}
