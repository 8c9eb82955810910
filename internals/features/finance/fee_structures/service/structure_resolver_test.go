package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(code, typ string, priority int, mandatory bool, amount int64, overrides map[string]int64) CandidateHead {
	return CandidateHead{
		HeadID:        uuid.New(),
		HeadCode:      code,
		HeadType:      typ,
		Priority:      priority,
		IsMandatory:   mandatory,
		BaseAmountIDR: amount,
		Overrides:     overrides,
	}
}

func TestBuildSchedule_EmptyCandidates(t *testing.T) {
	_, err := BuildSchedule(nil, "general", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildSchedule_SortedByPriorityThenCode(t *testing.T) {
	cands := []CandidateHead{
		candidate("EXAM", "exam", 30, true, 150_000, nil),
		candidate("TUITION", "tuition", 10, true, 1_200_000, nil),
		candidate("LIB", "library", 30, true, 50_000, nil),
	}

	out, err := BuildSchedule(cands, "general", nil)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "TUITION", out[0].HeadCode)
	assert.Equal(t, "EXAM", out[1].HeadCode) // priority sama → urut kode
	assert.Equal(t, "LIB", out[2].HeadCode)
}

func TestBuildSchedule_CategoryOverride(t *testing.T) {
	cands := []CandidateHead{
		candidate("TUITION", "tuition", 10, true, 1_200_000, map[string]int64{
			"scholarship": 600_000,
			"staff_child": 0,
		}),
	}

	out, err := BuildSchedule(cands, "scholarship", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(600_000), out[0].AmountIDR)

	// override nol tetap dihormati (bukan fallback ke base)
	out, err = BuildSchedule(cands, "staff_child", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out[0].AmountIDR)

	// kategori tanpa override → nominal dasar
	out, err = BuildSchedule(cands, "general", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1_200_000), out[0].AmountIDR)
}

func TestBuildSchedule_OptionalHeadsNeedOptIn(t *testing.T) {
	cands := []CandidateHead{
		candidate("TUITION", "tuition", 10, true, 1_200_000, nil),
		candidate("TRANSPORT", "transport", 110, false, 300_000, nil),
		candidate("HOSTEL", "hostel", 120, false, 900_000, nil),
	}

	// tanpa opt-in: hanya pos wajib
	out, err := BuildSchedule(cands, "general", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "TUITION", out[0].HeadCode)

	// opt-in transport saja (case-insensitive)
	out, err = BuildSchedule(cands, "general", []string{" Transport "})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "TRANSPORT", out[1].HeadCode)
}

func TestBuildSchedule_AllOptionalFilteredStillOK(t *testing.T) {
	// structure ada tapi semua pos opsional & tidak di-opt-in:
	// bukan ErrNotConfigured — jadwalnya memang kosong.
	cands := []CandidateHead{
		candidate("TRANSPORT", "transport", 110, false, 300_000, nil),
	}
	out, err := BuildSchedule(cands, "general", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
