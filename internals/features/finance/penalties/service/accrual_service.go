// file: internals/features/finance/penalties/service/accrual_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/penalties/model"
)

// PolicyInput: policy yang sudah dinormalisasi untuk perhitungan murni.
type PolicyInput struct {
	Mode      string
	Rate      decimal.Decimal
	GraceDays int
	CapIDR    *int64
}

// OverdueDays: jumlah hari kena denda pada asOf. Grace inklusif — hari
// pertama berdenda adalah due + grace + 1. Jam diabaikan, hitung per tanggal.
func OverdueDays(due, asOf time.Time, graceDays int) int {
	d := int(truncateToDate(asOf).Sub(truncateToDate(due)).Hours()/24) - graceDays
	if d < 0 {
		return 0
	}
	return d
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Accrue menghitung denda satu cicilan pada asOf. Tanpa policy = tanpa
// denda (0, dengan warning dari pemanggil). Mode monthly membulatkan bulan
// berjalan ke atas: telat 1 hari = 1 bulan penuh. Murni — tanpa DB.
func Accrue(policy *PolicyInput, outstandingIDR int64, due, asOf time.Time) int64 {
	if policy == nil || outstandingIDR <= 0 {
		return 0
	}

	days := OverdueDays(due, asOf, policy.GraceDays)
	if days == 0 {
		return 0
	}

	var periods int64
	switch policy.Mode {
	case model.PenaltyModeDaily:
		periods = int64(days)
	case model.PenaltyModeMonthly:
		periods = int64((days + 29) / 30)
	default:
		log.Printf("[WARN] penalty mode tidak dikenal %q, denda 0", policy.Mode)
		return 0
	}

	penalty := decimal.NewFromInt(outstandingIDR).
		Mul(policy.Rate).
		Mul(decimal.NewFromInt(periods)).
		Round(0).
		IntPart()

	if policy.CapIDR != nil && penalty > *policy.CapIDR {
		penalty = *policy.CapIDR
	}
	return penalty
}

// LoadPolicies: policy aktif per pos.
func LoadPolicies(ctx context.Context, db *gorm.DB) (map[uuid.UUID]PolicyInput, error) {
	var rows []model.PenaltyPolicyModel
	if err := db.WithContext(ctx).
		Where("penalty_policy_is_active").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]PolicyInput, len(rows))
	for _, r := range rows {
		out[r.PenaltyPolicyFeeHeadID] = PolicyInput{
			Mode:      r.PenaltyPolicyMode,
			Rate:      r.PenaltyPolicyRate,
			GraceDays: r.PenaltyPolicyGraceDays,
			CapIDR:    r.PenaltyPolicyCapIDR,
		}
	}
	return out, nil
}

// AccrueForHead: denda satu cicilan memakai peta policy; pos tanpa policy
// di-log sekali dan dihitung 0.
func AccrueForHead(policies map[uuid.UUID]PolicyInput, headID uuid.UUID, headCode string, outstandingIDR int64, due, asOf time.Time) int64 {
	p, ok := policies[headID]
	if !ok {
		if outstandingIDR > 0 && truncateToDate(asOf).After(truncateToDate(due)) {
			log.Printf("[WARN] pos %s telat tapi tanpa penalty policy, denda 0", headCode)
		}
		return 0
	}
	return Accrue(&p, outstandingIDR, due, asOf)
}
