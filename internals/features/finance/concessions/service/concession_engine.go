// file: internals/features/finance/concessions/service/concession_engine.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/concessions/model"
	structureService "sekolahku_backend/internals/features/finance/fee_structures/service"
)

var hundred = decimal.NewFromInt(100)

// ConcessionInput: potongan yang sudah dinormalisasi, siap dihitung.
type ConcessionInput struct {
	ConcessionID uuid.UUID
	FeeHeadID    *uuid.UUID // nil = berlaku semua pos
	Kind         string     // fixed | percent
	AmountIDR    int64
	Percent      decimal.Decimal
}

// DiscountedHead: satu pos setelah konsesi.
type DiscountedHead struct {
	HeadID       uuid.UUID `json:"fee_head_id"`
	HeadCode     string    `json:"fee_head_code"`
	HeadType     string    `json:"fee_head_type"`
	Priority     int       `json:"fee_head_priority"`
	GrossIDR     int64     `json:"gross_amount_idr"`
	DiscountIDR  int64     `json:"discount_idr"`
	NetAmountIDR int64     `json:"net_amount_idr"`
	Clamped      bool      `json:"clamped,omitempty"` // potongan melebihi tagihan, dipangkas ke 0
}

// ApplyConcessions menerapkan potongan per pos:
//  1. semua fixed dijumlah dan dikurangkan lebih dulu,
//  2. persen diterapkan berurutan atas sisa (bukan atas gross),
//  3. hasil negatif dipangkas ke 0 dan ditandai Clamped.
//
// Murni — tanpa DB.
func ApplyConcessions(schedule []structureService.ResolvedHead, concessions []ConcessionInput) []DiscountedHead {
	out := make([]DiscountedHead, 0, len(schedule))
	for _, h := range schedule {
		net := h.AmountIDR
		clamped := false

		// tahap 1: fixed
		for _, cc := range concessions {
			if cc.Kind != model.ConcessionKindFixed || !appliesTo(cc, h.HeadID) {
				continue
			}
			net -= cc.AmountIDR
		}

		// tahap 2: percent, berurutan atas sisa
		for _, cc := range concessions {
			if cc.Kind != model.ConcessionKindPercent || !appliesTo(cc, h.HeadID) {
				continue
			}
			if net <= 0 {
				break
			}
			cut := decimal.NewFromInt(net).Mul(cc.Percent).Div(hundred).Round(0)
			net -= cut.IntPart()
		}

		if net < 0 {
			net = 0
			clamped = true
		}

		out = append(out, DiscountedHead{
			HeadID:       h.HeadID,
			HeadCode:     h.HeadCode,
			HeadType:     h.HeadType,
			Priority:     h.Priority,
			GrossIDR:     h.AmountIDR,
			DiscountIDR:  h.AmountIDR - net,
			NetAmountIDR: net,
			Clamped:      clamped,
		})
	}
	return out
}

func appliesTo(cc ConcessionInput, headID uuid.UUID) bool {
	return cc.FeeHeadID == nil || *cc.FeeHeadID == headID
}

// LoadConcessions membaca konsesi aktif siswa yang berlaku pada asOf.
func LoadConcessions(ctx context.Context, db *gorm.DB, studentID, academicYearID uuid.UUID, asOf time.Time) ([]ConcessionInput, error) {
	var rows []model.ConcessionModel
	if err := db.WithContext(ctx).
		Where(`concession_student_id = ?
			AND concession_academic_year_id = ?
			AND concession_is_active
			AND (concession_effective_from IS NULL OR concession_effective_from <= ?)
			AND (concession_effective_to IS NULL OR concession_effective_to >= ?)`,
			studentID, academicYearID, asOf, asOf).
		Order("concession_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ConcessionInput, 0, len(rows))
	for _, r := range rows {
		in := ConcessionInput{
			ConcessionID: r.ConcessionID,
			FeeHeadID:    r.ConcessionFeeHeadID,
			Kind:         r.ConcessionKind,
		}
		switch r.ConcessionKind {
		case model.ConcessionKindFixed:
			if r.ConcessionAmountIDR == nil {
				log.Printf("[WARN] concession %s kind=fixed tanpa nominal, dilewati", r.ConcessionID)
				continue
			}
			in.AmountIDR = *r.ConcessionAmountIDR
		case model.ConcessionKindPercent:
			if r.ConcessionPercent == nil {
				log.Printf("[WARN] concession %s kind=percent tanpa persen, dilewati", r.ConcessionID)
				continue
			}
			in.Percent = *r.ConcessionPercent
		default:
			log.Printf("[WARN] concession %s kind tidak dikenal: %s", r.ConcessionID, r.ConcessionKind)
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

// ResolveNetSchedule: jadwal biaya siswa setelah konsesi — pipeline
// structure resolver → concession engine.
func ResolveNetSchedule(ctx context.Context, db *gorm.DB, studentID, academicYearID uuid.UUID, asOf time.Time) ([]DiscountedHead, error) {
	schedule, err := structureService.ResolveStructure(ctx, db, studentID, academicYearID)
	if err != nil {
		return nil, err
	}

	concessions, err := LoadConcessions(ctx, db, studentID, academicYearID, asOf)
	if err != nil {
		return nil, err
	}

	out := ApplyConcessions(schedule, concessions)
	for _, h := range out {
		if h.Clamped {
			log.Printf("[WARN] konsesi siswa %s pos %s melebihi tagihan, net dipangkas ke 0", studentID, h.HeadCode)
		}
	}
	return out, nil
}
