// file: internals/features/finance/fee_structures/service/structure_resolver.go
package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollmentService "sekolahku_backend/internals/features/academics/enrollments/service"
	model "sekolahku_backend/internals/features/finance/fee_structures/model"
)

// ErrNotConfigured: tidak ada structure untuk (kelas, tahun). Hard stop —
// tidak boleh fallback diam-diam ke structure tahun lalu.
var ErrNotConfigured = errors.New("fee structure belum dikonfigurasi untuk kelas/tahun ajaran ini")

// CandidateHead: baris mentah hasil join fee_structures × fee_heads.
type CandidateHead struct {
	HeadID        uuid.UUID
	HeadCode      string
	HeadType      string
	Priority      int
	IsMandatory   bool
	BaseAmountIDR int64
	Overrides     map[string]int64 // kategori → nominal pengganti
}

// ResolvedHead: satu pos dalam jadwal biaya siswa, sudah ber-override kategori.
type ResolvedHead struct {
	HeadID    uuid.UUID `json:"fee_head_id"`
	HeadCode  string    `json:"fee_head_code"`
	HeadType  string    `json:"fee_head_type"`
	Priority  int       `json:"fee_head_priority"`
	AmountIDR int64     `json:"amount_idr"`
}

// BuildSchedule menyusun jadwal biaya dari kandidat: override kategori,
// saring pos opsional yang tidak di-opt-in, lalu urutkan by priority.
// Murni — tanpa DB — supaya gampang dites.
func BuildSchedule(candidates []CandidateHead, categoryCode string, optedHeads []string) ([]ResolvedHead, error) {
	if len(candidates) == 0 {
		return nil, ErrNotConfigured
	}

	opted := make(map[string]bool, len(optedHeads))
	for _, h := range optedHeads {
		opted[strings.ToLower(strings.TrimSpace(h))] = true
	}
	cat := strings.ToLower(strings.TrimSpace(categoryCode))

	out := make([]ResolvedHead, 0, len(candidates))
	for _, c := range candidates {
		// pos opsional hanya untuk siswa yang opt-in
		if !c.IsMandatory && !opted[strings.ToLower(c.HeadCode)] {
			continue
		}

		amount := c.BaseAmountIDR
		if c.Overrides != nil {
			if v, ok := c.Overrides[cat]; ok {
				amount = v
			}
		}

		out = append(out, ResolvedHead{
			HeadID:    c.HeadID,
			HeadCode:  c.HeadCode,
			HeadType:  c.HeadType,
			Priority:  c.Priority,
			AmountIDR: amount,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].HeadCode < out[j].HeadCode
	})
	return out, nil
}

// ResolveStructure: enrollment siswa → kandidat structure (kelas, tahun) →
// jadwal biaya terurut. Tahun ajaran parameter eksplisit.
func ResolveStructure(ctx context.Context, db *gorm.DB, studentID, academicYearID uuid.UUID) ([]ResolvedHead, error) {
	enr, err := enrollmentService.ResolveEnrollment(ctx, db, studentID, academicYearID)
	if err != nil {
		return nil, err
	}

	candidates, err := LoadCandidates(ctx, db, enr.ClassID, academicYearID)
	if err != nil {
		return nil, err
	}

	return BuildSchedule(candidates, enr.CategoryCode, enr.OptedHeads)
}

// LoadCandidates membaca structure aktif + head aktif untuk (kelas, tahun).
func LoadCandidates(ctx context.Context, db *gorm.DB, classID, academicYearID uuid.UUID) ([]CandidateHead, error) {
	type row struct {
		HeadID        uuid.UUID `gorm:"column:fee_head_id"`
		HeadCode      string    `gorm:"column:fee_head_code"`
		HeadType      string    `gorm:"column:fee_head_type"`
		Priority      int       `gorm:"column:fee_head_priority"`
		IsMandatory   bool      `gorm:"column:fee_head_is_mandatory"`
		BaseAmountIDR int64     `gorm:"column:fee_structure_base_amount_idr"`
		Overrides     []byte    `gorm:"column:fee_structure_category_overrides"`
	}

	var rows []row
	if err := db.WithContext(ctx).
		Table("fee_structures").
		Select(`fee_heads.fee_head_id, fee_heads.fee_head_code, fee_heads.fee_head_type,
			fee_heads.fee_head_priority, fee_heads.fee_head_is_mandatory,
			fee_structures.fee_structure_base_amount_idr, fee_structures.fee_structure_category_overrides`).
		Joins("JOIN fee_heads ON fee_heads.fee_head_id = fee_structures.fee_structure_fee_head_id").
		Where(`fee_structures.fee_structure_class_id = ?
			AND fee_structures.fee_structure_academic_year_id = ?
			AND fee_structures.fee_structure_is_active
			AND fee_structures.fee_structure_deleted_at IS NULL
			AND fee_heads.fee_head_is_active
			AND fee_heads.fee_head_deleted_at IS NULL`,
			classID, academicYearID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]CandidateHead, 0, len(rows))
	for _, r := range rows {
		var overrides map[string]int64
		if len(r.Overrides) > 0 {
			_ = sonic.Unmarshal(r.Overrides, &overrides)
		}
		out = append(out, CandidateHead{
			HeadID:        r.HeadID,
			HeadCode:      r.HeadCode,
			HeadType:      r.HeadType,
			Priority:      r.Priority,
			IsMandatory:   r.IsMandatory,
			BaseAmountIDR: r.BaseAmountIDR,
			Overrides:     overrides,
		})
	}
	return out, nil
}

// StructureIsFrozen: structure yang sudah menurunkan installment tidak boleh
// diubah lagi (audit trail tahun berjalan).
func StructureIsFrozen(ctx context.Context, db *gorm.DB, st *model.FeeStructureModel) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Table("installments").
		Where(`installment_academic_year_id = ?
			AND installment_fee_head_id = ?
			AND installment_deleted_at IS NULL`,
			st.FeeStructureAcademicYearID, st.FeeStructureFeeHeadID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HeadIsReferenced: fee head dipakai structure hidup → immutable.
func HeadIsReferenced(ctx context.Context, db *gorm.DB, headID uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&model.FeeStructureModel{}).
		Where("fee_structure_fee_head_id = ? AND fee_structure_deleted_at IS NULL", headID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
