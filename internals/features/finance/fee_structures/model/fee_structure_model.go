// file: internals/features/finance/fee_structures/model/fee_structure_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL fee_structures — nominal sebuah pos untuk
// (tahun ajaran, kelas). Dibuat di awal tahun; tidak boleh
// diubah setelah ada installment yang diturunkan darinya —
// tahun baru = structure baru.
// =========================================================

type FeeStructureModel struct {
	// PK
	FeeStructureID uuid.UUID `json:"fee_structure_id" gorm:"column:fee_structure_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Scope (unik per tahun+kelas+pos)
	FeeStructureAcademicYearID uuid.UUID `json:"fee_structure_academic_year_id" gorm:"column:fee_structure_academic_year_id;type:uuid;not null;uniqueIndex:uq_fee_structure_scope,priority:1"`
	FeeStructureClassID        uuid.UUID `json:"fee_structure_class_id" gorm:"column:fee_structure_class_id;type:uuid;not null;uniqueIndex:uq_fee_structure_scope,priority:2;index"`
	FeeStructureFeeHeadID      uuid.UUID `json:"fee_structure_fee_head_id" gorm:"column:fee_structure_fee_head_id;type:uuid;not null;uniqueIndex:uq_fee_structure_scope,priority:3"`

	// Nominal dasar + override per kategori siswa (JSONB: code → nominal)
	FeeStructureBaseAmountIDR     int64          `json:"fee_structure_base_amount_idr" gorm:"column:fee_structure_base_amount_idr;type:bigint;not null;check:fee_structure_base_amount_idr>=0"`
	FeeStructureCategoryOverrides datatypes.JSON `json:"fee_structure_category_overrides,omitempty" gorm:"column:fee_structure_category_overrides;type:jsonb"`

	// Plan default pembagian installment (lump_sum|half_yearly|term|quarterly|monthly)
	FeeStructureDefaultPlan string `json:"fee_structure_default_plan" gorm:"column:fee_structure_default_plan;type:varchar(20);not null;default:'term'"`

	FeeStructureIsActive bool `json:"fee_structure_is_active" gorm:"column:fee_structure_is_active;not null;default:true;index"`

	// Timestamps
	FeeStructureCreatedAt time.Time      `json:"fee_structure_created_at" gorm:"column:fee_structure_created_at;not null;default:now()"`
	FeeStructureUpdatedAt time.Time      `json:"fee_structure_updated_at" gorm:"column:fee_structure_updated_at;not null;default:now()"`
	FeeStructureDeletedAt gorm.DeletedAt `json:"-" gorm:"column:fee_structure_deleted_at;index"`
}

func (FeeStructureModel) TableName() string { return "fee_structures" }

func (m *FeeStructureModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.FeeStructureCreatedAt.IsZero() {
		m.FeeStructureCreatedAt = now
	}
	m.FeeStructureUpdatedAt = now
	return nil
}

func (m *FeeStructureModel) BeforeUpdate(tx *gorm.DB) error {
	m.FeeStructureUpdatedAt = time.Now()
	return nil
}
