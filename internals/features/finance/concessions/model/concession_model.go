// file: internals/features/finance/concessions/model/concession_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// MODEL concessions — potongan biaya per siswa.
// kind=fixed pakai nominal, kind=percent pakai persen.
// FeeHeadID nil berarti berlaku untuk semua pos.
// =========================================================

const (
	ConcessionKindFixed   = "fixed"
	ConcessionKindPercent = "percent"
)

type ConcessionModel struct {
	// PK
	ConcessionID uuid.UUID `json:"concession_id" gorm:"column:concession_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Scope
	ConcessionStudentID      uuid.UUID  `json:"concession_student_id" gorm:"column:concession_student_id;type:uuid;not null;index:idx_concession_student_year,priority:1"`
	ConcessionAcademicYearID uuid.UUID  `json:"concession_academic_year_id" gorm:"column:concession_academic_year_id;type:uuid;not null;index:idx_concession_student_year,priority:2"`
	ConcessionFeeHeadID      *uuid.UUID `json:"concession_fee_head_id,omitempty" gorm:"column:concession_fee_head_id;type:uuid;index"` // nil = semua pos

	// Besaran (salah satu terisi sesuai kind)
	ConcessionKind      string           `json:"concession_kind" gorm:"column:concession_kind;type:varchar(10);not null"`
	ConcessionAmountIDR *int64           `json:"concession_amount_idr,omitempty" gorm:"column:concession_amount_idr;type:bigint;check:concession_amount_idr>=0"`
	ConcessionPercent   *decimal.Decimal `json:"concession_percent,omitempty" gorm:"column:concession_percent;type:numeric(5,2)"`

	// Alasan pemberian (beasiswa, anak pegawai, dsb)
	ConcessionReason string `json:"concession_reason" gorm:"column:concession_reason;type:varchar(200)"`

	// Masa berlaku
	ConcessionEffectiveFrom *time.Time `json:"concession_effective_from,omitempty" gorm:"column:concession_effective_from;type:date"`
	ConcessionEffectiveTo   *time.Time `json:"concession_effective_to,omitempty" gorm:"column:concession_effective_to;type:date"`

	ConcessionIsActive bool `json:"concession_is_active" gorm:"column:concession_is_active;not null;default:true;index"`

	// Timestamps
	ConcessionCreatedAt time.Time      `json:"concession_created_at" gorm:"column:concession_created_at;not null;default:now()"`
	ConcessionUpdatedAt time.Time      `json:"concession_updated_at" gorm:"column:concession_updated_at;not null;default:now()"`
	ConcessionDeletedAt gorm.DeletedAt `json:"-" gorm:"column:concession_deleted_at;index"`
}

func (ConcessionModel) TableName() string { return "concessions" }

func (m *ConcessionModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.ConcessionCreatedAt.IsZero() {
		m.ConcessionCreatedAt = now
	}
	m.ConcessionUpdatedAt = now
	return nil
}

func (m *ConcessionModel) BeforeUpdate(tx *gorm.DB) error {
	m.ConcessionUpdatedAt = time.Now()
	return nil
}
