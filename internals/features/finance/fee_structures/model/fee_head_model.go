// file: internals/features/finance/fee_structures/model/fee_head_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL fee_heads — pos biaya (SPP/tuition, transport, dst)
// =========================================================

type FeeHeadModel struct {
	// PK
	FeeHeadID uuid.UUID `json:"fee_head_id" gorm:"column:fee_head_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Identitas
	FeeHeadCode string `json:"fee_head_code" gorm:"column:fee_head_code;type:varchar(20);not null;uniqueIndex:uq_fee_head_code"`
	FeeHeadName string `json:"fee_head_name" gorm:"column:fee_head_name;type:varchar(100);not null"`
	FeeHeadType string `json:"fee_head_type" gorm:"column:fee_head_type;type:varchar(20);not null;index"`

	// Urutan tagih (kecil = duluan; tuition paling depan)
	FeeHeadPriority int `json:"fee_head_priority" gorm:"column:fee_head_priority;type:int;not null;default:999;index"`

	// Applicability per kelas diekspresikan lewat fee_structures (satu baris
	// per kelas), bukan kolom rentang di sini. Pos opsional butuh opt-in siswa.
	FeeHeadIsMandatory bool `json:"fee_head_is_mandatory" gorm:"column:fee_head_is_mandatory;not null;default:true"`

	FeeHeadIsActive bool `json:"fee_head_is_active" gorm:"column:fee_head_is_active;not null;default:true;index"`

	// Timestamps
	FeeHeadCreatedAt time.Time      `json:"fee_head_created_at" gorm:"column:fee_head_created_at;not null;default:now()"`
	FeeHeadUpdatedAt time.Time      `json:"fee_head_updated_at" gorm:"column:fee_head_updated_at;not null;default:now()"`
	FeeHeadDeletedAt gorm.DeletedAt `json:"-" gorm:"column:fee_head_deleted_at;index"`
}

func (FeeHeadModel) TableName() string { return "fee_heads" }

func (m *FeeHeadModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.FeeHeadCreatedAt.IsZero() {
		m.FeeHeadCreatedAt = now
	}
	m.FeeHeadUpdatedAt = now
	return nil
}

func (m *FeeHeadModel) BeforeUpdate(tx *gorm.DB) error {
	m.FeeHeadUpdatedAt = time.Now()
	return nil
}
