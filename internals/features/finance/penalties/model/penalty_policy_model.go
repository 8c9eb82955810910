// file: internals/features/finance/penalties/model/penalty_policy_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// MODEL penalty_policies — aturan denda keterlambatan per pos.
// Satu policy per pos; pos tanpa policy = tanpa denda.
// =========================================================

const (
	PenaltyModeDaily   = "daily"
	PenaltyModeMonthly = "monthly"
)

type PenaltyPolicyModel struct {
	// PK
	PenaltyPolicyID uuid.UUID `json:"penalty_policy_id" gorm:"column:penalty_policy_id;type:uuid;default:gen_random_uuid();primaryKey"`

	PenaltyPolicyFeeHeadID uuid.UUID `json:"penalty_policy_fee_head_id" gorm:"column:penalty_policy_fee_head_id;type:uuid;not null;uniqueIndex:uq_penalty_policy_head"`

	// mode daily: rate per hari; mode monthly: rate per bulan (bulan berjalan
	// dihitung penuh)
	PenaltyPolicyMode string          `json:"penalty_policy_mode" gorm:"column:penalty_policy_mode;type:varchar(10);not null"`
	PenaltyPolicyRate decimal.Decimal `json:"penalty_policy_rate" gorm:"column:penalty_policy_rate;type:numeric(8,5);not null"`

	// Grace: hari pertama kena denda = due + grace + 1
	PenaltyPolicyGraceDays int `json:"penalty_policy_grace_days" gorm:"column:penalty_policy_grace_days;not null;default:0"`

	// Plafon denda per cicilan; nil = tanpa plafon
	PenaltyPolicyCapIDR *int64 `json:"penalty_policy_cap_idr,omitempty" gorm:"column:penalty_policy_cap_idr;type:bigint;check:penalty_policy_cap_idr>=0"`

	PenaltyPolicyIsActive bool `json:"penalty_policy_is_active" gorm:"column:penalty_policy_is_active;not null;default:true"`

	// Timestamps
	PenaltyPolicyCreatedAt time.Time      `json:"penalty_policy_created_at" gorm:"column:penalty_policy_created_at;not null;default:now()"`
	PenaltyPolicyUpdatedAt time.Time      `json:"penalty_policy_updated_at" gorm:"column:penalty_policy_updated_at;not null;default:now()"`
	PenaltyPolicyDeletedAt gorm.DeletedAt `json:"-" gorm:"column:penalty_policy_deleted_at;index"`
}

func (PenaltyPolicyModel) TableName() string { return "penalty_policies" }

func (m *PenaltyPolicyModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.PenaltyPolicyCreatedAt.IsZero() {
		m.PenaltyPolicyCreatedAt = now
	}
	m.PenaltyPolicyUpdatedAt = now
	return nil
}

func (m *PenaltyPolicyModel) BeforeUpdate(tx *gorm.DB) error {
	m.PenaltyPolicyUpdatedAt = time.Now()
	return nil
}
