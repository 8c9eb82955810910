// file: internals/features/finance/payments/model/payment_allocation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL payment_allocations — pecahan satu payment yang
// menempel ke satu installment. Sumber kebenaran pelunasan;
// installment_settled_idr hanya cache turunannya.
// =========================================================

type PaymentAllocationModel struct {
	// PK
	AllocationID uuid.UUID `json:"allocation_id" gorm:"column:allocation_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Sumber dana & tujuan
	AllocationPaymentID     uuid.UUID `json:"allocation_payment_id" gorm:"column:allocation_payment_id;type:uuid;not null;index"`
	AllocationInstallmentID uuid.UUID `json:"allocation_installment_id" gorm:"column:allocation_installment_id;type:uuid;not null;index"`

	AllocationAmountIDR int64 `json:"allocation_amount_idr" gorm:"column:allocation_amount_idr;type:bigint;not null;check:allocation_amount_idr>0"`

	// Timestamps (append-only, tanpa soft delete)
	AllocationCreatedAt time.Time `json:"allocation_created_at" gorm:"column:allocation_created_at;not null;default:now()"`
}

func (PaymentAllocationModel) TableName() string { return "payment_allocations" }

func (m *PaymentAllocationModel) BeforeCreate(tx *gorm.DB) error {
	if m.AllocationCreatedAt.IsZero() {
		m.AllocationCreatedAt = time.Now()
	}
	return nil
}
