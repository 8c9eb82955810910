// file: internals/features/finance/installments/model/installment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL installments — cicilan tagihan per siswa per pos.
// Amount = pokok setelah konsesi; SettledIDR = cache hasil
// alokasi pembayaran (sumber kebenaran tetap payment_allocations).
// =========================================================

type InstallmentModel struct {
	// PK
	InstallmentID uuid.UUID `json:"installment_id" gorm:"column:installment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Scope (unik per siswa+tahun+pos+seq → generate idempoten)
	InstallmentStudentID      uuid.UUID `json:"installment_student_id" gorm:"column:installment_student_id;type:uuid;not null;uniqueIndex:uq_installment_slot,priority:1;index:idx_installment_student_year,priority:1"`
	InstallmentAcademicYearID uuid.UUID `json:"installment_academic_year_id" gorm:"column:installment_academic_year_id;type:uuid;not null;uniqueIndex:uq_installment_slot,priority:2;index:idx_installment_student_year,priority:2"`
	InstallmentFeeHeadID      uuid.UUID `json:"installment_fee_head_id" gorm:"column:installment_fee_head_id;type:uuid;not null;uniqueIndex:uq_installment_slot,priority:3"`
	InstallmentSeq            int       `json:"installment_seq" gorm:"column:installment_seq;not null;uniqueIndex:uq_installment_slot,priority:4"`

	// Nominal
	InstallmentAmountIDR  int64 `json:"installment_amount_idr" gorm:"column:installment_amount_idr;type:bigint;not null;check:installment_amount_idr>=0"`
	InstallmentSettledIDR int64 `json:"installment_settled_idr" gorm:"column:installment_settled_idr;type:bigint;not null;default:0"`

	// Jatuh tempo (sudah digeser ke hari kerja)
	InstallmentDueDate time.Time `json:"installment_due_date" gorm:"column:installment_due_date;type:date;not null;index"`

	// Timestamps
	InstallmentCreatedAt time.Time      `json:"installment_created_at" gorm:"column:installment_created_at;not null;default:now()"`
	InstallmentUpdatedAt time.Time      `json:"installment_updated_at" gorm:"column:installment_updated_at;not null;default:now()"`
	InstallmentDeletedAt gorm.DeletedAt `json:"-" gorm:"column:installment_deleted_at;index"`
}

func (InstallmentModel) TableName() string { return "installments" }

func (m *InstallmentModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.InstallmentCreatedAt.IsZero() {
		m.InstallmentCreatedAt = now
	}
	m.InstallmentUpdatedAt = now
	return nil
}

func (m *InstallmentModel) BeforeUpdate(tx *gorm.DB) error {
	m.InstallmentUpdatedAt = time.Now()
	return nil
}

// OutstandingIDR: sisa pokok yang belum dialokasikan.
func (m *InstallmentModel) OutstandingIDR() int64 {
	return m.InstallmentAmountIDR - m.InstallmentSettledIDR
}
