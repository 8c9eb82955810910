// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL payments — uang masuk (atau penyesuaian) per siswa.
// Append-only: koreksi lewat kind=adjustment, bukan edit.
// =========================================================

const (
	PaymentKindPayment    = "payment"
	PaymentKindAdjustment = "adjustment"
)

// Moda pembayaran yang diterima kasir.
var PaymentModes = map[string]bool{
	"cash":   true,
	"cheque": true,
	"dd":     true,
	"online": true,
	"upi":    true,
	"card":   true,
}

type PaymentModel struct {
	// PK
	PaymentID uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Scope
	PaymentStudentID      uuid.UUID `json:"payment_student_id" gorm:"column:payment_student_id;type:uuid;not null;index:idx_payment_student_year,priority:1"`
	PaymentAcademicYearID uuid.UUID `json:"payment_academic_year_id" gorm:"column:payment_academic_year_id;type:uuid;not null;index:idx_payment_student_year,priority:2"`

	// Nomor kuitansi (unik, untuk audit kasir)
	PaymentReceiptNo string `json:"payment_receipt_no" gorm:"column:payment_receipt_no;type:varchar(30);not null;uniqueIndex:uq_payment_receipt_no"`

	// kind=adjustment boleh negatif; kind=payment wajib > 0
	PaymentKind      string `json:"payment_kind" gorm:"column:payment_kind;type:varchar(12);not null;default:'payment'"`
	PaymentMode      string `json:"payment_mode" gorm:"column:payment_mode;type:varchar(10);not null"`
	PaymentAmountIDR int64  `json:"payment_amount_idr" gorm:"column:payment_amount_idr;type:bigint;not null"`

	// Petunjuk alokasi opsional: hanya untuk pos ini
	PaymentFeeHeadID *uuid.UUID `json:"payment_fee_head_id,omitempty" gorm:"column:payment_fee_head_id;type:uuid"`

	// Kunci idempoten dari klien — replay mengembalikan payment yang sama
	PaymentIdempotencyKey *string `json:"payment_idempotency_key,omitempty" gorm:"column:payment_idempotency_key;type:varchar(64);uniqueIndex:uq_payment_idem_key"`

	// Detail moda (no cek, referensi gateway, dsb)
	PaymentMeta datatypes.JSON `json:"payment_meta,omitempty" gorm:"column:payment_meta;type:jsonb"`

	PaymentPaidAt time.Time `json:"payment_paid_at" gorm:"column:payment_paid_at;not null;index"`

	// Terisi sekali saat alokasi pertama — guard anti alokasi ganda
	PaymentAllocatedAt *time.Time `json:"payment_allocated_at,omitempty" gorm:"column:payment_allocated_at"`

	// Timestamps
	PaymentCreatedAt time.Time      `json:"payment_created_at" gorm:"column:payment_created_at;not null;default:now()"`
	PaymentUpdatedAt time.Time      `json:"payment_updated_at" gorm:"column:payment_updated_at;not null;default:now()"`
	PaymentDeletedAt gorm.DeletedAt `json:"-" gorm:"column:payment_deleted_at;index"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = now
	}
	if m.PaymentPaidAt.IsZero() {
		m.PaymentPaidAt = now
	}
	m.PaymentUpdatedAt = now
	return nil
}

func (m *PaymentModel) BeforeUpdate(tx *gorm.DB) error {
	m.PaymentUpdatedAt = time.Now()
	return nil
}
