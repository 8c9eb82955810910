package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "sekolahku_backend/internals/features/finance/payments/model"
)

type PaymentCreateDTO struct {
	PaymentStudentID      uuid.UUID        `json:"payment_student_id" validate:"required"`
	PaymentAcademicYearID uuid.UUID        `json:"payment_academic_year_id" validate:"required"`
	PaymentKind           string           `json:"payment_kind" validate:"omitempty,oneof=payment adjustment"`
	PaymentMode           string           `json:"payment_mode" validate:"required,oneof=cash cheque dd online upi card"`
	PaymentAmountIDR      int64            `json:"payment_amount_idr" validate:"required"`
	PaymentFeeHeadID      *uuid.UUID       `json:"payment_fee_head_id"`
	PaymentIdempotencyKey *string          `json:"payment_idempotency_key" validate:"omitempty,max=64"`
	PaymentMeta           map[string]any   `json:"payment_meta"`
	PaymentPaidAt         *time.Time       `json:"payment_paid_at"`
}

type PaymentResponse struct {
	PaymentID             uuid.UUID      `json:"payment_id"`
	PaymentStudentID      uuid.UUID      `json:"payment_student_id"`
	PaymentAcademicYearID uuid.UUID      `json:"payment_academic_year_id"`
	PaymentReceiptNo      string         `json:"payment_receipt_no"`
	PaymentKind           string         `json:"payment_kind"`
	PaymentMode           string         `json:"payment_mode"`
	PaymentAmountIDR      int64          `json:"payment_amount_idr"`
	PaymentFeeHeadID      *uuid.UUID     `json:"payment_fee_head_id,omitempty"`
	PaymentMeta           datatypes.JSON `json:"payment_meta,omitempty"`
	PaymentPaidAt         time.Time      `json:"payment_paid_at"`
	PaymentAllocatedAt    *time.Time     `json:"payment_allocated_at,omitempty"`
}

func ToPaymentResponse(m model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:             m.PaymentID,
		PaymentStudentID:      m.PaymentStudentID,
		PaymentAcademicYearID: m.PaymentAcademicYearID,
		PaymentReceiptNo:      m.PaymentReceiptNo,
		PaymentKind:           m.PaymentKind,
		PaymentMode:           m.PaymentMode,
		PaymentAmountIDR:      m.PaymentAmountIDR,
		PaymentFeeHeadID:      m.PaymentFeeHeadID,
		PaymentMeta:           m.PaymentMeta,
		PaymentPaidAt:         m.PaymentPaidAt,
		PaymentAllocatedAt:    m.PaymentAllocatedAt,
	}
}
