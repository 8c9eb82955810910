package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "sekolahku_backend/internals/features/finance/concessions/model"
)

type ConcessionCreateDTO struct {
	ConcessionStudentID      uuid.UUID        `json:"concession_student_id" validate:"required"`
	ConcessionAcademicYearID uuid.UUID        `json:"concession_academic_year_id" validate:"required"`
	ConcessionFeeHeadID      *uuid.UUID       `json:"concession_fee_head_id"`
	ConcessionKind           string           `json:"concession_kind" validate:"required,oneof=fixed percent"`
	ConcessionAmountIDR      *int64           `json:"concession_amount_idr" validate:"omitempty,min=0"`
	ConcessionPercent        *decimal.Decimal `json:"concession_percent"`
	ConcessionReason         string           `json:"concession_reason" validate:"max=200"`
	ConcessionEffectiveFrom  *time.Time       `json:"concession_effective_from"`
	ConcessionEffectiveTo    *time.Time       `json:"concession_effective_to"`
}

type ConcessionResponse struct {
	ConcessionID             uuid.UUID        `json:"concession_id"`
	ConcessionStudentID      uuid.UUID        `json:"concession_student_id"`
	ConcessionAcademicYearID uuid.UUID        `json:"concession_academic_year_id"`
	ConcessionFeeHeadID      *uuid.UUID       `json:"concession_fee_head_id,omitempty"`
	ConcessionKind           string           `json:"concession_kind"`
	ConcessionAmountIDR      *int64           `json:"concession_amount_idr,omitempty"`
	ConcessionPercent        *decimal.Decimal `json:"concession_percent,omitempty"`
	ConcessionReason         string           `json:"concession_reason,omitempty"`
	ConcessionEffectiveFrom  *time.Time       `json:"concession_effective_from,omitempty"`
	ConcessionEffectiveTo    *time.Time       `json:"concession_effective_to,omitempty"`
	ConcessionIsActive       bool             `json:"concession_is_active"`
}

func ToConcessionModel(in ConcessionCreateDTO) model.ConcessionModel {
	return model.ConcessionModel{
		ConcessionStudentID:      in.ConcessionStudentID,
		ConcessionAcademicYearID: in.ConcessionAcademicYearID,
		ConcessionFeeHeadID:      in.ConcessionFeeHeadID,
		ConcessionKind:           in.ConcessionKind,
		ConcessionAmountIDR:      in.ConcessionAmountIDR,
		ConcessionPercent:        in.ConcessionPercent,
		ConcessionReason:         in.ConcessionReason,
		ConcessionEffectiveFrom:  in.ConcessionEffectiveFrom,
		ConcessionEffectiveTo:    in.ConcessionEffectiveTo,
		ConcessionIsActive:       true,
	}
}

func ToConcessionResponse(m model.ConcessionModel) ConcessionResponse {
	return ConcessionResponse{
		ConcessionID:             m.ConcessionID,
		ConcessionStudentID:      m.ConcessionStudentID,
		ConcessionAcademicYearID: m.ConcessionAcademicYearID,
		ConcessionFeeHeadID:      m.ConcessionFeeHeadID,
		ConcessionKind:           m.ConcessionKind,
		ConcessionAmountIDR:      m.ConcessionAmountIDR,
		ConcessionPercent:        m.ConcessionPercent,
		ConcessionReason:         m.ConcessionReason,
		ConcessionEffectiveFrom:  m.ConcessionEffectiveFrom,
		ConcessionEffectiveTo:    m.ConcessionEffectiveTo,
		ConcessionIsActive:       m.ConcessionIsActive,
	}
}
