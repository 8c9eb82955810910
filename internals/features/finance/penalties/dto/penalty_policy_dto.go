package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "sekolahku_backend/internals/features/finance/penalties/model"
)

type PenaltyPolicyCreateDTO struct {
	PenaltyPolicyFeeHeadID uuid.UUID       `json:"penalty_policy_fee_head_id" validate:"required"`
	PenaltyPolicyMode      string          `json:"penalty_policy_mode" validate:"required,oneof=daily monthly"`
	PenaltyPolicyRate      decimal.Decimal `json:"penalty_policy_rate" validate:"required"`
	PenaltyPolicyGraceDays int             `json:"penalty_policy_grace_days" validate:"min=0"`
	PenaltyPolicyCapIDR    *int64          `json:"penalty_policy_cap_idr" validate:"omitempty,min=0"`
}

type PenaltyPolicyResponse struct {
	PenaltyPolicyID        uuid.UUID       `json:"penalty_policy_id"`
	PenaltyPolicyFeeHeadID uuid.UUID       `json:"penalty_policy_fee_head_id"`
	PenaltyPolicyMode      string          `json:"penalty_policy_mode"`
	PenaltyPolicyRate      decimal.Decimal `json:"penalty_policy_rate"`
	PenaltyPolicyGraceDays int             `json:"penalty_policy_grace_days"`
	PenaltyPolicyCapIDR    *int64          `json:"penalty_policy_cap_idr,omitempty"`
	PenaltyPolicyIsActive  bool            `json:"penalty_policy_is_active"`
}

func ToPenaltyPolicyModel(in PenaltyPolicyCreateDTO) model.PenaltyPolicyModel {
	return model.PenaltyPolicyModel{
		PenaltyPolicyFeeHeadID: in.PenaltyPolicyFeeHeadID,
		PenaltyPolicyMode:      in.PenaltyPolicyMode,
		PenaltyPolicyRate:      in.PenaltyPolicyRate,
		PenaltyPolicyGraceDays: in.PenaltyPolicyGraceDays,
		PenaltyPolicyCapIDR:    in.PenaltyPolicyCapIDR,
		PenaltyPolicyIsActive:  true,
	}
}

func ToPenaltyPolicyResponse(m model.PenaltyPolicyModel) PenaltyPolicyResponse {
	return PenaltyPolicyResponse{
		PenaltyPolicyID:        m.PenaltyPolicyID,
		PenaltyPolicyFeeHeadID: m.PenaltyPolicyFeeHeadID,
		PenaltyPolicyMode:      m.PenaltyPolicyMode,
		PenaltyPolicyRate:      m.PenaltyPolicyRate,
		PenaltyPolicyGraceDays: m.PenaltyPolicyGraceDays,
		PenaltyPolicyCapIDR:    m.PenaltyPolicyCapIDR,
		PenaltyPolicyIsActive:  m.PenaltyPolicyIsActive,
	}
}
