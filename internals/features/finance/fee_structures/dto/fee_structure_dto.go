package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/constants"
	model "sekolahku_backend/internals/features/finance/fee_structures/model"
)

/* ===============================
   FEE HEAD
=================================*/

type FeeHeadCreateDTO struct {
	FeeHeadCode        string `json:"fee_head_code" validate:"required,max=20"`
	FeeHeadName        string `json:"fee_head_name" validate:"required,max=100"`
	FeeHeadType        string `json:"fee_head_type" validate:"required,oneof=admission tuition exam transport hostel library lab sports computer annual development misc"`
	FeeHeadPriority    *int   `json:"fee_head_priority" validate:"omitempty,min=1"`
	FeeHeadIsMandatory *bool  `json:"fee_head_is_mandatory"`
}

type FeeHeadResponse struct {
	FeeHeadID          uuid.UUID `json:"fee_head_id"`
	FeeHeadCode        string    `json:"fee_head_code"`
	FeeHeadName        string    `json:"fee_head_name"`
	FeeHeadType        string    `json:"fee_head_type"`
	FeeHeadPriority    int       `json:"fee_head_priority"`
	FeeHeadIsMandatory bool      `json:"fee_head_is_mandatory"`
	FeeHeadIsActive    bool      `json:"fee_head_is_active"`
}

func ToFeeHeadModel(in FeeHeadCreateDTO) model.FeeHeadModel {
	priority := constants.HeadPriority(in.FeeHeadType)
	if in.FeeHeadPriority != nil {
		priority = *in.FeeHeadPriority
	}
	mandatory := !constants.OptionalFeeHeads[in.FeeHeadType]
	if in.FeeHeadIsMandatory != nil {
		mandatory = *in.FeeHeadIsMandatory
	}
	return model.FeeHeadModel{
		FeeHeadCode:        in.FeeHeadCode,
		FeeHeadName:        in.FeeHeadName,
		FeeHeadType:        in.FeeHeadType,
		FeeHeadPriority:    priority,
		FeeHeadIsMandatory: mandatory,
		FeeHeadIsActive:    true,
	}
}

func ToFeeHeadResponse(m model.FeeHeadModel) FeeHeadResponse {
	return FeeHeadResponse{
		FeeHeadID:          m.FeeHeadID,
		FeeHeadCode:        m.FeeHeadCode,
		FeeHeadName:        m.FeeHeadName,
		FeeHeadType:        m.FeeHeadType,
		FeeHeadPriority:    m.FeeHeadPriority,
		FeeHeadIsMandatory: m.FeeHeadIsMandatory,
		FeeHeadIsActive:    m.FeeHeadIsActive,
	}
}

/* ===============================
   FEE STRUCTURE
=================================*/

type FeeStructureCreateDTO struct {
	FeeStructureAcademicYearID    uuid.UUID        `json:"fee_structure_academic_year_id" validate:"required"`
	FeeStructureClassID           uuid.UUID        `json:"fee_structure_class_id" validate:"required"`
	FeeStructureFeeHeadID         uuid.UUID        `json:"fee_structure_fee_head_id" validate:"required"`
	FeeStructureBaseAmountIDR     int64            `json:"fee_structure_base_amount_idr" validate:"min=0"`
	FeeStructureCategoryOverrides map[string]int64 `json:"fee_structure_category_overrides" validate:"omitempty,dive,min=0"`
	FeeStructureDefaultPlan       string           `json:"fee_structure_default_plan" validate:"omitempty,oneof=lump_sum half_yearly term quarterly monthly"`
}

type FeeStructureResponse struct {
	FeeStructureID                uuid.UUID      `json:"fee_structure_id"`
	FeeStructureAcademicYearID    uuid.UUID      `json:"fee_structure_academic_year_id"`
	FeeStructureClassID           uuid.UUID      `json:"fee_structure_class_id"`
	FeeStructureFeeHeadID         uuid.UUID      `json:"fee_structure_fee_head_id"`
	FeeStructureBaseAmountIDR     int64          `json:"fee_structure_base_amount_idr"`
	FeeStructureCategoryOverrides datatypes.JSON `json:"fee_structure_category_overrides,omitempty"`
	FeeStructureDefaultPlan       string         `json:"fee_structure_default_plan"`
	FeeStructureIsActive          bool           `json:"fee_structure_is_active"`
}

func ToFeeStructureModel(in FeeStructureCreateDTO, overridesJSON datatypes.JSON) model.FeeStructureModel {
	plan := in.FeeStructureDefaultPlan
	if plan == "" {
		plan = "term"
	}
	return model.FeeStructureModel{
		FeeStructureAcademicYearID:    in.FeeStructureAcademicYearID,
		FeeStructureClassID:           in.FeeStructureClassID,
		FeeStructureFeeHeadID:         in.FeeStructureFeeHeadID,
		FeeStructureBaseAmountIDR:     in.FeeStructureBaseAmountIDR,
		FeeStructureCategoryOverrides: overridesJSON,
		FeeStructureDefaultPlan:       plan,
		FeeStructureIsActive:          true,
	}
}

func ToFeeStructureResponse(m model.FeeStructureModel) FeeStructureResponse {
	return FeeStructureResponse{
		FeeStructureID:                m.FeeStructureID,
		FeeStructureAcademicYearID:    m.FeeStructureAcademicYearID,
		FeeStructureClassID:           m.FeeStructureClassID,
		FeeStructureFeeHeadID:         m.FeeStructureFeeHeadID,
		FeeStructureBaseAmountIDR:     m.FeeStructureBaseAmountIDR,
		FeeStructureCategoryOverrides: m.FeeStructureCategoryOverrides,
		FeeStructureDefaultPlan:       m.FeeStructureDefaultPlan,
		FeeStructureIsActive:          m.FeeStructureIsActive,
	}
}
