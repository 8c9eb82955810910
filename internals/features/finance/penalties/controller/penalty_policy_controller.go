package controller

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/penalties/dto"
	model "sekolahku_backend/internals/features/finance/penalties/model"
	helper "sekolahku_backend/internals/helpers"
)

type PenaltyPolicyHandler struct {
	DB *gorm.DB
}

// POST /api/a/penalty-policies
func (h *PenaltyPolicyHandler) Create(c *fiber.Ctx) error {
	var in dto.PenaltyPolicyCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	if in.PenaltyPolicyRate.IsNegative() || in.PenaltyPolicyRate.GreaterThan(decimal.NewFromInt(1)) {
		return helper.JsonError(c, http.StatusBadRequest, "penalty_policy_rate harus 0..1 (pecahan, bukan persen)")
	}

	m := dto.ToPenaltyPolicyModel(in)
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "penalty policy created", dto.ToPenaltyPolicyResponse(m))
}

// GET /api/a/penalty-policies
func (h *PenaltyPolicyHandler) List(c *fiber.Ctx) error {
	var rows []model.PenaltyPolicyModel
	if err := h.DB.WithContext(c.UserContext()).
		Order("penalty_policy_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.PenaltyPolicyResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToPenaltyPolicyResponse(r))
	}
	return helper.JsonOK(c, "ok", out)
}

// DELETE /api/a/penalty-policies/:id (nonaktif, bukan hapus)
func (h *PenaltyPolicyHandler) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.PenaltyPolicyModel{}).
		Where("penalty_policy_id = ?", id).
		Update("penalty_policy_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "penalty policy not found")
	}
	return helper.JsonDeleted(c, "penalty policy deactivated", fiber.Map{"penalty_policy_id": id})
}
