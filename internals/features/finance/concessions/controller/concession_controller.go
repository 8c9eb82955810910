package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	enrollmentService "sekolahku_backend/internals/features/academics/enrollments/service"
	dto "sekolahku_backend/internals/features/finance/concessions/dto"
	model "sekolahku_backend/internals/features/finance/concessions/model"
	service "sekolahku_backend/internals/features/finance/concessions/service"
	structureService "sekolahku_backend/internals/features/finance/fee_structures/service"
	helper "sekolahku_backend/internals/helpers"
)

type ConcessionHandler struct {
	DB *gorm.DB
}

var maxPercent = decimal.NewFromInt(100)

// POST /api/a/concessions
func (h *ConcessionHandler) Create(c *fiber.Ctx) error {
	var in dto.ConcessionCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	// validasi silang kind ↔ besaran
	switch in.ConcessionKind {
	case model.ConcessionKindFixed:
		if in.ConcessionAmountIDR == nil {
			return helper.JsonError(c, http.StatusBadRequest, "concession_amount_idr wajib untuk kind=fixed")
		}
	case model.ConcessionKindPercent:
		if in.ConcessionPercent == nil {
			return helper.JsonError(c, http.StatusBadRequest, "concession_percent wajib untuk kind=percent")
		}
		if in.ConcessionPercent.IsNegative() || in.ConcessionPercent.GreaterThan(maxPercent) {
			return helper.JsonError(c, http.StatusBadRequest, "concession_percent harus 0..100")
		}
	}
	if in.ConcessionEffectiveFrom != nil && in.ConcessionEffectiveTo != nil &&
		in.ConcessionEffectiveTo.Before(*in.ConcessionEffectiveFrom) {
		return helper.JsonError(c, http.StatusBadRequest, "effective_to sebelum effective_from")
	}

	m := dto.ToConcessionModel(in)
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "concession created", dto.ToConcessionResponse(m))
}

// GET /api/a/concessions?student_id=&academic_year_id=
func (h *ConcessionHandler) List(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.UserContext()).Model(&model.ConcessionModel{})

	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("concession_student_id = ?", id)
	}
	if s := c.Query("academic_year_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("concession_academic_year_id = ?", id)
	}

	var rows []model.ConcessionModel
	if err := q.Order("concession_created_at ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.ConcessionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToConcessionResponse(r))
	}
	return helper.JsonOK(c, "ok", out)
}

// DELETE /api/a/concessions/:id (soft delete; jadwal yang sudah digenerate tidak ikut berubah)
func (h *ConcessionHandler) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.ConcessionModel{}).
		Where("concession_id = ?", id).
		Update("concession_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "concession not found")
	}
	return helper.JsonDeleted(c, "concession deactivated", fiber.Map{"concession_id": id})
}

// GET /api/a/students/:student_id/net-schedule?academic_year_id=
// Jadwal biaya bersih (setelah konsesi) — basis scheduler.
func (h *ConcessionHandler) GetNetSchedule(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "academic_year_id is required")
	}

	out, err := service.ResolveNetSchedule(c.UserContext(), h.DB, studentID, yearID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, enrollmentService.ErrEnrollmentNotFound):
			return helper.JsonError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, structureService.ErrNotConfigured):
			return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonOK(c, "ok", out)
}
