package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/academics/academic_years/dto"
	model "sekolahku_backend/internals/features/academics/academic_years/model"
	helper "sekolahku_backend/internals/helpers"
)

type AcademicYearHandler struct {
	DB *gorm.DB
}

// POST /api/a/academic-years
func (h *AcademicYearHandler) CreateAcademicYear(c *fiber.Ctx) error {
	var in dto.AcademicYearCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	m := dto.ToAcademicYearModel(in)
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "academic year created", dto.ToAcademicYearResponse(m))
}

// GET /api/a/academic-years
func (h *AcademicYearHandler) ListAcademicYears(c *fiber.Ctx) error {
	var rows []model.AcademicYearModel
	if err := h.DB.WithContext(c.UserContext()).
		Order("academic_year_start_date DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.AcademicYearResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToAcademicYearResponse(r))
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/a/academic-years/:id
func (h *AcademicYearHandler) GetAcademicYear(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var m model.AcademicYearModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "academic_year_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "academic year not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToAcademicYearResponse(m))
}
