package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollmentService "sekolahku_backend/internals/features/academics/enrollments/service"
	structureService "sekolahku_backend/internals/features/finance/fee_structures/service"
	model "sekolahku_backend/internals/features/finance/installments/model"
	service "sekolahku_backend/internals/features/finance/installments/service"
	helper "sekolahku_backend/internals/helpers"
)

type InstallmentHandler struct {
	DB *gorm.DB
}

type generateDTO struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
}

// POST /api/a/installments/generate
// Idempoten: pos yang sudah punya cicilan dilewati, dipanggil ulang aman.
func (h *InstallmentHandler) Generate(c *fiber.Ctx) error {
	var in generateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := service.GenerateInstallments(c.UserContext(), h.DB, in.StudentID, in.AcademicYearID)
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
	return helper.JsonCreated(c, "installments generated", res)
}

// GET /api/a/installments?student_id=&academic_year_id=
func (h *InstallmentHandler) List(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "student_id is required")
	}

	q := h.DB.WithContext(c.UserContext()).
		Model(&model.InstallmentModel{}).
		Where("installment_student_id = ?", studentID)

	if s := c.Query("academic_year_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("installment_academic_year_id = ?", id)
	}

	var rows []model.InstallmentModel
	if err := q.Order("installment_due_date ASC, installment_seq ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}
