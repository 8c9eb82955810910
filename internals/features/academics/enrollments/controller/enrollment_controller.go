package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/academics/enrollments/dto"
	model "sekolahku_backend/internals/features/academics/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

type EnrollmentHandler struct {
	DB *gorm.DB
}

// POST /api/a/enrollments
// Catatan: pembuatan installment TIDAK otomatis di sini; panggil
// POST /installments/generate setelah enrollment selesai (orkestrasi eksplisit).
func (h *EnrollmentHandler) CreateEnrollment(c *fiber.Ctx) error {
	var in dto.EnrollmentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	m := dto.ToEnrollmentModel(in)
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "enrollment created", dto.ToEnrollmentResponse(m))
}

// GET /api/a/enrollments?student_id=&academic_year_id=&class_id=
func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.UserContext()).Model(&model.StudentEnrollmentModel{})

	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("enrollment_student_id = ?", id)
	}
	if s := c.Query("academic_year_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("enrollment_academic_year_id = ?", id)
	}
	if s := c.Query("class_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid class_id")
		}
		q = q.Where("enrollment_class_id = ?", id)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []model.StudentEnrollmentModel
	if err := q.Order("enrollment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.EnrollmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToEnrollmentResponse(r))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", out, &p)
}

// GET /api/a/enrollments/:id
func (h *EnrollmentHandler) GetEnrollment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var m model.StudentEnrollmentModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "enrollment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "enrollment not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToEnrollmentResponse(m))
}
