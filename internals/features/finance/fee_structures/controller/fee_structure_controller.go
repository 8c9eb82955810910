package controller

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	enrollmentService "sekolahku_backend/internals/features/academics/enrollments/service"
	dto "sekolahku_backend/internals/features/finance/fee_structures/dto"
	model "sekolahku_backend/internals/features/finance/fee_structures/model"
	service "sekolahku_backend/internals/features/finance/fee_structures/service"
	helper "sekolahku_backend/internals/helpers"
)

type FeeStructureHandler struct {
	DB *gorm.DB
}

/* =======================================================
   FEE HEADS
======================================================= */

// POST /api/a/fee-heads
func (h *FeeStructureHandler) CreateFeeHead(c *fiber.Ctx) error {
	var in dto.FeeHeadCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	m := dto.ToFeeHeadModel(in)
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee head created", dto.ToFeeHeadResponse(m))
}

// GET /api/a/fee-heads
func (h *FeeStructureHandler) ListFeeHeads(c *fiber.Ctx) error {
	var rows []model.FeeHeadModel
	if err := h.DB.WithContext(c.UserContext()).
		Order("fee_head_priority ASC, fee_head_code ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.FeeHeadResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToFeeHeadResponse(r))
	}
	return helper.JsonOK(c, "ok", out)
}

// PATCH /api/a/fee-heads/:id
// Head yang sudah dirujuk structure hidup bersifat immutable.
func (h *FeeStructureHandler) UpdateFeeHead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var m model.FeeHeadModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "fee_head_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "fee head not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	referenced, err := service.HeadIsReferenced(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if referenced {
		return helper.JsonError(c, http.StatusConflict, "fee head sudah dirujuk fee structure; tidak bisa diubah")
	}

	var in dto.FeeHeadCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	upd := dto.ToFeeHeadModel(in)
	upd.FeeHeadID = m.FeeHeadID
	upd.FeeHeadCreatedAt = m.FeeHeadCreatedAt
	if err := h.DB.WithContext(c.UserContext()).Save(&upd).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "fee head updated", dto.ToFeeHeadResponse(upd))
}

/* =======================================================
   FEE STRUCTURES
======================================================= */

// POST /api/a/fee-structures
func (h *FeeStructureHandler) CreateFeeStructure(c *fiber.Ctx) error {
	var in dto.FeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var overridesJSON datatypes.JSON
	if len(in.FeeStructureCategoryOverrides) > 0 {
		b, err := sonic.Marshal(in.FeeStructureCategoryOverrides)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid category overrides")
		}
		overridesJSON = datatypes.JSON(b)
	}

	m := dto.ToFeeStructureModel(in, overridesJSON)
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee structure created", dto.ToFeeStructureResponse(m))
}

// GET /api/a/fee-structures?academic_year_id=&class_id=
func (h *FeeStructureHandler) ListFeeStructures(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.UserContext()).Model(&model.FeeStructureModel{})

	if s := c.Query("academic_year_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("fee_structure_academic_year_id = ?", id)
	}
	if s := c.Query("class_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid class_id")
		}
		q = q.Where("fee_structure_class_id = ?", id)
	}

	var rows []model.FeeStructureModel
	if err := q.Order("fee_structure_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.FeeStructureResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToFeeStructureResponse(r))
	}
	return helper.JsonOK(c, "ok", out)
}

// PATCH /api/a/fee-structures/:id
// Ditolak kalau sudah ada installment turunan (frozen).
func (h *FeeStructureHandler) UpdateFeeStructure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var m model.FeeStructureModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "fee_structure_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "fee structure not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	frozen, err := service.StructureIsFrozen(c.UserContext(), h.DB, &m)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if frozen {
		return helper.JsonError(c, http.StatusConflict, "fee structure sudah menurunkan installment; buat structure baru untuk tahun ajaran baru")
	}

	var in dto.FeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var overridesJSON datatypes.JSON
	if len(in.FeeStructureCategoryOverrides) > 0 {
		b, err := sonic.Marshal(in.FeeStructureCategoryOverrides)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid category overrides")
		}
		overridesJSON = datatypes.JSON(b)
	}

	upd := dto.ToFeeStructureModel(in, overridesJSON)
	upd.FeeStructureID = m.FeeStructureID
	upd.FeeStructureCreatedAt = m.FeeStructureCreatedAt
	if err := h.DB.WithContext(c.UserContext()).Save(&upd).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "fee structure updated", dto.ToFeeStructureResponse(upd))
}

/* =======================================================
   SCHEDULE PREVIEW
======================================================= */

// GET /api/a/students/:student_id/fee-schedule?academic_year_id=
// Preview hasil resolver (sebelum konsesi) untuk verifikasi petugas.
func (h *FeeStructureHandler) GetStudentFeeSchedule(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "academic_year_id is required")
	}

	schedule, err := service.ResolveStructure(c.UserContext(), h.DB, studentID, yearID)
	if err != nil {
		switch {
		case errors.Is(err, enrollmentService.ErrEnrollmentNotFound):
			return helper.JsonError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotConfigured):
			return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonOK(c, "ok", schedule)
}
