package controller

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/academics/calendar/model"
	helper "sekolahku_backend/internals/helpers"
)

type HolidayHandler struct {
	DB *gorm.DB
}

type holidayCreateDTO struct {
	HolidayDate time.Time `json:"holiday_date" validate:"required"`
	HolidayName string    `json:"holiday_name" validate:"required,max=100"`
}

// POST /api/a/holidays
func (h *HolidayHandler) CreateHoliday(c *fiber.Ctx) error {
	var in holidayCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	m := model.HolidayModel{
		HolidayDate: in.HolidayDate,
		HolidayName: in.HolidayName,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "holiday created", m)
}

// GET /api/a/holidays?from=&to=
func (h *HolidayHandler) ListHolidays(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.UserContext()).Model(&model.HolidayModel{})
	if from := c.Query("from"); from != "" {
		q = q.Where("holiday_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("holiday_date <= ?", to)
	}

	var rows []model.HolidayModel
	if err := q.Order("holiday_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}
