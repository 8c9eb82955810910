package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/academics/calendar/controller"
)

func HolidayAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.HolidayHandler{DB: db}

	grp := r.Group("/holidays")
	grp.Post("/", h.CreateHoliday)
	grp.Get("/", h.ListHolidays)
}
