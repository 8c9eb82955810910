package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/academics/academic_years/controller"
)

func AcademicYearAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.AcademicYearHandler{DB: db}

	grp := r.Group("/academic-years")
	grp.Post("/", h.CreateAcademicYear)
	grp.Get("/", h.ListAcademicYears)
	grp.Get("/:id", h.GetAcademicYear)
}
