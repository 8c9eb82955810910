package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/academics/enrollments/controller"
)

func EnrollmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.EnrollmentHandler{DB: db}

	grp := r.Group("/enrollments")
	grp.Post("/", h.CreateEnrollment)
	grp.Get("/", h.ListEnrollments)
	grp.Get("/:id", h.GetEnrollment)
}
