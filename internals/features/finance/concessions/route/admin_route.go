package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/finance/concessions/controller"
)

func ConcessionAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.ConcessionHandler{DB: db}

	g := r.Group("/concessions")
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Delete("/:id", h.Deactivate)

	r.Get("/students/:student_id/net-schedule", h.GetNetSchedule)
}
