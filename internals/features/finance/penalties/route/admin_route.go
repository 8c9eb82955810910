package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/finance/penalties/controller"
)

func PenaltyPolicyAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.PenaltyPolicyHandler{DB: db}

	g := r.Group("/penalty-policies")
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Delete("/:id", h.Deactivate)
}
