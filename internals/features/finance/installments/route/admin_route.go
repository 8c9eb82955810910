package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/finance/installments/controller"
)

func InstallmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.InstallmentHandler{DB: db}

	g := r.Group("/installments")
	g.Post("/generate", h.Generate)
	g.Get("/", h.List)
}
