package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/finance/payments/controller"
	"sekolahku_backend/internals/middlewares"
)

func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.PaymentHandler{DB: db}

	g := r.Group("/payments", middlewares.PaymentRateLimiter())
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Post("/:id/allocate", h.Allocate)
}
