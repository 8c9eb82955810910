package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/finance/fee_structures/controller"
)

func FeeStructureAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.FeeStructureHandler{DB: db}

	heads := r.Group("/fee-heads")
	heads.Post("/", h.CreateFeeHead)
	heads.Get("/", h.ListFeeHeads)
	heads.Patch("/:id", h.UpdateFeeHead)

	structures := r.Group("/fee-structures")
	structures.Post("/", h.CreateFeeStructure)
	structures.Get("/", h.ListFeeStructures)
	structures.Patch("/:id", h.UpdateFeeStructure)

	r.Get("/students/:student_id/fee-schedule", h.GetStudentFeeSchedule)
}
