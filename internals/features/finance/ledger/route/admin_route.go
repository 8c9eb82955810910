package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/finance/ledger/controller"
)

func LedgerAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.LedgerHandler{DB: db}

	r.Get("/students/:student_id/ledger", h.GetStudentLedger)
	r.Get("/ledger/overdue", h.ListOverdue)
}
