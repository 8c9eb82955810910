package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	concessionRoute "sekolahku_backend/internals/features/finance/concessions/route"
	feeStructureRoute "sekolahku_backend/internals/features/finance/fee_structures/route"
	installmentRoute "sekolahku_backend/internals/features/finance/installments/route"
	ledgerRoute "sekolahku_backend/internals/features/finance/ledger/route"
	paymentRoute "sekolahku_backend/internals/features/finance/payments/route"
	penaltyRoute "sekolahku_backend/internals/features/finance/penalties/route"
)

// Pipeline keuangan: structure → concession → installment → payment →
// penalty policy → ledger.
func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	feeStructureRoute.FeeStructureAdminRoutes(r, db)
	concessionRoute.ConcessionAdminRoutes(r, db)
	installmentRoute.InstallmentAdminRoutes(r, db)
	paymentRoute.PaymentAdminRoutes(r, db)
	penaltyRoute.PenaltyPolicyAdminRoutes(r, db)
	ledgerRoute.LedgerAdminRoutes(r, db)
}
