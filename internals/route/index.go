package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/middlewares/auth"
	"sekolahku_backend/internals/route/details"
)

// SetupRoutes mendaftarkan seluruh endpoint.
// /api/a = area petugas (JWT + role staff/admin).
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	admin := api.Group("/a",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		auth.RequireStaff(),
	)

	details.AcademicAdminRoutes(admin, db)
	details.FinanceAdminRoutes(admin, db)
}
