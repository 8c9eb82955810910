package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic dan mengembalikan 500. Operasi keuangan
// tidak boleh menjatuhkan proses hanya karena satu request rusak.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.Printf("[PANIC] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), e)
		},
	})
}
