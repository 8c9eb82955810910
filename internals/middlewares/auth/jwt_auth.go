package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Kunci Locals yang dihydrate oleh AuthJWT
const (
	LocUserID = "user_id"
	LocRoles  = "roles"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi bearer token dan menyimpan user_id + roles di Locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals("jwt_claims", claims)

		if sub := strClaim(claims, "sub"); sub != "" {
			c.Locals(LocUserID, sub)
		} else if id := strClaim(claims, "id"); id != "" {
			c.Locals(LocUserID, id)
		}

		if v, ok := claims["roles"]; ok {
			c.Locals(LocRoles, v)
		}

		return c.Next()
	}
}

// RequireStaff menolak request tanpa role staff/admin (mutasi keuangan khusus petugas).
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hasRole(c, "staff") || hasRole(c, "admin") {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "Hanya petugas yang boleh mengakses")
	}
}

func hasRole(c *fiber.Ctx, want string) bool {
	v := c.Locals(LocRoles)
	switch t := v.(type) {
	case []any:
		for _, r := range t {
			if s, ok := r.(string); ok && strings.EqualFold(strings.TrimSpace(s), want) {
				return true
			}
		}
	case []string:
		for _, s := range t {
			if strings.EqualFold(strings.TrimSpace(s), want) {
				return true
			}
		}
	case string:
		return strings.EqualFold(strings.TrimSpace(t), want)
	}
	return false
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
