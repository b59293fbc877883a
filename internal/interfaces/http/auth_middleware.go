package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-ledger/internal/application/auth"
	"github.com/jhoicas/isp-ledger/internal/application/dto"
	"github.com/jhoicas/isp-ledger/pkg/jwt"
)

// LocalUsername clave en c.Locals del operador autenticado.
const LocalUsername = "username"

// AuthMiddleware valida el Bearer Token JWT y deja el username en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		username, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

// RequireSession exige que el operador del token sea el de la sesión abierta.
// Va después de AuthMiddleware.
func RequireSession(uc *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := uc.SessionActive(c.UserContext(), GetUsername(c))
		if err != nil {
			return respondError(c, err)
		}
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "sesión cerrada o abierta por otro operador"})
		}
		return c.Next()
	}
}

// GetUsername devuelve el operador del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}
