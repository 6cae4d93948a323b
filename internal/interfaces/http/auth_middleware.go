package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

// Locals keys para UserID y TokenID en Fiber.
const (
	LocalUserID  = "user_id"
	LocalTokenID = "token_id"
)

// AuthMiddleware valida el Bearer Token JWT y verifica que el token no haya
// sido revocado (logout elimina su fila en auth_tokens). Extrae UserID y
// TokenID a c.Locals.
func AuthMiddleware(jwtSecret string, tokens repository.TokenRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("No autenticado", "Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("No autenticado", "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("No autenticado", "token vacío"))
		}
		userID, tokenID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("No autenticado", "token inválido o expirado"))
		}
		ok, err := tokens.Exists(tokenID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error interno del servidor", ""))
		}
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("No autenticado", "token revocado"))
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalTokenID, tokenID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetTokenID devuelve el TokenID del contexto (después del middleware de auth).
func GetTokenID(c *fiber.Ctx) string {
	v := c.Locals(LocalTokenID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
