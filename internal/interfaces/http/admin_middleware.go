package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
)

// adminChecker es el contrato mínimo que necesita el middleware para confirmar el rol.
// Lo implementa *usecase.AdminUserUseCase; el uso de interfaz evita el import circular.
type adminChecker interface {
	IsAdmin(ctx context.Context, userID, phone string) (bool, error)
}

// RequireAdmin confirma contra el almacén que el usuario del token sigue siendo administrador
// (el rol del token puede haber quedado desactualizado). Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay user_id en el contexto.
//   - 403 Forbidden    → el usuario ya no es admin o no existe.
//   - 503 Service Unavailable → fallo de infraestructura al consultar el almacén.
func RequireAdmin(checker adminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id not found in token",
			})
		}

		ok, err := checker.IsAdmin(c.UserContext(), userID, GetPhone(c))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ADMIN_CHECK_FAILED",
				Message: "could not verify admin access, try again later",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "admin access revoked",
			})
		}
		return c.Next()
	}
}
