package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// societyChecker es el contrato mínimo que necesita el middleware para verificar asignaciones.
// Lo implementa *usecase.UserSocietyUseCase.
type societyChecker interface {
	CanAccess(ctx context.Context, userID string, societyID int64) (bool, error)
}

// RequireSocietyAccess verifica que el usuario esté asignado a la sociedad pedida.
// La sociedad sale del parámetro de ruta param o, si no está, del query society_id.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - admin pasa siempre.
//   - sin sociedad en la petición no hay nada que verificar.
//   - 403 Forbidden → el usuario no está asignado a la sociedad.
//   - error del checker → lo resuelve el ErrorHandler (500).
func RequireSocietyAccess(param string, checker societyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsAdmin(c) {
			return c.Next()
		}
		raw := c.Params(param)
		if raw == "" {
			raw = c.Query("society_id")
		}
		if raw == "" {
			return c.Next()
		}
		societyID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || societyID <= 0 {
			return writeProblem(c, fiber.StatusBadRequest, CodeValidation, "society_id inválido")
		}
		ok, err := checker.CanAccess(c.UserContext(), GetUserID(c), societyID)
		if err != nil {
			return err
		}
		if !ok {
			return writeProblem(c, fiber.StatusForbidden, CodeForbidden, "el usuario no está asignado a la sociedad "+raw)
		}
		return c.Next()
	}
}
