package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/usecase"
)

// ProfileHandler consulta pública de perfil.
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Get godoc
// @Summary      Perfil por email o teléfono
// @Tags         profile
// @Produce      json
// @Param        email  query  string  false  "Email"
// @Param        phone  query  string  false  "Teléfono"
// @Success      200    {object}  dto.ProfileResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.UserContext(), c.Query("email"), c.Query("phone"))
	if err != nil {
		return writeError(c, err, "Profile not found.")
	}
	return c.JSON(fiber.Map{"user": out})
}
