package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/usecase"
)

// MenuHandler descarga de la carta en PDF.
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Download godoc
// @Summary      Carta imprimible (PDF)
// @Tags         admin-menu
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/admin/menu.pdf [get]
func (h *MenuHandler) Download(c *fiber.Ctx) error {
	pdf, err := h.uc.GeneratePDF(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="menu.pdf"`)
	return c.Send(pdf)
}
