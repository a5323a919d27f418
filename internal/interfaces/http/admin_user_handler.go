package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/usecase"
)

// AdminUserHandler usuarios y promoción a admin.
type AdminUserHandler struct {
	uc *usecase.AdminUserUseCase
}

// NewAdminUserHandler construye el handler.
func NewAdminUserHandler(uc *usecase.AdminUserUseCase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         admin-users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/admin/users [get]
func (h *AdminUserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Promote godoc
// @Summary      Dar rol admin por teléfono
// @Tags         admin-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PromoteUserRequest  true  "phone"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *AdminUserHandler) Promote(c *fiber.Ctx) error {
	var in dto.PromoteUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Invalid JSON body.")
	}
	if in.Phone == "" {
		return badRequest(c, "VALIDATION", "Phone number is required.")
	}
	if err := h.uc.Promote(c.UserContext(), in.Phone); err != nil {
		return writeError(c, err, "User not found.")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
