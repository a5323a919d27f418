package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/usecase"
)

// AdminCategoryHandler CRUD de categorías (solo admin).
type AdminCategoryHandler struct {
	uc *usecase.AdminCategoryUseCase
}

// NewAdminCategoryHandler construye el handler.
func NewAdminCategoryHandler(uc *usecase.AdminCategoryUseCase) *AdminCategoryHandler {
	return &AdminCategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías (admin)
// @Tags         admin-categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/admin/categories [get]
func (h *AdminCategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         admin-categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name        formData  string  true   "Nombre (2-40)"
// @Param        productIds  formData  []string  false  "IDs de productos (campo repetido)"
// @Param        image       formData  file    true   "Imagen"
// @Success      201  {object}  dto.CategoryEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/categories [post]
func (h *AdminCategoryHandler) Create(c *fiber.Ctx) error {
	form, err := parseMultipart(c)
	if err != nil {
		return formParseError(c, err)
	}
	defer form.close()

	out, err := h.uc.Create(c.UserContext(), categoryInput(form))
	if err != nil {
		return writeError(c, err, "Category not found.")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryEnvelope{Category: *out})
}

// Update godoc
// @Summary      Actualizar categoría (imagen opcional)
// @Tags         admin-categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id          path      string  true   "ID de la categoría"
// @Param        name        formData  string  true   "Nombre (2-40)"
// @Param        productIds  formData  []string  false  "IDs de productos (campo repetido)"
// @Param        image       formData  file    false  "Nueva imagen"
// @Success      200  {object}  dto.CategoryEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{id} [patch]
func (h *AdminCategoryHandler) Update(c *fiber.Ctx) error {
	form, err := parseMultipart(c)
	if err != nil {
		return formParseError(c, err)
	}
	defer form.close()

	out, err := h.uc.Update(c.UserContext(), c.Params("id"), categoryInput(form))
	if err != nil {
		return writeError(c, err, "Category not found.")
	}
	return c.JSON(dto.CategoryEnvelope{Category: *out})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         admin-categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{id} [delete]
func (h *AdminCategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "Category not found.")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func categoryInput(f *multipartForm) dto.CategoryInput {
	return dto.CategoryInput{
		Name:       f.value("name"),
		ProductIDs: f.values("productIds"),
		Image:      f.image,
	}
}
