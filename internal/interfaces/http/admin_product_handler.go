package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/usecase"
)

// AdminProductHandler CRUD de productos (solo admin).
type AdminProductHandler struct {
	uc *usecase.AdminProductUseCase
}

// NewAdminProductHandler construye el handler.
func NewAdminProductHandler(uc *usecase.AdminProductUseCase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos (admin)
// @Tags         admin-products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/admin/products [get]
func (h *AdminProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         admin-products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name           formData  string  true   "Nombre (3-80)"
// @Param        description    formData  string  true   "Descripción (10-500)"
// @Param        price          formData  number  true   "Precio (0 < p <= 100000)"
// @Param        salePrice      formData  number  false  "Precio de oferta (<= price)"
// @Param        rating         formData  number  true   "Rating (0-5)"
// @Param        deliveryValue  formData  int     true   "Tiempo de entrega (1-1000)"
// @Param        deliveryUnit   formData  string  true   "minutes | hours | days"
// @Param        categoryIds    formData  []string  false  "IDs de categorías (campo repetido)"
// @Param        image          formData  file    true   "Imagen"
// @Success      201  {object}  dto.ProductEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/products [post]
func (h *AdminProductHandler) Create(c *fiber.Ctx) error {
	form, err := parseMultipart(c)
	if err != nil {
		return formParseError(c, err)
	}
	defer form.close()

	out, err := h.uc.Create(c.UserContext(), productInput(form))
	if err != nil {
		return writeError(c, err, "Product not found.")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductEnvelope{Product: *out})
}

// Update godoc
// @Summary      Actualizar producto (imagen opcional)
// @Tags         admin-products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [patch]
func (h *AdminProductHandler) Update(c *fiber.Ctx) error {
	form, err := parseMultipart(c)
	if err != nil {
		return formParseError(c, err)
	}
	defer form.close()

	out, err := h.uc.Update(c.UserContext(), c.Params("id"), productInput(form))
	if err != nil {
		return writeError(c, err, "Product not found.")
	}
	return c.JSON(dto.ProductEnvelope{Product: *out})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         admin-products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [delete]
func (h *AdminProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "Product not found.")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func productInput(f *multipartForm) dto.ProductInput {
	return dto.ProductInput{
		Name:          f.value("name"),
		Description:   f.value("description"),
		Price:         f.value("price"),
		SalePrice:     f.value("salePrice"),
		Rating:        f.value("rating"),
		DeliveryValue: f.value("deliveryValue"),
		DeliveryUnit:  f.value("deliveryUnit"),
		CategoryIDs:   f.values("categoryIds"),
		Image:         f.image,
	}
}
