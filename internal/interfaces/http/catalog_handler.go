package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/usecase"
)

// CatalogHandler rutas públicas del catálogo.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Obtener categoría
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.uc.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Category not found.")
	}
	return c.JSON(fiber.Map{"category": out})
}

// ListCategoryProducts godoc
// @Summary      Productos de una categoría
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryProductsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/products [get]
func (h *CatalogHandler) ListCategoryProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListCategoryProducts(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Category not found.")
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// SearchProducts godoc
// @Summary      Buscar productos por nombre o descripción
// @Tags         catalog
// @Produce      json
// @Param        q    query  string  false  "Texto a buscar"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/search [get]
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	out, err := h.uc.SearchProducts(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
