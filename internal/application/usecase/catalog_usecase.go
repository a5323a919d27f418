package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

// ListLimit tope de resultados de los listados (catálogo y administración).
const ListLimit = 200

const (
	cacheKeyCategories = "categories"
	cacheKeyProducts   = "products"
)

// CatalogCache caché de lecturas del catálogo público.
type CatalogCache interface {
	Get(key string) (any, bool)
	Set(key string, v any)
	Flush()
}

// CatalogInvalidator lo llaman los casos de uso de administración tras cada escritura.
type CatalogInvalidator interface {
	Invalidate()
}

type noCache struct{}

func (noCache) Get(string) (any, bool) { return nil, false }
func (noCache) Set(string, any)        {}
func (noCache) Flush()                 {}

// CatalogUseCase lecturas públicas: categorías, productos y búsqueda.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      CatalogCache
}

// NewCatalogUseCase construye el caso de uso. cache puede ser nil.
func NewCatalogUseCase(categories repository.CategoryRepository, products repository.ProductRepository, cache CatalogCache) *CatalogUseCase {
	if cache == nil {
		cache = noCache{}
	}
	return &CatalogUseCase{categories: categories, products: products, cache: cache}
}

// Invalidate descarta todo lo cacheado.
func (uc *CatalogUseCase) Invalidate() { uc.cache.Flush() }

// ListCategories categorías de la más reciente a la más antigua.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	list, err := uc.allCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryListResponse{Categories: list}, nil
}

// GetCategory obtiene una categoría; domain.ErrNotFound si no existe.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("Invalid category id.")
	}
	category, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	out := toCategoryResponse(category)
	return &out, nil
}

// ListCategoryProducts categoría más los productos cuyo categoryIds la contiene.
func (uc *CatalogUseCase) ListCategoryProducts(ctx context.Context, id string) (*dto.CategoryProductsResponse, error) {
	category, err := uc.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.products.ListByCategory(ctx, category.ID, ListLimit)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryProductsResponse{Category: *category, Products: toProductResponses(list)}, nil
}

// ListProducts productos del más reciente al más antiguo.
func (uc *CatalogUseCase) ListProducts(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: list}, nil
}

// SearchProducts filtra por subcadena (sin distinguir mayúsculas) en nombre o descripción.
// Una consulta vacía devuelve todos los productos.
func (uc *CatalogUseCase) SearchProducts(ctx context.Context, query string) (*dto.ProductListResponse, error) {
	list, err := uc.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return &dto.ProductListResponse{Products: list}, nil
	}
	out := make([]dto.ProductResponse, 0)
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return &dto.ProductListResponse{Products: out}, nil
}

func (uc *CatalogUseCase) allCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	if v, ok := uc.cache.Get(cacheKeyCategories); ok {
		if list, ok := v.([]dto.CategoryResponse); ok {
			return list, nil
		}
	}
	list, err := uc.categories.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponses(list)
	uc.cache.Set(cacheKeyCategories, out)
	return out, nil
}

func (uc *CatalogUseCase) allProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	if v, ok := uc.cache.Get(cacheKeyProducts); ok {
		if list, ok := v.([]dto.ProductResponse); ok {
			return list, nil
		}
	}
	list, err := uc.products.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}
	out := toProductResponses(list)
	uc.cache.Set(cacheKeyProducts, out)
	return out, nil
}
