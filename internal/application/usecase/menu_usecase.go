package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/ports"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
	"github.com/jhoicas/foodzo-api/pkg/currency"
)

// MenuUseCase arma la carta imprimible: cada categoría con los productos que tiene vinculados.
type MenuUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	generator  ports.MenuPDFGenerator
	title      string
	url        string
	now        func() time.Time
}

// NewMenuUseCase construye el caso de uso.
// storefrontURL vacío omite el QR.
func NewMenuUseCase(categories repository.CategoryRepository, products repository.ProductRepository, generator ports.MenuPDFGenerator, title, storefrontURL string) *MenuUseCase {
	if title == "" {
		title = "Foodzo"
	}
	return &MenuUseCase{
		categories: categories,
		products:   products,
		generator:  generator,
		title:      title,
		url:        storefrontURL,
		now:        time.Now,
	}
}

// Build devuelve la carta sin renderizar. Las categorías siguen el orden del listado y,
// dentro de cada una, los productos el orden de su lista productIds.
func (uc *MenuUseCase) Build(ctx context.Context) (*dto.MenuDTO, error) {
	categories, err := uc.categories.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	menu := &dto.MenuDTO{Title: uc.title, StorefrontURL: uc.url, GeneratedAt: uc.now()}
	for _, c := range categories {
		section := dto.MenuSectionDTO{Category: c.Name}
		for _, id := range c.ProductIDs {
			p, ok := byID[id]
			if !ok {
				continue
			}
			section.Items = append(section.Items, dto.MenuItemDTO{
				Name:           p.Name,
				Description:    p.Description,
				DeliveryTime:   p.DeliveryTime.String(),
				FormattedPrice: currency.FormatINR(p.Price),
				FormattedSale:  currency.FormatINRPtr(p.SalePrice),
				Rating:         p.Rating.StringFixed(1),
			})
		}
		if len(section.Items) > 0 {
			menu.Sections = append(menu.Sections, section)
		}
	}
	return menu, nil
}

// GeneratePDF arma la carta y la renderiza.
func (uc *MenuUseCase) GeneratePDF(ctx context.Context) ([]byte, error) {
	menu, err := uc.Build(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(menu)
}
