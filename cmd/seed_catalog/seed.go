package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/foodzo-api/internal/application/catalog"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
	"github.com/jhoicas/foodzo-api/pkg/logger"
)

const seedListLimit = 1000

type seedFormat int

const (
	formatJSON seedFormat = iota
	formatYAML
)

// formatFor elige el decodificador por extensión; todo lo que no sea .yaml/.yml se lee como JSON.
func formatFor(path string) seedFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

type seedFile struct {
	Categories []seedCategory `json:"categories" yaml:"categories"`
	Products   []seedProduct  `json:"products" yaml:"products"`
}

type seedCategory struct {
	Name         string   `json:"name" yaml:"name"`
	ImageURL     string   `json:"imageUrl" yaml:"imageUrl"`
	ProductNames []string `json:"productNames" yaml:"productNames"`
}

type seedDeliveryTime struct {
	Value int    `json:"value" yaml:"value"`
	Unit  string `json:"unit" yaml:"unit"`
}

type seedProduct struct {
	Name         string           `json:"name" yaml:"name"`
	Description  string           `json:"description" yaml:"description"`
	Price        decimal.Decimal  `json:"price" yaml:"price"`
	SalePrice    *decimal.Decimal `json:"salePrice" yaml:"salePrice"`
	Rating       decimal.Decimal  `json:"rating" yaml:"rating"`
	DeliveryTime seedDeliveryTime `json:"deliveryTime" yaml:"deliveryTime"`
	ImageURL     string           `json:"imageUrl" yaml:"imageUrl"`
}

type seedSummary struct {
	ProductsCreated   int
	ProductsUpdated   int
	CategoriesCreated int
	CategoriesUpdated int
	LinkFailures      int
}

type linkSyncer interface {
	SyncCategoryProductLinks(ctx context.Context, categoryID string, nextProductIDs, previousProductIDs []string) (*catalog.SyncReport, error)
}

type seeder struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	links      linkSyncer
	log        *logger.Logger
	now        func() time.Time
}

// decodeSeedFile rechaza campos desconocidos en ambos formatos para detectar errores de tipeo.
func decodeSeedFile(r io.Reader, format seedFormat) (*seedFile, error) {
	var f seedFile
	switch format {
	case formatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	}
	for i, p := range f.Products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("products[%d]: name vacío", i)
		}
		unit := strings.ToLower(strings.TrimSpace(p.DeliveryTime.Unit))
		if !entity.IsDeliveryUnit(unit) {
			return nil, fmt.Errorf("products[%d] %q: unidad de entrega inválida %q", i, p.Name, p.DeliveryTime.Unit)
		}
		f.Products[i].DeliveryTime.Unit = unit
	}
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("categories[%d]: name vacío", i)
		}
	}
	return &f, nil
}

func nameKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// run inserta o actualiza productos y luego categorías; los vínculos se escriben con el
// sincronizador desde el lado de la categoría para que ambos lados queden coherentes.
func (s *seeder) run(ctx context.Context, f *seedFile) (*seedSummary, error) {
	summary := &seedSummary{}
	now := s.now().UTC()

	existingProducts, err := s.products.List(ctx, seedListLimit)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	productsByName := make(map[string]*entity.Product, len(existingProducts))
	for _, p := range existingProducts {
		productsByName[nameKey(p.Name)] = p
	}

	for _, in := range f.Products {
		p, found := productsByName[nameKey(in.Name)]
		if !found {
			p = &entity.Product{CreatedAt: now, CategoryIDs: []string{}}
		}
		p.Name = strings.TrimSpace(in.Name)
		p.Description = strings.TrimSpace(in.Description)
		p.Price = in.Price
		p.SalePrice = in.SalePrice
		p.Rating = in.Rating
		p.DeliveryTime = entity.DeliveryTime{Value: in.DeliveryTime.Value, Unit: in.DeliveryTime.Unit}
		p.ImageURL = in.ImageURL
		p.UpdatedAt = now

		if found {
			if err := s.products.Update(ctx, p); err != nil {
				return summary, fmt.Errorf("actualizar producto %q: %w", p.Name, err)
			}
			summary.ProductsUpdated++
			continue
		}
		if err := s.products.Create(ctx, p); err != nil {
			return summary, fmt.Errorf("crear producto %q: %w", p.Name, err)
		}
		productsByName[nameKey(p.Name)] = p
		summary.ProductsCreated++
	}

	existingCategories, err := s.categories.List(ctx, seedListLimit)
	if err != nil {
		return summary, fmt.Errorf("listar categorías: %w", err)
	}
	categoriesByName := make(map[string]*entity.Category, len(existingCategories))
	for _, c := range existingCategories {
		categoriesByName[nameKey(c.Name)] = c
	}

	for _, in := range f.Categories {
		ids := make([]string, 0, len(in.ProductNames))
		for _, name := range in.ProductNames {
			p, ok := productsByName[nameKey(name)]
			if !ok {
				s.log.Warn().Str("category", in.Name).Str("product", name).Msg("producto inexistente, se omite")
				continue
			}
			ids = append(ids, p.ID)
		}
		ids = catalog.NormalizeIDs(ids)

		c, found := categoriesByName[nameKey(in.Name)]
		var previous []string
		if found {
			previous = c.ProductIDs
			c.Name = strings.TrimSpace(in.Name)
			if in.ImageURL != "" {
				c.ImageURL = in.ImageURL
			}
			c.ProductIDs = ids
			c.UpdatedAt = now
			if err := s.categories.Update(ctx, c); err != nil {
				return summary, fmt.Errorf("actualizar categoría %q: %w", c.Name, err)
			}
			summary.CategoriesUpdated++
		} else {
			c = &entity.Category{
				Name:       strings.TrimSpace(in.Name),
				ImageURL:   in.ImageURL,
				ProductIDs: ids,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := s.categories.Create(ctx, c); err != nil {
				return summary, fmt.Errorf("crear categoría %q: %w", c.Name, err)
			}
			categoriesByName[nameKey(c.Name)] = c
			summary.CategoriesCreated++
		}

		report, err := s.links.SyncCategoryProductLinks(ctx, c.ID, ids, previous)
		if err != nil {
			return summary, fmt.Errorf("sincronizar vínculos de %q: %w", c.Name, err)
		}
		if report != nil {
			summary.LinkFailures += len(report.Failures)
		}
	}
	return summary, nil
}
