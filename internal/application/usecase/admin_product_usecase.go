package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

const productsFolder = "products"

// AdminProductUseCase alta, edición y baja de productos con su imagen y sus vínculos a categorías.
type AdminProductUseCase struct {
	repo  repository.ProductRepository
	links ProductLinkSyncer
	deps  AdminDeps
	now   func() time.Time
}

// NewAdminProductUseCase construye el caso de uso.
func NewAdminProductUseCase(repo repository.ProductRepository, links ProductLinkSyncer, deps AdminDeps) *AdminProductUseCase {
	return &AdminProductUseCase{repo: repo, links: links, deps: deps.withDefaults(), now: time.Now}
}

// List todos los productos, más recientes primero.
func (uc *AdminProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: toProductResponses(list)}, nil
}

// Create valida, sube la imagen (obligatoria), inserta y vincula las categorías indicadas.
func (uc *AdminProductUseCase) Create(ctx context.Context, in dto.ProductInput) (*dto.ProductResponse, error) {
	fields, err := validateProductInput(in)
	if err != nil {
		return nil, err
	}
	if !hasImage(in.Image) {
		return nil, domain.ErrImageRequired
	}
	uploaded, err := uc.deps.upload(ctx, in.Image, productsFolder)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	product := &entity.Product{
		ImageURL:      uploaded.URL,
		ImagePublicID: uploaded.PublicID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	fields.applyTo(product)
	if err := uc.repo.Create(ctx, product); err != nil {
		uc.deps.destroy(ctx, uploaded.PublicID, "rollback create product")
		return nil, err
	}

	report, err := uc.links.SyncProductCategoryLinks(ctx, product.ID, fields.categoryIDs, nil)
	uc.deps.logSync(report, err, "product", product.ID)
	uc.deps.invalidate()

	out := toProductResponse(product)
	return &out, nil
}

// Update edita los campos del producto y opcionalmente su imagen.
func (uc *AdminProductUseCase) Update(ctx context.Context, id string, in dto.ProductInput) (*dto.ProductResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("Invalid product id.")
	}
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	fields, err := validateProductInput(in)
	if err != nil {
		return nil, err
	}

	previousIDs := existing.CategoryIDs
	previousImage := existing.ImagePublicID

	updated := *existing
	fields.applyTo(&updated)
	updated.UpdatedAt = uc.now().UTC()

	replaced := false
	if hasImage(in.Image) {
		uploaded, err := uc.deps.upload(ctx, in.Image, productsFolder)
		if err != nil {
			return nil, err
		}
		updated.ImageURL = uploaded.URL
		updated.ImagePublicID = uploaded.PublicID
		replaced = true
	}

	if err := uc.repo.Update(ctx, &updated); err != nil {
		if replaced {
			uc.deps.destroy(ctx, updated.ImagePublicID, "rollback update product")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	report, err := uc.links.SyncProductCategoryLinks(ctx, id, fields.categoryIDs, previousIDs)
	uc.deps.logSync(report, err, "product", id)

	if replaced && previousImage != "" && previousImage != updated.ImagePublicID {
		uc.deps.destroy(ctx, previousImage, "replaced product image")
	}
	uc.deps.invalidate()

	out := toProductResponse(&updated)
	return &out, nil
}

// Delete elimina el producto, lo quita de sus categorías y borra su imagen.
func (uc *AdminProductUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewValidationError("Invalid product id.")
	}
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	report, err := uc.links.SyncProductCategoryLinks(ctx, id, nil, existing.CategoryIDs)
	uc.deps.logSync(report, err, "product", id)

	uc.deps.destroy(ctx, existing.ImagePublicID, "delete product")
	uc.deps.invalidate()
	return nil
}

func (f *productFields) applyTo(p *entity.Product) {
	p.Name = f.name
	p.Description = f.description
	p.Price = f.price
	p.SalePrice = f.salePrice
	p.Rating = f.rating
	p.DeliveryTime = f.deliveryTime
	p.CategoryIDs = f.categoryIDs
}
