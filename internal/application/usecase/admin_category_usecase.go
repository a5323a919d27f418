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

const categoriesFolder = "categories"

// AdminCategoryUseCase alta, edición y baja de categorías con su imagen y sus vínculos a productos.
type AdminCategoryUseCase struct {
	repo  repository.CategoryRepository
	links CategoryLinkSyncer
	deps  AdminDeps
	now   func() time.Time
}

// NewAdminCategoryUseCase construye el caso de uso.
func NewAdminCategoryUseCase(repo repository.CategoryRepository, links CategoryLinkSyncer, deps AdminDeps) *AdminCategoryUseCase {
	return &AdminCategoryUseCase{repo: repo, links: links, deps: deps.withDefaults(), now: time.Now}
}

// List todas las categorías, más recientes primero.
func (uc *AdminCategoryUseCase) List(ctx context.Context) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryListResponse{Categories: toCategoryResponses(list)}, nil
}

// Create valida, sube la imagen (obligatoria), inserta y vincula los productos indicados.
func (uc *AdminCategoryUseCase) Create(ctx context.Context, in dto.CategoryInput) (*dto.CategoryResponse, error) {
	fields, err := validateCategoryInput(in)
	if err != nil {
		return nil, err
	}
	if !hasImage(in.Image) {
		return nil, domain.ErrImageRequired
	}
	uploaded, err := uc.deps.upload(ctx, in.Image, categoriesFolder)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	category := &entity.Category{
		Name:          fields.name,
		ImageURL:      uploaded.URL,
		ImagePublicID: uploaded.PublicID,
		ProductIDs:    fields.productIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		uc.deps.destroy(ctx, uploaded.PublicID, "rollback create category")
		return nil, err
	}

	report, err := uc.links.SyncCategoryProductLinks(ctx, category.ID, fields.productIDs, nil)
	uc.deps.logSync(report, err, "category", category.ID)
	uc.deps.invalidate()

	out := toCategoryResponse(category)
	return &out, nil
}

// Update edita nombre, productos e imagen (opcional). La imagen anterior se borra solo si se reemplazó.
func (uc *AdminCategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryInput) (*dto.CategoryResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("Invalid category id.")
	}
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	fields, err := validateCategoryInput(in)
	if err != nil {
		return nil, err
	}

	previousIDs := existing.ProductIDs
	previousImage := existing.ImagePublicID

	updated := *existing
	updated.Name = fields.name
	updated.ProductIDs = fields.productIDs
	updated.UpdatedAt = uc.now().UTC()

	replaced := false
	if hasImage(in.Image) {
		uploaded, err := uc.deps.upload(ctx, in.Image, categoriesFolder)
		if err != nil {
			return nil, err
		}
		updated.ImageURL = uploaded.URL
		updated.ImagePublicID = uploaded.PublicID
		replaced = true
	}

	if err := uc.repo.Update(ctx, &updated); err != nil {
		if replaced {
			uc.deps.destroy(ctx, updated.ImagePublicID, "rollback update category")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	report, err := uc.links.SyncCategoryProductLinks(ctx, id, fields.productIDs, previousIDs)
	uc.deps.logSync(report, err, "category", id)

	if replaced && previousImage != "" && previousImage != updated.ImagePublicID {
		uc.deps.destroy(ctx, previousImage, "replaced category image")
	}
	uc.deps.invalidate()

	out := toCategoryResponse(&updated)
	return &out, nil
}

// Delete elimina la categoría, la desvincula de sus productos y borra su imagen.
func (uc *AdminCategoryUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewValidationError("Invalid category id.")
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

	// El registro principal ya no existe: solo se quitan los vínculos del lado de los productos.
	report, err := uc.links.SyncCategoryProductLinks(ctx, id, nil, existing.ProductIDs)
	uc.deps.logSync(report, err, "category", id)

	uc.deps.destroy(ctx, existing.ImagePublicID, "delete category")
	uc.deps.invalidate()
	return nil
}
