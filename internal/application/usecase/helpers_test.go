package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodzo-api/internal/application/catalog"
	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/ports"
	"github.com/jhoicas/foodzo-api/internal/application/usecase"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes y fixture compartidos
// ──────────────────────────────────────────────────────────────────────────────

var errBoom = errors.New("fallo simulado")

type fakeImages struct {
	mu         sync.Mutex
	n          int
	failUpload bool
	folders    []string
	destroyed  []string
}

func (f *fakeImages) Upload(_ context.Context, r io.Reader, _ string, folder string) (*ports.UploadedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return nil, errBoom
	}
	_, _ = io.ReadAll(r)
	f.n++
	f.folders = append(f.folders, folder)
	id := fmt.Sprintf("%s/img-%d", folder, f.n)
	return &ports.UploadedImage{URL: "https://img.test/" + id, PublicID: id}, nil
}

func (f *fakeImages) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

// failingCategoryRepo hace fallar Create o Update a pedido.
type failingCategoryRepo struct {
	*docrepo.CategoryRepo
	failCreate, failUpdate bool
}

func (r *failingCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if r.failCreate {
		return errBoom
	}
	return r.CategoryRepo.Create(ctx, c)
}

func (r *failingCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	if r.failUpdate {
		return errBoom
	}
	return r.CategoryRepo.Update(ctx, c)
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate() { c.n++ }

type fixture struct {
	ctx         context.Context
	store       *memory.DocumentStore
	categories  *failingCategoryRepo
	products    *docrepo.ProductRepo
	users       *docrepo.UserRepo
	images      *fakeImages
	invalidator *countingInvalidator
	adminCat    *usecase.AdminCategoryUseCase
	adminProd   *usecase.AdminProductUseCase
}

func newFixture() *fixture {
	store := memory.NewDocumentStore()
	f := &fixture{
		ctx:         context.Background(),
		store:       store,
		categories:  &failingCategoryRepo{CategoryRepo: docrepo.NewCategoryRepository(store)},
		products:    docrepo.NewProductRepository(store),
		users:       docrepo.NewUserRepository(store),
		images:      &fakeImages{},
		invalidator: &countingInvalidator{},
	}
	links := catalog.NewLinkSynchronizer(store, nil, nil, 4)
	deps := usecase.AdminDeps{Images: f.images, Catalog: f.invalidator, ImageFolder: "/foodzo/"}
	f.adminCat = usecase.NewAdminCategoryUseCase(f.categories, links, deps)
	f.adminProd = usecase.NewAdminProductUseCase(f.products, links, deps)
	return f
}

func image() *dto.ImageFile {
	body := "fake-bytes"
	return &dto.ImageFile{Filename: "photo.png", Size: int64(len(body)), Reader: strings.NewReader(body)}
}

func validProduct(name string, categoryIDs ...string) dto.ProductInput {
	return dto.ProductInput{
		Name:          name,
		Description:   "A dish worth ordering twice.",
		Price:         "120",
		Rating:        "4.2",
		DeliveryValue: "25",
		DeliveryUnit:  "minutes",
		CategoryIDs:   categoryIDs,
		Image:         image(),
	}
}

// seedProduct inserta un producto directo en el repositorio (sin sincronizar vínculos).
func (f *fixture) seedProduct(name, description string, createdAt time.Time) *entity.Product {
	p := &entity.Product{
		Name:         name,
		Description:  description,
		Price:        decimal.NewFromInt(100),
		Rating:       decimal.NewFromInt(4),
		DeliveryTime: entity.DeliveryTime{Value: 20, Unit: entity.DeliveryUnitMinutes},
		CategoryIDs:  []string{},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := f.products.Create(f.ctx, p); err != nil {
		panic(err)
	}
	return p
}
