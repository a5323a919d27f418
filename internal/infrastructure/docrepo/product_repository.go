package docrepo

import (
	"context"
	"fmt"

	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre un DocumentStore.
type ProductRepo struct {
	store repository.DocumentStore
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(store repository.DocumentStore) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create inserta el producto y asigna product.ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	doc := productToDocument(product)
	if product.ID != "" {
		doc[repository.FieldID] = product.ID
	}
	id, err := r.store.Insert(ctx, repository.CollectionProducts, doc)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = id
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.store.Get(ctx, repository.CollectionProducts, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return documentToProduct(doc), nil
}

// Update reescribe los campos editables del producto (incluye categoryIds).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	doc := productToDocument(product)
	delete(doc, repository.FieldCreatedAt)
	if err := r.store.Update(ctx, repository.CollectionProducts, product.ID, doc); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos del más reciente al más antiguo.
func (r *ProductRepo) List(ctx context.Context, limit int) ([]*entity.Product, error) {
	return r.find(ctx, repository.Query{
		OrderBy:    repository.FieldCreatedAt,
		Descending: true,
		Limit:      limit,
	})
}

// ListByCategory lista los productos vinculados a la categoría (categoryIds contiene el id).
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string, limit int) ([]*entity.Product, error) {
	return r.find(ctx, repository.Query{
		Filters: []repository.Filter{{
			Field: repository.FieldCategoryIDs,
			Op:    repository.OpArrayContains,
			Value: categoryID,
		}},
		Limit: limit,
	})
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, repository.CollectionProducts, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) find(ctx context.Context, q repository.Query) ([]*entity.Product, error) {
	docs, err := r.store.Find(ctx, repository.CollectionProducts, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		list = append(list, documentToProduct(d))
	}
	return list, nil
}
