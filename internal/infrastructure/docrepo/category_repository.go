package docrepo

import (
	"context"
	"fmt"

	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre un DocumentStore.
type CategoryRepo struct {
	store repository.DocumentStore
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(store repository.DocumentStore) *CategoryRepo {
	return &CategoryRepo{store: store}
}

// Create inserta la categoría y asigna category.ID con el id generado por el store.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	doc := categoryToDocument(category)
	if category.ID != "" {
		doc[repository.FieldID] = category.ID
	}
	id, err := r.store.Insert(ctx, repository.CollectionCategories, doc)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	category.ID = id
	return nil
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.store.Get(ctx, repository.CollectionCategories, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return documentToCategory(doc), nil
}

// Update reescribe nombre, imagen, productIds y updatedAt. createdAt no se toca.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	doc := categoryToDocument(category)
	delete(doc, repository.FieldCreatedAt)
	if err := r.store.Update(ctx, repository.CollectionCategories, category.ID, doc); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List lista categorías de la más reciente a la más antigua.
func (r *CategoryRepo) List(ctx context.Context, limit int) ([]*entity.Category, error) {
	docs, err := r.store.Find(ctx, repository.CollectionCategories, repository.Query{
		OrderBy:    repository.FieldCreatedAt,
		Descending: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(docs))
	for _, d := range docs {
		list = append(list, documentToCategory(d))
	}
	return list, nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, repository.CollectionCategories, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
