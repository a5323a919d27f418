package repository

import (
	"context"

	"github.com/jhoicas/foodzo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit int) ([]*entity.Product, error)
	// ListByCategory lista los productos cuyo CategoryIDs contiene categoryID.
	ListByCategory(ctx context.Context, categoryID string, limit int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
