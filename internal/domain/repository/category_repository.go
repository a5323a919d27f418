package repository

import (
	"context"

	"github.com/jhoicas/foodzo-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// Update reescribe los campos editables: nombre, imagen y ProductIDs.
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, limit int) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
