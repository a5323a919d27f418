package repository

import (
	"context"

	"github.com/jhoicas/foodzo-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsernameLower(ctx context.Context, usernameLower string) (*entity.User, error)
	FindByEmailLower(ctx context.Context, emailLower string) (*entity.User, error)
	FindByPhone(ctx context.Context, phoneNormalized string) (*entity.User, error)
	FindByAuthUID(ctx context.Context, authUID string) (*entity.User, error)
	// Update reescribe los datos de perfil del usuario (no toca createdAt).
	Update(ctx context.Context, user *entity.User) error
	// SetAdmin marca/desmarca al usuario como administrador.
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	List(ctx context.Context, limit int) ([]*entity.User, error)
}
