package usecase

import (
	"context"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

// AdminUserUseCase listado de usuarios y promoción a administrador.
type AdminUserUseCase struct {
	repo       repository.UserRepository
	adminPhone string
}

// NewAdminUserUseCase construye el caso de uso. adminPhone es el teléfono con acceso admin por configuración.
func NewAdminUserUseCase(repo repository.UserRepository, adminPhone string) *AdminUserUseCase {
	return &AdminUserUseCase{repo: repo, adminPhone: entity.NormalizePhone(adminPhone)}
}

// IsAdmin confirma el acceso: el teléfono configurado o un usuario con isAdmin.
func (uc *AdminUserUseCase) IsAdmin(ctx context.Context, userID, phone string) (bool, error) {
	if uc.adminPhone != "" && entity.NormalizePhone(phone) == uc.adminPhone {
		return true, nil
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin, nil
}

// List usuarios más recientes primero (sin hash de password).
func (uc *AdminUserUseCase) List(ctx context.Context) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return &dto.UserListResponse{Users: out}, nil
}

// Promote marca como admin al usuario con ese teléfono.
func (uc *AdminUserUseCase) Promote(ctx context.Context, phone string) error {
	normalized := entity.NormalizePhone(phone)
	if normalized == "" {
		return domain.NewValidationError("Provide a valid phone number.")
	}
	user, err := uc.repo.FindByPhone(ctx, normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.IsAdmin {
		return nil
	}
	return uc.repo.SetAdmin(ctx, user.ID, true)
}
