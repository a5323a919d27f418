package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/foodzo-api/internal/application/auth"
	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

// ProfileUseCase consulta de perfil por email o teléfono.
type ProfileUseCase struct {
	repo repository.UserRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(repo repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{repo: repo}
}

// Lookup busca primero por email y, si no hay resultado, por teléfono.
func (uc *ProfileUseCase) Lookup(ctx context.Context, email, phone string) (*dto.ProfileResponse, error) {
	emailLower := strings.ToLower(strings.TrimSpace(email))
	phoneNormalized := entity.NormalizePhone(strings.TrimSpace(phone))
	if emailLower == "" && strings.TrimSpace(phone) == "" {
		return nil, domain.NewValidationError("Provide email or phone to lookup profile.")
	}

	var user *entity.User
	var err error
	if emailLower != "" {
		if user, err = uc.repo.FindByEmailLower(ctx, emailLower); err != nil {
			return nil, err
		}
	}
	if user == nil && phoneNormalized != "" && auth.IsPhone(phoneNormalized) {
		if user, err = uc.repo.FindByPhone(ctx, phoneNormalized); err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.ProfileResponse{
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		PhotoURL: user.PhotoURL,
		IsAdmin:  user.IsAdmin,
	}, nil
}
