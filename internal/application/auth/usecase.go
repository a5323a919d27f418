package auth

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/ports"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
	"github.com/jhoicas/foodzo-api/pkg/jwt"
	"github.com/jhoicas/foodzo-api/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro e inicio de sesión.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtCfg     JWTConfig
	adminPhone string // normalizado; vacío = ningún teléfono es admin por configuración
	identity   ports.IdentityVerifier
	now        func() time.Time
	randIntn   func(int) int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, adminPhone string) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		jwtCfg:     jwtCfg,
		adminPhone: entity.NormalizePhone(adminPhone),
		now:        time.Now,
		randIntn:   rand.IntN,
	}
}

// SetIdentityVerifier habilita el acceso con Google y la vinculación de teléfono.
// Sin verificador esas operaciones devuelven domain.ErrIdentityUnavailable.
func (uc *AuthUseCase) SetIdentityVerifier(v ports.IdentityVerifier) {
	uc.identity = v
}

// IsAdminPhone indica si el teléfono (normalizado) es el del administrador configurado.
func (uc *AuthUseCase) IsAdminPhone(phoneNormalized string) bool {
	return uc.adminPhone != "" && phoneNormalized == uc.adminPhone
}

// Signup valida, verifica unicidad (usuario, email, teléfono), hashea con scrypt y persiste.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	fields, err := validateSignup(in.Username, in.Email, in.Phone, in.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureAvailable(ctx, fields); err != nil {
		return nil, err
	}
	hash, err := password.Hash(fields.password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user := &entity.User{
		Username:        fields.username,
		UsernameLower:   fields.usernameLower,
		Email:           fields.email,
		EmailLower:      fields.email,
		Phone:           fields.phone,
		PhoneNormalized: fields.phoneNormalized,
		PasswordHash:    hash,
		IsAdmin:         uc.IsAdminPhone(fields.phoneNormalized),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.ConflictError{Message: "Account already exists. Try signing in instead."}
		}
		return nil, err
	}
	return uc.issue(user)
}

// Signin acepta email o teléfono como identificador. Usuario inexistente y password incorrecta
// devuelven el mismo error para no revelar qué cuentas existen.
func (uc *AuthUseCase) Signin(ctx context.Context, in dto.SigninRequest) (*dto.AuthResponse, error) {
	fields, err := validateSignin(in.Identifier, in.Password)
	if err != nil {
		return nil, err
	}
	var user *entity.User
	switch fields.mode {
	case signinByEmail:
		user, err = uc.userRepo.FindByEmailLower(ctx, fields.value)
	default:
		user, err = uc.userRepo.FindByPhone(ctx, fields.value)
	}
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(fields.password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsAdmin && uc.IsAdminPhone(user.PhoneNormalized) {
		user.IsAdmin = true
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) ensureAvailable(ctx context.Context, f *signupFields) error {
	if u, err := uc.userRepo.FindByUsernameLower(ctx, f.usernameLower); err != nil {
		return err
	} else if u != nil {
		return &domain.ConflictError{Message: "Username already exists. Please choose another."}
	}
	if u, err := uc.userRepo.FindByEmailLower(ctx, f.email); err != nil {
		return err
	} else if u != nil {
		return &domain.ConflictError{Message: "Email already registered. Try signing in instead."}
	}
	if u, err := uc.userRepo.FindByPhone(ctx, f.phoneNormalized); err != nil {
		return err
	} else if u != nil {
		return &domain.ConflictError{Message: "Phone number already registered. Try signing in instead."}
	}
	return nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.PhoneNormalized, user.Role(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		Role:      u.Role(),
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
