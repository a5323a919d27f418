package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/ports"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
)

const minLinkedPhoneDigits = 7

// GoogleSignin valida el ID token, busca la cuenta por authUid y luego por email; si no
// existe la crea con un nombre de usuario único. RequiresPhone indica que la cuenta aún
// no tiene un teléfono válido.
func (uc *AuthUseCase) GoogleSignin(ctx context.Context, in dto.GoogleAuthRequest) (*dto.GoogleAuthResponse, error) {
	if strings.TrimSpace(in.IDToken) == "" {
		return nil, domain.NewValidationError("idToken is required.")
	}
	identity, err := uc.verify(ctx, in.IDToken, "Invalid or expired authentication token.")
	if err != nil {
		return nil, err
	}
	if !identity.HasProvider(ports.ProviderGoogle) {
		return nil, domain.NewValidationError("Google provider not linked to this account.")
	}
	if identity.Email == "" {
		return nil, domain.NewValidationError("Google account email is required.")
	}

	emailLower := strings.ToLower(identity.Email)
	phone, phoneNormalized, err := uc.providerPhone(ctx, identity.PhoneNumber)
	if err != nil {
		return nil, err
	}
	user, err := uc.findExternal(ctx, identity.UID, emailLower)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	created := user == nil
	if created {
		username, err := uc.uniqueUsername(ctx, usernameCandidates(identity.DisplayName, identity.Email, uc.randIntn))
		if err != nil {
			return nil, err
		}
		user = &entity.User{
			AuthUID:         identity.UID,
			Username:        username,
			UsernameLower:   strings.ToLower(username),
			Email:           identity.Email,
			EmailLower:      emailLower,
			Phone:           phone,
			PhoneNormalized: phoneNormalized,
			IsAdmin:         uc.IsAdminPhone(phoneNormalized),
			PhotoURL:        identity.PhotoURL,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return nil, &domain.ConflictError{Message: "Account already exists. Try signing in instead."}
			}
			return nil, err
		}
	} else {
		if identity.UID != "" {
			user.AuthUID = identity.UID
		}
		user.Email = identity.Email
		user.EmailLower = emailLower
		if phoneNormalized != "" {
			user.Phone = phone
			user.PhoneNormalized = phoneNormalized
		}
		if len(user.Username) < MinUsernameLength {
			username, err := uc.uniqueUsername(ctx, usernameCandidates(identity.DisplayName, identity.Email, uc.randIntn))
			if err != nil {
				return nil, err
			}
			user.Username = username
			user.UsernameLower = strings.ToLower(username)
		}
		if user.PhotoURL == "" {
			user.PhotoURL = identity.PhotoURL
		}
		if uc.IsAdminPhone(user.PhoneNormalized) {
			user.IsAdmin = true
		}
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	resp, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.GoogleAuthResponse{
		Token:         resp.Token,
		User:          resp.User,
		RequiresPhone: !IsPhone(user.PhoneNormalized),
		Created:       created,
	}, nil
}

// LinkPhone vincula un teléfono a la cuenta del ID token y aplica la regla del teléfono
// de administrador. Devuelve un token nuevo con el teléfono y el rol actualizados.
func (uc *AuthUseCase) LinkPhone(ctx context.Context, in dto.PhoneLinkRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(in.IDToken) == "" {
		return nil, domain.NewValidationError("Invalid request body.")
	}
	phone := strings.TrimSpace(in.Phone)
	phoneNormalized := entity.NormalizePhone(phone)
	if len(phoneNormalized) < minLinkedPhoneDigits || !IsPhone(phoneNormalized) {
		return nil, domain.NewValidationError("Enter a valid phone number with country code.")
	}
	identity, err := uc.verify(ctx, in.IDToken, "Session expired. Please sign in again.")
	if err != nil {
		return nil, err
	}
	user, err := uc.findExternal(ctx, identity.UID, strings.ToLower(identity.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if owner, err := uc.userRepo.FindByPhone(ctx, phoneNormalized); err != nil {
		return nil, err
	} else if owner != nil && owner.ID != user.ID {
		return nil, &domain.ConflictError{Message: "Phone number already registered. Try signing in instead."}
	}

	if uc.IsAdminPhone(phoneNormalized) || uc.IsAdminPhone(user.PhoneNormalized) {
		user.IsAdmin = true
	}
	user.Phone = phone
	user.PhoneNormalized = phoneNormalized
	user.UpdatedAt = uc.now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// verify traduce los rechazos del proveedor a errores con mensaje para el cliente.
func (uc *AuthUseCase) verify(ctx context.Context, idToken, unauthorizedMsg string) (*ports.ExternalIdentity, error) {
	if uc.identity == nil {
		return nil, domain.ErrIdentityUnavailable
	}
	identity, err := uc.identity.Verify(ctx, strings.TrimSpace(idToken))
	switch {
	case err == nil:
		return identity, nil
	case errors.Is(err, domain.ErrUnauthorized):
		return nil, &domain.AuthError{Err: domain.ErrUnauthorized, Message: unauthorizedMsg}
	case errors.Is(err, domain.ErrForbidden):
		return nil, &domain.AuthError{Err: domain.ErrForbidden, Message: "This account has been disabled."}
	default:
		return nil, fmt.Errorf("verificar identidad externa: %w", err)
	}
}

// findExternal busca primero por uid del proveedor y después por email.
func (uc *AuthUseCase) findExternal(ctx context.Context, uid, emailLower string) (*entity.User, error) {
	if uid != "" {
		u, err := uc.userRepo.FindByAuthUID(ctx, uid)
		if err != nil || u != nil {
			return u, err
		}
	}
	if emailLower == "" {
		return nil, nil
	}
	return uc.userRepo.FindByEmailLower(ctx, emailLower)
}

// providerPhone acepta el teléfono informado por el proveedor solo si es válido y no
// pertenece a otra cuenta; si no, la cuenta queda sin teléfono.
func (uc *AuthUseCase) providerPhone(ctx context.Context, raw string) (string, string, error) {
	normalized := entity.NormalizePhone(raw)
	if !IsPhone(normalized) {
		return "", "", nil
	}
	owner, err := uc.userRepo.FindByPhone(ctx, normalized)
	if err != nil {
		return "", "", err
	}
	if owner != nil {
		return "", "", nil
	}
	return raw, normalized, nil
}
