// Package firebaseauth implementa ports.IdentityVerifier con Firebase Authentication
// (Admin SDK): verifica el ID token y lee la cuenta para conocer email, teléfono y
// proveedores vinculados.
package firebaseauth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/jhoicas/foodzo-api/internal/application/ports"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/pkg/config"
)

var _ ports.IdentityVerifier = (*IdentityVerifier)(nil)

// authClient subconjunto de *auth.Client que usa el adaptador.
type authClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

// IdentityVerifier adaptador Firebase Authentication.
type IdentityVerifier struct {
	client authClient
}

// New crea el cliente de Auth. Sin CredentialsFile se usan las credenciales por defecto (ADC).
func New(ctx context.Context, cfg config.FirebaseConfig) (*IdentityVerifier, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: auth client: %w", err)
	}
	return &IdentityVerifier{client: client}, nil
}

// Verify valida firma, emisor y vencimiento del token y devuelve la cuenta.
func (v *IdentityVerifier) Verify(ctx context.Context, idToken string) (*ports.ExternalIdentity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenInvalid(err) || auth.IsIDTokenExpired(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("firebase: verificar token: %w", err)
	}
	user, err := v.client.GetUser(ctx, token.UID)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("firebase: obtener cuenta %s: %w", token.UID, err)
	}
	if user.Disabled {
		return nil, domain.ErrForbidden
	}
	return toIdentity(token, user), nil
}

func toIdentity(token *auth.Token, user *auth.UserRecord) *ports.ExternalIdentity {
	id := &ports.ExternalIdentity{UID: token.UID}
	if user.UserInfo != nil {
		id.Email = user.Email
		id.DisplayName = user.DisplayName
		id.PhoneNumber = user.PhoneNumber
		id.PhotoURL = user.PhotoURL
	}
	for _, p := range user.ProviderUserInfo {
		if p != nil && p.ProviderID != "" {
			id.Providers = append(id.Providers, p.ProviderID)
		}
	}
	return id
}
