package ports

import (
	"context"
	"slices"
)

// ProviderGoogle id del proveedor Google en Firebase Authentication.
const ProviderGoogle = "google.com"

// ExternalIdentity cuenta verificada por el proveedor de identidad.
type ExternalIdentity struct {
	UID         string
	Email       string
	DisplayName string
	PhoneNumber string
	PhotoURL    string
	Providers   []string // ej. "google.com", "password"
}

// HasProvider indica si la cuenta tiene vinculado el proveedor dado.
func (i *ExternalIdentity) HasProvider(id string) bool {
	return slices.Contains(i.Providers, id)
}

// IdentityVerifier valida un ID token del proveedor y devuelve la cuenta asociada.
// Token inválido, vencido o sin cuenta: domain.ErrUnauthorized. Cuenta deshabilitada:
// domain.ErrForbidden.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*ExternalIdentity, error)
}
