package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrImageRequired = errors.New("la imagen es obligatoria")
	ErrImageUpload   = errors.New("no se pudo subir la imagen")
	// ErrIdentityUnavailable el proveedor de identidad externo no está configurado.
	ErrIdentityUnavailable = errors.New("proveedor de identidad no disponible")
)

// ValidationError describe una entrada inválida con un mensaje apto para el cliente.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite comparar contra ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// ConflictError el recurso ya existe o choca con el estado actual; envuelve ErrConflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Unwrap permite comparar contra ErrConflict.
func (e *ConflictError) Unwrap() error { return ErrConflict }

// AuthError rechazo de autenticación con mensaje propio para el cliente. Envuelve Err
// (ErrUnauthorized o ErrForbidden) para conservar el código HTTP.
type AuthError struct {
	Err     error
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Unwrap devuelve el error de dominio de base.
func (e *AuthError) Unwrap() error { return e.Err }
