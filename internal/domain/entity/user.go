package entity

import (
	"strings"
	"time"
)

// Roles emitidos en el token.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User representa una cuenta de cliente o de administrador.
type User struct {
	ID              string
	AuthUID         string // uid del proveedor de identidad (Google vía Firebase)
	Username        string
	UsernameLower   string
	Email           string
	EmailLower      string
	Phone           string
	PhoneNormalized string // solo dígitos y '+'
	PasswordHash    string // scrypt "salt:hex"
	IsAdmin         bool
	PhotoURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Role devuelve el rol efectivo del usuario para el token.
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// NormalizePhone conserva solo dígitos y '+' (ej. "+91 98765-43210" -> "+919876543210").
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
