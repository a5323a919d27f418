package dto

import "time"

// SignupRequest entrada de registro.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// SigninRequest entrada de inicio de sesión: identifier es email o teléfono.
type SigninRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UserResponse salida de un usuario (sin hash de password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"isAdmin"`
	Role      string    `json:"role"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse token JWT más el usuario autenticado.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListResponse listado de usuarios (admin).
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// PromoteUserRequest entrada para dar rol admin por teléfono.
type PromoteUserRequest struct {
	Phone string `json:"phone"`
}

// ProfileResponse perfil público consultado por email o teléfono.
type ProfileResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PhotoURL string `json:"photoUrl,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

// GoogleAuthRequest ID token de Firebase obtenido tras el acceso con Google.
type GoogleAuthRequest struct {
	IDToken string `json:"idToken"`
}

// GoogleAuthResponse token propio, usuario y si todavía falta vincular un teléfono.
type GoogleAuthResponse struct {
	Token         string       `json:"token"`
	User          UserResponse `json:"user"`
	RequiresPhone bool         `json:"requiresPhone"`
	Created       bool         `json:"-"`
}

// PhoneLinkRequest teléfono a vincular a la cuenta del ID token.
type PhoneLinkRequest struct {
	IDToken string `json:"idToken"`
	Phone   string `json:"phone"`
}
