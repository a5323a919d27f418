package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodzo-api/internal/application/auth"
	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/memory"
	"github.com/jhoicas/foodzo-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret     = "auth-test-secret"
	testAdminPhone = "+91 90000 00000"
)

func newAuth() (*auth.AuthUseCase, *docrepo.UserRepo) {
	users := docrepo.NewUserRepository(memory.NewDocumentStore())
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "foodzo-test"}, testAdminPhone)
	return uc, users
}

func signupReq(username, email, phone string) dto.SignupRequest {
	return dto.SignupRequest{Username: username, Email: email, Phone: phone, Password: "secret123"}
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Message
}

// ──────────────────────────────────────────────────────────────────────────────
// Signup
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_CreaClienteYEmiteToken(t *testing.T) {
	uc, users := newAuth()
	ctx := context.Background()

	out, err := uc.Signup(ctx, signupReq(" Ravi_K ", "Ravi@Example.com", " +919876543210 "))
	require.NoError(t, err)
	assert.Equal(t, "Ravi_K", out.User.Username)
	assert.Equal(t, "ravi@example.com", out.User.Email)
	assert.Equal(t, "customer", out.User.Role)
	assert.False(t, out.User.IsAdmin)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, "+919876543210", claims.Phone)
	assert.Equal(t, "customer", claims.Role)

	stored, err := users.GetByID(ctx, out.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ravi_k", stored.UsernameLower)
	assert.Contains(t, stored.PasswordHash, ":", "el hash se guarda como salt:hex")
	assert.NotContains(t, stored.PasswordHash, "secret123")
}

func TestSignup_TelefonoAdminRecibeRolAdmin(t *testing.T) {
	uc, _ := newAuth()

	out, err := uc.Signup(context.Background(), signupReq("owner", "owner@foodzo.test", "+919000000000"))
	require.NoError(t, err)
	assert.True(t, out.User.IsAdmin)
	assert.Equal(t, "admin", out.User.Role)
}

func TestSignup_Conflictos(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.Signup(ctx, signupReq("ravi", "ravi@example.com", "+919876543210"))
	require.NoError(t, err)

	cases := []struct {
		name string
		req  dto.SignupRequest
		want string
	}{
		{"usuario", signupReq("RAVI", "otro@example.com", "+911234567890"), "Username already exists. Please choose another."},
		{"email", signupReq("ravi2", "RAVI@example.com", "+911234567890"), "Email already registered. Try signing in instead."},
		{"teléfono", signupReq("ravi3", "otro@example.com", "+919876543210"), "Phone number already registered. Try signing in instead."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Signup(ctx, tc.req)
			var ce *domain.ConflictError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.want, ce.Message)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestSignup_Validaciones(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	cases := []struct {
		name string
		req  dto.SignupRequest
		want string
	}{
		{"usuario vacío", signupReq(" ", "a@b.co", "+911234567"), "Username cannot be empty."},
		{"usuario corto", signupReq("ab", "a@b.co", "+911234567"), "Username must be at least 3 characters long."},
		{"usuario con guion", signupReq("ab-c", "a@b.co", "+911234567"), "Username can only contain letters, numbers, and underscores."},
		{"email inválido", signupReq("abc", "no-email", "+911234567"), "Please provide a valid email address."},
		{"teléfono corto", signupReq("abc", "a@b.co", "12345"), "Please provide a valid phone number (7-15 digits, optional +)."},
		{"teléfono con espacios", signupReq("abc", "a@b.co", "+91 98765 43210"), "Please provide a valid phone number (7-15 digits, optional +)."},
		{"password corta", dto.SignupRequest{Username: "abc", Email: "a@b.co", Phone: "+911234567", Password: "12345"}, "Password must be at least 6 characters long."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Signup(ctx, tc.req)
			assert.Equal(t, tc.want, validationMessage(t, err))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Signin
// ──────────────────────────────────────────────────────────────────────────────

func TestSignin_PorEmailOTelefono(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	created, err := uc.Signup(ctx, signupReq("ravi", "ravi@example.com", "+919876543210"))
	require.NoError(t, err)

	byEmail, err := uc.Signin(ctx, dto.SigninRequest{Identifier: " RAVI@example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, byEmail.User.ID)

	byPhone, err := uc.Signin(ctx, dto.SigninRequest{Identifier: "+91 98765 43210", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, byPhone.User.ID)
	assert.NotEmpty(t, byPhone.Token)
}

func TestSignin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.Signup(ctx, signupReq("ravi", "ravi@example.com", "+919876543210"))
	require.NoError(t, err)

	_, err = uc.Signin(ctx, dto.SigninRequest{Identifier: "ravi@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Signin(ctx, dto.SigninRequest{Identifier: "nadie@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inexistente y password incorrecta dan el mismo error")

	_, err = uc.Signin(ctx, dto.SigninRequest{Identifier: "", Password: "secret123"})
	assert.Equal(t, "Enter your email address or phone number.", validationMessage(t, err))

	_, err = uc.Signin(ctx, dto.SigninRequest{Identifier: "ravi", Password: "secret123"})
	assert.Equal(t, "Enter a valid email address or phone number.", validationMessage(t, err))
}

func TestSignin_TelefonoAdminConfiguradoDespuesDelRegistro(t *testing.T) {
	users := docrepo.NewUserRepository(memory.NewDocumentStore())
	ctx := context.Background()
	before := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 30}, "")
	_, err := before.Signup(ctx, signupReq("owner", "owner@foodzo.test", "+919000000000"))
	require.NoError(t, err)

	after := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 30}, testAdminPhone)
	out, err := after.Signin(ctx, dto.SigninRequest{Identifier: "+919000000000", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.User.Role)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestIsPhoneEIsEmail(t *testing.T) {
	assert.True(t, auth.IsPhone("+919876543210"))
	assert.True(t, auth.IsPhone("1234567"))
	assert.False(t, auth.IsPhone("123456"))
	assert.False(t, auth.IsPhone("+1234567890123456"))
	assert.True(t, auth.IsEmail("a@b.co"))
	assert.False(t, auth.IsEmail("a@b"))
}
