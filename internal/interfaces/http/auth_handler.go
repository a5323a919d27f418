package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/auth"
	"github.com/jhoicas/foodzo-api/internal/application/dto"
)

// AuthHandler maneja registro, inicio de sesión y acceso con Google.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "username, email, phone, password"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Invalid request body.")
	}
	out, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Signin godoc
// @Summary      Iniciar sesión con email o teléfono
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SigninRequest  true  "identifier, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/signin [post]
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var in dto.SigninRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Invalid request body.")
	}
	out, err := h.uc.Signin(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Google godoc
// @Summary      Acceder con Google (ID token de Firebase)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GoogleAuthRequest  true  "idToken"
// @Success      200   {object}  dto.GoogleAuthResponse
// @Success      201   {object}  dto.GoogleAuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/google [post]
func (h *AuthHandler) Google(c *fiber.Ctx) error {
	var in dto.GoogleAuthRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Invalid JSON payload.")
	}
	out, err := h.uc.GoogleSignin(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	if out.Created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// Phone godoc
// @Summary      Vincular teléfono a la cuenta del ID token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PhoneLinkRequest  true  "idToken, phone"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/phone [post]
func (h *AuthHandler) Phone(c *fiber.Ctx) error {
	var in dto.PhoneLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Invalid JSON payload.")
	}
	out, err := h.uc.LinkPhone(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "No matching user profile found. Please contact support.")
	}
	return c.JSON(out)
}
