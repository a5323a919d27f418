package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
)

// Límites de credenciales.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 6
	MaxPasswordLength = 100
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// IsEmail indica si s tiene forma de email.
func IsEmail(s string) bool { return emailRegex.MatchString(s) }

// IsPhone indica si s (ya normalizado) es un teléfono válido: 7 a 15 dígitos con '+' opcional.
func IsPhone(s string) bool { return phoneRegex.MatchString(s) }

type signupFields struct {
	username        string
	usernameLower   string
	email           string
	phone           string
	phoneNormalized string
	password        string
}

type signinMode int

const (
	signinByEmail signinMode = iota + 1
	signinByPhone
)

type signinFields struct {
	mode     signinMode
	value    string // email en minúsculas o teléfono normalizado
	password string
}

func validateSignup(username, email, phone, password string) (*signupFields, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if username == "" {
		return nil, domain.NewValidationError("Username cannot be empty.")
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return nil, domain.NewValidationError(fmt.Sprintf("Username must be at least %d characters long.", MinUsernameLength))
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return nil, domain.NewValidationError(fmt.Sprintf("Username must be at most %d characters long.", MaxUsernameLength))
	}
	if !usernameRegex.MatchString(username) {
		return nil, domain.NewValidationError("Username can only contain letters, numbers, and underscores.")
	}
	if email == "" || !IsEmail(email) {
		return nil, domain.NewValidationError("Please provide a valid email address.")
	}
	if phone == "" || !IsPhone(phone) {
		return nil, domain.NewValidationError("Please provide a valid phone number (7-15 digits, optional +).")
	}
	if err := validatePassword(password, true); err != nil {
		return nil, err
	}
	return &signupFields{
		username:        username,
		usernameLower:   strings.ToLower(username),
		email:           email,
		phone:           phone,
		phoneNormalized: entity.NormalizePhone(phone),
		password:        password,
	}, nil
}

func validateSignin(identifier, password string) (*signinFields, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.NewValidationError("Enter your email address or phone number.")
	}
	if err := validatePassword(password, false); err != nil {
		return nil, err
	}
	if lower := strings.ToLower(identifier); IsEmail(lower) {
		return &signinFields{mode: signinByEmail, value: lower, password: password}, nil
	}
	if phone := entity.NormalizePhone(identifier); IsPhone(phone) {
		return &signinFields{mode: signinByPhone, value: phone, password: password}, nil
	}
	return nil, domain.NewValidationError("Enter a valid email address or phone number.")
}

func validatePassword(password string, checkMax bool) error {
	if password == "" {
		return domain.NewValidationError("Password cannot be empty.")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLength))
	}
	if checkMax && utf8.RuneCountInString(password) > MaxPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("Password must be at most %d characters long.", MaxPasswordLength))
	}
	return nil
}
