package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const generatedUsernamePrefix = "foodzo_user_"

var (
	usernameDisallowed = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	repeatedUnderscore = regexp.MustCompile(`_+`)
)

// usernameSlug pasa a minúsculas, reemplaza lo que no sea [a-zA-Z0-9_] por '_' y
// colapsa/recorta los '_' sobrantes. Devuelve "" si queda demasiado corto.
func usernameSlug(s string) string {
	slug := usernameDisallowed.ReplaceAllString(strings.ToLower(s), "_")
	slug = strings.Trim(repeatedUnderscore.ReplaceAllString(slug, "_"), "_")
	if len(slug) > MaxUsernameLength {
		slug = strings.TrimRight(slug[:MaxUsernameLength], "_")
	}
	if len(slug) < MinUsernameLength {
		return ""
	}
	return slug
}

// usernameCandidates en orden de preferencia: nombre visible, parte local del email y
// un nombre genérico con sufijo aleatorio.
func usernameCandidates(displayName, email string, randIntn func(int) int) []string {
	var out []string
	if slug := usernameSlug(displayName); slug != "" {
		out = append(out, slug)
	}
	local, _, _ := strings.Cut(email, "@")
	if slug := usernameSlug(local); slug != "" {
		out = append(out, slug)
	}
	return append(out, fmt.Sprintf("%s%d", generatedUsernamePrefix, randIntn(10000)))
}

// uniqueUsername devuelve el primer candidato libre; si todos están tomados usa el
// prefijo genérico con la marca de tiempo en milisegundos.
func (uc *AuthUseCase) uniqueUsername(ctx context.Context, candidates []string) (string, error) {
	for _, c := range candidates {
		u, err := uc.userRepo.FindByUsernameLower(ctx, strings.ToLower(c))
		if err != nil {
			return "", err
		}
		if u == nil {
			return c, nil
		}
	}
	return fmt.Sprintf("%s%d", generatedUsernamePrefix, uc.now().UnixMilli()), nil
}
