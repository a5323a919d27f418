// Package password genera y verifica hashes scrypt con formato "salt:hex".
// Los parámetros (N=16384, r=8, p=1, clave de 64 bytes y sal hex de 16 bytes usada como texto)
// mantienen compatibles los usuarios ya registrados.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN   = 16384
	scryptR   = 8
	scryptP   = 1
	keyLength = 64
	saltBytes = 16
)

// Hash devuelve "salt:hex(clave derivada)".
func Hash(plain string) (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("password: generar sal: %w", err)
	}
	salt := hex.EncodeToString(buf)
	key, err := derive(plain, salt)
	if err != nil {
		return "", err
	}
	return salt + ":" + hex.EncodeToString(key), nil
}

// Verify compara en tiempo constante. Un hash mal formado nunca coincide.
func Verify(plain, stored string) bool {
	salt, keyHex, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || keyHex == "" {
		return false
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil || len(want) != keyLength {
		return false
	}
	got, err := derive(plain, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}

func derive(plain, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(plain), []byte(salt), scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("password: scrypt: %w", err)
	}
	return key, nil
}
