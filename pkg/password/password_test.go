package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodzo-api/pkg/password"
)

func TestHashVerify(t *testing.T) {
	hash, err := password.Hash("secreto123")
	require.NoError(t, err)

	salt, key, ok := strings.Cut(hash, ":")
	require.True(t, ok)
	assert.Len(t, salt, 32)
	assert.Len(t, key, 128)

	assert.True(t, password.Verify("secreto123", hash))
	assert.False(t, password.Verify("otro", hash))
}

func TestHash_SalDistintaPorLlamada(t *testing.T) {
	a, err := password.Hash("secreto123")
	require.NoError(t, err)
	b, err := password.Hash("secreto123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_HashMalFormado(t *testing.T) {
	for _, stored := range []string{"", "sinseparador", ":abc", "abc:", "abc:zz", "abc:abcd"} {
		assert.False(t, password.Verify("secreto123", stored), stored)
	}
}
