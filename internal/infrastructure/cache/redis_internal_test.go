package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBroadcast_AvisoDeOtraInstanciaVaciaLaCache(t *testing.T) {
	local := New(time.Minute)
	b := newBroadcast(local, nil, "test", nil)
	local.Set("products", []string{"p1"})

	b.handle(b.origin)
	_, ok := b.Get("products")
	assert.True(t, ok, "el aviso propio no debe vaciar la caché")

	b.handle("otra-instancia")
	_, ok = b.Get("products")
	assert.False(t, ok)
}

func TestBroadcast_FlushSinClienteVaciaLocal(t *testing.T) {
	b := newBroadcast(New(time.Minute), nil, "test", nil)
	b.Set("categories", 1)

	b.Flush()

	_, ok := b.Get("categories")
	assert.False(t, ok)
	assert.NoError(t, b.Close())
}
