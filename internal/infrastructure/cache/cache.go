// Package cache cachea en memoria las lecturas del catálogo público (go-cache).
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory caché con TTL por defecto. TTL <= 0 desactiva el almacenamiento.
type Memory struct {
	c       *gocache.Cache
	enabled bool
}

// New crea la caché; la limpieza de expirados corre cada minuto.
func New(ttl time.Duration) *Memory {
	if ttl <= 0 {
		return &Memory{c: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Memory{c: gocache.New(ttl, time.Minute), enabled: true}
}

// Get devuelve el valor si existe y no expiró.
func (m *Memory) Get(key string) (any, bool) {
	if !m.enabled {
		return nil, false
	}
	return m.c.Get(key)
}

// Set guarda con el TTL por defecto.
func (m *Memory) Set(key string, v any) {
	if !m.enabled {
		return
	}
	m.c.SetDefault(key, v)
}

// Flush vacía todas las entradas.
func (m *Memory) Flush() { m.c.Flush() }

// Len número de entradas (incluye expiradas aún no limpiadas).
func (m *Memory) Len() int { return m.c.ItemCount() }
