// Package cache implementa el almacén clave/valor en memoria del proceso.
package cache

import (
	"context"
	"time"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	gocache "github.com/patrickmn/go-cache"
)

var _ billing.Cache = (*MemoryCache)(nil)

// MemoryCache caché local con expiración por entrada (go-cache).
// Útil en desarrollo y en el CLI; en producción con varias réplicas usar el adaptador PostgreSQL.
type MemoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache construye la caché. cleanup es el intervalo de purga de entradas expiradas.
func NewMemoryCache(defaultTTL, cleanup time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(defaultTTL, cleanup)}
}

// Get devuelve una copia del valor para que el caller no altere lo almacenado.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	raw, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

// Set guarda el valor con el TTL indicado.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.c.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Len cantidad de entradas (incluye expiradas aún no purgadas).
func (m *MemoryCache) Len() int {
	return m.c.ItemCount()
}
