package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/salestax-api/internal/application/billing"
)

var _ billing.Cache = (*CacheStore)(nil)

// CacheStore caché compartida entre réplicas sobre la tabla tax_cache (value JSONB, expires_at).
type CacheStore struct {
	q   Querier
	now func() time.Time
}

// NewCacheStore construye el adaptador.
func NewCacheStore(q Querier) *CacheStore {
	return &CacheStore{q: q, now: time.Now}
}

// Get devuelve el valor si existe y no expiró.
func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT value FROM tax_cache WHERE key = $1 AND expires_at > $2`
	var value []byte
	err := s.q.QueryRow(ctx, query, key, s.now()).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserta o reemplaza la entrada con expiración now+ttl.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	const query = `
		INSERT INTO tax_cache (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`
	if _, err := s.q.Exec(ctx, query, key, string(value), s.now().Add(ttl)); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// PurgeExpired elimina las entradas vencidas y devuelve cuántas se borraron.
func (s *CacheStore) PurgeExpired(ctx context.Context) (int64, error) {
	cmd, err := s.q.Exec(ctx, `DELETE FROM tax_cache WHERE expires_at <= $1`, s.now())
	if err != nil {
		return 0, fmt.Errorf("cache purge: %w", err)
	}
	return cmd.RowsAffected(), nil
}
