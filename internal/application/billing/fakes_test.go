package billing_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/salestax-api/internal/domain/entity"
)

var errUnavailable = errors.New("conexión rechazada")

// ── Caché en memoria para tests ───────────────────────────────────────────────

type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
	gets   int
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// ── Directorio de empresas ────────────────────────────────────────────────────

type fakeDirectory struct {
	mu         sync.Mutex
	businesses map[string]entity.BusinessExemption
	err        error
	calls      int
}

func newFakeDirectory(list ...entity.BusinessExemption) *fakeDirectory {
	d := &fakeDirectory{businesses: map[string]entity.BusinessExemption{}}
	for _, b := range list {
		d.businesses[b.BusinessID] = b
	}
	return d
}

func (d *fakeDirectory) GetExemption(_ context.Context, businessID string) (*entity.BusinessExemption, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	b, ok := d.businesses[businessID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

type fakePayments struct {
	payments map[string]entity.PaymentRecord
	err      error
}

func (p *fakePayments) GetByID(_ context.Context, id string) (*entity.PaymentRecord, error) {
	if p.err != nil {
		return nil, p.err
	}
	rec, ok := p.payments[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// ── Métricas ──────────────────────────────────────────────────────────────────

type recordingMetrics struct {
	mu        sync.Mutex
	failures  map[string]int
	decisions map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{failures: map[string]int{}, decisions: map[string]int{}}
}

func (m *recordingMetrics) ObserveCalculation(string, string, bool) {}

func (m *recordingMetrics) ObserveCollaboratorFailure(collaborator, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[collaborator+":"+op]++
}

func (m *recordingMetrics) ObserveExemptionDecision(source string, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[source]++
}
