package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iho/walletledger/internal/domain"
)

// Retrier re-runs an operation without delay while it fails with a transient
// store error or a duplicate idempotency key.
type Retrier struct {
	MaxRetries int
}

// Retry runs operation up to MaxRetries+1 times. Exhausted retries surface as
// domain.ErrStoreTransient.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	var err error
	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = operation()
		if err == nil {
			return nil
		}

		if !errors.Is(err, domain.ErrStoreTransient) && !errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			return err
		}
	}

	if errors.Is(err, domain.ErrStoreTransient) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreTransient, err)
}

// IDGenerator returns evt-1, evt-2, ...
type IDGenerator struct {
	n atomic.Int64
}

// Generate returns the next id.
func (g *IDGenerator) Generate() string {
	return fmt.Sprintf("evt-%d", g.n.Add(1))
}

// Cache is a map-backed usecase.Cache. A miss returns (nil, nil).
type Cache struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

// Set stores a copy of value. ttl is ignored.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len reports the number of cached keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
