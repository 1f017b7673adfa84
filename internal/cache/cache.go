package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"MarketDashboard/internal/model"
)

// Store is a byte-oriented key/value store with per-entry expiry.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Kind is the type of cached result.
type Kind string

const (
	KindQuote        Kind = "quote"
	KindHistory      Kind = "history"
	KindFundamentals Kind = "fundamentals"
)

// Key identifies one cached fetch: kind, symbol and (for history) interval.
type Key struct {
	Kind     Kind
	Symbol   string
	Interval model.Interval
}

func (k Key) String() string {
	symbol := strings.ToUpper(k.Symbol)
	if k.Interval == "" {
		return fmt.Sprintf("%s:%s", k.Kind, symbol)
	}
	return fmt.Sprintf("%s:%s:%s", k.Kind, symbol, k.Interval)
}

// Policy holds the time-to-live per kind.
type Policy struct {
	Quote        time.Duration
	History      time.Duration
	Fundamentals time.Duration
}

// DefaultPolicy caches quotes and history for 5 minutes and fundamentals for
// an hour.
func DefaultPolicy() Policy {
	return Policy{
		Quote:        5 * time.Minute,
		History:      5 * time.Minute,
		Fundamentals: time.Hour,
	}
}

// TTL returns the time-to-live for kind.
func (p Policy) TTL(kind Kind) time.Duration {
	switch kind {
	case KindQuote:
		return p.Quote
	case KindHistory:
		return p.History
	case KindFundamentals:
		return p.Fundamentals
	}
	return 0
}

// Cache wraps loader calls with a Store and a TTL Policy. Errors are never
// cached; a store failure falls back to the loader.
type Cache struct {
	store  Store
	policy Policy
}

// New creates a Cache over store.
func New(store Store, policy Policy) *Cache {
	return &Cache{store: store, policy: policy}
}

// Policy returns the TTL policy in use.
func (c *Cache) Policy() Policy { return c.policy }

// Invalidate removes the entry for key.
func (c *Cache) Invalidate(ctx context.Context, key Key) error {
	return c.store.Delete(ctx, key.String())
}

// Close closes the underlying store.
func (c *Cache) Close() error { return c.store.Close() }

// Load returns the cached value for key, or calls load and caches its result
// for the policy TTL of key.Kind.
func Load[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	k := key.String()
	ttl := c.policy.TTL(key.Kind)

	if ttl > 0 {
		data, ok, err := c.store.Get(ctx, k)
		switch {
		case err != nil:
			log.Printf("[WARN] cache get %s: %v", k, err)
		case ok:
			var v T
			err := json.Unmarshal(data, &v)
			if err == nil {
				return v, nil
			}
			log.Printf("[WARN] cache decode %s: %v, refetching", k, err)
		}
	}

	return fill(ctx, c, k, ttl, load)
}

// Reload calls load and overwrites the entry for key, ignoring any cached
// value. A failed load leaves the existing entry in place.
func Reload[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	return fill(ctx, c, key.String(), c.policy.TTL(key.Kind), load)
}

func fill[T any](ctx context.Context, c *Cache, k string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	v, err := load(ctx)
	if err != nil || ttl <= 0 {
		return v, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] cache encode %s: %v", k, err)
		return v, nil
	}
	if err := c.store.Set(ctx, k, data, ttl); err != nil {
		log.Printf("[WARN] cache set %s: %v", k, err)
	}
	return v, nil
}
