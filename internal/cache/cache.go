// Package cache wraps idempotent, expensive upstream calls with a
// get-or-compute-and-store policy. Entries expire by TTL or by explicit
// prefix invalidation.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// Store is the cache backing store. Values are JSON bytes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Key builds a deterministic cache key from an operation name and the
// arguments that affect the result. Argument encoding is order-independent:
// names are sorted before joining.
func Key(operation string, args map[string]string) string {
	if len(args) == 0 {
		return "soap:" + operation
	}
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("soap:")
	b.WriteString(operation)
	for _, name := range names {
		b.WriteString(":")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(args[name])
	}
	return b.String()
}

// GetOrCompute returns the cached value for key when present and unexpired;
// otherwise it invokes compute once, stores the result, and returns it. The
// second return reports a cache hit. Concurrent misses for the same key may
// compute more than once; the upstream calls being cached are idempotent
// reads, so duplicates are tolerated.
//
// The cache is an optimization over a healthy upstream: a failing backing
// store (a degraded Redis) is logged and treated as a miss, it never fails
// the operation.
func GetOrCompute[V any](ctx context.Context, store Store, logger *slog.Logger, key string, ttl time.Duration, compute func(ctx context.Context) (V, error)) (V, bool, error) {
	var zero V

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "cache get failed, computing", "key", key, "error", err)
		ok = false
	}
	if ok {
		var value V
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, true, nil
		}
		// Undecodable entry: treat as a miss and overwrite below.
	}

	value, err := compute(ctx)
	if err != nil {
		return zero, false, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return zero, false, fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, encoded, ttl); err != nil {
		// The computed value is good; losing the cache entry only costs the
		// next caller a recompute.
		logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
	return value, false, nil
}
