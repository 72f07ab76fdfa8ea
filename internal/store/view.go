package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/metrics"
	"github.com/slayscreens/showdesk/internal/storage"
)

// View is the read-only face of a collection whose records are produced
// by an external flow. It shares the load-or-seed semantics of Store
// but exposes no mutations.
type View[T any] struct {
	backend  storage.Backend
	key      string
	defaults []T
	logger   *zerolog.Logger

	mu sync.Mutex
}

func NewView[T any](backend storage.Backend, key string, defaults []T, logger *zerolog.Logger) *View[T] {
	return &View[T]{
		backend:  backend,
		key:      key,
		defaults: defaults,
		logger:   logger,
	}
}

// Key returns the storage key the view is bound to.
func (v *View[T]) Key() string { return v.key }

// Load reads the collection, seeding the defaults when the key has
// never been written. Each call re-reads storage so externally produced
// records show up without a process restart.
func (v *View[T]) Load(ctx context.Context) ([]T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	raw, err := v.backend.Get(ctx, v.key)
	if err == storage.ErrKeyNotFound {
		seeded := cloneRecords(v.defaults)
		if err := v.persistSeed(ctx, seeded); err != nil {
			metrics.IncStoreOp(v.key, "load", "error")
			return nil, err
		}
		v.logger.Info().Str("collection", v.key).Int("count", len(seeded)).Msg("Collection seeded with defaults")
		metrics.IncStoreOp(v.key, "load", "ok")
		return cloneRecords(seeded), nil
	}
	if err != nil {
		metrics.IncStoreOp(v.key, "load", "error")
		return nil, &PersistenceError{Op: "load", Key: v.key, Err: err}
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		metrics.IncStoreOp(v.key, "load", "error")
		return nil, &PersistenceError{Op: "decode", Key: v.key, Err: err}
	}

	metrics.IncStoreOp(v.key, "load", "ok")
	return records, nil
}

// List narrows the collection by the given predicates.
func (v *View[T]) List(ctx context.Context, preds ...func(T) bool) ([]T, error) {
	records, err := v.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(preds) == 0 {
		return records, nil
	}

	out := records[:0]
	for _, rec := range records {
		keep := true
		for _, pred := range preds {
			if !pred(rec) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (v *View[T]) persistSeed(ctx context.Context, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: v.key, Err: err}
	}
	if err := v.backend.Set(ctx, v.key, raw); err != nil {
		return &PersistenceError{Op: "save", Key: v.key, Err: err}
	}
	return nil
}
