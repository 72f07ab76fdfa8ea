package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/events"
	"github.com/slayscreens/showdesk/internal/metrics"
	"github.com/slayscreens/showdesk/internal/storage"
)

// Record is implemented by every entity held in a Store.
type Record[T any] interface {
	RecordID() int64
	WithID(id int64) T
}

// Publisher receives a change event after every successful mutation.
type Publisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Change describes one mutation for in-process subscribers.
type Change struct {
	Action   string
	RecordID int64
}

// Store owns one persistent array of records bound to a storage key.
// The source of truth is whichever copy was most recently written;
// concurrent writers outside this process are not merged.
type Store[T Record[T]] struct {
	backend  storage.Backend
	key      string
	defaults []T
	bus      Publisher
	logger   *zerolog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	records []T
	loaded  bool
	subs    map[int]func(Change)
	nextSub int
}

func New[T Record[T]](backend storage.Backend, key string, defaults []T, bus Publisher, logger *zerolog.Logger) *Store[T] {
	return &Store[T]{
		backend:  backend,
		key:      key,
		defaults: defaults,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
		subs:     make(map[int]func(Change)),
	}
}

// Key returns the storage key the store is bound to.
func (s *Store[T]) Key() string { return s.key }

// ensureLoaded reads the collection from storage on first access,
// seeding and persisting the defaults when the key is absent.
// Callers must hold the write lock.
func (s *Store[T]) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, err := s.backend.Get(ctx, s.key)
	if err == storage.ErrKeyNotFound {
		seeded := cloneRecords(s.defaults)
		if err := s.persist(ctx, seeded); err != nil {
			return err
		}
		s.records = seeded
		s.loaded = true
		s.logger.Info().Str("collection", s.key).Int("count", len(seeded)).Msg("Collection seeded with defaults")
		return nil
	}
	if err != nil {
		return &PersistenceError{Op: "load", Key: s.key, Err: err}
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		// A corrupt payload is surfaced, never silently reseeded.
		return &PersistenceError{Op: "decode", Key: s.key, Err: err}
	}

	s.records = records
	s.loaded = true
	return nil
}

func (s *Store[T]) persist(ctx context.Context, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.backend.Set(ctx, s.key, raw); err != nil {
		return &PersistenceError{Op: "save", Key: s.key, Err: err}
	}
	return nil
}

// Load returns the full collection, seeding it on first access.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		metrics.IncStoreOp(s.key, "load", "error")
		return nil, err
	}
	metrics.IncStoreOp(s.key, "load", "ok")
	return cloneRecords(s.records), nil
}

// List returns the collection narrowed by the given predicates. It
// imposes no ordering; ordering is a presentation concern.
func (s *Store[T]) List(ctx context.Context, preds ...func(T) bool) ([]T, error) {
	records, err := s.Load(ctx)
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

// Get returns one record by id.
func (s *Store[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return zero, err
	}
	for _, rec := range s.records {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}

// Add assigns a fresh identifier, appends the record and persists the
// whole array.
func (s *Store[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		metrics.IncStoreOp(s.key, "add", "error")
		return zero, err
	}

	rec = rec.WithID(s.nextID())
	next := append(cloneRecords(s.records), rec)
	if err := s.persist(ctx, next); err != nil {
		metrics.IncStoreOp(s.key, "add", "error")
		return zero, err
	}
	s.records = next
	metrics.IncStoreOp(s.key, "add", "ok")
	s.notify(Change{Action: events.ActionAdded, RecordID: rec.RecordID()})
	return rec, nil
}

// Update shallow-merges patch over the stored record: patch fields win,
// unspecified fields are retained. The identifier cannot be patched.
func (s *Store[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		metrics.IncStoreOp(s.key, "update", "error")
		return zero, err
	}

	idx := -1
	for i, rec := range s.records {
		if rec.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		metrics.IncStoreOp(s.key, "update", "not_found")
		return zero, ErrNotFound
	}

	merged, err := mergeRecord(s.records[idx], id, patch)
	if err != nil {
		metrics.IncStoreOp(s.key, "update", "error")
		return zero, err
	}

	next := cloneRecords(s.records)
	next[idx] = merged
	if err := s.persist(ctx, next); err != nil {
		metrics.IncStoreOp(s.key, "update", "error")
		return zero, err
	}
	s.records = next
	metrics.IncStoreOp(s.key, "update", "ok")
	s.notify(Change{Action: events.ActionUpdated, RecordID: id})
	return merged, nil
}

// Remove filters the record out and persists the reduced array.
// Removing a missing identifier is a silent no-op.
func (s *Store[T]) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		metrics.IncStoreOp(s.key, "remove", "error")
		return err
	}

	next := make([]T, 0, len(s.records))
	found := false
	for _, rec := range s.records {
		if rec.RecordID() == id {
			found = true
			continue
		}
		next = append(next, rec)
	}
	if !found {
		metrics.IncStoreOp(s.key, "remove", "not_found")
		return nil
	}

	if err := s.persist(ctx, next); err != nil {
		metrics.IncStoreOp(s.key, "remove", "error")
		return err
	}
	s.records = next
	metrics.IncStoreOp(s.key, "remove", "ok")
	s.notify(Change{Action: events.ActionRemoved, RecordID: id})
	return nil
}

// Reset discards the stored collection and restores the seed defaults.
func (s *Store[T]) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := cloneRecords(s.defaults)
	if err := s.persist(ctx, seeded); err != nil {
		metrics.IncStoreOp(s.key, "reset", "error")
		return err
	}
	s.records = seeded
	s.loaded = true
	metrics.IncStoreOp(s.key, "reset", "ok")
	s.notify(Change{Action: events.ActionReset})
	return nil
}

// Subscribe registers a callback invoked after every successful
// mutation and returns its unsubscribe function.
func (s *Store[T]) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// notify runs with the write lock held; handlers are invoked after it
// is released so they can call back into the store.
func (s *Store[T]) notify(change Change) {
	handlers := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		handlers = append(handlers, fn)
	}
	count := len(s.records)

	go func() {
		for _, fn := range handlers {
			fn(change)
		}
	}()

	if s.bus != nil {
		payload := events.ChangePayload{
			Collection: s.key,
			Action:     change.Action,
			RecordID:   change.RecordID,
			Count:      count,
		}
		if err := s.bus.PublishJSON(events.TypeChanged(s.key), payload); err != nil {
			s.logger.Warn().Err(err).Str("collection", s.key).Msg("Failed to publish change event")
		}
	}
}

// nextID uses the current timestamp in milliseconds, bumped past the
// highest existing identifier so rapid successive inserts cannot
// collide.
func (s *Store[T]) nextID() int64 {
	id := s.now().UnixMilli()
	for _, rec := range s.records {
		if rec.RecordID() >= id {
			id = rec.RecordID() + 1
		}
	}
	return id
}

func mergeRecord[T Record[T]](current T, id int64, patch map[string]any) (T, error) {
	var zero T

	raw, err := json.Marshal(current)
	if err != nil {
		return zero, &PersistenceError{Op: "encode", Key: "record", Err: err}
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, &PersistenceError{Op: "decode", Key: "record", Err: err}
	}

	for k, v := range patch {
		fields[k] = v
	}
	fields["id"] = id

	mergedRaw, err := json.Marshal(fields)
	if err != nil {
		return zero, &PersistenceError{Op: "encode", Key: "record", Err: err}
	}
	var merged T
	if err := json.Unmarshal(mergedRaw, &merged); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return merged, nil
}

func cloneRecords[T any](records []T) []T {
	out := make([]T, len(records))
	copy(out, records)
	return out
}
