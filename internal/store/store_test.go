package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slayscreens/showdesk/internal/events"
	"github.com/slayscreens/showdesk/internal/models"
	"github.com/slayscreens/showdesk/internal/storage"
)

func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func seedMovies() []models.Movie {
	return []models.Movie{
		{ID: 1, Title: "Venom: The Last Dance", Genre: "Action", Status: models.StatusActive, Price: 250},
		{ID: 2, Title: "Pathaan", Genre: "Action", Status: models.StatusActive, Price: 300},
		{ID: 3, Title: "Dune: Part Two", Genre: "Sci-Fi", Status: models.StatusComingSoon, Price: 350},
	}
}

func newTestStore(t *testing.T) (*Store[models.Movie], *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	s := New(backend, models.KeyMovies, seedMovies(), nil, testLogger())
	return s, backend
}

func TestStoreSeeding(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	movies, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 3)

	// Seeding must be persisted, not just held in memory.
	raw, err := backend.Get(ctx, models.KeyMovies)
	require.NoError(t, err)

	var persisted []models.Movie
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, movies, persisted)
}

func TestStoreAdd(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, models.Movie{Title: "RRR", Genre: "Drama", Status: models.StatusActive})
	require.NoError(t, err)
	assert.NotZero(t, added.ID)
	assert.Equal(t, "RRR", added.Title)

	movies, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 4)
	assert.Equal(t, added, movies[3])

	t.Run("SurvivesRestart", func(t *testing.T) {
		fresh := New(backend, models.KeyMovies, seedMovies(), nil, testLogger())
		movies, err := fresh.Load(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 4)
		assert.Equal(t, "RRR", movies[3].Title)
	})

	t.Run("IDsNeverCollide", func(t *testing.T) {
		a, err := s.Add(ctx, models.Movie{Title: "First"})
		require.NoError(t, err)
		b, err := s.Add(ctx, models.Movie{Title: "Second"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Greater(t, b.ID, a.ID)
	})
}

func TestStoreAddToEmptyCollection(t *testing.T) {
	backend := storage.NewMemory()
	s := New[models.Movie](backend, models.KeyMovies, nil, nil, testLogger())
	ctx := context.Background()

	added, err := s.Add(ctx, models.Movie{Title: "Dune"})
	require.NoError(t, err)

	movies, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, added.ID, movies[0].ID)
	assert.Equal(t, "Dune", movies[0].Title)
}

func TestStoreAddBumpsPastMaxID(t *testing.T) {
	backend := storage.NewMemory()
	future := time.Now().Add(24 * time.Hour).UnixMilli()
	s := New(backend, models.KeyMovies, []models.Movie{{ID: future, Title: "From the future"}}, nil, testLogger())

	added, err := s.Add(context.Background(), models.Movie{Title: "Now"})
	require.NoError(t, err)
	assert.Equal(t, future+1, added.ID)
}

func TestStoreGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	movie, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Pathaan", movie.Title)

	_, err = s.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("PatchRetainsUnspecifiedFields", func(t *testing.T) {
		updated, err := s.Update(ctx, 3, map[string]any{"status": models.StatusActive})
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, updated.Status)
		assert.Equal(t, "Dune: Part Two", updated.Title)
		assert.Equal(t, "Sci-Fi", updated.Genre)
		assert.Equal(t, int64(350), updated.Price)
	})

	t.Run("IDCannotBePatched", func(t *testing.T) {
		updated, err := s.Update(ctx, 1, map[string]any{"id": 777, "price": 400})
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.ID)
		assert.Equal(t, int64(400), updated.Price)

		_, err = s.Get(ctx, 777)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("MissingRecord", func(t *testing.T) {
		_, err := s.Update(ctx, 999, map[string]any{"title": "Nope"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("TypeMismatchIsValidationError", func(t *testing.T) {
		_, err := s.Update(ctx, 1, map[string]any{"price": "not a number"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestStoreRemove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Remove(ctx, 2))

	movies, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	for _, m := range movies {
		assert.NotEqual(t, int64(2), m.ID)
	}

	t.Run("MissingIDIsNoOp", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, 5))
		require.NoError(t, s.Remove(ctx, 5))

		movies, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, movies, 2)
	})
}

func TestStoreReset(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, models.Movie{Title: "Extra"})
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, 1))

	require.NoError(t, s.Reset(ctx))

	movies, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedMovies(), movies)
}

func TestStoreCorruptPayload(t *testing.T) {
	backend := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, models.KeyMovies, []byte("{not json")))

	s := New(backend, models.KeyMovies, seedMovies(), nil, testLogger())

	_, err := s.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "decode", perr.Op)

	// The corrupt payload must stay in place for inspection.
	raw, err := backend.Get(ctx, models.KeyMovies)
	require.NoError(t, err)
	assert.Equal(t, []byte("{not json"), raw)
}

type failingBackend struct {
	*storage.Memory
	failSet bool
}

func (f *failingBackend) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestStoreWriteFailureKeepsState(t *testing.T) {
	backend := &failingBackend{Memory: storage.NewMemory()}
	s := New[models.Movie](backend, models.KeyMovies, seedMovies(), nil, testLogger())
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.NoError(t, err)

	backend.failSet = true
	_, err = s.Add(ctx, models.Movie{Title: "Doomed"})
	assert.ErrorIs(t, err, ErrPersistence)

	// A failed write must not leak into the in-memory collection.
	backend.failSet = false
	movies, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 3)
}

func TestStoreSubscribe(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	changes := make(chan Change, 4)
	unsubscribe := s.Subscribe(func(c Change) { changes <- c })

	added, err := s.Add(ctx, models.Movie{Title: "Watched"})
	require.NoError(t, err)

	select {
	case c := <-changes:
		assert.Equal(t, events.ActionAdded, c.Action)
		assert.Equal(t, added.ID, c.RecordID)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	unsubscribe()
	require.NoError(t, s.Remove(ctx, added.ID))

	select {
	case c := <-changes:
		t.Fatalf("unexpected notification after unsubscribe: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStorePublishesChangeEvents(t *testing.T) {
	backend := storage.NewMemory()
	bus := events.NewEventBus()
	s := New(backend, models.KeyMovies, seedMovies(), bus, testLogger())
	ctx := context.Background()

	var got []events.ChangePayload
	bus.Subscribe(events.TypeChanged(models.KeyMovies), func(e *events.Event) error {
		var p events.ChangePayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return err
		}
		got = append(got, p)
		return nil
	})

	added, err := s.Add(ctx, models.Movie{Title: "Published"})
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, added.ID))

	require.Len(t, got, 2)
	assert.Equal(t, events.ActionAdded, got[0].Action)
	assert.Equal(t, added.ID, got[0].RecordID)
	assert.Equal(t, 4, got[0].Count)
	assert.Equal(t, events.ActionRemoved, got[1].Action)
	assert.Equal(t, 3, got[1].Count)
}

func TestViewLoad(t *testing.T) {
	backend := storage.NewMemory()
	ctx := context.Background()

	t.Run("SeedsEmptyCollection", func(t *testing.T) {
		v := NewView[models.Booking](backend, models.KeyBookings, nil, testLogger())
		bookings, err := v.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, bookings)

		raw, err := backend.Get(ctx, models.KeyBookings)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("SeesExternalWrites", func(t *testing.T) {
		v := NewView[models.Booking](backend, models.KeyBookings, nil, testLogger())
		_, err := v.Load(ctx)
		require.NoError(t, err)

		external := []models.Booking{{BookingID: "BK123", Type: models.BookingTypeMovie, Status: models.StatusConfirmed}}
		raw, err := json.Marshal(external)
		require.NoError(t, err)
		require.NoError(t, backend.Set(ctx, models.KeyBookings, raw))

		bookings, err := v.Load(ctx)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "BK123", bookings[0].BookingID)
	})

	t.Run("CorruptPayload", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, models.KeyBookings, []byte("oops")))
		v := NewView[models.Booking](backend, models.KeyBookings, nil, testLogger())
		_, err := v.Load(ctx)
		assert.ErrorIs(t, err, ErrPersistence)
	})
}
