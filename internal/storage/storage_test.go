package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func TestMemoryBackend(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	t.Run("GetMissingKey", func(t *testing.T) {
		_, err := m.Get(ctx, "movies")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "movies", []byte(`[{"id":1}]`)))

		val, err := m.Get(ctx, "movies")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":1}]`), val)
	})

	t.Run("ValueIsCopied", func(t *testing.T) {
		original := []byte("abc")
		require.NoError(t, m.Set(ctx, "copy", original))
		original[0] = 'x'

		val, err := m.Get(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), val)

		val[0] = 'y'
		again, err := m.Get(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "gone", []byte("1")))
		require.NoError(t, m.Delete(ctx, "gone"))

		_, err := m.Get(ctx, "gone")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Keys", func(t *testing.T) {
		keys, err := m.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, "movies")
	})
}

func TestSQLiteBackend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "collections.db")
	db, err := NewSQLite(dbPath, testLogger())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	t.Run("GetMissingKey", func(t *testing.T) {
		_, err := db.Get(ctx, "theaters")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("SetGetDelete", func(t *testing.T) {
		require.NoError(t, db.Set(ctx, "theaters", []byte(`[]`)))

		val, err := db.Get(ctx, "theaters")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), val)

		require.NoError(t, db.Delete(ctx, "theaters"))
		_, err = db.Get(ctx, "theaters")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Upsert", func(t *testing.T) {
		require.NoError(t, db.Set(ctx, "users", []byte("v1")))
		require.NoError(t, db.Set(ctx, "users", []byte("v2")))

		val, err := db.Get(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), val)
	})

	t.Run("Keys", func(t *testing.T) {
		require.NoError(t, db.Set(ctx, "bookings", []byte("[]")))
		keys, err := db.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, "users")
		assert.Contains(t, keys, "bookings")
	})
}

type brokenBackend struct{}

var errBroken = errors.New("backend unavailable")

func (brokenBackend) Get(ctx context.Context, key string) ([]byte, error) { return nil, errBroken }
func (brokenBackend) Set(ctx context.Context, key string, value []byte) error {
	return errBroken
}
func (brokenBackend) Delete(ctx context.Context, key string) error { return errBroken }

func TestFailover(t *testing.T) {
	ctx := context.Background()

	t.Run("PrimaryHealthy", func(t *testing.T) {
		primary := NewMemory()
		fallback := NewMemory()
		f := NewFailover(primary, fallback, testLogger())

		require.NoError(t, f.Set(ctx, "movies", []byte("a")))

		val, err := f.Get(ctx, "movies")
		require.NoError(t, err)
		assert.Equal(t, []byte("a"), val)

		// Fallback stays untouched while primary is up.
		_, err = fallback.Get(ctx, "movies")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("MissingKeyIsNotAFailure", func(t *testing.T) {
		f := NewFailover(NewMemory(), NewMemory(), testLogger())
		_, err := f.Get(ctx, "nothing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("FallsBackOnError", func(t *testing.T) {
		fallback := NewMemory()
		f := NewFailover(brokenBackend{}, fallback, testLogger())

		require.NoError(t, f.Set(ctx, "movies", []byte("b")))

		val, err := f.Get(ctx, "movies")
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), val)

		val, err = fallback.Get(ctx, "movies")
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), val)
	})

	t.Run("StaysDownUntilProbe", func(t *testing.T) {
		f := NewFailover(brokenBackend{}, NewMemory(), testLogger())

		_, err := f.Get(ctx, "x")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.True(t, f.isDown.Load())

		// No probe yet: still served from fallback.
		require.NoError(t, f.Set(ctx, "x", []byte("1")))
		val, err := f.Get(ctx, "x")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), val)
	})
}
