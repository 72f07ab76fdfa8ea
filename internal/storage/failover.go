package storage

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Failover serves from primary until it errors, then falls back and
// probes the primary again after a minute.
type Failover struct {
	primary   Backend
	fallback  Backend
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailover(primary, fallback Backend, logger *zerolog.Logger) *Failover {
	return &Failover{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *Failover) markDown(err error) {
	f.logger.Error().Err(err).Msg("Primary storage backend failed, falling back")
	f.isDown.Store(true)
	f.lastCheck = time.Now()
}

func (f *Failover) Get(ctx context.Context, key string) ([]byte, error) {
	if !f.isDown.Load() {
		val, err := f.primary.Get(ctx, key)
		if err == nil || err == ErrKeyNotFound {
			return val, err
		}
		f.markDown(err)
	}

	// Try to recover after 1 minute
	if f.isDown.Load() && time.Since(f.lastCheck) > time.Minute {
		val, err := f.primary.Get(ctx, key)
		if err == nil || err == ErrKeyNotFound {
			f.isDown.Store(false)
			return val, err
		}
		f.lastCheck = time.Now()
	}

	return f.fallback.Get(ctx, key)
}

func (f *Failover) Set(ctx context.Context, key string, value []byte) error {
	if !f.isDown.Load() {
		err := f.primary.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		f.markDown(err)
	}

	return f.fallback.Set(ctx, key, value)
}

func (f *Failover) Delete(ctx context.Context, key string) error {
	if !f.isDown.Load() {
		err := f.primary.Delete(ctx, key)
		if err == nil {
			return nil
		}
		f.markDown(err)
	}

	return f.fallback.Delete(ctx, key)
}
