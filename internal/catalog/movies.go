package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/models"
	"github.com/slayscreens/showdesk/internal/store"
)

// Movies is the centralized movie facade other views depend on: CRUD
// plus a reset back to the seed catalog. Change notifications flow
// through the store's subscription interface.
type Movies struct {
	store  *store.Store[models.Movie]
	logger *zerolog.Logger
}

func NewMovies(s *store.Store[models.Movie], logger *zerolog.Logger) *Movies {
	return &Movies{store: s, logger: logger}
}

func (m *Movies) GetMovies(ctx context.Context) ([]models.Movie, error) {
	return m.store.List(ctx)
}

func (m *Movies) GetMovie(ctx context.Context, id int64) (models.Movie, error) {
	return m.store.Get(ctx, id)
}

// GetMoviesByStatus narrows by status, compared case-insensitively.
func (m *Movies) GetMoviesByStatus(ctx context.Context, status string) ([]models.Movie, error) {
	if status == "" || status == "all" {
		return m.store.List(ctx)
	}
	return m.store.List(ctx, func(rec models.Movie) bool {
		return equalFold(rec.Status, status)
	})
}

// AddMovie assigns the identifier and persists the record.
func (m *Movies) AddMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	added, err := m.store.Add(ctx, movie)
	if err != nil {
		return models.Movie{}, err
	}
	m.logger.Info().Int64("movie_id", added.ID).Str("title", added.Title).Msg("Movie added")
	return added, nil
}

// UpdateMovie replaces the stored record's fields with the given one.
// The full record comes from the edit form, so every field is applied.
func (m *Movies) UpdateMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	patch, err := recordPatch(movie)
	if err != nil {
		return models.Movie{}, err
	}
	return m.store.Update(ctx, movie.ID, patch)
}

// PatchMovie applies a partial update; unspecified fields are retained.
func (m *Movies) PatchMovie(ctx context.Context, id int64, patch map[string]any) (models.Movie, error) {
	return m.store.Update(ctx, id, patch)
}

// DeleteMovie removes the record; deleting an unknown id is reported as
// not-found so the caller can surface it.
func (m *Movies) DeleteMovie(ctx context.Context, id int64) error {
	if _, err := m.store.Get(ctx, id); err != nil {
		return err
	}
	return m.store.Remove(ctx, id)
}

// Init resets the catalog back to the seed defaults.
func (m *Movies) Init(ctx context.Context) error {
	m.logger.Warn().Msg("Movie catalog reset to defaults")
	return m.store.Reset(ctx)
}

// Subscribe registers a change callback; other open views use it for
// live refresh.
func (m *Movies) Subscribe(fn func(store.Change)) func() {
	return m.store.Subscribe(fn)
}

// recordPatch turns a full record into a patch map so the store's
// shallow merge applies every field of the edit form.
func recordPatch(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrValidation, err)
	}
	patch := make(map[string]any)
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrValidation, err)
	}
	return patch, nil
}
