package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/catalog"
	"github.com/slayscreens/showdesk/internal/config"
	"github.com/slayscreens/showdesk/internal/store"
)

// HTTPServer exposes the admin collections over a JSON API.
type HTTPServer struct {
	cfg         config.APIConfig
	catalog     *catalog.Catalog
	exportsPath string
	logger      *zerolog.Logger
	server      *http.Server
	auth        *HTTPAuth
}

func NewHTTPServer(cfg config.APIConfig, cat *catalog.Catalog, exportsPath string, logger *zerolog.Logger) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{
		cfg:         cfg,
		catalog:     cat,
		exportsPath: exportsPath,
		logger:      logger,
	}
	srv.auth = NewHTTPAuth(cfg)
	srv.routes(mux)

	handler := loggingMiddleware(logger, srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

func (s *HTTPServer) routes(mux *http.ServeMux) {
	registerResource(mux, "sports", s.catalog.Sports)
	registerResource(mux, "events", s.catalog.Events)
	registerResource(mux, "stream", s.catalog.Stream)
	registerResource(mux, "theaters", s.catalog.Theaters)

	mux.HandleFunc("GET /api/v1/movies", s.handleListMovies)
	mux.HandleFunc("POST /api/v1/movies", s.handleAddMovie)
	mux.HandleFunc("POST /api/v1/movies/reset", s.handleResetMovies)
	mux.HandleFunc("GET /api/v1/movies/{id}", s.handleGetMovie)
	mux.HandleFunc("PUT /api/v1/movies/{id}", s.handleUpdateMovie)
	mux.HandleFunc("DELETE /api/v1/movies/{id}", s.handleDeleteMovie)

	mux.HandleFunc("GET /api/v1/users", s.handleListUsers)
	mux.HandleFunc("POST /api/v1/users", s.handleCreateUser)
	mux.HandleFunc("PUT /api/v1/users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /api/v1/users/{id}", s.handleDeleteUser)

	mux.HandleFunc("GET /api/v1/bookings", s.handleListBookings)
	mux.HandleFunc("POST /api/v1/bookings/export", s.handleExportBookings)
	mux.HandleFunc("GET /api/v1/bookings/{bookingId}", s.handleGetBooking)

	mux.HandleFunc("GET /api/v1/dashboard/stats", s.handleDashboardStats)
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// writeStoreError maps the store error taxonomy onto HTTP statuses.
// Persistence failures are 503: recoverable, retry later.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, store.ErrPersistence):
		writeError(w, http.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
