package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/slayscreens/showdesk/internal/auth"
	"github.com/slayscreens/showdesk/internal/models"
	"github.com/slayscreens/showdesk/internal/store"
)

// registerResource wires the standard CRUD routes for a plain
// collection. Movies, users and bookings have their own handlers.
func registerResource[T store.Record[T]](mux *http.ServeMux, name string, st *store.Store[T]) {
	base := "/api/v1/" + name

	mux.HandleFunc("GET "+base, func(w http.ResponseWriter, r *http.Request) {
		status := strings.TrimSpace(r.URL.Query().Get("status"))
		var (
			records []T
			err     error
		)
		if status == "" || status == "all" {
			records, err = st.List(r.Context())
		} else {
			records, err = st.List(r.Context(), statusPredicate[T](status))
		}
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{name: records})
	})

	mux.HandleFunc("POST "+base, func(w http.ResponseWriter, r *http.Request) {
		var rec T
		if err := decodeBody(r, &rec); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		added, err := st.Add(r.Context(), rec)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	})

	mux.HandleFunc("GET "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		rec, err := st.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})

	mux.HandleFunc("PUT "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		patch := make(map[string]any)
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := st.Update(r.Context(), id, patch)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	})

	mux.HandleFunc("DELETE "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		// Removing a missing id is a documented no-op.
		if err := st.Remove(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// statusPredicate matches records whose JSON status field equals the
// given value, case-insensitively.
func statusPredicate[T any](status string) func(T) bool {
	return func(rec T) bool {
		raw, err := json.Marshal(rec)
		if err != nil {
			return false
		}
		var fields struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(fields.Status), status)
	}
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// Movies

func (s *HTTPServer) handleListMovies(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	movies, err := s.catalog.Movies.GetMoviesByStatus(r.Context(), status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"movies": movies})
}

func (s *HTTPServer) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := decodeBody(r, &movie); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	added, err := s.catalog.Movies.AddMovie(r.Context(), movie)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *HTTPServer) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	movie, err := s.catalog.Movies.GetMovie(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (s *HTTPServer) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	patch := make(map[string]any)
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.catalog.Movies.PatchMovie(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.Movies.DeleteMovie(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleResetMovies(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Movies.Init(r.Context()); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

// Users

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.catalog.Users.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	// Never expose password hashes over the wire.
	for i := range users {
		users[i].Password = ""
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.catalog.Users.Create(r.Context(), user)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	created.Password = ""
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	patch := make(map[string]any)
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.catalog.Users.Update(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	updated.Password = ""
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	identity, _ := auth.FromContext(r.Context())
	err := s.catalog.Users.Delete(r.Context(), id, identity.Email)
	if errors.Is(err, store.ErrSelfDelete) {
		writeError(w, http.StatusBadRequest, "You cannot delete your own account!")
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Bookings

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	bookings, err := s.catalog.Bookings.List(r.Context(), status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("bookingId")
	booking, err := s.catalog.Bookings.Get(r.Context(), bookingID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	path, err := s.catalog.Bookings.ExportXLSX(r.Context(), s.exportsPath, status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"file_path": path})
}

// Dashboard

func (s *HTTPServer) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
