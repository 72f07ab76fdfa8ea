// Package catalog wires one service per admin collection over the
// generic collection store.
package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/events"
	"github.com/slayscreens/showdesk/internal/models"
	"github.com/slayscreens/showdesk/internal/seed"
	"github.com/slayscreens/showdesk/internal/storage"
	"github.com/slayscreens/showdesk/internal/store"
)

// AdminSeed configures the bootstrap admin account.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// Catalog bundles the per-entity services. Sports, events, stream and
// theaters need no behavior beyond the store itself.
type Catalog struct {
	Movies   *Movies
	Sports   *store.Store[models.SportMatch]
	Events   *store.Store[models.Event]
	Stream   *store.Store[models.StreamTitle]
	Theaters *store.Store[models.Theater]
	Users    *Users
	Bookings *Bookings
}

func New(backend storage.Backend, bus *events.EventBus, admin AdminSeed, logger *zerolog.Logger) (*Catalog, error) {
	if admin.Password == "" {
		admin.Password = models.DefaultUserPassword
	}
	userDefaults, err := seed.Users(admin.Name, admin.Email, admin.Password)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		Movies:   NewMovies(store.New(backend, models.KeyMovies, seed.Movies(), bus, logger), logger),
		Sports:   store.New(backend, models.KeySports, seed.SportMatches(), bus, logger),
		Events:   store.New(backend, models.KeyEvents, seed.Events(), bus, logger),
		Stream:   store.New(backend, models.KeyStream, seed.StreamTitles(), bus, logger),
		Theaters: store.New(backend, models.KeyTheaters, seed.Theaters(), bus, logger),
		Users:    NewUsers(store.New(backend, models.KeyUsers, userDefaults, bus, logger), logger),
		Bookings: NewBookings(store.NewView(backend, models.KeyBookings, seed.Bookings(), logger), logger),
	}, nil
}

// DashboardStats mirrors the admin dashboard cards.
type DashboardStats struct {
	TotalBookings int   `json:"totalBookings"`
	Revenue       int64 `json:"revenue"`
	Movies        int   `json:"movies"`
	Users         int   `json:"users"`
}

func (c *Catalog) Stats(ctx context.Context) (DashboardStats, error) {
	bookings, err := c.Bookings.List(ctx, "")
	if err != nil {
		return DashboardStats{}, err
	}
	movies, err := c.Movies.GetMovies(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	users, err := c.Users.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	var revenue int64
	for _, b := range bookings {
		revenue += b.Total()
	}

	return DashboardStats{
		TotalBookings: len(bookings),
		Revenue:       revenue,
		Movies:        len(movies),
		Users:         len(users),
	}, nil
}
