package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/models"
	"github.com/slayscreens/showdesk/internal/store"
)

// Bookings is read-only from the admin's perspective: records are
// produced by the customer-facing flow and only viewed and filtered
// here.
type Bookings struct {
	view   *store.View[models.Booking]
	logger *zerolog.Logger
}

func NewBookings(view *store.View[models.Booking], logger *zerolog.Logger) *Bookings {
	return &Bookings{view: view, logger: logger}
}

// List returns bookings sorted by booking timestamp descending, newest
// first, optionally narrowed by status (case-insensitive).
func (b *Bookings) List(ctx context.Context, status string) ([]models.Booking, error) {
	var bookings []models.Booking
	var err error
	if status == "" || status == "all" {
		bookings, err = b.view.List(ctx)
	} else {
		bookings, err = b.view.List(ctx, func(rec models.Booking) bool {
			return equalFold(rec.Status, status)
		})
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].BookedAt().After(bookings[j].BookedAt())
	})
	return bookings, nil
}

// Get finds one booking by its external identifier.
func (b *Bookings) Get(ctx context.Context, bookingID string) (models.Booking, error) {
	bookings, err := b.view.List(ctx)
	if err != nil {
		return models.Booking{}, err
	}
	for _, rec := range bookings {
		if rec.BookingID == bookingID {
			return rec, nil
		}
	}
	return models.Booking{}, store.ErrNotFound
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
