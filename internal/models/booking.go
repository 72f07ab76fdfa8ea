package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingItem carries the sports-match or event snapshot embedded in a
// booking at purchase time.
type BookingItem struct {
	Team1    string `json:"team1,omitempty"`
	Team2    string `json:"team2,omitempty"`
	Name     string `json:"name,omitempty"`
	League   string `json:"league,omitempty"`
	Category string `json:"category,omitempty"`
	Venue    string `json:"venue,omitempty"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
}

// BookingMovie is the movie snapshot of a MOVIE booking.
type BookingMovie struct {
	ID    int64  `json:"id,omitempty"`
	Title string `json:"title"`
}

// Booking is produced by the customer-facing flow and is read-only on
// the admin side.
type Booking struct {
	BookingID     string        `json:"bookingId"`
	Type          string        `json:"type,omitempty"` // MOVIE when empty
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone,omitempty"`
	Movie         *BookingMovie `json:"movie,omitempty"`
	Item          *BookingItem  `json:"item,omitempty"`
	Date          string        `json:"date,omitempty"`
	Time          string        `json:"time,omitempty"`
	Seats         []string      `json:"seats,omitempty"`
	Quantity      int           `json:"quantity,omitempty"`
	TotalAmount   int64         `json:"totalAmount,omitempty"`
	TotalPrice    int64         `json:"totalPrice,omitempty"`
	Status        string        `json:"status"`
	BookingDate   string        `json:"bookingDate"`
}

// Total returns whichever amount field the producing flow filled in.
func (b Booking) Total() int64 {
	if b.TotalAmount != 0 {
		return b.TotalAmount
	}
	return b.TotalPrice
}

// Title renders the booked item the way the admin table shows it.
func (b Booking) Title() string {
	switch b.Type {
	case BookingTypeSports:
		if b.Item != nil {
			return fmt.Sprintf("%s vs %s", b.Item.Team1, b.Item.Team2)
		}
	case BookingTypeEvent:
		if b.Item != nil {
			return b.Item.Name
		}
	default:
		if b.Movie != nil {
			return b.Movie.Title
		}
	}
	return "Unknown"
}

// SeatSummary renders seats for movie bookings and a ticket count for
// the quantity-based types.
func (b Booking) SeatSummary() string {
	if len(b.Seats) > 0 {
		return strings.Join(b.Seats, ", ")
	}
	if b.Quantity > 0 {
		return fmt.Sprintf("%d x Tickets", b.Quantity)
	}
	return "N/A"
}

// EventDate is the show date of the booked item regardless of type.
func (b Booking) EventDate() string {
	if b.Item != nil && b.Item.Date != "" {
		return b.Item.Date
	}
	return b.Date
}

// EventTime is the show time of the booked item regardless of type.
func (b Booking) EventTime() string {
	if b.Item != nil && b.Item.Time != "" {
		return b.Item.Time
	}
	return b.Time
}

// BookedAt parses bookingDate; zero time when the field is malformed.
func (b Booking) BookedAt() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
		if t, err := time.Parse(layout, b.BookingDate); err == nil {
			return t
		}
	}
	return time.Time{}
}
