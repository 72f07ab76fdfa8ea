package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingTotal(t *testing.T) {
	assert.Equal(t, int64(500), Booking{TotalAmount: 500}.Total())
	assert.Equal(t, int64(300), Booking{TotalPrice: 300}.Total())
	assert.Equal(t, int64(500), Booking{TotalAmount: 500, TotalPrice: 300}.Total())
	assert.Zero(t, Booking{}.Total())
}

func TestBookingTitle(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
		want    string
	}{
		{
			name:    "movie",
			booking: Booking{Movie: &BookingMovie{Title: "Pathaan"}},
			want:    "Pathaan",
		},
		{
			name:    "sports",
			booking: Booking{Type: BookingTypeSports, Item: &BookingItem{Team1: "India", Team2: "Australia"}},
			want:    "India vs Australia",
		},
		{
			name:    "event",
			booking: Booking{Type: BookingTypeEvent, Item: &BookingItem{Name: "Arijit Singh Live"}},
			want:    "Arijit Singh Live",
		},
		{
			name:    "missing snapshot",
			booking: Booking{Type: BookingTypeSports},
			want:    "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.Title())
		})
	}
}

func TestBookingSeatSummary(t *testing.T) {
	assert.Equal(t, "F5, F6", Booking{Seats: []string{"F5", "F6"}}.SeatSummary())
	assert.Equal(t, "3 x Tickets", Booking{Quantity: 3}.SeatSummary())
	assert.Equal(t, "N/A", Booking{}.SeatSummary())
}

func TestBookingEventDateAndTime(t *testing.T) {
	withItem := Booking{
		Date: "2024-12-01", Time: "18:00",
		Item: &BookingItem{Date: "2024-12-10", Time: "19:30"},
	}
	assert.Equal(t, "2024-12-10", withItem.EventDate())
	assert.Equal(t, "19:30", withItem.EventTime())

	withoutItem := Booking{Date: "2024-12-01", Time: "18:00"}
	assert.Equal(t, "2024-12-01", withoutItem.EventDate())
	assert.Equal(t, "18:00", withoutItem.EventTime())
}

func TestBookingBookedAt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", "2024-12-05T18:30:00Z", time.Date(2024, 12, 5, 18, 30, 0, 0, time.UTC)},
		{"javascript iso", "2024-12-05T18:30:00.000Z", time.Date(2024, 12, 5, 18, 30, 0, 0, time.UTC)},
		{"date only", "2024-12-05", time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)},
		{"malformed", "yesterday", time.Time{}},
		{"empty", "", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Booking{BookingDate: tt.value}.BookedAt()
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}
