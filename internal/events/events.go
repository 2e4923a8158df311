package events

import (
	"time"

	"github.com/petit-bistro/service-reservation/internal/clock"
)

// TopicReservationEvents is the Kafka topic carrying reservation lifecycle events.
const TopicReservationEvents = "reservation.events"

// Reservation event types.
const (
	ReservationBooked    = "reservation.booked"
	ReservationChanged   = "reservation.changed"
	ReservationCancelled = "reservation.cancelled"
	ReservationReleased  = "reservation.released"
)

// TableBookedEvent is published when a table is booked.
type TableBookedEvent struct {
	TableID     uint            `json:"table_id"`
	ClientID    uint            `json:"client_id"`
	BookingTime clock.TimeOfDay `json:"booking_time"`
	PartySize   int             `json:"party_size"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// BookingChangedEvent is published when booking details are modified.
type BookingChangedEvent struct {
	TableID     uint            `json:"table_id"`
	ClientID    uint            `json:"client_id"`
	BookingTime clock.TimeOfDay `json:"booking_time"`
	PartySize   int             `json:"party_size"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// BookingCancelledEvent is published when a client cancels a booking.
type BookingCancelledEvent struct {
	TableID    uint      `json:"table_id"`
	ClientID   uint      `json:"client_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TablesReleasedEvent is published when the reconciler returns expired
// bookings to vacant.
type TablesReleasedEvent struct {
	Released   int64           `json:"released"`
	Cutoff     clock.TimeOfDay `json:"cutoff"`
	OccurredAt time.Time       `json:"occurred_at"`
}
