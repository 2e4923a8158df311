package table

import (
	"github.com/petit-bistro/service-reservation/internal/clock"
	"github.com/petit-bistro/service-reservation/internal/domain"
)

// Table is the aggregate root of the reservation domain: a seating unit with
// a fixed capacity and mutable booking state. The full set of tables is
// created once at initialization; tables are never added or removed at
// runtime. Mutable fields change only through Repository.TryTransition.
type Table struct {
	id          uint
	capacity    int
	bookingTime *clock.TimeOfDay
	partySize   int
	isBooked    bool
	ownerID     *uint
}

// NewTable creates a vacant table with the given seating capacity.
func NewTable(capacity int) (*Table, error) {
	if capacity <= 0 {
		return nil, domain.NewValidationError("table capacity must be positive")
	}
	return &Table{capacity: capacity}, nil
}

// Reconstruct rebuilds a Table from persistence data (no validation).
func Reconstruct(
	id uint,
	capacity int,
	bookingTime *clock.TimeOfDay,
	partySize int,
	isBooked bool,
	ownerID *uint,
) *Table {
	return &Table{
		id:          id,
		capacity:    capacity,
		bookingTime: bookingTime,
		partySize:   partySize,
		isBooked:    isBooked,
		ownerID:     ownerID,
	}
}

// ID returns the table's stable identifier.
func (t *Table) ID() uint { return t.id }

// Capacity returns the maximum party size the table seats.
func (t *Table) Capacity() int { return t.capacity }

// BookingTime returns the booked time of day, or nil while vacant.
func (t *Table) BookingTime() *clock.TimeOfDay { return t.bookingTime }

// PartySize returns the party size of the current occupant, zero while vacant.
func (t *Table) PartySize() int { return t.partySize }

// IsBooked reports whether the table currently holds an active booking.
func (t *Table) IsBooked() bool { return t.isBooked }

// OwnerID returns the reserving client's ID, or nil while vacant.
func (t *Table) OwnerID() *uint { return t.ownerID }

// Status derives the table's state machine position from its booking flag.
func (t *Table) Status() Status {
	if t.isBooked {
		return StatusBooked
	}
	return StatusVacant
}

// IsOwnedBy reports whether the table's current booking belongs to clientID.
func (t *Table) IsOwnedBy(clientID uint) bool {
	return t.isBooked && t.ownerID != nil && *t.ownerID == clientID
}
