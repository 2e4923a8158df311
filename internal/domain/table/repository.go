package table

import (
	"context"

	"github.com/petit-bistro/service-reservation/internal/clock"
)

// Transition is the full target state of a table's mutable fields. It is
// applied atomically by Repository.TryTransition; partial writes to booking
// state are not expressible.
type Transition struct {
	Booked      bool
	BookingTime *clock.TimeOfDay
	PartySize   int
	OwnerID     *uint
}

// BookedState builds the transition for a successful booking.
func BookedState(at clock.TimeOfDay, partySize int, clientID uint) Transition {
	return Transition{
		Booked:      true,
		BookingTime: &at,
		PartySize:   partySize,
		OwnerID:     &clientID,
	}
}

// VacantState builds the transition back to an empty table. All occupant
// fields are cleared, including the party size.
func VacantState() Transition {
	return Transition{}
}

// Repository defines the persistence contract for tables. Implementations
// must make TryTransition a single atomic check-and-set: the conditional
// update is the only mutation primitive the core is allowed to use.
type Repository interface {
	// ListVacant retrieves all tables open for booking (not booked, no
	// lingering occupant).
	ListVacant(ctx context.Context) ([]*Table, error)

	// FindByID retrieves a table by its identifier.
	FindByID(ctx context.Context, id uint) (*Table, error)

	// FindByOwner retrieves the tables currently booked by the given client.
	FindByOwner(ctx context.Context, clientID uint) ([]*Table, error)

	// TryTransition applies next to the table only if its stored booking
	// flag still equals expectBooked at commit time. A lost race yields a
	// Conflict error and leaves the row unchanged. Returns the updated
	// table on success.
	TryTransition(ctx context.Context, id uint, expectBooked bool, next Transition) (*Table, error)

	// ReleaseExpired returns every booked table whose booking time has
	// fallen behind the cutoff back to vacant, reporting how many rows
	// were released. Idempotent.
	ReleaseExpired(ctx context.Context, cutoff clock.TimeOfDay) (int64, error)
}
