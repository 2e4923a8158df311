package table

import (
	"fmt"
	"time"

	"github.com/petit-bistro/service-reservation/internal/clock"
	"github.com/petit-bistro/service-reservation/internal/domain"
)

// Booking windows. Tables can be reserved for times inside business hours;
// a booking not claimed within RetentionWindow after its time is released,
// and bookings cannot be changed or cancelled within ChangeDeadline of
// their time.
var (
	OpeningTime = clock.At(12, 0, 0)
	ClosingTime = clock.At(22, 0, 0)
)

const (
	RetentionWindow = 2 * time.Hour
	ChangeDeadline  = 1 * time.Hour
)

// Policy holds the pure validation rules for booking, changing and
// cancelling reservations. It reads the injected clock and the table
// snapshot it is given; it never touches storage.
type Policy struct {
	clock clock.Clock
}

// NewPolicy creates a Policy evaluating rules against the given clock.
func NewPolicy(c clock.Clock) *Policy {
	return &Policy{clock: c}
}

func (p *Policy) now() clock.TimeOfDay {
	return clock.TimeOfDayFrom(p.clock.Now())
}

// ValidateBooking checks a new booking request against the current table
// snapshot. Rules run in order, first failure wins: vacancy, business
// hours, no past times, capacity.
func (p *Policy) ValidateBooking(tbl *Table, partySize int, at clock.TimeOfDay) error {
	if tbl.IsBooked() {
		return domain.NewConflictError(fmt.Sprintf("table %d is already booked", tbl.ID()))
	}
	if err := p.validateBookingTime(at); err != nil {
		return err
	}
	return p.validatePartySize(tbl, partySize)
}

// ValidateChange checks a booking modification. Ownership and the change
// deadline are checked first, then the new time and party size wherever
// the request supplies them.
func (p *Policy) ValidateChange(tbl *Table, clientID uint, newSize *int, newTime *clock.TimeOfDay) error {
	if err := p.validateOwnership(tbl, clientID); err != nil {
		return err
	}
	if err := p.validateDeadline(tbl); err != nil {
		return err
	}
	if newTime != nil {
		if err := p.validateBookingTime(*newTime); err != nil {
			return err
		}
	}
	if newSize != nil {
		if err := p.validatePartySize(tbl, *newSize); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCancel checks a cancellation: ownership, then the change deadline.
func (p *Policy) ValidateCancel(tbl *Table, clientID uint) error {
	if err := p.validateOwnership(tbl, clientID); err != nil {
		return err
	}
	return p.validateDeadline(tbl)
}

func (p *Policy) validateBookingTime(at clock.TimeOfDay) error {
	now := p.now()
	if now.After(ClosingTime) {
		return domain.NewValidationError(fmt.Sprintf(
			"booking is closed for today, available tomorrow from %s to %s",
			OpeningTime, ClosingTime))
	}
	if at.Before(OpeningTime) || !at.Before(ClosingTime) {
		return domain.NewValidationError(fmt.Sprintf(
			"booking time must be between %s and %s", OpeningTime, ClosingTime))
	}
	if at.Before(now) {
		return domain.NewValidationError(fmt.Sprintf(
			"the current time is %s, cannot book a table at %s", now, at))
	}
	return nil
}

func (p *Policy) validatePartySize(tbl *Table, partySize int) error {
	if partySize < 1 {
		return domain.NewValidationError("party size must be at least 1")
	}
	if partySize > tbl.Capacity() {
		return domain.NewValidationError(fmt.Sprintf(
			"table %d seats at most %d persons", tbl.ID(), tbl.Capacity()))
	}
	return nil
}

func (p *Policy) validateOwnership(tbl *Table, clientID uint) error {
	if !tbl.IsOwnedBy(clientID) {
		return domain.NewForbiddenError(fmt.Sprintf(
			"table %d is not booked by this client", tbl.ID()))
	}
	return nil
}

// validateDeadline rejects modifications inside the protection window: the
// booked time must still be at least ChangeDeadline away.
func (p *Policy) validateDeadline(tbl *Table) error {
	at := tbl.BookingTime()
	if at == nil {
		return domain.NewConflictError(fmt.Sprintf("table %d has no active booking", tbl.ID()))
	}
	if at.Before(p.now().Add(ChangeDeadline)) {
		return domain.NewDeadlineExceededError(fmt.Sprintf(
			"booking at %s can no longer be changed or cancelled (less than %s remaining)",
			at, ChangeDeadline))
	}
	return nil
}
