package table

import "fmt"

// Status represents a table's position in its booking lifecycle.
type Status string

const (
	StatusVacant Status = "vacant"
	StatusBooked Status = "booked"
)

// validTransitions defines the table state machine. A table moves from
// vacant to booked on a successful booking and back to vacant on
// cancellation or reconciliation; no other states exist.
var validTransitions = map[Status][]Status{
	StatusVacant: {StatusBooked},
	StatusBooked: {StatusVacant},
}

// IsValid returns true if the status is a recognized table status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid table status: %s", s)
	}
	return status, nil
}
