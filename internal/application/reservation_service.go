package application

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/petit-bistro/service-reservation/internal/clock"
	tableDomain "github.com/petit-bistro/service-reservation/internal/domain/table"
	"github.com/petit-bistro/service-reservation/internal/events"
)

// BookTableRequest holds the data needed to book a table.
type BookTableRequest struct {
	PartySize   int             `json:"party_size" binding:"required"`
	BookingTime clock.TimeOfDay `json:"booking_time" binding:"required"`
}

// ChangeBookingRequest holds the fields a client may modify on an existing
// booking. Only the party size and the booking time are mutable through
// this path; any other field present in the payload is dropped at binding.
type ChangeBookingRequest struct {
	PartySize   *int             `json:"party_size"`
	BookingTime *clock.TimeOfDay `json:"booking_time"`
}

// TableDTO is the API response representation of a table.
type TableDTO struct {
	ID          uint             `json:"id"`
	Capacity    int              `json:"capacity"`
	BookingTime *clock.TimeOfDay `json:"booking_time,omitempty"`
	PartySize   int              `json:"party_size"`
	IsBooked    bool             `json:"is_booked"`
	ClientID    *uint            `json:"client_id,omitempty"`
}

// ReservationService orchestrates the booking state machine: it reconciles
// expired bookings, evaluates the booking policy against a fresh table
// snapshot and commits the result through a single conditional transition.
// A lost race surfaces as a Conflict; the service never retries.
type ReservationService struct {
	tables   tableDomain.Repository
	policy   *tableDomain.Policy
	clock    clock.Clock
	producer *events.Producer
	logger   *zap.Logger
}

// NewReservationService creates a new ReservationService. The producer may
// be nil, in which case event publishing is disabled.
func NewReservationService(
	tables tableDomain.Repository,
	policy *tableDomain.Policy,
	clk clock.Clock,
	producer *events.Producer,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		tables:   tables,
		policy:   policy,
		clock:    clk,
		producer: producer,
		logger:   logger,
	}
}

// ListVacant returns all tables open for booking, releasing expired
// bookings first so the listing never shows stale state.
func (s *ReservationService) ListVacant(ctx context.Context) ([]TableDTO, error) {
	if err := s.reconcile(ctx); err != nil {
		return nil, err
	}

	tables, err := s.tables.ListVacant(ctx)
	if err != nil {
		return nil, err
	}
	return toTableDTOs(tables), nil
}

// ListByClient returns the tables currently booked by the given client.
func (s *ReservationService) ListByClient(ctx context.Context, clientID uint) ([]TableDTO, error) {
	if err := s.reconcile(ctx); err != nil {
		return nil, err
	}

	tables, err := s.tables.FindByOwner(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toTableDTOs(tables), nil
}

// Book reserves a vacant table for the given client. Validation failures
// yield typed errors; a concurrent booking that wins the transition race
// surfaces as a Conflict.
func (s *ReservationService) Book(ctx context.Context, tableID, clientID uint, req BookTableRequest) (*TableDTO, error) {
	if err := s.reconcile(ctx); err != nil {
		return nil, err
	}

	tbl, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.ValidateBooking(tbl, req.PartySize, req.BookingTime); err != nil {
		return nil, err
	}

	updated, err := s.tables.TryTransition(ctx, tableID, false,
		tableDomain.BookedState(req.BookingTime, req.PartySize, clientID))
	if err != nil {
		return nil, err
	}

	s.logger.Info("table booked",
		zap.Uint("table_id", tableID),
		zap.Uint("client_id", clientID),
		zap.String("booking_time", req.BookingTime.String()),
		zap.Int("party_size", req.PartySize),
	)
	s.publishEvent(ctx, events.ReservationBooked, tableID, events.TableBookedEvent{
		TableID:     tableID,
		ClientID:    clientID,
		BookingTime: req.BookingTime,
		PartySize:   req.PartySize,
		OccurredAt:  time.Now().UTC(),
	})

	result := toTableDTO(updated)
	return &result, nil
}

// ChangeBooking updates the party size and/or booking time of an existing
// booking owned by the given client. Fields absent from the request keep
// their current values.
func (s *ReservationService) ChangeBooking(ctx context.Context, tableID, clientID uint, req ChangeBookingRequest) (*TableDTO, error) {
	tbl, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.ValidateChange(tbl, clientID, req.PartySize, req.BookingTime); err != nil {
		return nil, err
	}

	newTime := *tbl.BookingTime()
	if req.BookingTime != nil {
		newTime = *req.BookingTime
	}
	newSize := tbl.PartySize()
	if req.PartySize != nil {
		newSize = *req.PartySize
	}

	updated, err := s.tables.TryTransition(ctx, tableID, true,
		tableDomain.BookedState(newTime, newSize, clientID))
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking changed",
		zap.Uint("table_id", tableID),
		zap.Uint("client_id", clientID),
		zap.String("booking_time", newTime.String()),
		zap.Int("party_size", newSize),
	)
	s.publishEvent(ctx, events.ReservationChanged, tableID, events.BookingChangedEvent{
		TableID:     tableID,
		ClientID:    clientID,
		BookingTime: newTime,
		PartySize:   newSize,
		OccurredAt:  time.Now().UTC(),
	})

	result := toTableDTO(updated)
	return &result, nil
}

// CancelBooking cancels the client's booking, returning the table to vacant
// with all occupant fields cleared.
func (s *ReservationService) CancelBooking(ctx context.Context, tableID, clientID uint) (*TableDTO, error) {
	tbl, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.ValidateCancel(tbl, clientID); err != nil {
		return nil, err
	}

	updated, err := s.tables.TryTransition(ctx, tableID, true, tableDomain.VacantState())
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled",
		zap.Uint("table_id", tableID),
		zap.Uint("client_id", clientID),
	)
	s.publishEvent(ctx, events.ReservationCancelled, tableID, events.BookingCancelledEvent{
		TableID:    tableID,
		ClientID:   clientID,
		OccurredAt: time.Now().UTC(),
	})

	result := toTableDTO(updated)
	return &result, nil
}

// reconcile releases bookings that have outlived the retention window. The
// cutoff is a time of day; subtracting the window wraps around midnight the
// same way the comparison column does.
func (s *ReservationService) reconcile(ctx context.Context) error {
	cutoff := clock.TimeOfDayFrom(s.clock.Now()).Add(-tableDomain.RetentionWindow)
	released, err := s.tables.ReleaseExpired(ctx, cutoff)
	if err != nil {
		return err
	}
	if released > 0 {
		s.logger.Info("released expired bookings",
			zap.Int64("count", released),
			zap.String("cutoff", cutoff.String()),
		)
		s.publishEvent(ctx, events.ReservationReleased, 0, events.TablesReleasedEvent{
			Released:   released,
			Cutoff:     cutoff,
			OccurredAt: time.Now().UTC(),
		})
	}
	return nil
}

// publishEvent emits a reservation event. Publishing is best-effort: a
// broker failure is logged and never surfaced to the caller.
func (s *ReservationService) publishEvent(ctx context.Context, eventType string, tableID uint, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := events.NewCloudEvent("service-reservation", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	key := strconv.FormatUint(uint64(tableID), 10)
	if err := s.producer.PublishEvent(ctx, events.TopicReservationEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// --- Helpers ---

func toTableDTO(t *tableDomain.Table) TableDTO {
	return TableDTO{
		ID:          t.ID(),
		Capacity:    t.Capacity(),
		BookingTime: t.BookingTime(),
		PartySize:   t.PartySize(),
		IsBooked:    t.IsBooked(),
		ClientID:    t.OwnerID(),
	}
}

func toTableDTOs(tables []*tableDomain.Table) []TableDTO {
	dtos := make([]TableDTO, len(tables))
	for i, t := range tables {
		dtos[i] = toTableDTO(t)
	}
	return dtos
}
