package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/petit-bistro/service-reservation/internal/clock"
	"github.com/petit-bistro/service-reservation/internal/domain"
	tableDomain "github.com/petit-bistro/service-reservation/internal/domain/table"
)

// TableModel is the GORM model for the tables table.
type TableModel struct {
	ID          uint             `gorm:"primaryKey"`
	Capacity    int              `gorm:"not null"`
	BookingTime *clock.TimeOfDay `gorm:"type:time"`
	PartySize   int              `gorm:"not null;default:0"`
	IsBooked    bool             `gorm:"not null;default:false;index"`
	ClientID    *uint            `gorm:"index"`
}

// TableName returns the table name for the GORM model.
func (TableModel) TableName() string {
	return "tables"
}

// GormTableRepository is the GORM-based implementation of table.Repository.
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository.
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// ListVacant retrieves all tables open for booking.
func (r *GormTableRepository) ListVacant(ctx context.Context) ([]*tableDomain.Table, error) {
	var models []TableModel
	if err := r.db.WithContext(ctx).
		Where("is_booked = ? AND party_size = 0", false).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, domain.NewStorageError("failed to list vacant tables", err)
	}
	return toDomainTables(models), nil
}

// FindByID retrieves a table by its identifier.
func (r *GormTableRepository) FindByID(ctx context.Context, id uint) (*tableDomain.Table, error) {
	var model TableModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("table", id)
		}
		return nil, domain.NewStorageError("failed to find table by ID", err)
	}
	return toDomainTable(&model), nil
}

// FindByOwner retrieves the tables currently booked by the given client.
func (r *GormTableRepository) FindByOwner(ctx context.Context, clientID uint) ([]*tableDomain.Table, error) {
	var models []TableModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND is_booked = ?", clientID, true).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, domain.NewStorageError("failed to find tables by owner", err)
	}
	return toDomainTables(models), nil
}

// TryTransition applies next to the table in a single conditional UPDATE
// keyed on the expected booking flag. Two concurrent transitions racing on
// the same precondition resolve to exactly one winner; the loser's UPDATE
// matches zero rows and reports a Conflict without touching the row.
func (r *GormTableRepository) TryTransition(ctx context.Context, id uint, expectBooked bool, next tableDomain.Transition) (*tableDomain.Table, error) {
	result := r.db.WithContext(ctx).
		Model(&TableModel{}).
		Where("id = ? AND is_booked = ?", id, expectBooked).
		Updates(map[string]interface{}{
			"is_booked":    next.Booked,
			"booking_time": next.BookingTime,
			"party_size":   next.PartySize,
			"client_id":    next.OwnerID,
		})
	if result.Error != nil {
		return nil, domain.NewStorageError("failed to apply table transition", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the table does not exist or its booking flag moved under us.
		var model TableModel
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NewNotFoundError("table", id)
			}
			return nil, domain.NewStorageError("failed to inspect table after lost transition", err)
		}
		return nil, domain.NewConflictError(fmt.Sprintf(
			"table %d changed booking state concurrently", id))
	}

	return r.FindByID(ctx, id)
}

// ReleaseExpired returns every booked table whose booking time has fallen
// behind the cutoff back to vacant, clearing all occupant fields so the
// released tables satisfy the vacancy query again.
func (r *GormTableRepository) ReleaseExpired(ctx context.Context, cutoff clock.TimeOfDay) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&TableModel{}).
		Where("is_booked = ? AND booking_time < ?", true, cutoff).
		Updates(map[string]interface{}{
			"is_booked":    false,
			"booking_time": nil,
			"party_size":   0,
			"client_id":    nil,
		})
	if result.Error != nil {
		return 0, domain.NewStorageError("failed to release expired bookings", result.Error)
	}
	return result.RowsAffected, nil
}

// --- Conversion Helpers ---

func toDomainTable(m *TableModel) *tableDomain.Table {
	return tableDomain.Reconstruct(
		m.ID,
		m.Capacity,
		m.BookingTime,
		m.PartySize,
		m.IsBooked,
		m.ClientID,
	)
}

func toDomainTables(models []TableModel) []*tableDomain.Table {
	tables := make([]*tableDomain.Table, len(models))
	for i := range models {
		tables[i] = toDomainTable(&models[i])
	}
	return tables
}
