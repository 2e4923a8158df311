package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/petit-bistro/service-reservation/internal/domain"
	clientDomain "github.com/petit-bistro/service-reservation/internal/domain/client"
)

// ClientModel is the GORM model for the clients table.
type ClientModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null;size:320"`
	PasswordHash string `gorm:"not null;size:100"`
	Name         string `gorm:"size:100"`
	Phone        string `gorm:"size:30"`
	IsActive     bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for the GORM model.
func (ClientModel) TableName() string {
	return "clients"
}

// GormClientRepository is the GORM-based implementation of client.Repository.
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository.
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByEmail retrieves a client by login email.
func (r *GormClientRepository) FindByEmail(ctx context.Context, email string) (*clientDomain.Client, error) {
	var model ClientModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("client", email)
		}
		return nil, domain.NewStorageError("failed to find client by email", err)
	}
	return toDomainClient(&model), nil
}

// Save persists a new client and backfills the generated identifier.
func (r *GormClientRepository) Save(ctx context.Context, c *clientDomain.Client) error {
	model := toClientModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewStorageError("failed to save client", err)
	}
	*c = *toDomainClient(model)
	return nil
}

// Update persists changes to an existing client.
func (r *GormClientRepository) Update(ctx context.Context, c *clientDomain.Client) error {
	result := r.db.WithContext(ctx).
		Model(&ClientModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]interface{}{
			"email":         c.Email(),
			"password_hash": c.PasswordHash(),
			"name":          c.Name(),
			"phone":         c.Phone(),
			"is_active":     c.IsActive(),
		})
	if result.Error != nil {
		return domain.NewStorageError("failed to update client", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("client", c.ID())
	}
	return nil
}

// --- Conversion Helpers ---

func toClientModel(c *clientDomain.Client) *ClientModel {
	return &ClientModel{
		ID:           c.ID(),
		Email:        c.Email(),
		PasswordHash: c.PasswordHash(),
		Name:         c.Name(),
		Phone:        c.Phone(),
		IsActive:     c.IsActive(),
	}
}

func toDomainClient(m *ClientModel) *clientDomain.Client {
	return clientDomain.Reconstruct(
		m.ID,
		m.Email,
		m.PasswordHash,
		m.Name,
		m.Phone,
		m.IsActive,
	)
}
