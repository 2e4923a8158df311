package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/petit-bistro/service-reservation/internal/config"
	"github.com/petit-bistro/service-reservation/internal/repository"
)

// tableCapacities is the restaurant's fixed floor plan: seven two-seaters,
// six three-seaters and three six-seaters. Seeded once; tables are never
// added or removed at runtime.
var tableCapacities = []int{2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 6, 6, 6}

// Connect opens a GORM connection to PostgreSQL.
func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("database connected",
		zap.String("host", cfg.Host),
		zap.String("dbname", cfg.DBName),
	)
	return db, nil
}

// RunMigrations applies the SQL migrations in migrationsDir.
func RunMigrations(databaseURL, migrationsDir string, log *zap.Logger) error {
	m, err := migrate.New("file://"+migrationsDir, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info("database migrations applied")
	return nil
}

// SeedTables inserts the fixed table set when the tables table is empty.
// Idempotent across restarts.
func SeedTables(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&repository.TableModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tables: %w", err)
	}
	if count > 0 {
		return nil
	}

	models := make([]repository.TableModel, len(tableCapacities))
	for i, capacity := range tableCapacities {
		models[i] = repository.TableModel{Capacity: capacity}
	}
	if err := db.Create(&models).Error; err != nil {
		return fmt.Errorf("failed to seed tables: %w", err)
	}

	log.Info("seeded table floor plan", zap.Int("tables", len(models)))
	return nil
}
