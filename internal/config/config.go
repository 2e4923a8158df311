package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// DatabaseURL builds the URL form used by the migration runner.
func (c DatabaseConfig) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, url.QueryEscape(c.Password), c.Host, c.Port, c.DBName, c.SSLMode)
}

// JWTConfig holds token issuance settings.
type JWTConfig struct {
	Secret   string
	ExpHours int
}

// KafkaConfig holds event broker settings. Publishing is disabled when no
// brokers are configured.
type KafkaConfig struct {
	Brokers []string
	Enabled bool
}

// ServiceConfig holds all configuration for the reservation service.
type ServiceConfig struct {
	Port    string
	AppEnv  string
	TZShift float64
	DB      DatabaseConfig
	JWT     JWTConfig
	Kafka   KafkaConfig
}

// Load reads configuration from environment variables with the RESERVATION
// prefix, falling back to a .env file when present.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("RESERVATION")
	v.AutomaticEnv()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	// The .env file is optional; environment variables win either way.
	_ = v.ReadInConfig()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("TZ_SHIFT", 0.0)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "reservation")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_EXP_HOURS", 24)
	v.SetDefault("KAFKA_BROKERS", []string{})

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("RESERVATION_JWT_SECRET is required")
	}

	brokers := v.GetStringSlice("KAFKA_BROKERS")

	return &ServiceConfig{
		Port:    ":" + v.GetString("PORT"),
		AppEnv:  v.GetString("APP_ENV"),
		TZShift: v.GetFloat64("TZ_SHIFT"),
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:   secret,
			ExpHours: v.GetInt("JWT_EXP_HOURS"),
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Enabled: len(brokers) > 0,
		},
	}, nil
}
