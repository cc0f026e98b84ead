package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ConnectionPoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// databaseConfigFromEnv reads POSTGRES_<role>_* variables, falling back to
// the given defaults for anything unset.
func databaseConfigFromEnv(role string, defaults DatabaseConfig) *DatabaseConfig {
	prefix := "POSTGRES_" + role + "_"
	return &DatabaseConfig{
		Host:     getEnvWithDefault(prefix+"HOST", defaults.Host),
		Port:     getEnvWithDefault(prefix+"PORT", defaults.Port),
		User:     getEnvWithDefault(prefix+"USER", defaults.User),
		Password: getEnvWithDefault(prefix+"PASSWORD", defaults.Password),
		DBName:   getEnvWithDefault(prefix+"DB_NAME", defaults.DBName),
		SSLMode:  getEnvWithDefault(prefix+"SSL_MODE", defaults.SSLMode),
	}
}

func getWriterConfig() *DatabaseConfig {
	return databaseConfigFromEnv("WRITER", DatabaseConfig{
		Host:    "localhost",
		Port:    "5432",
		User:    "postgres",
		DBName:  "realty",
		SSLMode: "disable",
	})
}

// getReaderConfig returns nil when no replica is configured.
func getReaderConfig(writer *DatabaseConfig) *DatabaseConfig {
	if os.Getenv("POSTGRES_READER_HOST") == "" {
		return nil
	}
	return databaseConfigFromEnv("READER", *writer)
}

func getConnectionPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: getEnvDurationWithDefault("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
	}
}

// gormLogLevel maps DB_LOG_LEVEL (silent, error, warn, info) to the gorm logger level
func gormLogLevel() logger.LogLevel {
	switch getEnvWithDefault("DB_LOG_LEVEL", "warn") {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// DSN renders the libpq connection string. Sessions run in UTC so stored
// timestamps compare the same way on every node.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC application_name=realty-api",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func openDatabase(config *DatabaseConfig, pool *ConnectionPoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel()),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s/%s: %w", config.Host, config.DBName, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	return db, nil
}

// DatabaseConnections holds the primary used for writes and the replica used
// for reads. Without a configured replica both point at the primary.
type DatabaseConnections struct {
	Writer *gorm.DB
	Reader *gorm.DB
}

func NewDatabaseConnections() (*DatabaseConnections, error) {
	pool := getConnectionPoolConfig()
	writerConfig := getWriterConfig()

	writer, err := openDatabase(writerConfig, pool)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer database connection: %w", err)
	}

	readerConfig := getReaderConfig(writerConfig)
	if readerConfig == nil {
		return &DatabaseConnections{Writer: writer, Reader: writer}, nil
	}

	reader, err := openDatabase(readerConfig, pool)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader database connection: %w", err)
	}
	return &DatabaseConnections{Writer: writer, Reader: reader}, nil
}

func (dc *DatabaseConnections) Close() error {
	var errs []error
	closeDB := func(name string, db *gorm.DB) {
		if db == nil {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s database connection: %w", name, err))
		}
	}

	closeDB("writer", dc.Writer)
	if dc.Reader != dc.Writer {
		closeDB("reader", dc.Reader)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
