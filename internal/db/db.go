package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"testinsight-backend/internal/config"
	"testinsight-backend/internal/model"
	"testinsight-backend/utilities"
)

var database *gorm.DB

// DSN builds the postgres connection string from the DB section.
func DSN(c config.DBConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password.Value, c.Names.Analysis, c.SSLMode)
}

// Open connects to the configured database and applies the pool settings.
// DRIVER "sqlite" opens the file named by NAMES ANALYSIS; anything else is
// postgres.
func Open(c config.DBConfig) (*gorm.DB, error) {
	if strings.EqualFold(c.Driver, "sqlite") {
		return OpenSQLite(c.Names.Analysis)
	}

	conn, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(c),
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if c.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.Pool.MaxOpenConns)
	}
	if c.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.Pool.MaxIdleConns)
	}
	if c.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(c.Pool.ConnMaxLifetime) * time.Second)
	}
	return conn, nil
}

// OpenSQLite opens a file-backed sqlite database with a single writer
// connection. Used for local runs and tests.
func OpenSQLite(path string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}

// InitDBFromConfig opens the process-wide connection.
func InitDBFromConfig(cfg *config.APIConfig) error {
	conn, err := Open(cfg.DB)
	if err != nil {
		return err
	}
	database = conn
	utilities.Info("Connected to database %s on %s:%d", cfg.DB.Names.Analysis, cfg.DB.Host, cfg.DB.Port)
	return nil
}

func GetDB() *gorm.DB {
	return database
}

// Migrate creates or updates the tables used by the analysis backend.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&model.Test{},
		&model.Section{},
		&model.Question{},
		&model.TestAttempt{},
		&model.AttemptedQuestion{},
		&model.AnalysisReport{},
	)
}

// IsUniqueViolation reports whether err is a unique constraint violation
// (postgres SQLSTATE 23505, or the sqlite equivalent).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var state interface{ SQLState() string }
	if errors.As(err, &state) && state.SQLState() == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
