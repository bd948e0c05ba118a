package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iliyamo/restaurant-reviews/internal/model"
)

// Open connects to the primary database, verifies the connection and
// migrates the restaurant and review tables.  Postgres URLs
// (postgres://, postgresql://) and libpq key=value strings go to the
// Postgres driver; anything else is treated as an embedded SQLite path.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	// Pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	if strings.Contains(dsn, ":memory:") {
		// every new connection would see its own empty in-memory database
		sqlDB.SetMaxOpenConns(1)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the restaurant and review tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Restaurant{}, &model.Review{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialect reports which driver Open would choose for dsn.
func Dialect(dsn string) string {
	return dialectorFor(dsn).Name()
}

func dialectorFor(dsn string) gorm.Dialector {
	if isPostgres(dsn) {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

func isPostgres(dsn string) bool {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return true
	}
	// libpq key=value form, e.g. "dbname=x host=y user=z password=w"
	return strings.Contains(lower, "host=") && strings.Contains(lower, "dbname=")
}
