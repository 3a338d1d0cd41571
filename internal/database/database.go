package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"fiyo/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database connection and runs migrations. The returned
// handle is passed explicitly to every consumer; there is no package-level
// connection state.
func Connect(dsn string) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs schema migrations, including the unordered-pair uniqueness
// index on mate_edges that the composite primary key alone cannot express.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.FollowEdge{}, &models.MateEdge{})
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Both orderings of a mate pair must map to the same unique slot.
	// Postgres spells the two-argument min/max as LEAST/GREATEST, sqlite
	// (used by tests) as MIN/MAX.
	var stmt string
	if db.Dialector.Name() == "postgres" {
		stmt = `CREATE UNIQUE INDEX IF NOT EXISTS idx_mate_edges_pair
			ON mate_edges (LEAST(initiator_id, mate_id), GREATEST(initiator_id, mate_id))`
	} else {
		stmt = `CREATE UNIQUE INDEX IF NOT EXISTS idx_mate_edges_pair
			ON mate_edges (MIN(initiator_id, mate_id), MAX(initiator_id, mate_id))`
	}
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create mate pair index: %w", err)
	}

	return nil
}
