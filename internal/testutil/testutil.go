package testutil

import (
	"fmt"
	"testing"

	"fiyo/backend/internal/database"
	"fiyo/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory sqlite database and runs the full schema
// migration. Each call gets its own database, so tests can run in parallel.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "SetupTestDB: open")
	require.NoError(t, database.Migrate(db), "SetupTestDB: migrate")
	return db
}

// CreateUser inserts a user with sensible defaults and returns it.
func CreateUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		FullName:     username,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error, "CreateUser: %s", username)
	return user
}
