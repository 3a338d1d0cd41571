package database_test

import (
	"testing"

	"fiyo/backend/internal/models"
	"fiyo/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestMigrate_FollowEdgeUniquePerOrderedPair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	edge := models.FollowEdge{FollowerID: alice.ID, FollowingID: bob.ID, Status: models.StatusPending}
	require.NoError(t, db.Create(&edge).Error)

	dup := models.FollowEdge{FollowerID: alice.ID, FollowingID: bob.ID, Status: models.StatusPending}
	assert.Error(t, db.Create(&dup).Error, "composite primary key must reject a duplicate")

	// The reverse direction is a distinct edge and must be allowed.
	reverse := models.FollowEdge{FollowerID: bob.ID, FollowingID: alice.ID, Status: models.StatusPending}
	assert.NoError(t, db.Create(&reverse).Error)
}

func TestMigrate_MatePairIndexCoversBothOrderings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	edge := models.MateEdge{InitiatorID: alice.ID, MateID: bob.ID, Status: models.StatusPending}
	require.NoError(t, db.Create(&edge).Error)

	// An insert from the opposite direction lands on the same unordered
	// pair slot. This is the backstop for two sides sending at once.
	reverse := models.MateEdge{InitiatorID: bob.ID, MateID: alice.ID, Status: models.StatusPending}
	assert.Error(t, db.Create(&reverse).Error)

	// With the conditional insert the violation is swallowed and reported
	// as zero affected rows, which the engine maps to ErrAlreadyExists.
	reverse = models.MateEdge{InitiatorID: bob.ID, MateID: alice.ID, Status: models.StatusPending}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&reverse)
	require.NoError(t, result.Error)
	assert.Equal(t, int64(0), result.RowsAffected)

	var count int64
	require.NoError(t, db.Model(&models.MateEdge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
