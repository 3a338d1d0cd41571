package relation_test

import (
	"context"
	"testing"

	"fiyo/backend/internal/models"
	"fiyo/backend/internal/relation"
	"fiyo/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRelation_NoEdges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := relation.NewRelationService(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	// Absence of any relationship is not an error.
	rel, err := svc.GetRelation(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, rel.Follow.Status)
	assert.False(t, rel.Follow.IsFollowed)
	assert.Nil(t, rel.Mate.Status)
}

func TestGetRelation_AcceptedFollow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	follow := relation.NewFollowService(db)
	svc := relation.NewRelationService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	require.NoError(t, follow.SendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, follow.AcceptRequest(ctx, bob.ID, alice.ID))

	// From alice's side: she follows bob, bob does not follow her.
	rel, err := svc.GetRelation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, rel.Follow.Status)
	assert.Equal(t, models.StatusAccepted, *rel.Follow.Status)
	assert.False(t, rel.Follow.IsFollowed)

	// From bob's side: no outgoing edge, but he is followed by alice.
	rel, err = svc.GetRelation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, rel.Follow.Status)
	assert.True(t, rel.Follow.IsFollowed)
}

func TestGetRelation_PendingFollowNotFollowedBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	follow := relation.NewFollowService(db)
	svc := relation.NewRelationService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	require.NoError(t, follow.SendRequest(ctx, alice.ID, bob.ID))

	// A pending edge reports its status to the sender but does not count
	// as being followed for the recipient.
	rel, err := svc.GetRelation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, rel.Follow.Status)
	assert.Equal(t, models.StatusPending, *rel.Follow.Status)

	rel, err = svc.GetRelation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, rel.Follow.Status)
	assert.False(t, rel.Follow.IsFollowed)
}

func TestGetRelation_MateEitherOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mate := relation.NewMateService(db)
	svc := relation.NewRelationService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	require.NoError(t, mate.SendRequest(ctx, alice.ID, bob.ID))

	// Both viewers see the same unordered edge.
	rel, err := svc.GetRelation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, rel.Mate.Status)
	assert.Equal(t, models.StatusPending, *rel.Mate.Status)

	rel, err = svc.GetRelation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, rel.Mate.Status)
	assert.Equal(t, models.StatusPending, *rel.Mate.Status)

	require.NoError(t, mate.AcceptRequest(ctx, bob.ID, alice.ID))

	rel, err = svc.GetRelation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, rel.Mate.Status)
	assert.Equal(t, models.StatusAccepted, *rel.Mate.Status)
}

func TestRelationCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	follow := relation.NewFollowService(db)
	mate := relation.NewMateService(db)
	svc := relation.NewRelationService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	require.NoError(t, follow.SendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, follow.AcceptRequest(ctx, bob.ID, alice.ID))
	require.NoError(t, follow.SendRequest(ctx, carol.ID, bob.ID)) // pending, not counted

	require.NoError(t, mate.SendRequest(ctx, carol.ID, bob.ID))
	require.NoError(t, mate.AcceptRequest(ctx, bob.ID, carol.ID))

	followers, err := svc.CountFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)

	following, err := svc.CountFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)

	mates, err := svc.CountMates(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mates)

	mates, err = svc.CountMates(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), mates)
}
