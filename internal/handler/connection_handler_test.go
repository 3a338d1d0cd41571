package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"fiyo/backend/internal/handler"
	"fiyo/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFollowRequestEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	body := map[string]uint{"following_id": bob.ID}

	rec := e.do(t, http.MethodPost, "/api/v1/send/follow_request", body, alice.ID)
	requireStatus(t, rec, http.StatusOK)

	// Double submit.
	rec = e.do(t, http.MethodPost, "/api/v1/send/follow_request", body, alice.ID)
	requireStatus(t, rec, http.StatusBadRequest)

	// Self follow.
	rec = e.do(t, http.MethodPost, "/api/v1/send/follow_request",
		map[string]uint{"following_id": alice.ID}, alice.ID)
	requireStatus(t, rec, http.StatusBadRequest)

	// Missing body field.
	rec = e.do(t, http.MethodPost, "/api/v1/send/follow_request", map[string]uint{}, alice.ID)
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestFollowRequestLifecycleEndpoints(t *testing.T) {
	e := newEnv(t)
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	rec := e.do(t, http.MethodPost, "/api/v1/send/follow_request",
		map[string]uint{"following_id": bob.ID}, alice.ID)
	requireStatus(t, rec, http.StatusOK)

	// Bob sees the pending request.
	rec = e.do(t, http.MethodGet, "/api/v1/pending/follow_requests", nil, bob.ID)
	requireStatus(t, rec, http.StatusOK)

	var pending []handler.PendingRequestEntry
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, alice.ID, pending[0].User.ID)

	// Accept, then a second accept finds nothing.
	rec = e.do(t, http.MethodPost, "/api/v1/accept/follow_request",
		map[string]uint{"follower_id": alice.ID}, bob.ID)
	requireStatus(t, rec, http.StatusOK)

	rec = e.do(t, http.MethodPost, "/api/v1/accept/follow_request",
		map[string]uint{"follower_id": alice.ID}, bob.ID)
	requireStatus(t, rec, http.StatusNotFound)

	// The accepted edge shows up in bob's followers.
	rec = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/followers/%d", bob.ID), nil, alice.ID)
	requireStatus(t, rec, http.StatusOK)

	var followers []handler.FollowListEntry
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &followers))
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].User.ID)
}

func TestUnsendFollowRequestEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	body := map[string]uint{"following_id": bob.ID}

	rec := e.do(t, http.MethodPost, "/api/v1/unsend/follow_request", body, alice.ID)
	requireStatus(t, rec, http.StatusNotFound)

	rec = e.do(t, http.MethodPost, "/api/v1/send/follow_request", body, alice.ID)
	requireStatus(t, rec, http.StatusOK)

	rec = e.do(t, http.MethodPost, "/api/v1/unsend/follow_request", body, alice.ID)
	requireStatus(t, rec, http.StatusOK)

	// Bob can no longer accept.
	rec = e.do(t, http.MethodPost, "/api/v1/accept/follow_request",
		map[string]uint{"follower_id": alice.ID}, bob.ID)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestGetFollowersEndpoint_Empty(t *testing.T) {
	e := newEnv(t)
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	rec := e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/followers/%d", bob.ID), nil, alice.ID)
	requireStatus(t, rec, http.StatusNotFound)

	// The empty listing still carries an empty data array.
	var followers []handler.FollowListEntry
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &followers))
	assert.Empty(t, followers)
}

func TestGetFollowersEndpoint_Unauthenticated(t *testing.T) {
	e := newEnv(t)
	bob := testutil.CreateUser(t, e.db, "bob")

	rec := e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/followers/%d", bob.ID), nil, 0)
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestMateRequestLifecycleEndpoints(t *testing.T) {
	e := newEnv(t)
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	rec := e.do(t, http.MethodPost, "/api/v1/send/mate_request",
		map[string]uint{"mate_id": bob.ID}, alice.ID)
	requireStatus(t, rec, http.StatusOK)

	// Opposite-direction send hits the same unordered pair.
	rec = e.do(t, http.MethodPost, "/api/v1/send/mate_request",
		map[string]uint{"mate_id": alice.ID}, bob.ID)
	requireStatus(t, rec, http.StatusBadRequest)

	rec = e.do(t, http.MethodGet, "/api/v1/pending/mate_requests", nil, bob.ID)
	requireStatus(t, rec, http.StatusOK)

	var pending []handler.PendingRequestEntry
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, alice.ID, pending[0].User.ID)

	rec = e.do(t, http.MethodPost, "/api/v1/accept/mate_request",
		map[string]uint{"initiator_id": alice.ID}, bob.ID)
	requireStatus(t, rec, http.StatusOK)

	// Both sides list each other as mates.
	rec = e.do(t, http.MethodGet, "/api/v1/mates", nil, alice.ID)
	requireStatus(t, rec, http.StatusOK)

	var mates []handler.PublicUser
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &mates))
	require.Len(t, mates, 1)
	assert.Equal(t, bob.ID, mates[0].ID)

	rec = e.do(t, http.MethodGet, "/api/v1/mates", nil, bob.ID)
	requireStatus(t, rec, http.StatusOK)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &mates))
	require.Len(t, mates, 1)
	assert.Equal(t, alice.ID, mates[0].ID)

	// Remove from the non-initiating side.
	rec = e.do(t, http.MethodPost, "/api/v1/remove/mate",
		map[string]uint{"mate_id": alice.ID}, bob.ID)
	requireStatus(t, rec, http.StatusOK)

	rec = e.do(t, http.MethodGet, "/api/v1/mates", nil, alice.ID)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestRejectMateRequestEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	rec := e.do(t, http.MethodPost, "/api/v1/send/mate_request",
		map[string]uint{"mate_id": bob.ID}, alice.ID)
	requireStatus(t, rec, http.StatusOK)

	rec = e.do(t, http.MethodPost, "/api/v1/reject/mate_request",
		map[string]uint{"initiator_id": alice.ID}, bob.ID)
	requireStatus(t, rec, http.StatusOK)

	rec = e.do(t, http.MethodPost, "/api/v1/reject/mate_request",
		map[string]uint{"initiator_id": alice.ID}, bob.ID)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestFollowersPaginationEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	carol := testutil.CreateUser(t, e.db, "carol")

	for _, follower := range []uint{alice.ID, carol.ID} {
		rec := e.do(t, http.MethodPost, "/api/v1/send/follow_request",
			map[string]uint{"following_id": bob.ID}, follower)
		requireStatus(t, rec, http.StatusOK)
		rec = e.do(t, http.MethodPost, "/api/v1/accept/follow_request",
			map[string]uint{"follower_id": follower}, bob.ID)
		requireStatus(t, rec, http.StatusOK)
	}

	rec := e.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/followers/%d?limit=1&offset=0", bob.ID), nil, bob.ID)
	requireStatus(t, rec, http.StatusOK)
	var page1 []handler.FollowListEntry
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page1))
	require.Len(t, page1, 1)

	rec = e.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/followers/%d?limit=1&offset=1", bob.ID), nil, bob.ID)
	requireStatus(t, rec, http.StatusOK)
	var page2 []handler.FollowListEntry
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page2))
	require.Len(t, page2, 1)

	assert.NotEqual(t, page1[0].User.ID, page2[0].User.ID)
}
