package handler

import (
	"net/http"
	"strconv"

	"fiyo/backend/internal/auth"
	"fiyo/backend/internal/models"
	"fiyo/backend/internal/relation"

	"github.com/gin-gonic/gin"
)

// ConnectionHandler exposes the follow and mate engines over HTTP.
type ConnectionHandler struct {
	follow *relation.FollowService
	mate   *relation.MateService
}

// NewConnectionHandler creates a ConnectionHandler.
func NewConnectionHandler(follow *relation.FollowService, mate *relation.MateService) *ConnectionHandler {
	return &ConnectionHandler{follow: follow, mate: mate}
}

// region --- DTOs ---

// FollowTargetInput identifies the user on the receiving end of a follow action.
type FollowTargetInput struct {
	FollowingID uint `json:"following_id" binding:"required" example:"2"`
}

// FollowRequesterInput identifies the user who sent a follow request.
type FollowRequesterInput struct {
	FollowerID uint `json:"follower_id" binding:"required" example:"2"`
}

// MateTargetInput identifies the other user of a mate action.
type MateTargetInput struct {
	MateID uint `json:"mate_id" binding:"required" example:"2"`
}

// MateInitiatorInput identifies the user who sent a mate request.
type MateInitiatorInput struct {
	InitiatorID uint `json:"initiator_id" binding:"required" example:"2"`
}

// PublicUser is the public projection of a user embedded in list responses.
type PublicUser struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"testuser"`
	FullName string `json:"full_name" example:"Test User"`
	Avatar   string `json:"avatar"`
}

// FollowListEntry is one row of a followers/following listing.
type FollowListEntry struct {
	User     PublicUser `json:"user"`
	Relation struct {
		IsFollowing bool `json:"is_following"`
	} `json:"relation"`
}

// PendingRequestEntry is one row of a pending-requests listing.
type PendingRequestEntry struct {
	User PublicUser `json:"user"`
}

func newPublicUser(u models.User) PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

func newFollowListEntries(entries []relation.FollowEntry) []FollowListEntry {
	out := make([]FollowListEntry, 0, len(entries))
	for _, e := range entries {
		entry := FollowListEntry{User: newPublicUser(e.User)}
		entry.Relation.IsFollowing = e.IsFollowing
		out = append(out, entry)
	}
	return out
}

// endregion

// region --- Follow ---

// GetFollowers godoc
// @Summary      List a user's followers
// @Description  Returns the accepted followers of a user, each annotated with whether the caller follows them.
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int  true   "Subject user ID"
// @Param        limit   query     int  false  "Page size" default(20)
// @Param        offset  query     int  false  "Page offset" default(0)
// @Success      200     {object}  APIResponse{data=[]FollowListEntry}
// @Failure      404     {object}  ErrorResponse "No followers found"
// @Router       /followers/{id} [get]
func (h *ConnectionHandler) GetFollowers(c *gin.Context) {
	callerID := auth.CallerID(c)
	subjectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid user ID.")
		return
	}
	limit, offset := pageParams(c)

	entries, err := h.follow.ListFollowers(c.Request.Context(), callerID, uint(subjectID), limit, offset)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to fetch followers.")
		return
	}
	if len(entries) == 0 {
		respond(c, http.StatusNotFound, []FollowListEntry{}, "No followers found.")
		return
	}

	respond(c, http.StatusOK, newFollowListEntries(entries), "Followers retrieved successfully.")
}

// GetFollowing godoc
// @Summary      List the users a user follows
// @Description  Returns the users a subject follows (accepted edges), annotated with whether the caller follows them.
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int  true   "Subject user ID"
// @Param        limit   query     int  false  "Page size" default(20)
// @Param        offset  query     int  false  "Page offset" default(0)
// @Success      200     {object}  APIResponse{data=[]FollowListEntry}
// @Failure      404     {object}  ErrorResponse "No following users found"
// @Router       /following/{id} [get]
func (h *ConnectionHandler) GetFollowing(c *gin.Context) {
	callerID := auth.CallerID(c)
	subjectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid user ID.")
		return
	}
	limit, offset := pageParams(c)

	entries, err := h.follow.ListFollowing(c.Request.Context(), callerID, uint(subjectID), limit, offset)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to fetch following users.")
		return
	}
	if len(entries) == 0 {
		respond(c, http.StatusNotFound, []FollowListEntry{}, "Following users not found.")
		return
	}

	respond(c, http.StatusOK, newFollowListEntries(entries), "Following users retrieved successfully.")
}

// GetPendingFollowRequests godoc
// @Summary      List pending follow requests
// @Description  Returns the follow requests awaiting the caller's decision.
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  APIResponse{data=[]PendingRequestEntry}
// @Failure      404  {object}  ErrorResponse "No pending requests"
// @Router       /pending/follow_requests [get]
func (h *ConnectionHandler) GetPendingFollowRequests(c *gin.Context) {
	callerID := auth.CallerID(c)

	edges, err := h.follow.ListPendingIncoming(c.Request.Context(), callerID)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to fetch pending follow requests.")
		return
	}
	if len(edges) == 0 {
		respond(c, http.StatusNotFound, []PendingRequestEntry{}, "Pending follow requests not found.")
		return
	}

	entries := make([]PendingRequestEntry, 0, len(edges))
	for _, e := range edges {
		entries = append(entries, PendingRequestEntry{User: newPublicUser(e.Follower)})
	}
	respond(c, http.StatusOK, entries, "Pending follow requests retrieved successfully.")
}

// SendFollowRequest godoc
// @Summary      Send a follow request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FollowTargetInput true "Target user"
// @Success      200  {object}  APIResponse
// @Failure      400  {object}  ErrorResponse "Already following or request pending"
// @Router       /send/follow_request [post]
func (h *ConnectionHandler) SendFollowRequest(c *gin.Context) {
	var input FollowTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'following_id' field is required.")
		return
	}

	err := h.follow.SendRequest(c.Request.Context(), auth.CallerID(c), input.FollowingID)
	if err != nil {
		respondRelationError(c, err,
			"You have already sent a follow request to this user or you already follow this user.", "")
		return
	}
	respond(c, http.StatusOK, nil, "Follow request sent successfully.")
}

// UnsendFollowRequest godoc
// @Summary      Withdraw a pending follow request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FollowTargetInput true "Target user"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already resolved"
// @Router       /unsend/follow_request [post]
func (h *ConnectionHandler) UnsendFollowRequest(c *gin.Context) {
	var input FollowTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'following_id' field is required.")
		return
	}

	err := h.follow.UnsendRequest(c.Request.Context(), auth.CallerID(c), input.FollowingID)
	if err != nil {
		respondRelationError(c, err, "",
			"Follow request not found or already accepted/rejected.")
		return
	}
	respond(c, http.StatusOK, nil, "Follow request undone successfully.")
}

// AcceptFollowRequest godoc
// @Summary      Accept a pending follow request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FollowRequesterInput true "Requesting user"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already resolved"
// @Router       /accept/follow_request [post]
func (h *ConnectionHandler) AcceptFollowRequest(c *gin.Context) {
	var input FollowRequesterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'follower_id' field is required.")
		return
	}

	err := h.follow.AcceptRequest(c.Request.Context(), auth.CallerID(c), input.FollowerID)
	if err != nil {
		respondRelationError(c, err, "",
			"Follow request not found or already accepted/rejected.")
		return
	}
	respond(c, http.StatusOK, nil, "Follow request accepted successfully.")
}

// RejectFollowRequest godoc
// @Summary      Reject a pending follow request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FollowRequesterInput true "Requesting user"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already resolved"
// @Router       /reject/follow_request [post]
func (h *ConnectionHandler) RejectFollowRequest(c *gin.Context) {
	var input FollowRequesterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'follower_id' field is required.")
		return
	}

	err := h.follow.RejectRequest(c.Request.Context(), auth.CallerID(c), input.FollowerID)
	if err != nil {
		respondRelationError(c, err, "",
			"Follow request not found or already accepted/rejected.")
		return
	}
	respond(c, http.StatusOK, nil, "Follow request rejected successfully.")
}

// Unfollow godoc
// @Summary      Stop following a user
// @Description  Removes the caller's follow edge to the target regardless of its status.
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FollowTargetInput true "Target user"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "Not following this user"
// @Router       /unfollow [post]
func (h *ConnectionHandler) Unfollow(c *gin.Context) {
	var input FollowTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'following_id' field is required.")
		return
	}

	err := h.follow.Unfollow(c.Request.Context(), auth.CallerID(c), input.FollowingID)
	if err != nil {
		respondRelationError(c, err, "", "You are not following this user.")
		return
	}
	respond(c, http.StatusOK, nil, "Unfollowed successfully.")
}

// endregion

// region --- Mates ---

// GetMates godoc
// @Summary      List the caller's mates
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size" default(20)
// @Param        offset  query     int  false  "Page offset" default(0)
// @Success      200  {object}  APIResponse{data=[]PublicUser}
// @Failure      404  {object}  ErrorResponse "No mates found"
// @Router       /mates [get]
func (h *ConnectionHandler) GetMates(c *gin.Context) {
	callerID := auth.CallerID(c)
	limit, offset := pageParams(c)

	users, err := h.mate.ListMates(c.Request.Context(), callerID, limit, offset)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to fetch mates.")
		return
	}
	if len(users) == 0 {
		respond(c, http.StatusNotFound, []PublicUser{}, "No mates found.")
		return
	}

	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, newPublicUser(u))
	}
	respond(c, http.StatusOK, out, "Mates retrieved successfully.")
}

// GetPendingMateRequests godoc
// @Summary      List pending mate requests
// @Description  Returns the mate requests awaiting the caller's decision.
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  APIResponse{data=[]PendingRequestEntry}
// @Failure      404  {object}  ErrorResponse "No pending requests"
// @Router       /pending/mate_requests [get]
func (h *ConnectionHandler) GetPendingMateRequests(c *gin.Context) {
	callerID := auth.CallerID(c)

	edges, err := h.mate.ListPendingIncoming(c.Request.Context(), callerID)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to fetch pending mate requests.")
		return
	}
	if len(edges) == 0 {
		respond(c, http.StatusNotFound, []PendingRequestEntry{}, "Pending mate requests not found.")
		return
	}

	entries := make([]PendingRequestEntry, 0, len(edges))
	for _, e := range edges {
		entries = append(entries, PendingRequestEntry{User: newPublicUser(e.Initiator)})
	}
	respond(c, http.StatusOK, entries, "Pending mate requests retrieved successfully.")
}

// SendMateRequest godoc
// @Summary      Send a mate request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MateTargetInput true "Target user"
// @Success      200  {object}  APIResponse
// @Failure      400  {object}  ErrorResponse "Already mates or request pending"
// @Router       /send/mate_request [post]
func (h *ConnectionHandler) SendMateRequest(c *gin.Context) {
	var input MateTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'mate_id' field is required.")
		return
	}

	err := h.mate.SendRequest(c.Request.Context(), auth.CallerID(c), input.MateID)
	if err != nil {
		respondRelationError(c, err,
			"You have already sent a mate request to this user or you both are already mates.", "")
		return
	}
	respond(c, http.StatusOK, nil, "Mate request sent successfully.")
}

// UnsendMateRequest godoc
// @Summary      Withdraw a pending mate request
// @Description  Only the initiator of the request can withdraw it.
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MateTargetInput true "Target user"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already resolved"
// @Router       /unsend/mate_request [post]
func (h *ConnectionHandler) UnsendMateRequest(c *gin.Context) {
	var input MateTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'mate_id' field is required.")
		return
	}

	err := h.mate.UnsendRequest(c.Request.Context(), auth.CallerID(c), input.MateID)
	if err != nil {
		respondRelationError(c, err, "",
			"Mate request not found or already accepted/rejected.")
		return
	}
	respond(c, http.StatusOK, nil, "Mate request undone successfully.")
}

// AcceptMateRequest godoc
// @Summary      Accept a pending mate request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MateInitiatorInput true "Initiating user"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already resolved"
// @Router       /accept/mate_request [post]
func (h *ConnectionHandler) AcceptMateRequest(c *gin.Context) {
	var input MateInitiatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "An 'initiator_id' field is required.")
		return
	}

	err := h.mate.AcceptRequest(c.Request.Context(), auth.CallerID(c), input.InitiatorID)
	if err != nil {
		respondRelationError(c, err, "",
			"Mate request not found or already accepted/rejected.")
		return
	}
	respond(c, http.StatusOK, nil, "Mate request accepted successfully.")
}

// RejectMateRequest godoc
// @Summary      Reject a pending mate request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MateInitiatorInput true "Initiating user"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "Request not found or already resolved"
// @Router       /reject/mate_request [post]
func (h *ConnectionHandler) RejectMateRequest(c *gin.Context) {
	var input MateInitiatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "An 'initiator_id' field is required.")
		return
	}

	err := h.mate.RejectRequest(c.Request.Context(), auth.CallerID(c), input.InitiatorID)
	if err != nil {
		respondRelationError(c, err, "",
			"Mate request not found or already accepted/rejected.")
		return
	}
	respond(c, http.StatusOK, nil, "Mate request rejected successfully.")
}

// RemoveMate godoc
// @Summary      Remove an accepted mate
// @Description  Deletes the accepted mate edge between the caller and the other user, whichever side initiated it.
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MateTargetInput true "Other user"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "Not mates with this user"
// @Router       /remove/mate [post]
func (h *ConnectionHandler) RemoveMate(c *gin.Context) {
	var input MateTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'mate_id' field is required.")
		return
	}

	err := h.mate.RemoveMate(c.Request.Context(), auth.CallerID(c), input.MateID)
	if err != nil {
		respondRelationError(c, err, "", "You are not mates with this user.")
		return
	}
	respond(c, http.StatusOK, nil, "Mate removed successfully.")
}

// endregion
