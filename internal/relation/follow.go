package relation

import (
	"context"
	"fmt"

	"fiyo/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Page size bounds for list operations, shared with the HTTP layer.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// FollowService implements the asymmetric follow relationship: requestable,
// directed edges with a pending -> accepted lifecycle.
type FollowService struct {
	db *gorm.DB
}

// NewFollowService creates a FollowService backed by the given database handle.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// FollowEntry is one row of a followers/following listing: the user on the
// other end of the edge, annotated with whether the viewer has an accepted
// follow edge toward that user.
type FollowEntry struct {
	User        models.User
	IsFollowing bool
}

// SendRequest creates a pending follow edge from the caller to the target.
// The insert is conditional on the composite primary key, so two concurrent
// sends for the same ordered pair leave exactly one row; the loser sees
// ErrAlreadyExists, as does a send against an edge that is already accepted.
func (s *FollowService) SendRequest(ctx context.Context, callerID, targetID uint) error {
	if callerID == targetID {
		return ErrSelfReference
	}

	edge := models.FollowEdge{
		FollowerID:  callerID,
		FollowingID: targetID,
		Status:      models.StatusPending,
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if result.Error != nil {
		return fmt.Errorf("failed to create follow edge: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// UnsendRequest withdraws a pending follow request sent by the caller.
// An accepted, rejected or never-sent request all surface as ErrNotFound.
func (s *FollowService) UnsendRequest(ctx context.Context, callerID, targetID uint) error {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ? AND status = ?", callerID, targetID, models.StatusPending).
		Delete(&models.FollowEdge{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsend follow request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Unfollow removes the caller's edge to the target regardless of status,
// covering both an accepted follow and a still-pending request.
func (s *FollowService) Unfollow(ctx context.Context, callerID, targetID uint) error {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", callerID, targetID).
		Delete(&models.FollowEdge{})
	if result.Error != nil {
		return fmt.Errorf("failed to unfollow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AcceptRequest transitions a pending edge requester -> caller to accepted.
// The status predicate doubles as the optimistic check: a racing reject or
// unsend leaves zero matching rows and the accept reports ErrNotFound.
func (s *FollowService) AcceptRequest(ctx context.Context, callerID, requesterID uint) error {
	result := s.db.WithContext(ctx).Model(&models.FollowEdge{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", requesterID, callerID, models.StatusPending).
		Update("status", models.StatusAccepted)
	if result.Error != nil {
		return fmt.Errorf("failed to accept follow request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RejectRequest deletes a pending edge requester -> caller.
func (s *FollowService) RejectRequest(ctx context.Context, callerID, requesterID uint) error {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ? AND status = ?", requesterID, callerID, models.StatusPending).
		Delete(&models.FollowEdge{})
	if result.Error != nil {
		return fmt.Errorf("failed to reject follow request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFollowers returns the accepted followers of subjectID, annotated with
// whether callerID follows each of them back. Ordered by edge creation time
// so limit/offset pagination is stable.
func (s *FollowService) ListFollowers(ctx context.Context, callerID, subjectID uint, limit, offset int) ([]FollowEntry, error) {
	limit, offset = normalizePage(limit, offset)

	var edges []models.FollowEdge
	err := s.db.WithContext(ctx).
		Where("following_id = ? AND status = ?", subjectID, models.StatusAccepted).
		Order("created_at, follower_id").
		Limit(limit).Offset(offset).
		Preload("Follower").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FollowerID)
	}
	following, err := s.followingSet(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]FollowEntry, 0, len(edges))
	for _, e := range edges {
		entries = append(entries, FollowEntry{
			User:        e.Follower,
			IsFollowing: following[e.FollowerID],
		})
	}
	return entries, nil
}

// ListFollowing returns the users subjectID follows (accepted edges),
// annotated the same way as ListFollowers.
func (s *FollowService) ListFollowing(ctx context.Context, callerID, subjectID uint, limit, offset int) ([]FollowEntry, error) {
	limit, offset = normalizePage(limit, offset)

	var edges []models.FollowEdge
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND status = ?", subjectID, models.StatusAccepted).
		Order("created_at, following_id").
		Limit(limit).Offset(offset).
		Preload("Following").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FollowingID)
	}
	following, err := s.followingSet(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]FollowEntry, 0, len(edges))
	for _, e := range edges {
		entries = append(entries, FollowEntry{
			User:        e.Following,
			IsFollowing: following[e.FollowingID],
		})
	}
	return entries, nil
}

// ListPendingIncoming returns the follow requests awaiting the caller's
// decision, with the requesting user loaded.
func (s *FollowService) ListPendingIncoming(ctx context.Context, callerID uint) ([]models.FollowEdge, error) {
	var edges []models.FollowEdge
	err := s.db.WithContext(ctx).
		Where("following_id = ? AND status = ?", callerID, models.StatusPending).
		Order("created_at, follower_id").
		Preload("Follower").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending follow requests: %w", err)
	}
	return edges, nil
}

// followingSet returns the subset of ids that callerID has an accepted follow
// edge toward, as a lookup set.
func (s *FollowService) followingSet(ctx context.Context, callerID uint, ids []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return set, nil
	}

	var followed []uint
	err := s.db.WithContext(ctx).Model(&models.FollowEdge{}).
		Where("follower_id = ? AND following_id IN ? AND status = ?", callerID, ids, models.StatusAccepted).
		Pluck("following_id", &followed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve follow-back set: %w", err)
	}
	for _, id := range followed {
		set[id] = true
	}
	return set, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
