package relation

import (
	"context"
	"fmt"

	"fiyo/backend/internal/models"

	"gorm.io/gorm"
)

// RelationService derives the combined follow+mate view for a viewer/subject
// pair, used when rendering a user profile.
type RelationService struct {
	db *gorm.DB
}

// NewRelationService creates a RelationService backed by the given database handle.
func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

// FollowRelation describes the follow state between a viewer and a subject.
type FollowRelation struct {
	// Status is the viewer->subject edge status, nil if no edge exists.
	Status *models.EdgeStatus `json:"follow_status"`
	// IsFollowed reports whether the subject has an accepted edge toward
	// the viewer.
	IsFollowed bool `json:"is_followed"`
}

// MateRelation describes the mate state between a viewer and a subject.
type MateRelation struct {
	Status *models.EdgeStatus `json:"mate_status"`
}

// Relation is the derived, non-persisted view of all relationship state
// between a viewer and a subject.
type Relation struct {
	Follow FollowRelation `json:"follow"`
	Mate   MateRelation   `json:"mate"`
}

// GetRelation computes the relation view for (viewerID, subjectID). Absence
// of any edge is not an error: the zero Relation has both statuses nil.
func (s *RelationService) GetRelation(ctx context.Context, viewerID, subjectID uint) (Relation, error) {
	var rel Relation

	var followEdges []models.FollowEdge
	err := s.db.WithContext(ctx).
		Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
			viewerID, subjectID, subjectID, viewerID).
		Find(&followEdges).Error
	if err != nil {
		return Relation{}, fmt.Errorf("failed to query follow edges: %w", err)
	}
	for _, e := range followEdges {
		if e.FollowerID == viewerID {
			rel.Follow.Status = &e.Status
		}
		if e.FollowingID == viewerID && e.Status == models.StatusAccepted {
			rel.Follow.IsFollowed = true
		}
	}

	var mateEdges []models.MateEdge
	err = s.db.WithContext(ctx).
		Where("(initiator_id = ? AND mate_id = ?) OR (initiator_id = ? AND mate_id = ?)",
			viewerID, subjectID, subjectID, viewerID).
		Limit(1).
		Find(&mateEdges).Error
	if err != nil {
		return Relation{}, fmt.Errorf("failed to query mate edge: %w", err)
	}
	if len(mateEdges) > 0 {
		rel.Mate.Status = &mateEdges[0].Status
	}

	return rel, nil
}

// CountFollowers returns the number of accepted followers of subjectID.
func (s *RelationService) CountFollowers(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FollowEdge{}).
		Where("following_id = ? AND status = ?", subjectID, models.StatusAccepted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

// CountFollowing returns the number of users subjectID follows.
func (s *RelationService) CountFollowing(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FollowEdge{}).
		Where("follower_id = ? AND status = ?", subjectID, models.StatusAccepted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}

// CountMates returns the number of accepted mate edges touching subjectID.
func (s *RelationService) CountMates(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.MateEdge{}).
		Where("(initiator_id = ? OR mate_id = ?) AND status = ?", subjectID, subjectID, models.StatusAccepted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count mates: %w", err)
	}
	return count, nil
}
