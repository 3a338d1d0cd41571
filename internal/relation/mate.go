package relation

import (
	"context"
	"fmt"

	"fiyo/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MateService implements the symmetric mate relationship. A pair of users has
// at most one edge regardless of which side initiated it.
type MateService struct {
	db *gorm.DB
}

// NewMateService creates a MateService backed by the given database handle.
func NewMateService(db *gorm.DB) *MateService {
	return &MateService{db: db}
}

// OtherParty resolves the counterpart of callerID on a mate edge. Resolving
// this in code rather than in a query-level CASE keeps the logic testable
// independent of the store.
func OtherParty(edge models.MateEdge, callerID uint) uint {
	if edge.InitiatorID == callerID {
		return edge.MateID
	}
	return edge.InitiatorID
}

// SendRequest creates a pending mate edge with the caller as initiator.
// Both orderings of the pair are checked inside the transaction, and the
// unordered-pair unique index backstops the race where both sides send at
// once: the second insert matches zero rows and reports ErrAlreadyExists.
func (s *MateService) SendRequest(ctx context.Context, callerID, targetID uint) error {
	if callerID == targetID {
		return ErrSelfReference
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.MateEdge{}).
			Where("(initiator_id = ? AND mate_id = ?) OR (initiator_id = ? AND mate_id = ?)",
				callerID, targetID, targetID, callerID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check existing mate edge: %w", err)
		}
		if count > 0 {
			return ErrAlreadyExists
		}

		edge := models.MateEdge{
			InitiatorID: callerID,
			MateID:      targetID,
			Status:      models.StatusPending,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
		if result.Error != nil {
			return fmt.Errorf("failed to create mate edge: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyExists
		}
		return nil
	})
}

// UnsendRequest withdraws a pending mate request. Only the initiator may
// unsend; a call against the reverse ordering matches nothing.
func (s *MateService) UnsendRequest(ctx context.Context, callerID, targetID uint) error {
	result := s.db.WithContext(ctx).
		Where("initiator_id = ? AND mate_id = ? AND status = ?", callerID, targetID, models.StatusPending).
		Delete(&models.MateEdge{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsend mate request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AcceptRequest transitions a pending edge initiator -> caller to accepted.
func (s *MateService) AcceptRequest(ctx context.Context, callerID, initiatorID uint) error {
	result := s.db.WithContext(ctx).Model(&models.MateEdge{}).
		Where("initiator_id = ? AND mate_id = ? AND status = ?", initiatorID, callerID, models.StatusPending).
		Update("status", models.StatusAccepted)
	if result.Error != nil {
		return fmt.Errorf("failed to accept mate request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RejectRequest deletes a pending edge initiator -> caller.
func (s *MateService) RejectRequest(ctx context.Context, callerID, initiatorID uint) error {
	result := s.db.WithContext(ctx).
		Where("initiator_id = ? AND mate_id = ? AND status = ?", initiatorID, callerID, models.StatusPending).
		Delete(&models.MateEdge{})
	if result.Error != nil {
		return fmt.Errorf("failed to reject mate request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveMate deletes an accepted mate edge between the caller and other,
// whichever side initiated it.
func (s *MateService) RemoveMate(ctx context.Context, callerID, otherID uint) error {
	result := s.db.WithContext(ctx).
		Where("((initiator_id = ? AND mate_id = ?) OR (initiator_id = ? AND mate_id = ?)) AND status = ?",
			callerID, otherID, otherID, callerID, models.StatusAccepted).
		Delete(&models.MateEdge{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove mate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMates returns the counterpart user of every accepted mate edge touching
// the caller, in edge creation order.
func (s *MateService) ListMates(ctx context.Context, callerID uint, limit, offset int) ([]models.User, error) {
	limit, offset = normalizePage(limit, offset)

	var edges []models.MateEdge
	err := s.db.WithContext(ctx).
		Where("(initiator_id = ? OR mate_id = ?) AND status = ?", callerID, callerID, models.StatusAccepted).
		Order("created_at, initiator_id").
		Limit(limit).Offset(offset).
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mates: %w", err)
	}
	if len(edges) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, OtherParty(e, callerID))
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load mate users: %w", err)
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	mates := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			mates = append(mates, u)
		}
	}
	return mates, nil
}

// ListPendingIncoming returns the mate requests awaiting the caller's
// decision, with the initiating user loaded.
func (s *MateService) ListPendingIncoming(ctx context.Context, callerID uint) ([]models.MateEdge, error) {
	var edges []models.MateEdge
	err := s.db.WithContext(ctx).
		Where("mate_id = ? AND status = ?", callerID, models.StatusPending).
		Order("created_at, initiator_id").
		Preload("Initiator").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending mate requests: %w", err)
	}
	return edges, nil
}
