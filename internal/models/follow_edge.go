package models

import "time"

// EdgeStatus defines the state of a relationship edge between two users.
type EdgeStatus string

const (
	// StatusPending means a request has been sent but not yet accepted.
	StatusPending EdgeStatus = "pending"

	// StatusAccepted means the request was accepted and the relationship is active.
	StatusAccepted EdgeStatus = "accepted"
)

// FollowEdge is a directed follow relationship: FollowerID follows FollowingID.
// The composite primary key (FollowerID, FollowingID) guarantees at most one
// edge per ordered pair, which is what makes the conditional insert on the
// send path race-safe.
type FollowEdge struct {
	FollowerID  uint       `gorm:"primaryKey"`
	FollowingID uint       `gorm:"primaryKey"`
	Status      EdgeStatus `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Follower  User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Following User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
