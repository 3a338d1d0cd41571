package models

import "time"

// MateEdge is a symmetric mate relationship. InitiatorID is whoever sent the
// request; the logical key is the unordered pair {InitiatorID, MateID}.
// The composite primary key only covers the ordered pair, so the database
// layer additionally maintains a unique index over
// (least(initiator_id, mate_id), greatest(initiator_id, mate_id)) to reject a
// racing insert from the opposite direction.
type MateEdge struct {
	InitiatorID uint       `gorm:"primaryKey"`
	MateID      uint       `gorm:"primaryKey"`
	Status      EdgeStatus `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Initiator User `gorm:"foreignKey:InitiatorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Mate      User `gorm:"foreignKey:MateID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
