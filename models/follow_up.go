package models

import (
	"time"
)

// Follow-up statuses.
const (
	FollowUpStatusPending   = "pending"
	FollowUpStatusCompleted = "completed"
)

// FollowUp is a scheduled contact with a prospect. It belongs to the
// salesperson who owns the prospect; completing one is ownership-checked
// like every other mutation.
type FollowUp struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	SalespersonID uint       `json:"salesperson_id" gorm:"index:idx_follow_up_owner"`
	ProspectID    uint       `json:"prospect_id" gorm:"index"`
	ScheduledDate time.Time  `json:"scheduled_date" gorm:"index"`
	Notes         string     `json:"notes" gorm:"type:text"`
	Status        string     `json:"status" gorm:"size:20;default:pending;index:idx_follow_up_owner"`
	CompletedAt   *time.Time `json:"completed_at"`
	Prospect      *Prospect  `json:"prospect,omitempty" gorm:"foreignKey:ProspectID"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name.
func (FollowUp) TableName() string {
	return "follow_ups"
}
