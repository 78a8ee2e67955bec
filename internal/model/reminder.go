package model

import (
	"time"

	"gorm.io/gorm"
)

// Reminder is a one-time notification tied to a task. RemindAt is always
// stored in UTC. A reminder is delivered at most once: IsSent flips to true
// exactly when a notification goes out and is never reset afterwards.
type Reminder struct {
	ID        uint      `gorm:"primaryKey"`
	TaskID    uint      `gorm:"index"`
	RemindAt  time.Time `gorm:"index"`
	IsSent    bool      `gorm:"default:false"`
	SentAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	Task      *Task          `gorm:"foreignKey:TaskID"`
}
