package model

import (
	"time"

	"gorm.io/gorm"
)

// Task is a single item inside a project.
type Task struct {
	ID          uint `gorm:"primaryKey"`
	ProjectID   uint `gorm:"index"`
	Title       string
	Description string
	Priority    string // low, medium, high
	Deadline    *time.Time
	IsCompleted bool `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	Project     *Project       `gorm:"foreignKey:ProjectID"`
	Reminders   []Reminder     `gorm:"foreignKey:TaskID"`
}
