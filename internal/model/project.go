package model

import (
	"time"

	"gorm.io/gorm"
)

// Project groups tasks under a single owner. Private projects are visible
// only to the owner and cannot be shared until made public.
type Project struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index"`
	Title       string
	Description string
	IsPrivate   bool   `gorm:"default:false"`
	ShareToken  string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	Tasks       []Task         `gorm:"foreignKey:ProjectID"`
}
