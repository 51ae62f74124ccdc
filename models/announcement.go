package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a notice posted by the higher admin for all occupants.
type Announcement struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Body      string         `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName sets custom table name
func (Announcement) TableName() string { return "announcements" }

// AnnouncementUpsert is the request structure for creating or editing an
// announcement.
type AnnouncementUpsert struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}
