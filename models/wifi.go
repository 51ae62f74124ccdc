package models

import "time"

// WifiCredential maps an occupant's email to the building network they may
// join. The password is stored as a bcrypt hash and checked, never returned.
type WifiCredential struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	WifiName     string    `json:"wifi_name" gorm:"size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets custom table name
func (WifiCredential) TableName() string { return "wifi_credentials" }

// WifiCheckRequest is the request body for a credential check.
type WifiCheckRequest struct {
	Email    string `json:"email" binding:"required,email"`
	WifiName string `json:"wifi_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}
