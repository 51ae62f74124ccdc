package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOccupant    UserRole = "occupant"
	RoleLowerAdmin  UserRole = "lowerAdmin"
	RoleHigherAdmin UserRole = "higherAdmin"
)

// User is the identity registry backing the role claims the complaint
// coordinator trusts. Address is the wallet-style identity string the ledger
// records as submitter; comparisons against it are case-insensitive.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Address   string    `json:"address" gorm:"size:64;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"size:255"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'occupant';check:role IN ('occupant','lowerAdmin','higherAdmin')"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleOccupant
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleOccupant, RoleLowerAdmin, RoleHigherAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the user belongs to either admin tier.
func (u *User) IsStaff() bool {
	return u.Role == RoleLowerAdmin || u.Role == RoleHigherAdmin
}
