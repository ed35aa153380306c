package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRole is assigned when a signup request carries no role.
const DefaultRole = "employee"

// User represents a registered account.
// Wire names (fname, lname, isAdmin) match the client contract.
type User struct {
	ID           uuid.UUID `json:"userId" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:250;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"fname" gorm:"size:150;default:''"`
	LastName     string    `json:"lname" gorm:"size:100;default:''"`
	Role         string    `json:"role" gorm:"size:50;default:'employee'"`
	IsAdmin      bool      `json:"isAdmin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
