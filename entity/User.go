package entity

import (
	"time"
)

type User struct {
	Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Role     Role   `gorm:"type:varchar(20);not null;default:customer" json:"role"`

	// password reset, sha256 of the token only
	ResetTokenHash string     `gorm:"index" json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
}
