package models

import (
	"time"
)

// User is an authenticated identity. In the local variant the record is
// persisted verbatim in the key-value store (including the avatar URL); in
// the server variant the password hash never leaves the database.
type User struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Avatar       string    `gorm:"type:varchar(512)" json:"avatar,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID" json:"-"`
}
