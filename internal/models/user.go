// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a medical professional registered on the platform.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"not null" json:"first_name"`
	LastName     string `gorm:"not null" json:"last_name"`
	Email        string `gorm:"unique;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	Phone        string `json:"phone,omitempty"`
	Role         string `gorm:"type:varchar(20);default:'user'" json:"role"`
	Specialty    string `json:"specialty,omitempty"`
	Hospital     string `json:"hospital,omitempty"`
	Location     string `json:"location,omitempty"`
	Bio          string `gorm:"type:text" json:"bio,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	CoverImage   string `json:"cover_image,omitempty"`

	// Connections and PendingConnections are derived from the connections
	// table at read time, never persisted. Connections holds the ids of
	// users with an accepted relationship; PendingConnections holds the
	// requester ids of incoming pending requests.
	Connections        []uint `gorm:"-" json:"connections,omitempty"`
	PendingConnections []uint `gorm:"-" json:"pending_connections,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
