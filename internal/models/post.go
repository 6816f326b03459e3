// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PostVisibility is the per-post access policy.
type PostVisibility string

const (
	// PostVisibilityPublic makes a post visible to every authenticated user.
	PostVisibilityPublic PostVisibility = "public"
	// PostVisibilityConnections restricts a post to the author and their
	// accepted connections.
	PostVisibilityConnections PostVisibility = "connections"
	// PostVisibilityPrivate restricts a post to its author.
	PostVisibilityPrivate PostVisibility = "private"
)

// Valid reports whether v is one of the known visibility values.
func (v PostVisibility) Valid() bool {
	switch v {
	case PostVisibilityPublic, PostVisibilityConnections, PostVisibilityPrivate:
		return true
	}
	return false
}

// Post represents a feed post.
type Post struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Images     []string       `gorm:"serializer:json" json:"images"`
	Visibility PostVisibility `gorm:"type:varchar(20);default:'public';index" json:"visibility"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
