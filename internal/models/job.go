// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// JobStatus represents the lifecycle status of a job listing.
type JobStatus string

const (
	// JobStatusActive indicates an open job listing.
	JobStatusActive JobStatus = "active"
	// JobStatusClosed indicates a listing no longer accepting applicants.
	JobStatusClosed JobStatus = "closed"
)

// JobType enumerates employment types for a job listing.
var JobTypes = []string{"full-time", "part-time", "contract", "temporary", "internship"}

// JobExperienceLevels enumerates the experience levels for a job listing.
var JobExperienceLevels = []string{"entry", "associate", "mid-senior", "director", "executive"}

// Salary is an optional salary range embedded in a job listing.
type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Job represents a job-board listing.
type Job struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Company      string    `gorm:"not null" json:"company"`
	Location     string    `gorm:"not null" json:"location"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Requirements []string  `gorm:"serializer:json" json:"requirements"`
	Type         string    `gorm:"type:varchar(20);default:'full-time'" json:"type"`
	Experience   string    `gorm:"type:varchar(20);default:'entry'" json:"experience"`
	Salary       *Salary   `gorm:"serializer:json" json:"salary,omitempty"`
	PostedByID   uint      `gorm:"not null;index" json:"posted_by"`
	PostedBy     User      `gorm:"foreignKey:PostedByID" json:"poster,omitempty"`
	Status       JobStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	// ApplicantsCount is not persisted; computed at query time
	ApplicantsCount int            `gorm:"->" json:"applicants_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// JobApplication records a user applying to a job. The combination of
// JobID and UserID must be unique.
type JobApplication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_job_applicant" json:"job_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_job_applicant" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
