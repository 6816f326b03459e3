// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// ConnectionStatus represents the status of a connection request.
type ConnectionStatus string

const (
	// ConnectionStatusPending indicates a connection request awaiting a response.
	ConnectionStatusPending ConnectionStatus = "pending"
	// ConnectionStatusAccepted indicates a mutual, symmetric connection.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	// ConnectionStatusRejected indicates a declined request. Rejected rows are
	// retained and keep blocking a resend until either party removes them.
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// Connection represents a relationship between two users. At most one row
// exists per unordered {requester, recipient} pair; direction is preserved
// because only the recipient may respond to a pending request.
type Connection struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"requester_id"`
	RecipientID uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"recipient_id"`
	Status      ConnectionStatus `gorm:"type:varchar(20);default:'pending';index:idx_connections_status" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (Connection) TableName() string {
	return "connections"
}

// Involves reports whether the given user is a party to the connection.
func (c *Connection) Involves(userID uint) bool {
	return c.RequesterID == userID || c.RecipientID == userID
}

// PeerOf returns the other party's id, or 0 if userID is not a party.
func (c *Connection) PeerOf(userID uint) uint {
	switch userID {
	case c.RequesterID:
		return c.RecipientID
	case c.RecipientID:
		return c.RequesterID
	}
	return 0
}
