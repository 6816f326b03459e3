// Package service implements the application's business logic.
package service

import (
	"context"

	"medconnect/internal/models"
	"medconnect/internal/observability"
	"medconnect/internal/repository"
)

// ConnectionService provides connection-request and connection business logic.
type ConnectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(connRepo repository.ConnectionRepository, userRepo repository.UserRepository) *ConnectionService {
	return &ConnectionService{
		connRepo: connRepo,
		userRepo: userRepo,
	}
}

// SendRequest sends a connection request to the target user.
func (s *ConnectionService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.Connection, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a connection request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.connRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.ConnectionStatusAccepted:
			return nil, models.NewConflictError("You are already connected")
		case models.ConnectionStatusPending:
			if existing.RequesterID == userID {
				return nil, models.NewConflictError("Connection request already sent")
			}
			return nil, models.NewConflictError("This user has already sent you a connection request")
		case models.ConnectionStatusRejected:
			// A rejected pair stays on record and blocks a new request
			return nil, models.NewConflictError("A connection request between these users was already resolved")
		}
	}

	conn := &models.Connection{
		RequesterID: userID,
		RecipientID: targetUserID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.connRepo.Create(ctx, conn); err != nil {
		return nil, err
	}
	observability.RecordConnectionTransition("requested")

	return s.connRepo.GetByID(ctx, conn.ID)
}

// Respond accepts or rejects a pending connection request. Only the
// recipient may respond.
func (s *ConnectionService) Respond(ctx context.Context, userID, requestID uint, accept bool) (*models.Connection, error) {
	conn, err := s.connRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if conn.RecipientID != userID {
		return nil, models.NewForbiddenError("Only the recipient can respond to a connection request")
	}
	if conn.Status != models.ConnectionStatusPending {
		return nil, models.NewConflictError("Connection request is not pending")
	}

	status := models.ConnectionStatusRejected
	outcome := "rejected"
	if accept {
		status = models.ConnectionStatusAccepted
		outcome = "accepted"
	}

	if err := s.connRepo.UpdateStatus(ctx, requestID, status); err != nil {
		return nil, err
	}
	observability.RecordConnectionTransition(outcome)

	return s.connRepo.GetByID(ctx, requestID)
}

// Remove deletes whatever connection record exists between the user and the
// peer: severing an accepted connection, cancelling a pending request, or
// clearing a rejection so the pair can start over.
func (s *ConnectionService) Remove(ctx context.Context, userID, peerID uint) error {
	conn, err := s.connRepo.GetBetweenUsers(ctx, userID, peerID)
	if err != nil {
		return err
	}
	if conn == nil {
		return models.NewNotFoundError("Connection", peerID)
	}

	if err := s.connRepo.RemoveBetweenUsers(ctx, userID, peerID); err != nil {
		return err
	}
	observability.RecordConnectionTransition("removed")
	return nil
}

// GetConnections returns a page of users connected to userID together with
// the total connection count.
func (s *ConnectionService) GetConnections(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	return s.connRepo.GetConnectedUsers(ctx, userID, limit, offset)
}

// GetPendingRequests returns a page of pending requests addressed to the
// user together with the total count.
func (s *ConnectionService) GetPendingRequests(ctx context.Context, userID uint, limit, offset int) ([]models.Connection, int64, error) {
	return s.connRepo.GetIncoming(ctx, userID, models.ConnectionStatusPending, limit, offset)
}

// GetSentRequests returns a page of pending requests the user has sent
// together with the total count.
func (s *ConnectionService) GetSentRequests(ctx context.Context, userID uint, limit, offset int) ([]models.Connection, int64, error) {
	return s.connRepo.GetSent(ctx, userID, models.ConnectionStatusPending, limit, offset)
}

// Status returns the connection state between two users as seen by userID:
// "none", "connected", "pending_sent", "pending_received" or "rejected".
func (s *ConnectionService) Status(ctx context.Context, userID, targetUserID uint) (string, uint, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return "", 0, err
	}

	conn, err := s.connRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return "", 0, err
	}

	status := "none"
	var requestID uint
	if conn != nil {
		switch conn.Status {
		case models.ConnectionStatusAccepted:
			status = "connected"
		case models.ConnectionStatusPending:
			requestID = conn.ID
			if conn.RequesterID == userID {
				status = "pending_sent"
			} else {
				status = "pending_received"
			}
		default:
			status = string(conn.Status)
		}
	}

	return status, requestID, nil
}

// AreConnected reports whether the two users share an accepted connection.
func (s *ConnectionService) AreConnected(ctx context.Context, userID, targetUserID uint) (bool, error) {
	conn, err := s.connRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return false, err
	}
	return conn != nil && conn.Status == models.ConnectionStatusAccepted, nil
}
