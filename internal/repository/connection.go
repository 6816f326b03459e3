package repository

import (
	"context"
	"errors"

	"medconnect/internal/models"

	"gorm.io/gorm"
)

// ConnectionRepository defines persistence operations for connection requests.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	GetByID(ctx context.Context, id uint) (*models.Connection, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Connection, error)
	UpdateStatus(ctx context.Context, connectionID uint, status models.ConnectionStatus) error
	RemoveBetweenUsers(ctx context.Context, userID1, userID2 uint) error
	AcceptedPeerIDs(ctx context.Context, userID uint) ([]uint, error)
	PendingRequesterIDs(ctx context.Context, userID uint) ([]uint, error)
	GetConnectedUsers(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error)
	GetIncoming(ctx context.Context, userID uint, status models.ConnectionStatus, limit, offset int) ([]models.Connection, int64, error)
	GetSent(ctx context.Context, userID uint, status models.ConnectionStatus, limit, offset int) ([]models.Connection, int64, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository returns a new ConnectionRepository implementation.
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Connection request already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Recipient").
		First(&conn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Connection, error) {
	var conn models.Connection

	// A pair is stored once, in whichever order the request was made
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userID1, userID2, userID2, userID1).
		Preload("Requester").
		Preload("Recipient").
		First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No connection exists
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, connectionID uint, status models.ConnectionStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ?", connectionID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) RemoveBetweenUsers(ctx context.Context, userID1, userID2 uint) error {
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userID1, userID2, userID2, userID1).
		Delete(&models.Connection{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AcceptedPeerIDs returns the IDs of all users connected to userID.
func (r *connectionRepository) AcceptedPeerIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Select("CASE WHEN requester_id = ? THEN recipient_id ELSE requester_id END", userID).
		Where("status = ? AND (requester_id = ? OR recipient_id = ?)",
			models.ConnectionStatusAccepted, userID, userID).
		Scan(&ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// PendingRequesterIDs returns the IDs of users with an open request to userID.
func (r *connectionRepository) PendingRequesterIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Select("requester_id").
		Where("recipient_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Scan(&ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *connectionRepository) GetConnectedUsers(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN connections c ON (users.id = c.requester_id OR users.id = c.recipient_id)").
		Where("c.status = ? AND (c.requester_id = ? OR c.recipient_id = ?) AND users.id != ?",
			models.ConnectionStatusAccepted, userID, userID, userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := base.Session(&gorm.Session{}).
		Order("c.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *connectionRepository) GetIncoming(ctx context.Context, userID uint, status models.ConnectionStatus, limit, offset int) ([]models.Connection, int64, error) {
	return r.listRequests(ctx, "recipient_id = ? AND status = ?", userID, status, limit, offset)
}

func (r *connectionRepository) GetSent(ctx context.Context, userID uint, status models.ConnectionStatus, limit, offset int) ([]models.Connection, int64, error) {
	return r.listRequests(ctx, "requester_id = ? AND status = ?", userID, status, limit, offset)
}

func (r *connectionRepository) listRequests(ctx context.Context, cond string, userID uint, status models.ConnectionStatus, limit, offset int) ([]models.Connection, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where(cond, userID, status)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var conns []models.Connection
	if err := base.Session(&gorm.Session{}).
		Preload("Requester").
		Preload("Recipient").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&conns).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return conns, total, nil
}
