package service

import (
	"context"
	"strings"

	"medconnect/internal/models"
	"medconnect/internal/repository"
	"medconnect/internal/validation"
)

// UserService provides profile and directory business logic.
type UserService struct {
	userRepo repository.UserRepository
	connRepo repository.ConnectionRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, connRepo repository.ConnectionRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		connRepo: connRepo,
	}
}

// recentProfilePosts caps how many posts ride along on the own-profile payload.
const recentProfilePosts = 10

// GetProfile returns a user with their connection and pending-request lists
// filled in. Both lists are derived from the connections table on every read.
// When the viewer requests their own profile the response also embeds their
// most recent posts; other users' posts are served through the feed, where
// visibility is enforced.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*models.User, error) {
	var user *models.User
	var err error
	if viewerID == userID {
		user, err = s.userRepo.GetByIDWithPosts(ctx, userID, recentProfilePosts)
	} else {
		user, err = s.userRepo.GetByID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	peers, err := s.connRepo.AcceptedPeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.connRepo.PendingRequesterIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Connections = peers
	user.PendingConnections = pending
	return user, nil
}

// UpdateProfileInput carries updatable profile fields. Nil means unchanged.
type UpdateProfileInput struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	Specialty    *string
	Hospital     *string
	Location     *string
	Bio          *string
	ProfileImage *string
	CoverImage   *string
}

// UpdateProfile updates the user's own profile fields. Only the columns the
// caller actually sent are written: the fetched user may be a cached copy
// whose password hash (json-omitted) is empty, so it is merged for
// validation but never saved wholesale.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setString := func(column string, dst *string, src *string, sanitize bool) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if sanitize {
			v = validation.SanitizeHTML(v)
		}
		*dst = v
		fields[column] = v
	}

	setString("first_name", &user.FirstName, input.FirstName, false)
	setString("last_name", &user.LastName, input.LastName, false)
	setString("phone", &user.Phone, input.Phone, false)
	setString("specialty", &user.Specialty, input.Specialty, false)
	setString("hospital", &user.Hospital, input.Hospital, false)
	setString("location", &user.Location, input.Location, false)
	setString("bio", &user.Bio, input.Bio, true)
	setString("profile_image", &user.ProfileImage, input.ProfileImage, false)
	setString("cover_image", &user.CoverImage, input.CoverImage, false)

	if user.FirstName == "" || user.LastName == "" {
		return nil, models.NewValidationError("First and last name are required")
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID, userID)
}

// Search finds users matching the query across name, specialty,
// hospital and location.
func (s *UserService) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

// List returns a page of users for the directory.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
