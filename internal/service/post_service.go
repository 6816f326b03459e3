package service

import (
	"context"
	"strings"

	"medconnect/internal/models"
	"medconnect/internal/observability"
	"medconnect/internal/repository"
	"medconnect/internal/validation"
)

// PostService provides post, like and comment business logic.
type PostService struct {
	postRepo repository.PostRepository
	connRepo repository.ConnectionRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, connRepo repository.ConnectionRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		connRepo: connRepo,
	}
}

// CreatePostInput carries fields for a new post.
type CreatePostInput struct {
	Content    string
	Images     []string
	Visibility models.PostVisibility
}

// CreatePost creates a post for the user. Visibility defaults to public.
func (s *PostService) CreatePost(ctx context.Context, userID uint, input CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(validation.SanitizeHTML(input.Content))
	if content == "" && len(input.Images) == 0 {
		return nil, models.NewValidationError("Post content is required")
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.PostVisibilityPublic
	}
	if !visibility.Valid() {
		return nil, models.NewValidationError("Invalid visibility value")
	}

	post := &models.Post{
		UserID:     userID,
		Content:    content,
		Images:     input.Images,
		Visibility: visibility,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.RecordPostCreated(string(visibility))

	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// BuildFeedQuery assembles the visibility scope for the viewer's feed.
func (s *PostService) BuildFeedQuery(ctx context.Context, viewerID uint, authorID uint, limit, offset int) (models.FeedQuery, error) {
	peers, err := s.connRepo.AcceptedPeerIDs(ctx, viewerID)
	if err != nil {
		return models.FeedQuery{}, err
	}
	return models.FeedQuery{
		ViewerID: viewerID,
		PeerIDs:  peers,
		AuthorID: authorID,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// GetFeed returns the posts visible to the viewer, newest first, with the total count.
func (s *PostService) GetFeed(ctx context.Context, viewerID uint, authorID uint, limit, offset int) ([]*models.Post, int64, error) {
	q, err := s.BuildFeedQuery(ctx, viewerID, authorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	posts, err := s.postRepo.ListFeed(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.CountFeed(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPost returns a single post if the viewer may see it.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, viewerID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// authorizeView enforces the post visibility policy for a single post read.
func (s *PostService) authorizeView(ctx context.Context, viewerID uint, post *models.Post) error {
	if post.UserID == viewerID || post.Visibility == models.PostVisibilityPublic {
		return nil
	}
	if post.Visibility == models.PostVisibilityConnections {
		conn, err := s.connRepo.GetBetweenUsers(ctx, viewerID, post.UserID)
		if err != nil {
			return err
		}
		if conn != nil && conn.Status == models.ConnectionStatusAccepted {
			return nil
		}
	}
	return models.NewForbiddenError("You do not have access to this post")
}

// UpdatePostInput carries updatable post fields. Nil means unchanged.
type UpdatePostInput struct {
	Content    *string
	Visibility *models.PostVisibility
}

// UpdatePost updates a post. Only the author may update it.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if input.Content != nil {
		content := strings.TrimSpace(validation.SanitizeHTML(*input.Content))
		if content == "" && len(post.Images) == 0 {
			return nil, models.NewValidationError("Post content is required")
		}
		post.Content = content
	}
	if input.Visibility != nil {
		if !input.Visibility.Valid() {
			return nil, models.NewValidationError("Invalid visibility value")
		}
		post.Visibility = *input.Visibility
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

// DeletePost deletes a post. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike likes the post if not yet liked, otherwise removes the like.
// Returns the new liked state and the updated like count.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, 0, err
	}
	if err := s.authorizeView(ctx, userID, post); err != nil {
		return false, 0, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return false, 0, err
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return false, 0, err
		}
	}

	updated, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, 0, err
	}
	return !liked, updated.LikesCount, nil
}

// AddComment appends a comment to a post the user can see.
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(validation.SanitizeHTML(content))
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, userID, post); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	comments, err := s.postRepo.GetComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ID == comment.ID {
			return &comments[i], nil
		}
	}
	return comment, nil
}

// GetComments returns a post's comments, oldest first.
func (s *PostService) GetComments(ctx context.Context, userID, postID uint) ([]models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, userID, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetComments(ctx, postID)
}
