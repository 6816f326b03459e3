package service

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"medconnect/internal/config"
	"medconnect/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultUploadDir       = "public/uploads"
	DefaultUploadMaxSizeMB = 10
)

var allowedUploadMIMEs = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// UploadKinds are the accepted values for an upload's destination folder.
var UploadKinds = map[string]bool{
	"posts":   true,
	"profile": true,
}

// DefaultUploadKind is used when the client sends no kind.
const DefaultUploadKind = "posts"

// UploadInput carries an uploaded file, its owner, and the destination kind.
type UploadInput struct {
	UserID   uint
	Kind     string
	Filename string
	Content  []byte
}

// UploadService stores uploaded files under a per-user directory and
// returns the public URL path for the stored file.
type UploadService struct {
	uploadDir    string
	maxSizeBytes int64
}

// NewUploadService returns a new UploadService.
func NewUploadService(cfg *config.Config) *UploadService {
	uploadDir := DefaultUploadDir
	maxSizeMB := DefaultUploadMaxSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.UploadMaxMB > 0 {
			maxSizeMB = cfg.UploadMaxMB
		}
	}

	return &UploadService{
		uploadDir:    uploadDir,
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// Store writes the file to disk and returns its URL path. Files land under
// uploads/<userID>/<kind>/ so profile images and post attachments never mix.
// The kind is checked against UploadKinds; it is never spliced into the path
// as raw client input.
func (s *UploadService) Store(in UploadInput) (string, error) {
	if in.UserID == 0 {
		return "", models.NewValidationError("Invalid user")
	}
	if in.Kind == "" {
		in.Kind = DefaultUploadKind
	}
	if !UploadKinds[in.Kind] {
		return "", models.NewValidationError("Unsupported upload type")
	}
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	// DetectContentType can append charset parameters
	if i := strings.Index(detectedType, ";"); i >= 0 {
		detectedType = strings.TrimSpace(detectedType[:i])
	}
	ext, ok := allowedUploadMIMEs[detectedType]
	if !ok {
		return "", models.NewValidationError("Unsupported file type")
	}

	kindDir := filepath.Join(s.uploadDir, fmt.Sprintf("%d", in.UserID), in.Kind)
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(kindDir, name), in.Content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	return fmt.Sprintf("/uploads/%d/%s/%s", in.UserID, in.Kind, name), nil
}
