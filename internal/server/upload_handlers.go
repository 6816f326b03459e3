package server

import (
	"io"
	"log/slog"

	"medconnect/internal/middleware"
	"medconnect/internal/observability"
	"medconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Upload handles POST /api/upload.
//
// The endpoint always answers 200: on any failure the error is logged and
// the response carries a null url, so a broken upload never blocks the
// submitting form. Clients must check the url field rather than the status.
func (s *Server) Upload(c *fiber.Ctx) error {
	userID := currentUserID(c)

	fail := func(reason string, err error) error {
		fields := []any{slog.String("reason", reason), slog.Any("user_id", userID)}
		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
		}
		middleware.Logger.Warn("upload failed", fields...)
		observability.RecordUpload("failed")
		return c.JSON(fiber.Map{
			"url": nil,
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail("missing file", err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fail("open file", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fail("read file", err)
	}

	url, err := s.uploadService.Store(service.UploadInput{
		UserID:   userID,
		Kind:     c.FormValue("type"),
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		return fail("store file", err)
	}

	observability.RecordUpload("ok")
	return c.JSON(fiber.Map{
		"url": url,
	})
}
