package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"medconnect/internal/config"
	"medconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:   "test-secret-key-for-handler-tests",
		Port:        "0",
		Env:         "test",
		UploadDir:   t.TempDir(),
		UploadMaxMB: 10,
	}
}

func setupTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Connection{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Job{},
		&models.JobApplication{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	s, err := NewServerWithDeps(testConfig(t), db, nil)
	if err != nil {
		t.Fatalf("create server: %v", err)
	}
	return s, db
}

func createTestUser(t *testing.T, db *gorm.DB, first, last, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  "hashed-password",
		Role:      "doctor",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// newAuthedApp returns a Fiber app with all routes registered and the given
// user injected as the authenticated caller.
func newAuthedApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	registerTestRoutes(app, s)
	return app
}

// registerTestRoutes mirrors the protected API surface without the auth
// and rate-limit middleware.
func registerTestRoutes(app *fiber.App, s *Server) {
	api := app.Group("/api")

	users := api.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/search", s.SearchUsers)
	users.Get("/", s.GetUsers)
	users.Get("/:id", s.GetUserProfile)

	connections := api.Group("/connections")
	connections.Get("/", s.GetConnections)
	connections.Post("/requests/:userId", s.SendConnectionRequest)
	connections.Get("/requests", s.GetPendingRequests)
	connections.Get("/requests/sent", s.GetSentRequests)
	connections.Post("/requests/:requestId/accept", s.AcceptConnectionRequest)
	connections.Post("/requests/:requestId/reject", s.RejectConnectionRequest)
	connections.Get("/status/:userId", s.GetConnectionStatus)
	connections.Delete("/:userId", s.RemoveConnection)

	posts := api.Group("/posts")
	posts.Get("/", s.GetFeed)
	posts.Post("/", s.CreatePost)
	posts.Post("/:id/like", s.ToggleLike)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	jobs := api.Group("/jobs")
	jobs.Get("/", s.GetJobs)
	jobs.Post("/", s.CreateJob)
	jobs.Post("/:id/apply", s.ApplyToJob)
	jobs.Get("/:id", s.GetJob)
	jobs.Put("/:id", s.UpdateJob)
	jobs.Delete("/:id", s.DeleteJob)

	api.Post("/upload", s.Upload)
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	req := newJSONRequest(t, method, path, body)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	_ = resp.Body.Close()
	return resp, decoded
}

func requireStatus(t *testing.T, resp *http.Response, body map[string]any, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d (body: %v)", want, resp.StatusCode, body)
	}
}

func pathID(id uint) string {
	return fmt.Sprintf("%d", id)
}
