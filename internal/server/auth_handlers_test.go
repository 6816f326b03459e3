package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"medconnect/internal/middleware"
	"medconnect/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func newAuthApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Post("/api/auth/register", s.Register)
	app.Post("/api/auth/login", s.Login)
	app.Post("/api/auth/logout", s.Logout)
	app.Get("/api/users/me", middleware.AuthRequired, s.GetMyProfile)
	return app
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.AuthCookieName {
			return cookie
		}
	}
	return nil
}

func TestRegisterIssuesSession(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	app := newAuthApp(s)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"firstName": "Grace",
		"lastName":  "Hopper",
		"email":     "Grace.Hopper@Example.com",
		"password":  "compiler1",
		"specialty": "Cardiology",
	})
	requireStatus(t, resp, body, http.StatusCreated)

	user := body["user"].(map[string]any)
	if user["email"] != "grace.hopper@example.com" {
		t.Fatalf("expected lowercased email, got %v", user["email"])
	}
	if _, ok := user["password"]; ok {
		t.Fatal("password must not appear in the response")
	}

	cookie := sessionCookie(t, resp)
	if cookie == nil {
		t.Fatal("expected auth_token cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Fatal("expected auth_token cookie to be http-only")
	}

	// The issued cookie authenticates protected requests
	req := newJSONRequest(t, http.MethodGet, "/api/users/me", nil)
	req.AddCookie(cookie)
	meResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if meResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with session cookie, got %d", meResp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	app := newAuthApp(s)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing fields", map[string]any{"email": "a@b.com", "password": "password1"}},
		{"bad email", map[string]any{
			"firstName": "A", "lastName": "B", "email": "not-an-email", "password": "password1",
		}},
		{"short password", map[string]any{
			"firstName": "A", "lastName": "B", "email": "a@b.com", "password": "short1",
		}},
		{"password without digit", map[string]any{
			"firstName": "A", "lastName": "B", "email": "a@b.com", "password": "passwordonly",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", tc.body)
			requireStatus(t, resp, body, http.StatusBadRequest)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	app := newAuthApp(s)

	payload := map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "analytical9",
	}
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", payload)
	requireStatus(t, resp, body, http.StatusCreated)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/register", payload)
	requireStatus(t, resp, body, http.StatusConflict)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	app := newAuthApp(s)

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		FirstName: "Lin",
		LastName:  "Login",
		Email:     "lin@example.com",
		Password:  string(hashed),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "LIN@example.com",
		"password": "correct-horse1",
	})
	requireStatus(t, resp, body, http.StatusOK)
	if sessionCookie(t, resp) == nil {
		t.Fatal("expected auth_token cookie on login")
	}

	// Wrong password and unknown email are indistinguishable
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "lin@example.com",
		"password": "wrong-horse1",
	})
	requireStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "correct-horse1",
	})
	requireStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "lin@example.com",
	})
	requireStatus(t, resp, body, http.StatusBadRequest)
}

func TestLogoutExpiresCookie(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	app := newAuthApp(s)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil)
	requireStatus(t, resp, body, http.StatusOK)

	cookie := sessionCookie(t, resp)
	if cookie == nil {
		t.Fatal("expected expired auth_token cookie on logout")
	}
	if cookie.Value != "" {
		t.Fatalf("expected cleared cookie value, got %q", cookie.Value)
	}
}

func TestAuthRequiredRejectsMissingAndBadTokens(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	app := newAuthApp(s)

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/me", nil)
	requireStatus(t, resp, body, http.StatusUnauthorized)

	req := newJSONRequest(t, http.MethodGet, "/api/users/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "not.a.token"})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", resp.StatusCode)
	}
}

func TestRegisterTrimsWhitespace(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	app := newAuthApp(s)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"firstName": "  Pad  ",
		"lastName":  " Ded ",
		"email":     "  pad@example.com  ",
		"password":  "padding123",
	})
	requireStatus(t, resp, body, http.StatusCreated)

	user := body["user"].(map[string]any)
	if strings.TrimSpace(user["first_name"].(string)) != user["first_name"] {
		t.Fatalf("expected trimmed first name, got %q", user["first_name"])
	}
	if user["email"] != "pad@example.com" {
		t.Fatalf("expected trimmed email, got %q", user["email"])
	}
}
