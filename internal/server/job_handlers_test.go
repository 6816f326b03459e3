package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func createTestJob(t *testing.T, app *fiber.App, overrides map[string]any) uint {
	t.Helper()

	payload := map[string]any{
		"title":       "Staff Cardiologist",
		"company":     "St. Mary's Hospital",
		"location":    "Boston, MA",
		"description": "Full-time attending position.",
		"type":        "full-time",
		"experience":  "mid-senior",
	}
	for k, v := range overrides {
		payload[k] = v
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/jobs/", payload)
	requireStatus(t, resp, body, http.StatusCreated)
	return uint(body["job"].(map[string]any)["id"].(float64))
}

func TestJobCreateValidation(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	poster := createTestUser(t, db, "Pat", "Poster", "poster-val@example.com")
	app := newAuthedApp(s, poster.ID)

	resp, body := doJSON(t, app, http.MethodPost, "/api/jobs/", map[string]any{
		"title": "No description",
	})
	requireStatus(t, resp, body, http.StatusBadRequest)

	resp, body = doJSON(t, app, http.MethodPost, "/api/jobs/", map[string]any{
		"title":       "Bad type",
		"company":     "Clinic",
		"location":    "Remote",
		"description": "desc",
		"type":        "gig-economy",
	})
	requireStatus(t, resp, body, http.StatusBadRequest)

	resp, body = doJSON(t, app, http.MethodPost, "/api/jobs/", map[string]any{
		"title":       "Bad experience",
		"company":     "Clinic",
		"location":    "Remote",
		"description": "desc",
		"experience":  "wizard",
	})
	requireStatus(t, resp, body, http.StatusBadRequest)
}

func TestJobOwnershipRules(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	poster := createTestUser(t, db, "Pat", "Poster", "poster-own@example.com")
	other := createTestUser(t, db, "Olu", "Other", "other-job@example.com")

	posterApp := newAuthedApp(s, poster.ID)
	otherApp := newAuthedApp(s, other.ID)
	jobID := createTestJob(t, posterApp, nil)

	resp, body := doJSON(t, otherApp, http.MethodPut, "/api/jobs/"+pathID(jobID), map[string]any{
		"title": "hijacked",
	})
	requireStatus(t, resp, body, http.StatusForbidden)

	resp, body = doJSON(t, otherApp, http.MethodDelete, "/api/jobs/"+pathID(jobID), nil)
	requireStatus(t, resp, body, http.StatusForbidden)

	resp, body = doJSON(t, posterApp, http.MethodPut, "/api/jobs/"+pathID(jobID), map[string]any{
		"title": "Senior Cardiologist",
	})
	requireStatus(t, resp, body, http.StatusOK)
	if body["job"].(map[string]any)["title"] != "Senior Cardiologist" {
		t.Fatalf("expected updated title, got %v", body["job"])
	}

	resp, body = doJSON(t, posterApp, http.MethodDelete, "/api/jobs/"+pathID(jobID), nil)
	requireStatus(t, resp, body, http.StatusOK)

	resp, body = doJSON(t, posterApp, http.MethodGet, "/api/jobs/"+pathID(jobID), nil)
	requireStatus(t, resp, body, http.StatusNotFound)
}

func TestJobApplications(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	poster := createTestUser(t, db, "Pat", "Poster", "poster-apply@example.com")
	seeker := createTestUser(t, db, "Sue", "Seeker", "seeker@example.com")

	posterApp := newAuthedApp(s, poster.ID)
	seekerApp := newAuthedApp(s, seeker.ID)
	jobID := createTestJob(t, posterApp, nil)

	// Posters cannot apply to their own listing
	resp, body := doJSON(t, posterApp, http.MethodPost, "/api/jobs/"+pathID(jobID)+"/apply", nil)
	requireStatus(t, resp, body, http.StatusBadRequest)

	resp, body = doJSON(t, seekerApp, http.MethodPost, "/api/jobs/"+pathID(jobID)+"/apply", nil)
	requireStatus(t, resp, body, http.StatusCreated)
	if body["job"].(map[string]any)["applicants_count"].(float64) != 1 {
		t.Fatalf("expected applicants_count 1, got %v", body["job"])
	}

	// Applying twice is a conflict
	resp, body = doJSON(t, seekerApp, http.MethodPost, "/api/jobs/"+pathID(jobID)+"/apply", nil)
	requireStatus(t, resp, body, http.StatusConflict)

	// Closing the listing blocks new applications
	resp, body = doJSON(t, posterApp, http.MethodPut, "/api/jobs/"+pathID(jobID), map[string]any{
		"status": "closed",
	})
	requireStatus(t, resp, body, http.StatusOK)

	late := createTestUser(t, db, "Lou", "Late", "late@example.com")
	resp, body = doJSON(t, newAuthedApp(s, late.ID), http.MethodPost, "/api/jobs/"+pathID(jobID)+"/apply", nil)
	requireStatus(t, resp, body, http.StatusConflict)
}

func TestJobListFilters(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	poster := createTestUser(t, db, "Pat", "Poster", "poster-list@example.com")
	app := newAuthedApp(s, poster.ID)

	createTestJob(t, app, map[string]any{"title": "Cardiology Fellow", "location": "Boston, MA"})
	createTestJob(t, app, map[string]any{"title": "Radiology Resident", "location": "Denver, CO", "type": "contract"})
	closedID := createTestJob(t, app, map[string]any{"title": "Old Posting"})
	resp, body := doJSON(t, app, http.MethodPut, "/api/jobs/"+pathID(closedID), map[string]any{
		"status": "closed",
	})
	requireStatus(t, resp, body, http.StatusOK)

	// Default listing shows only active jobs
	resp, body = doJSON(t, app, http.MethodGet, "/api/jobs/", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["jobs"].([]any)); n != 2 {
		t.Fatalf("expected 2 active jobs, got %d", n)
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/jobs/?search=cardio", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["jobs"].([]any)); n != 1 {
		t.Fatalf("expected 1 job matching search, got %d", n)
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/jobs/?type=contract", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["jobs"].([]any)); n != 1 {
		t.Fatalf("expected 1 contract job, got %d", n)
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/jobs/?status=closed", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["jobs"].([]any)); n != 1 {
		t.Fatalf("expected 1 closed job, got %d", n)
	}

	// Unknown filter values are rejected
	resp, body = doJSON(t, app, http.MethodGet, "/api/jobs/?type=volunteer", nil)
	requireStatus(t, resp, body, http.StatusBadRequest)
}
