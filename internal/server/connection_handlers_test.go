package server

import (
	"fmt"
	"net/http"
	"testing"

	"medconnect/internal/models"
)

func TestConnectionRequestLifecycle(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "Alice", "Adler", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "Baker", "bob@example.com")
	carol := createTestUser(t, db, "Carol", "Chen", "carol@example.com")

	aliceApp := newAuthedApp(s, alice.ID)
	bobApp := newAuthedApp(s, bob.ID)
	carolApp := newAuthedApp(s, carol.ID)

	// Alice sends requests to Bob and Carol
	resp, body := doJSON(t, aliceApp, http.MethodPost, "/api/connections/requests/"+pathID(bob.ID), nil)
	requireStatus(t, resp, body, http.StatusCreated)

	resp, body = doJSON(t, aliceApp, http.MethodPost, "/api/connections/requests/"+pathID(carol.ID), nil)
	requireStatus(t, resp, body, http.StatusCreated)

	// A duplicate request conflicts
	resp, body = doJSON(t, aliceApp, http.MethodPost, "/api/connections/requests/"+pathID(bob.ID), nil)
	requireStatus(t, resp, body, http.StatusConflict)

	// Bob cannot re-request the same pair from the other side either
	resp, body = doJSON(t, bobApp, http.MethodPost, "/api/connections/requests/"+pathID(alice.ID), nil)
	requireStatus(t, resp, body, http.StatusConflict)

	// Self-connection is rejected outright
	resp, body = doJSON(t, aliceApp, http.MethodPost, "/api/connections/requests/"+pathID(alice.ID), nil)
	requireStatus(t, resp, body, http.StatusBadRequest)

	// Both requests show up in Bob's and Carol's pending lists
	resp, body = doJSON(t, bobApp, http.MethodGet, "/api/connections/requests", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["requests"].([]any)); n != 1 {
		t.Fatalf("expected 1 pending request for bob, got %d", n)
	}

	// And in Alice's sent list
	resp, body = doJSON(t, aliceApp, http.MethodGet, "/api/connections/requests/sent", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["requests"].([]any)); n != 2 {
		t.Fatalf("expected 2 sent requests for alice, got %d", n)
	}

	// Alice cannot accept her own outgoing request
	var pending models.Connection
	if err := db.Where("requester_id = ? AND recipient_id = ?", alice.ID, bob.ID).First(&pending).Error; err != nil {
		t.Fatalf("load pending request: %v", err)
	}
	resp, body = doJSON(t, aliceApp, http.MethodPost, "/api/connections/requests/"+pathID(pending.ID)+"/accept", nil)
	requireStatus(t, resp, body, http.StatusForbidden)

	// Bob accepts
	resp, body = doJSON(t, bobApp, http.MethodPost, "/api/connections/requests/"+pathID(pending.ID)+"/accept", nil)
	requireStatus(t, resp, body, http.StatusOK)

	// Accepting twice conflicts
	resp, body = doJSON(t, bobApp, http.MethodPost, "/api/connections/requests/"+pathID(pending.ID)+"/accept", nil)
	requireStatus(t, resp, body, http.StatusConflict)

	// The connection is symmetric: both sides list each other
	resp, body = doJSON(t, aliceApp, http.MethodGet, "/api/connections/", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["connections"].([]any)); n != 1 {
		t.Fatalf("expected alice to have 1 connection, got %d", n)
	}
	resp, body = doJSON(t, bobApp, http.MethodGet, "/api/connections/", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["connections"].([]any)); n != 1 {
		t.Fatalf("expected bob to have 1 connection, got %d", n)
	}

	// Carol rejects her request
	var carolPending models.Connection
	if err := db.Where("requester_id = ? AND recipient_id = ?", alice.ID, carol.ID).First(&carolPending).Error; err != nil {
		t.Fatalf("load carol request: %v", err)
	}
	resp, body = doJSON(t, carolApp, http.MethodPost, "/api/connections/requests/"+pathID(carolPending.ID)+"/reject", nil)
	requireStatus(t, resp, body, http.StatusOK)

	// The rejected pair blocks a resend
	resp, body = doJSON(t, aliceApp, http.MethodPost, "/api/connections/requests/"+pathID(carol.ID), nil)
	requireStatus(t, resp, body, http.StatusConflict)

	// Carol never shows up as a connection
	resp, body = doJSON(t, carolApp, http.MethodGet, "/api/connections/", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["connections"].([]any)); n != 0 {
		t.Fatalf("expected carol to have no connections, got %d", n)
	}

	// Alice removes Bob; the connection disappears from both sides
	resp, body = doJSON(t, aliceApp, http.MethodDelete, "/api/connections/"+pathID(bob.ID), nil)
	requireStatus(t, resp, body, http.StatusOK)

	resp, body = doJSON(t, bobApp, http.MethodGet, "/api/connections/", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["connections"].([]any)); n != 0 {
		t.Fatalf("expected bob to have no connections after removal, got %d", n)
	}

	// Removing again is a 404
	resp, body = doJSON(t, aliceApp, http.MethodDelete, "/api/connections/"+pathID(bob.ID), nil)
	requireStatus(t, resp, body, http.StatusNotFound)

	// Deleting the rejected record lets the pair start over
	resp, body = doJSON(t, aliceApp, http.MethodDelete, "/api/connections/"+pathID(carol.ID), nil)
	requireStatus(t, resp, body, http.StatusOK)
	resp, body = doJSON(t, aliceApp, http.MethodPost, "/api/connections/requests/"+pathID(carol.ID), nil)
	requireStatus(t, resp, body, http.StatusCreated)
}

func TestRequestListingsPaginated(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "Alice", "Adler", "alice-requests@example.com")

	// Five colleagues each send Alice a request
	for i := 0; i < 5; i++ {
		peer := createTestUser(t, db, "Peer", "Person", fmt.Sprintf("peer%d-requests@example.com", i))
		if err := db.Create(&models.Connection{
			RequesterID: peer.ID, RecipientID: alice.ID, Status: models.ConnectionStatusPending,
		}).Error; err != nil {
			t.Fatalf("seed request: %v", err)
		}
	}

	aliceApp := newAuthedApp(s, alice.ID)

	resp, body := doJSON(t, aliceApp, http.MethodGet, "/api/connections/requests?limit=2", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["requests"].([]any)); n != 2 {
		t.Fatalf("expected 2 requests on first page, got %d", n)
	}
	meta := body["pagination"].(map[string]any)
	if int(meta["total"].(float64)) != 5 || int(meta["pages"].(float64)) != 3 {
		t.Fatalf("unexpected pagination meta: %v", meta)
	}

	resp, body = doJSON(t, aliceApp, http.MethodGet, "/api/connections/requests?limit=2&page=3", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["requests"].([]any)); n != 1 {
		t.Fatalf("expected 1 request on last page, got %d", n)
	}

	// A sender sees their own total from the other side
	var first models.Connection
	if err := db.Where("recipient_id = ?", alice.ID).First(&first).Error; err != nil {
		t.Fatalf("load seeded request: %v", err)
	}
	senderApp := newAuthedApp(s, first.RequesterID)
	resp, body = doJSON(t, senderApp, http.MethodGet, "/api/connections/requests/sent?limit=1", nil)
	requireStatus(t, resp, body, http.StatusOK)
	if n := len(body["requests"].([]any)); n != 1 {
		t.Fatalf("expected 1 sent request, got %d", n)
	}
	meta = body["pagination"].(map[string]any)
	if int(meta["total"].(float64)) != 1 {
		t.Fatalf("unexpected sent pagination meta: %v", meta)
	}
}

func TestConnectionStatusEndpoint(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "Alice", "Adler", "alice-status@example.com")
	bob := createTestUser(t, db, "Bob", "Baker", "bob-status@example.com")

	aliceApp := newAuthedApp(s, alice.ID)
	bobApp := newAuthedApp(s, bob.ID)

	resp, body := doJSON(t, aliceApp, http.MethodGet, "/api/connections/status/"+pathID(bob.ID), nil)
	requireStatus(t, resp, body, http.StatusOK)
	if body["status"] != "none" {
		t.Fatalf("expected none, got %v", body["status"])
	}

	resp, body = doJSON(t, aliceApp, http.MethodPost, "/api/connections/requests/"+pathID(bob.ID), nil)
	requireStatus(t, resp, body, http.StatusCreated)

	resp, body = doJSON(t, aliceApp, http.MethodGet, "/api/connections/status/"+pathID(bob.ID), nil)
	requireStatus(t, resp, body, http.StatusOK)
	if body["status"] != "pending_sent" {
		t.Fatalf("expected pending_sent, got %v", body["status"])
	}

	resp, body = doJSON(t, bobApp, http.MethodGet, "/api/connections/status/"+pathID(alice.ID), nil)
	requireStatus(t, resp, body, http.StatusOK)
	if body["status"] != "pending_received" {
		t.Fatalf("expected pending_received, got %v", body["status"])
	}

	// Status against an unknown user is a 404
	resp, body = doJSON(t, aliceApp, http.MethodGet, "/api/connections/status/9999", nil)
	requireStatus(t, resp, body, http.StatusNotFound)
}

func TestProfileListsDerivedFromConnections(t *testing.T) {
	t.Parallel()

	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "Alice", "Adler", "alice-profile@example.com")
	bob := createTestUser(t, db, "Bob", "Baker", "bob-profile@example.com")
	carol := createTestUser(t, db, "Carol", "Chen", "carol-profile@example.com")

	// Bob is connected to Alice; Carol has a pending request to Alice
	if err := db.Create(&models.Connection{
		RequesterID: bob.ID, RecipientID: alice.ID, Status: models.ConnectionStatusAccepted,
	}).Error; err != nil {
		t.Fatalf("seed connection: %v", err)
	}
	if err := db.Create(&models.Connection{
		RequesterID: carol.ID, RecipientID: alice.ID, Status: models.ConnectionStatusPending,
	}).Error; err != nil {
		t.Fatalf("seed pending: %v", err)
	}

	aliceApp := newAuthedApp(s, alice.ID)
	resp, body := doJSON(t, aliceApp, http.MethodGet, "/api/users/me", nil)
	requireStatus(t, resp, body, http.StatusOK)

	user := body["user"].(map[string]any)
	conns := user["connections"].([]any)
	pendings := user["pending_connections"].([]any)
	if len(conns) != 1 || uint(conns[0].(float64)) != bob.ID {
		t.Fatalf("expected connections [%d], got %v", bob.ID, conns)
	}
	if len(pendings) != 1 || uint(pendings[0].(float64)) != carol.ID {
		t.Fatalf("expected pending [%d], got %v", carol.ID, pendings)
	}
}
