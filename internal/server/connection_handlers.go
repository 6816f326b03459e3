package server

import (
	"medconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetConnections handles GET /api/connections
// Optional query params: page, limit.
func (s *Server) GetConnections(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c, 20)

	users, total, err := s.connectionService.GetConnections(c.Context(), userID, p.Limit, p.Offset())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"connections": users,
		"pagination":  p.Meta(total),
	})
}

// SendConnectionRequest handles POST /api/connections/requests/:userId
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	conn, err := s.connectionService.SendRequest(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"request": conn,
	})
}

// GetPendingRequests handles GET /api/connections/requests
// Optional query params: page, limit.
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c, 20)

	requests, total, err := s.connectionService.GetPendingRequests(c.Context(), userID, p.Limit, p.Offset())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"requests":   requests,
		"pagination": p.Meta(total),
	})
}

// GetSentRequests handles GET /api/connections/requests/sent
// Optional query params: page, limit.
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c, 20)

	requests, total, err := s.connectionService.GetSentRequests(c.Context(), userID, p.Limit, p.Offset())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"requests":   requests,
		"pagination": p.Meta(total),
	})
}

// AcceptConnectionRequest handles POST /api/connections/requests/:requestId/accept
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	conn, err := s.connectionService.Respond(c.Context(), userID, requestID, true)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"request": conn,
	})
}

// RejectConnectionRequest handles POST /api/connections/requests/:requestId/reject
func (s *Server) RejectConnectionRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	conn, err := s.connectionService.Respond(c.Context(), userID, requestID, false)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"request": conn,
	})
}

// GetConnectionStatus handles GET /api/connections/status/:userId
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	status, requestID, err := s.connectionService.Status(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	resp := fiber.Map{
		"status": status,
	}
	if requestID != 0 {
		resp["requestId"] = requestID
	}
	return c.JSON(resp)
}

// RemoveConnection handles DELETE /api/connections/:userId
func (s *Server) RemoveConnection(c *fiber.Ctx) error {
	userID := currentUserID(c)
	peerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.connectionService.Remove(c.Context(), userID, peerID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Connection removed",
	})
}
