package server

import (
	"medconnect/internal/models"
	"medconnect/internal/repository"
	"medconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetJobs handles GET /api/jobs
// Optional query params: page, limit, search, location, type, experience, status.
func (s *Server) GetJobs(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	filter := repository.JobFilter{
		Search:     c.Query("search"),
		Location:   c.Query("location"),
		Type:       c.Query("type"),
		Experience: c.Query("experience"),
		Status:     c.Query("status", string(models.JobStatusActive)),
		Limit:      p.Limit,
		Offset:     p.Offset(),
	}

	jobs, total, err := s.jobService.ListJobs(c.Context(), filter)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"jobs":       jobs,
		"pagination": p.Meta(total),
	})
}

type jobRequest struct {
	Title        string         `json:"title"`
	Company      string         `json:"company"`
	Location     string         `json:"location"`
	Description  string         `json:"description"`
	Requirements []string       `json:"requirements"`
	Type         string         `json:"type"`
	Experience   string         `json:"experience"`
	Salary       *models.Salary `json:"salary"`
}

// CreateJob handles POST /api/jobs
func (s *Server) CreateJob(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.CreateJob(c.Context(), userID, service.CreateJobInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Type:         req.Type,
		Experience:   req.Experience,
		Salary:       req.Salary,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"job": job,
	})
}

// GetJob handles GET /api/jobs/:id
func (s *Server) GetJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	job, err := s.jobService.GetJob(c.Context(), jobID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"job": job,
	})
}

// UpdateJob handles PUT /api/jobs/:id
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	userID := currentUserID(c)
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title        *string        `json:"title"`
		Company      *string        `json:"company"`
		Location     *string        `json:"location"`
		Description  *string        `json:"description"`
		Requirements *[]string      `json:"requirements"`
		Type         *string        `json:"type"`
		Experience   *string        `json:"experience"`
		Salary       *models.Salary `json:"salary"`
		Status       *string        `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.UpdateJob(c.Context(), userID, jobID, service.UpdateJobInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Type:         req.Type,
		Experience:   req.Experience,
		Salary:       req.Salary,
		Status:       req.Status,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"job": job,
	})
}

// DeleteJob handles DELETE /api/jobs/:id
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	userID := currentUserID(c)
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.jobService.DeleteJob(c.Context(), userID, jobID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Job deleted",
	})
}

// ApplyToJob handles POST /api/jobs/:id/apply
func (s *Server) ApplyToJob(c *fiber.Ctx) error {
	userID := currentUserID(c)
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	job, err := s.jobService.Apply(c.Context(), userID, jobID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"job": job,
	})
}
