package service

import (
	"context"
	"strings"

	"medconnect/internal/models"
	"medconnect/internal/repository"
	"medconnect/internal/validation"
)

// JobService provides job board business logic.
type JobService struct {
	jobRepo repository.JobRepository
}

// NewJobService returns a new JobService.
func NewJobService(jobRepo repository.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// CreateJobInput carries fields for a new job posting.
type CreateJobInput struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements []string
	Type         string
	Experience   string
	Salary       *models.Salary
}

func validJobType(t string) bool {
	for _, v := range models.JobTypes {
		if v == t {
			return true
		}
	}
	return false
}

func validExperience(e string) bool {
	for _, v := range models.JobExperienceLevels {
		if v == e {
			return true
		}
	}
	return false
}

// CreateJob creates a job posting owned by the user.
func (s *JobService) CreateJob(ctx context.Context, userID uint, input CreateJobInput) (*models.Job, error) {
	title := strings.TrimSpace(input.Title)
	company := strings.TrimSpace(input.Company)
	location := strings.TrimSpace(input.Location)
	description := strings.TrimSpace(validation.SanitizeHTML(input.Description))

	if title == "" || company == "" || location == "" || description == "" {
		return nil, models.NewValidationError("Title, company, location and description are required")
	}
	if input.Type != "" && !validJobType(input.Type) {
		return nil, models.NewValidationError("Invalid job type")
	}
	if input.Experience != "" && !validExperience(input.Experience) {
		return nil, models.NewValidationError("Invalid experience level")
	}

	job := &models.Job{
		Title:        title,
		Company:      company,
		Location:     location,
		Description:  description,
		Requirements: input.Requirements,
		Type:         input.Type,
		Experience:   input.Experience,
		Salary:       input.Salary,
		PostedByID:   userID,
		Status:       models.JobStatusActive,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, job.ID)
}

// GetJob returns a single job posting.
func (s *JobService) GetJob(ctx context.Context, jobID uint) (*models.Job, error) {
	return s.jobRepo.GetByID(ctx, jobID)
}

// ListJobs returns a filtered page of job postings with the total count.
func (s *JobService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]*models.Job, int64, error) {
	if filter.Status != "" &&
		filter.Status != string(models.JobStatusActive) &&
		filter.Status != string(models.JobStatusClosed) {
		return nil, 0, models.NewValidationError("Invalid job status")
	}
	if filter.Type != "" && !validJobType(filter.Type) {
		return nil, 0, models.NewValidationError("Invalid job type")
	}
	if filter.Experience != "" && !validExperience(filter.Experience) {
		return nil, 0, models.NewValidationError("Invalid experience level")
	}
	return s.jobRepo.List(ctx, filter)
}

// UpdateJobInput carries updatable job fields. Nil means unchanged.
type UpdateJobInput struct {
	Title        *string
	Company      *string
	Location     *string
	Description  *string
	Requirements *[]string
	Type         *string
	Experience   *string
	Salary       *models.Salary
	Status       *string
}

// UpdateJob updates a job posting. Only the poster may update it.
func (s *JobService) UpdateJob(ctx context.Context, userID, jobID uint, input UpdateJobInput) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedByID != userID {
		return nil, models.NewForbiddenError("You can only edit your own job postings")
	}

	if input.Title != nil {
		job.Title = strings.TrimSpace(*input.Title)
	}
	if input.Company != nil {
		job.Company = strings.TrimSpace(*input.Company)
	}
	if input.Location != nil {
		job.Location = strings.TrimSpace(*input.Location)
	}
	if input.Description != nil {
		job.Description = strings.TrimSpace(validation.SanitizeHTML(*input.Description))
	}
	if input.Requirements != nil {
		job.Requirements = *input.Requirements
	}
	if input.Type != nil {
		if !validJobType(*input.Type) {
			return nil, models.NewValidationError("Invalid job type")
		}
		job.Type = *input.Type
	}
	if input.Experience != nil {
		if !validExperience(*input.Experience) {
			return nil, models.NewValidationError("Invalid experience level")
		}
		job.Experience = *input.Experience
	}
	if input.Salary != nil {
		job.Salary = input.Salary
	}
	if input.Status != nil {
		status := models.JobStatus(*input.Status)
		if status != models.JobStatusActive && status != models.JobStatusClosed {
			return nil, models.NewValidationError("Invalid job status")
		}
		job.Status = status
	}

	if job.Title == "" || job.Company == "" || job.Location == "" || job.Description == "" {
		return nil, models.NewValidationError("Title, company, location and description are required")
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, jobID)
}

// DeleteJob deletes a job posting. Only the poster may delete it.
func (s *JobService) DeleteJob(ctx context.Context, userID, jobID uint) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.PostedByID != userID {
		return models.NewForbiddenError("You can only delete your own job postings")
	}
	return s.jobRepo.Delete(ctx, jobID)
}

// Apply records the user's application to an active job.
func (s *JobService) Apply(ctx context.Context, userID, jobID uint) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusActive {
		return nil, models.NewConflictError("Job posting is closed")
	}
	if job.PostedByID == userID {
		return nil, models.NewValidationError("Cannot apply to your own job posting")
	}

	application := &models.JobApplication{JobID: jobID, UserID: userID}
	if err := s.jobRepo.Apply(ctx, application); err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, jobID)
}
