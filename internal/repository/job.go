package repository

import (
	"context"
	"errors"
	"strings"

	"medconnect/internal/cache"
	"medconnect/internal/models"

	"gorm.io/gorm"
)

// JobFilter holds list filters for the job board.
type JobFilter struct {
	Search     string
	Location   string
	Type       string
	Experience string
	Status     string
	Limit      int
	Offset     int
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*models.Job, int64, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uint) error
	Apply(ctx context.Context, application *models.JobApplication) error
	HasApplied(ctx context.Context, jobID, userID uint) (bool, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a new JobRepository implementation.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.applyJobDetails(r.db.WithContext(ctx)).
		Preload("PostedBy").
		First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Job", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]*models.Job, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("jobs.status = ?", filter.Status)
		}
		if filter.Type != "" {
			db = db.Where("jobs.type = ?", filter.Type)
		}
		if filter.Experience != "" {
			db = db.Where("jobs.experience = ?", filter.Experience)
		}
		if filter.Location != "" {
			db = db.Where("LOWER(jobs.location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
		}
		if filter.Search != "" {
			like := "%" + strings.ToLower(filter.Search) + "%"
			db = db.Where("LOWER(jobs.title) LIKE ? OR LOWER(jobs.company) LIKE ? OR LOWER(jobs.description) LIKE ?",
				like, like, like)
		}
		return db
	}

	var total int64
	if err := scope(r.db.WithContext(ctx).Model(&models.Job{})).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var jobs []*models.Job
	if err := scope(r.applyJobDetails(r.db.WithContext(ctx)).Preload("PostedBy")).
		Order("jobs.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&jobs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return jobs, total, nil
}

func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateJob(ctx, job.ID)
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Job{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateJob(ctx, id)
	return nil
}

func (r *jobRepository) Apply(ctx context.Context, application *models.JobApplication) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already applied to this job")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) HasApplied(ctx context.Context, jobID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// applyJobDetails adds the applicant count subquery.
func (r *jobRepository) applyJobDetails(db *gorm.DB) *gorm.DB {
	return db.Select("jobs.*, (SELECT COUNT(*) FROM job_applications WHERE job_applications.job_id = jobs.id) as applicants_count")
}
