// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"medconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumPosts int
	NumJobs  int
	// SkipBcrypt stores a fixed placeholder hash, useful in tests where
	// login is not exercised and bcrypt dominates runtime.
	SkipBcrypt bool
}

var specialties = []string{
	"Cardiology", "Dermatology", "Emergency Medicine", "Family Medicine",
	"Internal Medicine", "Neurology", "Obstetrics", "Oncology",
	"Pediatrics", "Psychiatry", "Radiology", "Surgery",
}

var hospitals = []string{
	"St. Mary's Medical Center", "General Hospital", "University Hospital",
	"Memorial Health", "Riverside Clinic", "Lakeview Medical Center",
}

var jobTitles = []string{
	"Registered Nurse", "Attending Physician", "Physician Assistant",
	"Clinical Researcher", "Medical Director", "Resident Physician",
	"Nurse Practitioner", "Radiology Technician",
}

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds users, a connection mesh, posts with likes and comments, and jobs.
func (s *Seeder) Run() error {
	users, err := s.SeedUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	if err := s.SeedConnections(users); err != nil {
		return fmt.Errorf("seeding connections: %w", err)
	}
	if err := s.SeedPosts(users, s.opts.NumPosts); err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	if err := s.SeedJobs(users, s.opts.NumJobs); err != nil {
		return fmt.Errorf("seeding jobs: %w", err)
	}
	log.Printf("Seeded %d users, %d posts, %d jobs", len(users), s.opts.NumPosts, s.opts.NumJobs)
	return nil
}

// SeedUsers creates n demo medical professionals.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	if n <= 0 {
		n = 20
	}

	password := "$2a$10$seeded.placeholder.hash.not.for.login.use000000000000"
	if !s.opts.SkipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		password = string(hashed)
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     fmt.Sprintf("%s.%d@medconnect.example", gofakeit.Username(), i),
			Password:  password,
			Phone:     gofakeit.Phone(),
			Role:      "doctor",
			Specialty: specialties[s.rand.Intn(len(specialties))],
			Hospital:  hospitals[s.rand.Intn(len(hospitals))],
			Location:  fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Bio:       gofakeit.Sentence(12),
			CreatedAt: s.pastTime(180),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedConnections builds a mesh of accepted and pending connections.
func (s *Seeder) SeedConnections(users []*models.User) error {
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			roll := s.rand.Float64()
			var status models.ConnectionStatus
			switch {
			case roll < 0.25:
				status = models.ConnectionStatusAccepted
			case roll < 0.35:
				status = models.ConnectionStatusPending
			default:
				continue
			}

			conn := &models.Connection{
				RequesterID: users[i].ID,
				RecipientID: users[j].ID,
				Status:      status,
			}
			if err := s.db.Create(conn).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedPosts creates n posts with a spread of visibilities, likes and comments.
func (s *Seeder) SeedPosts(users []*models.User, n int) error {
	if n <= 0 {
		n = 50
	}
	visibilities := []models.PostVisibility{
		models.PostVisibilityPublic,
		models.PostVisibilityPublic,
		models.PostVisibilityConnections,
		models.PostVisibilityPrivate,
	}

	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		post := &models.Post{
			UserID:     author.ID,
			Content:    gofakeit.Paragraph(1, 3, 8, "\n"),
			Visibility: visibilities[s.rand.Intn(len(visibilities))],
			CreatedAt:  s.pastTime(90),
		}
		if s.rand.Float64() < 0.3 {
			post.Images = []string{fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())}
		}
		if err := s.db.Create(post).Error; err != nil {
			return err
		}

		for _, u := range users {
			if u.ID == author.ID {
				continue
			}
			if s.rand.Float64() < 0.2 {
				if err := s.db.Create(&models.Like{UserID: u.ID, PostID: post.ID}).Error; err != nil {
					return err
				}
			}
			if s.rand.Float64() < 0.1 {
				comment := &models.Comment{
					PostID:  post.ID,
					UserID:  u.ID,
					Content: gofakeit.Sentence(10),
				}
				if err := s.db.Create(comment).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// SeedJobs creates n job postings with a few applications each.
func (s *Seeder) SeedJobs(users []*models.User, n int) error {
	if n <= 0 {
		n = 10
	}

	for i := 0; i < n; i++ {
		poster := users[s.rand.Intn(len(users))]
		job := &models.Job{
			Title:       jobTitles[s.rand.Intn(len(jobTitles))],
			Company:     hospitals[s.rand.Intn(len(hospitals))],
			Location:    fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Description: gofakeit.Paragraph(1, 4, 10, "\n"),
			Requirements: []string{
				gofakeit.Sentence(6),
				gofakeit.Sentence(6),
			},
			Type:       models.JobTypes[s.rand.Intn(len(models.JobTypes))],
			Experience: models.JobExperienceLevels[s.rand.Intn(len(models.JobExperienceLevels))],
			Salary: &models.Salary{
				Min:      60000 + s.rand.Intn(40000),
				Max:      120000 + s.rand.Intn(120000),
				Currency: "USD",
			},
			PostedByID: poster.ID,
			Status:     models.JobStatusActive,
			CreatedAt:  s.pastTime(60),
		}
		if err := s.db.Create(job).Error; err != nil {
			return err
		}

		for _, u := range users {
			if u.ID != poster.ID && s.rand.Float64() < 0.15 {
				app := &models.JobApplication{JobID: job.ID, UserID: u.ID}
				if err := s.db.Create(app).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// pastTime returns a timestamp up to maxDays in the past.
func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rand.Intn(maxDays)
	hoursBack := s.rand.Intn(24)
	minsBack := s.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
