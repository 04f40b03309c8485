// Package catalog manages job listings on behalf of authenticated users.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/internal/policy"
	"github.com/garnizeh/jobboard/internal/validate"
	"github.com/garnizeh/jobboard/pkg/repository"
	"github.com/google/uuid"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the catalog package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

type Service struct {
	jobs repository.JobRepo
	now  func() time.Time
}

func NewService(jobs repository.JobRepo) *Service {
	return &Service{jobs: jobs, now: time.Now}
}

// NewJob is the input of Create.
type NewJob struct {
	Title       string
	Description string
	Category    string
	Country     string
	City        string
	Location    string
	FixedSalary *int64
	SalaryFrom  *int64
	SalaryTo    *int64
}

// Create stores a job posted by the calling employer.
func (s *Service) Create(ctx context.Context, id policy.Identity, in NewJob) (*models.Job, error) {
	if err := policy.Authorize(id, policy.CreateJob, policy.Resource{}).Err(); err != nil {
		return nil, err
	}

	j := &models.Job{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    models.Category(in.Category),
		Country:     in.Country,
		City:        in.City,
		Location:    in.Location,
		FixedSalary: in.FixedSalary,
		SalaryFrom:  in.SalaryFrom,
		SalaryTo:    in.SalaryTo,
		Expired:     false,
		PostedBy:    id.UserID,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := check(j); err != nil {
		return nil, err
	}

	if err := s.jobs.CreateJob(ctx, j); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	logger.Info("job posted", slog.String("job_id", j.ID), slog.String("employer_id", j.PostedBy))
	return j, nil
}

// List returns every job, newest first.
func (s *Service) List(ctx context.Context, id policy.Identity) ([]models.Job, error) {
	if err := policy.Authorize(id, policy.ReadJobs, policy.Resource{}).Err(); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *Service) Get(ctx context.Context, id policy.Identity, jobID string) (*models.Job, error) {
	if err := policy.Authorize(id, policy.ReadJobs, policy.Resource{}).Err(); err != nil {
		return nil, err
	}

	return s.load(ctx, jobID)
}

// ListByOwner returns the jobs posted by the calling employer.
func (s *Service) ListByOwner(ctx context.Context, id policy.Identity) ([]models.Job, error) {
	if err := policy.Authorize(id, policy.ListOwnJobs, policy.Resource{}).Err(); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListJobsByOwner(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list jobs by owner: %w", err)
	}
	return jobs, nil
}

// Update applies patch to the job. The salary rule is checked against the
// resulting record, so a single patch may switch between fixed and range.
func (s *Service) Update(ctx context.Context, id policy.Identity, jobID string, patch models.JobPatch) (*models.Job, error) {
	j, err := s.owned(ctx, id, policy.UpdateJob, jobID)
	if err != nil {
		return nil, err
	}

	patch.Apply(j)
	if err := check(j); err != nil {
		return nil, err
	}

	if err := s.jobs.UpdateJob(ctx, j); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, fmt.Errorf("update job: %w", err)
	}

	return j, nil
}

// Delete removes the job. Applications that reference it are left in place.
func (s *Service) Delete(ctx context.Context, id policy.Identity, jobID string) error {
	if _, err := s.owned(ctx, id, policy.DeleteJob, jobID); err != nil {
		return err
	}

	if err := s.jobs.DeleteJob(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("job not found")
		}
		return fmt.Errorf("delete job: %w", err)
	}

	logger.Info("job deleted", slog.String("job_id", jobID), slog.String("employer_id", id.UserID))
	return nil
}

// owned loads jobID for an owner-only action. The role is checked before the
// lookup and ownership after it.
func (s *Service) owned(ctx context.Context, id policy.Identity, a policy.Action, jobID string) (*models.Job, error) {
	if err := policy.Authorize(id, a, policy.Resource{OwnerID: id.UserID}).Err(); err != nil {
		return nil, err
	}

	j, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(id, a, policy.Resource{OwnerID: j.PostedBy}).Err(); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) load(ctx context.Context, jobID string) (*models.Job, error) {
	j, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if j == nil {
		return nil, apperr.NotFound("job not found")
	}
	return j, nil
}

func check(j *models.Job) error {
	j.Title = strings.TrimSpace(j.Title)
	j.Description = strings.TrimSpace(j.Description)
	j.Country = strings.TrimSpace(j.Country)
	j.City = strings.TrimSpace(j.City)
	j.Location = strings.TrimSpace(j.Location)

	if err := validate.Struct(j); err != nil {
		return err
	}
	if err := j.CheckSalary(); err != nil {
		return apperr.Validation("%s", err.Error())
	}
	return nil
}
