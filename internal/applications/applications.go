// Package applications handles job seekers applying to jobs and both parties
// reviewing the applications that concern them.
package applications

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

// SetLogger installs a logger for the applications package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

type Service struct {
	apps repository.ApplicationRepo
	now  func() time.Time
}

func NewService(apps repository.ApplicationRepo) *Service {
	return &Service{apps: apps, now: time.Now}
}

// NewApplication is the input of Submit.
type NewApplication struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	CoverLetter string
	JobID       string
}

// Submit files an application from the calling job seeker. The employer id is
// taken from the job when the application is stored.
func (s *Service) Submit(ctx context.Context, id policy.Identity, in NewApplication) (*models.Application, error) {
	if err := policy.Authorize(id, policy.SubmitApplication, policy.Resource{OwnerID: id.UserID}).Err(); err != nil {
		return nil, err
	}

	a := &models.Application{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		JobID:       strings.TrimSpace(in.JobID),
		ApplicantID: id.UserID,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := validate.Struct(a); err != nil {
		return nil, err
	}

	if err := s.apps.CreateApplication(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	logger.Info("application submitted",
		slog.String("application_id", a.ID),
		slog.String("job_id", a.JobID),
		slog.String("employer_id", a.EmployerID),
	)
	return a, nil
}

// ListForJobSeeker returns the applications the calling job seeker submitted.
func (s *Service) ListForJobSeeker(ctx context.Context, id policy.Identity) ([]models.Application, error) {
	if err := policy.Authorize(id, policy.ListSeekerApplications, policy.Resource{}).Err(); err != nil {
		return nil, err
	}

	apps, err := s.apps.ListByApplicant(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list applications by applicant: %w", err)
	}
	return apps, nil
}

// ListForEmployer returns the applications sent to the calling employer's jobs.
func (s *Service) ListForEmployer(ctx context.Context, id policy.Identity) ([]models.Application, error) {
	if err := policy.Authorize(id, policy.ListEmployerApplications, policy.Resource{}).Err(); err != nil {
		return nil, err
	}

	apps, err := s.apps.ListByEmployer(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list applications by employer: %w", err)
	}
	return apps, nil
}

// Delete withdraws an application. Only the applicant who filed it may do so.
func (s *Service) Delete(ctx context.Context, id policy.Identity, appID string) error {
	if err := policy.Authorize(id, policy.DeleteApplication, policy.Resource{OwnerID: id.UserID}).Err(); err != nil {
		return err
	}

	a, err := s.apps.GetApplication(ctx, appID)
	if err != nil {
		return fmt.Errorf("get application: %w", err)
	}
	if a == nil {
		return apperr.NotFound("application not found")
	}
	if err := policy.Authorize(id, policy.DeleteApplication, policy.Resource{OwnerID: a.ApplicantID}).Err(); err != nil {
		return err
	}

	if err := s.apps.DeleteApplication(ctx, appID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("application not found")
		}
		return fmt.Errorf("delete application: %w", err)
	}

	logger.Info("application deleted", slog.String("application_id", appID))
	return nil
}
