package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/jobboard/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return (nil, nil) when the record does not exist. Mutations of a
// missing record return ErrNotFound.

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	ListJobsByOwner(ctx context.Context, employerID string) ([]models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id string) error
}

type ApplicationRepo interface {
	// CreateApplication stores a only if a.JobID names an existing job, and
	// sets a.EmployerID from that job in the same statement. It returns
	// ErrNotFound when the job is absent.
	CreateApplication(ctx context.Context, a *models.Application) error
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error)
	ListByEmployer(ctx context.Context, employerID string) ([]models.Application, error)
	DeleteApplication(ctx context.Context, id string) error
}

// Store bundles every repository a storage driver provides.
type Store interface {
	UserRepo
	JobRepo
	ApplicationRepo
	Ping(ctx context.Context) error
	Close() error
}
