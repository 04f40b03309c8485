package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/internal/repository/postgres"
	"github.com/garnizeh/jobboard/pkg/repository"
	"github.com/google/uuid"
)

// setupRepo connects to JOBBOARD_TEST_POSTGRES_URL, migrates and empties the
// tables. Tests are skipped when the variable is unset.
func setupRepo(t *testing.T) *postgres.PostgresRepo {
	t.Helper()
	url := os.Getenv("JOBBOARD_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("JOBBOARD_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	pool, err := postgres.NewPostgresPool(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := postgres.Migrate(ctx, pool, dbfs.Migrations, dbfs.PostgresDir); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE applications, jobs, users`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return postgres.New(pool, nil)
}

func TestPostgresRepo(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	bob := &models.User{ID: uuid.NewString(), Name: "Bob", Email: "bob@x.com", Phone: "1", PasswordHash: "h", Role: models.RoleEmployer, CreatedAt: now}
	if err := repo.CreateUser(ctx, bob); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	dup := *bob
	dup.ID = uuid.NewString()
	if err := repo.CreateUser(ctx, &dup); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, "bob@x.com")
	if err != nil || got == nil || got.ID != bob.ID || !got.CreatedAt.Equal(now) {
		t.Fatalf("GetUserByEmail = %#v, %v", got, err)
	}
	if missing, err := repo.GetUserByID(ctx, uuid.NewString()); err != nil || missing != nil {
		t.Fatalf("GetUserByID(missing) = %#v, %v", missing, err)
	}

	from, to := int64(1000), int64(2000)
	job := &models.Job{ID: uuid.NewString(), Title: "Engineer", Description: "d", Category: models.CategoryDataEntry,
		Country: "US", City: "NY", Location: "1 Main St", SalaryFrom: &from, SalaryTo: &to, PostedBy: bob.ID, CreatedAt: now}
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	gotJob, err := repo.GetJob(ctx, job.ID)
	if err != nil || gotJob == nil || gotJob.FixedSalary != nil || *gotJob.SalaryTo != 2000 {
		t.Fatalf("GetJob = %#v, %v", gotJob, err)
	}

	fixed := int64(3000)
	gotJob.FixedSalary, gotJob.SalaryFrom, gotJob.SalaryTo = &fixed, nil, nil
	if err := repo.UpdateJob(ctx, gotJob); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	mine, err := repo.ListJobsByOwner(ctx, bob.ID)
	if err != nil || len(mine) != 1 || *mine[0].FixedSalary != 3000 || mine[0].SalaryFrom != nil {
		t.Fatalf("ListJobsByOwner = %#v, %v", mine, err)
	}

	alice := &models.User{ID: uuid.NewString(), Name: "Alice", Email: "alice@x.com", Phone: "2", PasswordHash: "h", Role: models.RoleJobSeeker, CreatedAt: now}
	if err := repo.CreateUser(ctx, alice); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	app := &models.Application{ID: uuid.NewString(), Name: "Alice", Email: "a@x.com", Phone: "5551234", Address: "addr",
		CoverLetter: "hi", JobID: job.ID, ApplicantID: alice.ID, CreatedAt: now}
	if err := repo.CreateApplication(ctx, app); err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}
	if app.EmployerID != bob.ID {
		t.Fatalf("expected employer %s, got %s", bob.ID, app.EmployerID)
	}
	orphan := *app
	orphan.ID = uuid.NewString()
	orphan.JobID = uuid.NewString()
	if err := repo.CreateApplication(ctx, &orphan); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	apps, err := repo.ListByEmployer(ctx, bob.ID)
	if err != nil || len(apps) != 1 {
		t.Fatalf("ListByEmployer = %d, %v; want 1", len(apps), err)
	}
	if err := repo.DeleteApplication(ctx, app.ID); err != nil {
		t.Fatalf("DeleteApplication: %v", err)
	}
	if err := repo.DeleteApplication(ctx, app.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
