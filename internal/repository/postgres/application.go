package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/pkg/repository"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, name, email, phone, address, cover_letter, job_id, applicant_id, employer_id, created`

func (r *PostgresRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	var employerID string
	err := r.pool.QueryRow(ctx, `INSERT INTO applications (`+applicationColumns+`)
		SELECT $1::text, $2::text, $3::text, $4::text, $5::text, $6::text, id, $7::text, posted_by, $8::timestamptz FROM jobs WHERE id = $9
		RETURNING employer_id`,
		a.ID, a.Name, a.Email, a.Phone, a.Address, a.CoverLetter, a.ApplicantID, a.CreatedAt, a.JobID).Scan(&employerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("application for missing job", "job_id", a.JobID)
			return repository.ErrNotFound
		}

		return fmt.Errorf("insert application: %w", err)
	}

	a.EmployerID = employerID
	r.logger.Debug("application created", "application_id", a.ID, "job_id", a.JobID, "employer_id", employerID)
	return nil
}

func (r *PostgresRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	a, err := scanApplication(r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (r *PostgresRepo) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY created DESC, id`, applicantID)
}

func (r *PostgresRepo) ListByEmployer(ctx context.Context, employerID string) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+` FROM applications WHERE employer_id = $1 ORDER BY created DESC, id`, employerID)
}

func (r *PostgresRepo) listApplications(ctx context.Context, query string, args ...any) ([]models.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *a)
	}

	return out, rows.Err()
}

func (r *PostgresRepo) DeleteApplication(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if err := expectRow(tag); err != nil {
		return err
	}

	r.logger.Debug("application deleted", "application_id", id)
	return nil
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Address, &a.CoverLetter,
		&a.JobID, &a.ApplicantID, &a.EmployerID, &a.CreatedAt); err != nil {
		return nil, err
	}

	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
