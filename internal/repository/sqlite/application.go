package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const applicationColumns = `id, name, email, phone, address, cover_letter, job_id, applicant_id, employer_id, created`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	// the job lookup and the insert are one statement, so a job deleted
	// concurrently either fully precedes or fully follows the write
	row := r.conn.QueryRow(ctx, `INSERT INTO applications (`+applicationColumns+`)
		SELECT ?, ?, ?, ?, ?, ?, id, ?, posted_by, ? FROM jobs WHERE id = ?
		RETURNING employer_id`,
		a.ID, a.Name, a.Email, a.Phone, a.Address, a.CoverLetter, a.ApplicantID, millis(a.CreatedAt), a.JobID)

	var employerID string
	if err := row.Scan(&employerID); err != nil {
		if err == sql.ErrNoRows {
			r.logger.Debug("application for missing job", "job_id", a.JobID)
			return repository.ErrNotFound
		}

		return fmt.Errorf("insert application: %w", err)
	}

	a.EmployerID = employerID
	r.logger.Debug("application created", "application_id", a.ID, "job_id", a.JobID, "employer_id", employerID)
	return nil
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	a, err := scanApplication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_id = ? ORDER BY created DESC, id`, applicantID)
}

func (r *SQLiteRepo) ListByEmployer(ctx context.Context, employerID string) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+` FROM applications WHERE employer_id = ? ORDER BY created DESC, id`, employerID)
}

func (r *SQLiteRepo) listApplications(ctx context.Context, query string, args ...any) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
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

func (r *SQLiteRepo) DeleteApplication(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}

	r.logger.Debug("application deleted", "application_id", id)
	return nil
}

func scanApplication(s scanner) (*models.Application, error) {
	var (
		a       models.Application
		created int64
	)
	if err := s.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Address, &a.CoverLetter,
		&a.JobID, &a.ApplicantID, &a.EmployerID, &created); err != nil {
		return nil, err
	}

	a.CreatedAt = fromMillis(created)
	return &a, nil
}
