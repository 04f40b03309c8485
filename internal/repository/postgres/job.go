package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/garnizeh/jobboard/internal/models"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, description, category, country, city, location, fixed_salary, salary_from, salary_to, expired, posted_by, created`

func (r *PostgresRepo) CreateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		j.ID, j.Title, j.Description, string(j.Category), j.Country, j.City, j.Location,
		j.FixedSalary, j.SalaryFrom, j.SalaryTo, j.Expired, j.PostedBy, j.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	r.logger.Debug("job created", "job_id", j.ID, "posted_by", j.PostedBy)
	return nil
}

func (r *PostgresRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func (r *PostgresRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created DESC, id`)
}

func (r *PostgresRepo) ListJobsByOwner(ctx context.Context, employerID string) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE posted_by = $1 ORDER BY created DESC, id`, employerID)
}

func (r *PostgresRepo) listJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *j)
	}

	return out, rows.Err()
}

func (r *PostgresRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	tag, err := r.pool.Exec(ctx, `UPDATE jobs SET title = $1, description = $2, category = $3, country = $4, city = $5, location = $6, fixed_salary = $7, salary_from = $8, salary_to = $9, expired = $10 WHERE id = $11`,
		j.Title, j.Description, string(j.Category), j.Country, j.City, j.Location,
		j.FixedSalary, j.SalaryFrom, j.SalaryTo, j.Expired, j.ID)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if err := expectRow(tag); err != nil {
		return err
	}

	r.logger.Debug("job updated", "job_id", j.ID)
	return nil
}

func (r *PostgresRepo) DeleteJob(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if err := expectRow(tag); err != nil {
		return err
	}

	r.logger.Debug("job deleted", "job_id", id)
	return nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var (
		j        models.Job
		category string
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &category, &j.Country, &j.City, &j.Location,
		&j.FixedSalary, &j.SalaryFrom, &j.SalaryTo, &j.Expired, &j.PostedBy, &j.CreatedAt); err != nil {
		return nil, err
	}

	j.Category = models.Category(category)
	j.CreatedAt = j.CreatedAt.UTC()
	return &j, nil
}
