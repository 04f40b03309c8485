package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const jobColumns = `id, title, description, category, country, city, location, fixed_salary, salary_from, salary_to, expired, posted_by, created`

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, j.Description, string(j.Category), j.Country, j.City, j.Location,
		nullInt(j.FixedSalary), nullInt(j.SalaryFrom), nullInt(j.SalaryTo), j.Expired, j.PostedBy, millis(j.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	r.logger.Debug("job created", "job_id", j.ID, "posted_by", j.PostedBy)
	return nil
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created DESC, id`)
}

func (r *SQLiteRepo) ListJobsByOwner(ctx context.Context, employerID string) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE posted_by = ? ORDER BY created DESC, id`, employerID)
}

func (r *SQLiteRepo) listJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
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

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, description = ?, category = ?, country = ?, city = ?, location = ?, fixed_salary = ?, salary_from = ?, salary_to = ?, expired = ? WHERE id = ?`,
		j.Title, j.Description, string(j.Category), j.Country, j.City, j.Location,
		nullInt(j.FixedSalary), nullInt(j.SalaryFrom), nullInt(j.SalaryTo), j.Expired, j.ID)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}

	r.logger.Debug("job updated", "job_id", j.ID)
	return nil
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}

	r.logger.Debug("job deleted", "job_id", id)
	return nil
}

func scanJob(s scanner) (*models.Job, error) {
	var (
		j               models.Job
		category        string
		fixed, from, to sql.NullInt64
		created         int64
	)
	if err := s.Scan(&j.ID, &j.Title, &j.Description, &category, &j.Country, &j.City, &j.Location,
		&fixed, &from, &to, &j.Expired, &j.PostedBy, &created); err != nil {
		return nil, err
	}

	j.Category = models.Category(category)
	j.FixedSalary = intPtr(fixed)
	j.SalaryFrom = intPtr(from)
	j.SalaryTo = intPtr(to)
	j.CreatedAt = fromMillis(created)
	return &j, nil
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
