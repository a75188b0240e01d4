package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, title, company, location, salary, job_type, experience, skills, description, posted_by, created_at, updated_at`

// Create inserts a new job posting.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (
    id,
    title,
    company,
    location,
    salary,
    job_type,
    experience,
    skills,
    description,
    posted_by,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	skills, err := encodeSkills(job.Skills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Company,
		job.Location,
		job.Salary,
		job.Type,
		job.Experience,
		skills,
		job.Description,
		job.PostedBy,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID fetches a job by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// ListByIDs returns the jobs that exist among jobIDs.
func (r *PGRepo) ListByIDs(ctx context.Context, jobIDs []string) ([]Job, error) {
	if len(jobIDs) == 0 {
		return []Job{}, nil
	}
	placeholders := make([]string, 0, len(jobIDs))
	args := make([]any, 0, len(jobIDs))
	for i, id := range jobIDs {
		placeholders = append(placeholders, "$"+strconv.Itoa(i+1))
		args = append(args, id)
	}
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// List returns matching jobs newest first.
func (r *PGRepo) List(ctx context.Context, filter Filter, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var where []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.PostedBy != "" {
		where = append(where, "posted_by = "+next(filter.PostedBy))
	}
	if filter.Type != "" {
		where = append(where, "LOWER(job_type) = LOWER("+next(filter.Type)+")")
	}
	if filter.Location != "" {
		where = append(where, "location ILIKE "+next("%"+filter.Location+"%"))
	}
	if filter.Search != "" {
		p := next("%" + filter.Search + "%")
		where = append(where, "(title ILIKE "+p+" OR company ILIKE "+p+" OR description ILIKE "+p+")")
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id ASC LIMIT ` + next(limit) + ` OFFSET ` + next(offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// Update overwrites the editable fields of a job.
func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs
SET title = $1, company = $2, location = $3, salary = $4, job_type = $5,
    experience = $6, skills = $7, description = $8, updated_at = $9
WHERE id = $10`

	skills, err := encodeSkills(job.Skills)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(
		ctx,
		query,
		job.Title,
		job.Company,
		job.Location,
		job.Salary,
		job.Type,
		job.Experience,
		skills,
		job.Description,
		job.UpdatedAt,
		job.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a job posting.
func (r *PGRepo) Delete(ctx context.Context, jobID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var location, salary, jobType, experience, description sql.NullString
	var skills []byte
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&location,
		&salary,
		&jobType,
		&experience,
		&skills,
		&description,
		&job.PostedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return Job{}, err
	}
	job.Location = location.String
	job.Salary = salary.String
	job.Type = jobType.String
	job.Experience = experience.String
	job.Description = description.String
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &job.Skills); err != nil {
			return Job{}, fmt.Errorf("decode skills for job %s: %w", job.ID, err)
		}
	}
	return job, nil
}

func collectJobs(rows *sql.Rows) ([]Job, error) {
	out := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func encodeSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}
	return raw, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
