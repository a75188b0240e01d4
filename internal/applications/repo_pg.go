package applications

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const recordColumns = `id, user_id, job_id, status, notes, interview_date, interview_time, interview_type, interview_location, applied_date, response_date, created_at, updated_at`

// Create inserts a new application record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO applications (
    id,
    user_id,
    job_id,
    status,
    notes,
    interview_date,
    interview_time,
    interview_type,
    interview_location,
    applied_date,
    response_date,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.JobID,
		string(rec.Status),
		nullString(rec.Notes),
		nullString(rec.InterviewDate),
		nullString(rec.InterviewTime),
		nullString(rec.InterviewType),
		nullString(rec.InterviewLocation),
		nullTime(rec.AppliedDate),
		nullTime(rec.ResponseDate),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// GetByID fetches a record by ID regardless of owner.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	query := `SELECT ` + recordColumns + ` FROM applications WHERE id = $1 LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// FindByUserAndJob returns the user's record for a job, if any.
func (r *PGRepo) FindByUserAndJob(ctx context.Context, userID, jobID string) (Record, error) {
	query := `SELECT ` + recordColumns + ` FROM applications WHERE user_id = $1 AND job_id = $2 LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, userID, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// ListByUser returns a user's records, most recently updated first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM applications WHERE user_id = $1 ORDER BY updated_at DESC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update writes the change set in a single statement. Derived dates use
// COALESCE so a value already stored is never replaced.
func (r *PGRepo) Update(ctx context.Context, id string, ch Changes) (Record, error) {
	var sets []string
	var args []any
	add := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, strings.ReplaceAll(expr, "?", "$"+strconv.Itoa(len(args))))
	}

	if ch.Status != nil {
		add("status = ?", string(*ch.Status))
	}
	if ch.AppliedDate != nil {
		add("applied_date = COALESCE(applied_date, ?)", *ch.AppliedDate)
	}
	if ch.ResponseDate != nil {
		add("response_date = COALESCE(response_date, ?)", *ch.ResponseDate)
	}
	if ch.Notes != nil {
		add("notes = ?", nullString(*ch.Notes))
	}
	if ch.InterviewDate != nil {
		add("interview_date = ?", nullString(*ch.InterviewDate))
	}
	if ch.InterviewTime != nil {
		add("interview_time = ?", nullString(*ch.InterviewTime))
	}
	if ch.InterviewType != nil {
		add("interview_type = ?", nullString(*ch.InterviewType))
	}
	if ch.InterviewLocation != nil {
		add("interview_location = ?", nullString(*ch.InterviewLocation))
	}
	add("updated_at = ?", ch.UpdatedAt)

	args = append(args, id)
	query := `UPDATE applications SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) +
		` RETURNING ` + recordColumns

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// Delete hard-deletes a record.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var status string
	var notes, interviewDate, interviewTime, interviewType, interviewLocation sql.NullString
	var appliedDate, responseDate sql.NullTime
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.JobID,
		&status,
		&notes,
		&interviewDate,
		&interviewTime,
		&interviewType,
		&interviewLocation,
		&appliedDate,
		&responseDate,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return Record{}, err
	}
	rec.Status = Status(status)
	rec.Notes = notes.String
	rec.InterviewDate = interviewDate.String
	rec.InterviewTime = interviewTime.String
	rec.InterviewType = interviewType.String
	rec.InterviewLocation = interviewLocation.String
	if appliedDate.Valid {
		t := appliedDate.Time
		rec.AppliedDate = &t
	}
	if responseDate.Valid {
		t := responseDate.Time
		rec.ResponseDate = &t
	}
	return rec, nil
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
