// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sapcc/jobly/internal/db"
	apierrors "github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/models"
)

var jobColumns = []string{"id", "title", "salary", "equity", "company_handle"}

var jobAliases = map[string]string{
	"companyHandle": "company_handle",
}

// CreateJob inserts a job. Titles are unique and the company must exist.
func (s *Store) CreateJob(ctx context.Context, j *models.Job) (*models.Job, error) {
	var existing int
	err := s.pool.QueryRow(ctx, "SELECT id FROM jobs WHERE title = $1", j.Title).Scan(&existing)
	if err == nil {
		return nil, apierrors.InvalidInput(apierrors.ErrDuplicate, "Duplicate job: %s", j.Title)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	sql, args := db.Insert("jobs").
		Columns("title", "salary", "equity", "company_handle").
		Values(j.Title, j.Salary, j.Equity, j.CompanyHandle).
		Suffix("RETURNING " + strings.Join(jobColumns, ", ")).
		MustSql()

	var job models.Job
	if err := pgxscan.Get(ctx, s.pool, &job, sql, args...); err != nil {
		return nil, jobWriteError(err, j.Title, j.CompanyHandle)
	}
	return &job, nil
}

// FindAllJobs lists jobs ordered by title, narrowed by the optional filter.
func (s *Store) FindAllJobs(ctx context.Context, filter *models.JobFilter) ([]*models.Job, error) {
	sql, args := where(db.Select(jobColumns...).From("jobs"), jobPredicates(filter)).
		OrderBy("title", "id").
		MustSql()

	jobs := make([]*models.Job, 0)
	err := db.Retry(ctx, func(ctx context.Context) error {
		jobs = jobs[:0]
		return pgxscan.Select(ctx, s.pool, &jobs, sql, args...)
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Store) GetJob(ctx context.Context, id int) (*models.Job, error) {
	sql, args := db.Select(jobColumns...).
		From("jobs").
		Where(sq.Eq{"id": id}).
		MustSql()

	var job models.Job
	err := db.Retry(ctx, func(ctx context.Context) error {
		return pgxscan.Get(ctx, s.pool, &job, sql, args...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierrors.NotFound("No job with id: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob applies a partial update to the job with the given id.
func (s *Store) UpdateJob(ctx context.Context, id int, data db.UpdateData) (*models.Job, error) {
	setCols, values, err := db.PartialUpdate(data, jobAliases)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("UPDATE jobs SET %s WHERE id = $%d RETURNING %s",
		setCols, len(values)+1, strings.Join(jobColumns, ", "))

	var job models.Job
	err = pgxscan.Get(ctx, s.pool, &job, sql, append(values, id)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierrors.NotFound("No job with id: %d", id)
	}
	if err != nil {
		return nil, jobWriteError(err, stringField(data, "title"), stringField(data, "companyHandle"))
	}
	return &job, nil
}

func (s *Store) RemoveJob(ctx context.Context, id int) error {
	sql, args := db.Delete("jobs").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id").
		MustSql()

	var deleted int
	err := s.pool.QueryRow(ctx, sql, args...).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return apierrors.NotFound("No job with id: %d", id)
	}
	return err
}

func jobWriteError(err error, title, companyHandle string) error {
	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.Code == pgerrcode.ForeignKeyViolation {
		return apierrors.InvalidInput(err, "No company: %s", companyHandle)
	}
	return translate(err, "Duplicate job: %s", title)
}

func stringField(data db.UpdateData, name string) string {
	for _, f := range data {
		if f.Name == name {
			if v, ok := f.Value.(string); ok {
				return v
			}
		}
	}
	return ""
}
