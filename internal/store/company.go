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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sapcc/jobly/internal/db"
	apierrors "github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/models"
)

var companyColumns = []string{"handle", "name", "description", "num_employees", "logo_url"}

var companyAliases = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// companyNameConstraint is the unique constraint postgres names for companies.name.
const companyNameConstraint = "companies_name_key"

// CreateCompany inserts a company. A handle that already exists is reported as InvalidInput.
func (s *Store) CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	var existing string
	err := s.pool.QueryRow(ctx, "SELECT handle FROM companies WHERE handle = $1", c.Handle).Scan(&existing)
	if err == nil {
		return nil, apierrors.InvalidInput(apierrors.ErrDuplicate, "Duplicate company: %s", c.Handle)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	sql, args := db.Insert("companies").
		Columns(companyColumns...).
		Values(c.Handle, c.Name, c.Description, c.NumEmployees, c.LogoURL).
		Suffix("RETURNING " + strings.Join(companyColumns, ", ")).
		MustSql()

	var company models.Company
	if err := pgxscan.Get(ctx, s.pool, &company, sql, args...); err != nil {
		return nil, companyWriteError(err, c.Handle, c.Name)
	}
	return &company, nil
}

// FindAllCompanies lists companies ordered by name, narrowed by the optional filter.
func (s *Store) FindAllCompanies(ctx context.Context, filter *models.CompanyFilter) ([]*models.Company, error) {
	preds, err := companyPredicates(filter)
	if err != nil {
		return nil, err
	}

	sql, args := where(db.Select(companyColumns...).From("companies"), preds).
		OrderBy("name").
		MustSql()

	companies := make([]*models.Company, 0)
	err = db.Retry(ctx, func(ctx context.Context) error {
		companies = companies[:0]
		return pgxscan.Select(ctx, s.pool, &companies, sql, args...)
	})
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// GetCompany returns a company together with its jobs.
func (s *Store) GetCompany(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	sql, args := db.Select(companyColumns...).
		From("companies").
		Where(sq.Eq{"handle": handle}).
		MustSql()

	var detail models.CompanyDetail
	err := db.Retry(ctx, func(ctx context.Context) error {
		return pgxscan.Get(ctx, s.pool, &detail.Company, sql, args...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierrors.NotFound("No company: %s", handle)
	}
	if err != nil {
		return nil, err
	}

	sql, args = db.Select(jobColumns...).
		From("jobs").
		Where(sq.Eq{"company_handle": handle}).
		OrderBy("id").
		MustSql()

	detail.Jobs = make([]*models.Job, 0)
	err = db.Retry(ctx, func(ctx context.Context) error {
		detail.Jobs = detail.Jobs[:0]
		return pgxscan.Select(ctx, s.pool, &detail.Jobs, sql, args...)
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateCompany applies a partial update. The handle itself cannot be changed here.
func (s *Store) UpdateCompany(ctx context.Context, handle string, data db.UpdateData) (*models.Company, error) {
	setCols, values, err := db.PartialUpdate(data, companyAliases)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("UPDATE companies SET %s WHERE handle = $%d RETURNING %s",
		setCols, len(values)+1, strings.Join(companyColumns, ", "))

	var company models.Company
	err = pgxscan.Get(ctx, s.pool, &company, sql, append(values, handle)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierrors.NotFound("No company: %s", handle)
	}
	if err != nil {
		return nil, companyWriteError(err, handle, stringField(data, "name"))
	}
	return &company, nil
}

// RemoveCompany deletes a company. Its jobs go with it.
func (s *Store) RemoveCompany(ctx context.Context, handle string) error {
	sql, args := db.Delete("companies").
		Where(sq.Eq{"handle": handle}).
		Suffix("RETURNING handle").
		MustSql()

	var deleted string
	err := s.pool.QueryRow(ctx, sql, args...).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return apierrors.NotFound("No company: %s", handle)
	}
	return err
}

// companyWriteError reports a unique violation against the field whose constraint was hit.
func companyWriteError(err error, handle, name string) error {
	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.ConstraintName == companyNameConstraint {
		return translate(err, "Duplicate company name: %s", name)
	}
	return translate(err, "Duplicate company: %s", handle)
}
