// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcc/jobly/internal/db"
	apierrors "github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/models"
)

const (
	jobSelect = "SELECT id, title, salary, equity, company_handle FROM jobs"
	jobInsert = "INSERT INTO jobs (title,salary,equity,company_handle) VALUES ($1,$2,$3,$4) " +
		"RETURNING id, title, salary, equity, company_handle"
)

func jobRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "title", "salary", "equity", "company_handle"})
}

func TestCreateJob(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery("SELECT id FROM jobs WHERE title = $1").
		WithArgs("newest job").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	dbMock.ExpectQuery(jobInsert).
		WithArgs("newest job", ptr(100), ptr("0.1"), "c1").
		WillReturnRows(jobRows().AddRow(4, "newest job", ptr(100), ptr("0.1"), "c1"))

	job, err := New(dbMock).CreateJob(context.Background(), &models.Job{
		Title:         "newest job",
		Salary:        ptr(100),
		Equity:        ptr("0.1"),
		CompanyHandle: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, job.ID)
	assert.Equal(t, "c1", job.CompanyHandle)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateJobDuplicate(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery("SELECT id FROM jobs WHERE title = $1").
		WithArgs("tester1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))

	_, err := New(dbMock).CreateJob(context.Background(), &models.Job{Title: "tester1", CompanyHandle: "c1"})
	assert.True(t, apierrors.IsInvalidInput(err))
	assert.EqualError(t, err, "Duplicate job: tester1")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateJobUnknownCompany(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery("SELECT id FROM jobs WHERE title = $1").
		WithArgs("orphan").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	dbMock.ExpectQuery(jobInsert).
		WithArgs("orphan", (*int)(nil), (*string)(nil), "nope").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	_, err := New(dbMock).CreateJob(context.Background(), &models.Job{Title: "orphan", CompanyHandle: "nope"})
	assert.True(t, apierrors.IsInvalidInput(err))
	assert.EqualError(t, err, "No company: nope")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestFindAllJobsFilter(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery(jobSelect+
		" WHERE UPPER(title) LIKE UPPER($1) AND salary >= $2 AND equity > 0 ORDER BY title, id").
		WithArgs("%test%", 50).
		WillReturnRows(jobRows().AddRow(1, "tester1", ptr(100), ptr("0.1"), "c1"))

	jobs, err := New(dbMock).FindAllJobs(context.Background(), &models.JobFilter{
		HasEquity: ptr(true),
		MinSalary: ptr(50),
		Title:     ptr("test"),
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 100, *jobs[0].Salary)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestFindAllJobsNoEquityFilter(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery(jobSelect + " ORDER BY title, id").
		WillReturnRows(jobRows().
			AddRow(1, "tester1", ptr(100), ptr("0.1"), "c1").
			AddRow(2, "tester2", (*int)(nil), (*string)(nil), "c2"))

	jobs, err := New(dbMock).FindAllJobs(context.Background(), &models.JobFilter{HasEquity: ptr(false)})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Nil(t, jobs[1].Equity)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGetJobNotFound(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery(jobSelect + " WHERE id = $1").
		WithArgs(100).
		WillReturnRows(jobRows())

	_, err := New(dbMock).GetJob(context.Background(), 100)
	assert.True(t, apierrors.IsNotFound(err))
	assert.EqualError(t, err, "No job with id: 100")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateJob(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery(`UPDATE jobs SET "salary"=$1, "company_handle"=$2 WHERE id = $3 ` +
		"RETURNING id, title, salary, equity, company_handle").
		WithArgs(int64(0), "c2", 1).
		WillReturnRows(jobRows().AddRow(1, "tester1", ptr(0), ptr("0.1"), "c2"))

	data := db.UpdateData{{Name: "salary", Value: int64(0)}, {Name: "companyHandle", Value: "c2"}}
	job, err := New(dbMock).UpdateJob(context.Background(), 1, data)
	require.NoError(t, err)
	assert.Equal(t, 0, *job.Salary)
	assert.Equal(t, "c2", job.CompanyHandle)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateJobDuplicateTitle(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery(`UPDATE jobs SET "title"=$1 WHERE id = $2 ` +
		"RETURNING id, title, salary, equity, company_handle").
		WithArgs("tester2", 1).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := New(dbMock).UpdateJob(context.Background(), 1, db.UpdateData{{Name: "title", Value: "tester2"}})
	assert.True(t, apierrors.IsInvalidInput(err))
	assert.EqualError(t, err, "Duplicate job: tester2")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRemoveJob(t *testing.T) {
	dbMock := newMock(t)
	dbMock.ExpectQuery("DELETE FROM jobs WHERE id = $1 RETURNING id").
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	dbMock.ExpectQuery("DELETE FROM jobs WHERE id = $1 RETURNING id").
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	s := New(dbMock)
	assert.NoError(t, s.RemoveJob(context.Background(), 1))
	assert.True(t, apierrors.IsNotFound(s.RemoveJob(context.Background(), 1)))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
