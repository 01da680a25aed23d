// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/sapcc/jobly/internal/db"
	apierrors "github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/models"
)

// companyPredicates returns the WHERE predicates for f in the order
// name, minEmployees, maxEmployees. A nil or empty filter yields none.
func companyPredicates(f *models.CompanyFilter) ([]sq.Sqlizer, error) {
	if f == nil {
		return nil, nil
	}
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return nil, apierrors.InvalidInput(apierrors.ErrInvalidBounds,
			"minEmployees parameter cannot be greater than maxEmployees parameter")
	}

	var preds []sq.Sqlizer
	if f.Name != nil {
		preds = append(preds, db.ILike("name", *f.Name))
	}
	if f.MinEmployees != nil {
		preds = append(preds, sq.GtOrEq{"num_employees": *f.MinEmployees})
	}
	if f.MaxEmployees != nil {
		preds = append(preds, sq.LtOrEq{"num_employees": *f.MaxEmployees})
	}
	return preds, nil
}

// jobPredicates returns the WHERE predicates for f in the order title,
// minSalary, hasEquity. hasEquity only filters when it is true.
func jobPredicates(f *models.JobFilter) []sq.Sqlizer {
	if f == nil {
		return nil
	}

	var preds []sq.Sqlizer
	if f.Title != nil {
		preds = append(preds, db.ILike("title", *f.Title))
	}
	if f.MinSalary != nil {
		preds = append(preds, sq.GtOrEq{"salary": *f.MinSalary})
	}
	if f.HasEquity != nil && *f.HasEquity {
		preds = append(preds, sq.Expr("equity > 0"))
	}
	return preds
}

func where(q sq.SelectBuilder, preds []sq.Sqlizer) sq.SelectBuilder {
	for _, pred := range preds {
		q = q.Where(pred)
	}
	return q
}
