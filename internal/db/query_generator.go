// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Statement builders with postgres placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Select(columns ...string) sq.SelectBuilder {
	return psql.Select(columns...)
}

func Insert(into string) sq.InsertBuilder {
	return psql.Insert(into)
}

func Delete(from string) sq.DeleteBuilder {
	return psql.Delete(from)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains returns a LIKE pattern matching s as a literal substring.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// ILike is a case-insensitive substring predicate on column, equivalent to
// UPPER(column) LIKE UPPER('%value%') with value bound as a parameter.
func ILike(column, value string) sq.Sqlizer {
	return sq.Expr("UPPER("+column+") LIKE UPPER(?)", Contains(value))
}
