// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tidwall/gjson"

	apierrors "github.com/sapcc/jobly/internal/errors"
)

var ErrNotAnObject = errors.New("request body must be a JSON object")

// Field is one column assignment of a partial update.
type Field struct {
	Name  string
	Value any
}

// UpdateData is an ordered list of assignments; the slice order is the order
// in which SET fragments and their parameters are emitted.
type UpdateData []Field

func (u UpdateData) Names() []string {
	names := make([]string, 0, len(u))
	for _, f := range u {
		names = append(names, f.Name)
	}
	return names
}

// PartialUpdate renders the SET clause of an UPDATE statement for data.
//
// Each field becomes "column"=$N where column is aliases[name] if present and
// the field name otherwise, and N counts from 1 in slice order. values holds
// the field values in the same order, so a caller can bind its own WHERE
// parameter as $len(values)+1.
//
//	PartialUpdate(UpdateData{{"firstName", "John"}, {"age", 30}}, map[string]string{"firstName": "first_name"})
//	// => `"first_name"=$1, "age"=$2`, []any{"John", 30}
//
// An empty data set is rejected with an InvalidInput error wrapping ErrNoData.
func PartialUpdate(data UpdateData, aliases map[string]string) (setClause string, values []any, err error) {
	if len(data) == 0 {
		return "", nil, apierrors.InvalidInput(apierrors.ErrNoData, "")
	}

	cols := make([]string, 0, len(data))
	values = make([]any, 0, len(data))
	for i, field := range data {
		column, ok := aliases[field.Name]
		if !ok {
			column = field.Name
		}
		cols = append(cols, fmt.Sprintf("%s=$%d", pgx.Identifier{column}.Sanitize(), i+1))
		values = append(values, field.Value)
	}

	return strings.Join(cols, ", "), values, nil
}

// FieldsFromMap converts m into UpdateData ordered by key.
func FieldsFromMap(m map[string]any) UpdateData {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	data := make(UpdateData, 0, len(keys))
	for _, k := range keys {
		data = append(data, Field{Name: k, Value: m[k]})
	}
	return data
}

// FieldsFromJSON converts a JSON object into UpdateData, keeping the key order of the document.
// A repeated key keeps the position of its first occurrence and the value of its last.
func FieldsFromJSON(body []byte) (UpdateData, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.InvalidInput(ErrNotAnObject, "")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, apierrors.InvalidInput(ErrNotAnObject, "")
	}

	data := make(UpdateData, 0)
	seen := make(map[string]int)
	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if i, ok := seen[name]; ok {
			data[i].Value = jsonValue(value)
			return true
		}
		seen[name] = len(data)
		data = append(data, Field{Name: name, Value: jsonValue(value)})
		return true
	})
	return data, nil
}

func jsonValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return i
		}
		return r.Float()
	case gjson.String:
		return r.String()
	default:
		return r.Raw
	}
}
