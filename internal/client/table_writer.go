// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sapcc/jobly/internal"
)

func formatValue(v reflect.Value) string {
	switch kind := v.Kind(); kind {
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Ptr:
		if v.IsNil() {
			return "Null"
		}
		return formatValue(v.Elem())
	default:
		return fmt.Sprintf("%v", v)
	}
}

func getRow(row reflect.Value, iMap [][]int) table.Row {
	if row.Kind() == reflect.Ptr {
		row = row.Elem()
	}

	r := make(table.Row, 0, len(iMap))
	for _, index := range iMap {
		r = append(r, formatValue(row.FieldByIndex(index)))
	}
	return r
}

// scalar reports whether a field is printed as a table cell, nested lists are skipped.
func scalar(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() != reflect.Slice && t.Kind() != reflect.Struct && t.Kind() != reflect.Map
}

func addSortedHeader(tw table.Writer, v reflect.Value) ([][]int, error) {
	type indexMap struct {
		Header string
		Index  []int
	}

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	header := make(table.Row, 0)
	var indexes [][]int
	if len(opts.Formatters.Columns) > 0 {
		columns := internal.Unique(opts.Formatters.Columns)
		for column, index := range Mapper.TraversalsByName(v.Type(), columns) {
			if len(index) == 0 {
				return nil, fmt.Errorf("column '%s' is not a valid column filter", columns[column])
			}
			header = append(header, columns[column])
			indexes = append(indexes, index)
		}
	} else {
		var columns []indexMap
		tm := Mapper.TypeMap(v.Type())
		for _, fi := range tm.Index {
			if fi.Embedded || fi.Path == "" || !scalar(fi.Field.Type) {
				continue
			}
			columns = append(columns, indexMap{fi.Path, fi.Index})
		}

		// id and handle first, then declaration order
		rank := func(h string) int {
			switch h {
			case "id":
				return 0
			case "handle":
				return 1
			default:
				return 2
			}
		}
		sort.SliceStable(columns, func(i, j int) bool {
			return rank(columns[i].Header) < rank(columns[j].Header)
		})

		for _, c := range columns {
			header = append(header, c.Header)
			indexes = append(indexes, c.Index)
		}
	}

	if opts.Formatters.Format != "value" {
		tw.AppendHeader(header)
	}
	return indexes, nil
}

func appendStruct(tw table.Writer, v reflect.Value) {
	type field struct {
		key   string
		value string
	}
	var rows []field
	for key, fv := range Mapper.FieldMap(v) {
		if !scalar(fv.Type()) {
			continue
		}
		if len(opts.Formatters.Columns) == 0 {
			rows = append(rows, field{key, formatValue(fv)})
			continue
		}
		for _, column := range internal.Unique(opts.Formatters.Columns) {
			if column == key {
				rows = append(rows, field{key, formatValue(fv)})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })

	if opts.Formatters.Format != "value" {
		tw.AppendHeader(table.Row{"Field", "Value"})
	}
	for _, r := range rows {
		tw.AppendRow(table.Row{r.key, r.value})
	}
}

// WriteTable renders a struct or a slice of structs to Output.
func WriteTable(data any) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(Output)

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch {
	case v.Kind() == reflect.Slice && v.Len() > 0:
		indexMap, err := addSortedHeader(tw, v.Index(0))
		if err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			tw.AppendRow(getRow(v.Index(i), indexMap))
		}
	case v.Kind() == reflect.Struct:
		appendStruct(tw, v)
	}

	if len(opts.Formatters.SortColumn) > 0 {
		var tableSorter []table.SortBy
		for _, sortColumn := range opts.Formatters.SortColumn {
			tableSorter = append(tableSorter, table.SortBy{Name: sortColumn})
		}
		tw.SortBy(tableSorter)
	}

	switch opts.Formatters.Format {
	case "table":
		tw.SetStyle(table.StyleLight)
		tw.Render()
	case "csv":
		tw.RenderCSV()
	case "markdown":
		tw.RenderMarkdown()
	case "html":
		tw.RenderHTML()
	case "value":
		tw.SetStyle(table.Style{
			Name: "value",
			Box: table.BoxStyle{
				MiddleHorizontal: " ",
				MiddleVertical:   " ",
			},
			Options: table.OptionsNoBorders,
		})
		tw.Render()
	default:
		return fmt.Errorf("format option %s is not supported", opts.Formatters.Format)
	}
	return nil
}
