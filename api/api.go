// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

// Package api carries the OpenAPI description served by jobly-server. Request bodies are
// validated against its definitions and every operation names its policy rule in x-policy.
package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

//go:embed swagger.json
var SwaggerJSON []byte

// Load parses and analyzes the embedded document.
func Load() (*loads.Document, error) {
	return loads.Analyzed(json.RawMessage(SwaggerJSON), "")
}

var routeParam = regexp.MustCompile(`:([a-zA-Z_]+)`)

// SwaggerPath turns an httprouter path like /jobs/:id into /jobs/{id}.
func SwaggerPath(path string) string {
	return routeParam.ReplaceAllString(path, "{$1}")
}

// PolicyRule returns the x-policy extension of the operation, or "" when none is declared.
func PolicyRule(doc *loads.Document, method, path string) string {
	op, ok := doc.Analyzer.OperationFor(method, SwaggerPath(path))
	if !ok {
		return ""
	}
	rule, _ := op.Extensions.GetString("x-policy")
	return rule
}

func Definition(doc *loads.Document, name string) (*spec.Schema, error) {
	schema, ok := doc.Spec().Definitions[name]
	if !ok {
		return nil, fmt.Errorf("unknown definition %q", name)
	}
	return &schema, nil
}

// Validate checks data, a decoded JSON document, against the named definition.
func Validate(doc *loads.Document, definition string, data any) error {
	schema, err := Definition(doc, definition)
	if err != nil {
		return err
	}
	return validate.AgainstSchema(schema, data, strfmt.Default)
}

// Version returns info.version of the document.
func Version(doc *loads.Document) string {
	if info := doc.Spec().Info; info != nil {
		return info.Version
	}
	return ""
}

