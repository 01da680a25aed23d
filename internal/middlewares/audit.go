// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package middlewares

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sapcc/jobly/internal/auth"
)

// AuditResponseWriter is a wrapper of regular ResponseWriter
type AuditResponseWriter struct {
	http.ResponseWriter
	request *http.Request
	logger  log.FieldLogger
}

func actionFor(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPatch, http.MethodPut:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return strings.ToLower(method)
}

func (arw *AuditResponseWriter) WriteHeader(code int) {
	arw.ResponseWriter.WriteHeader(code)

	p := auth.PrincipalFrom(arw.request.Context())
	arw.logger.WithFields(log.Fields{
		"user":     p.Name(),
		"role":     p.Role().String(),
		"action":   actionFor(arw.request.Method),
		"target":   arw.request.URL.Path,
		"reason":   code,
		"outcome":  outcome(code),
		"location": arw.Header().Get("Location"),
	}).Info("audit")
}

func outcome(code int) string {
	if code < 400 {
		return "success"
	}
	return "failure"
}

// AuditHandler records every mutating request together with the acting user.
func AuditHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		arw := &AuditResponseWriter{w, r, log.WithField("request_id", RequestIDFrom(r.Context()))}
		next.ServeHTTP(arw, r)
	})
}
