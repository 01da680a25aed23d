// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package middlewares

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

const HealthCheckPath = "/healthcheck"

// HealthCheckMiddleware answers GET and HEAD on /healthcheck before authentication, rate
// limiting and request logging see the request. Everything else is passed on.
func HealthCheckMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != HealthCheckPath || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := w.Write([]byte("ok")); err != nil {
			log.WithError(err).Error("Failed replying health check")
		}
	})
}
