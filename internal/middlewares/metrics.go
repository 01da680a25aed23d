// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobly",
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests by resource, method and status code.",
	}, []string{"resource", "method", "code"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "jobly",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by resource and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource", "method"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// resource is the first path segment, which keeps label cardinality bounded.
func resource(path string) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	switch segment {
	case "", "companies", "jobs", "healthcheck", "docs", "swagger.json":
		return segment
	}
	return "other"
}

// method folds request methods the API does not route into "other".
func method(m string) string {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return m
	}
	return "other"
}

func MetricsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(sr, r)

		res, m := resource(r.URL.Path), method(r.Method)
		requestsTotal.WithLabelValues(res, m, strconv.Itoa(sr.Status())).Inc()
		requestDuration.WithLabelValues(res, m).Observe(time.Since(start).Seconds())
	})
}
