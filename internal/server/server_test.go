// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcc/jobly/api"
	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/middlewares"
	"github.com/sapcc/jobly/internal/policy"
)

func newHandler(t *testing.T) (http.Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	dbMock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(dbMock.Close)

	spec, err := api.Load()
	require.NoError(t, err)

	config.Global.ApiSettings.AuthStrategy = "none"
	config.Global.ApiSettings.RateLimit = 0
	config.Global.ApiSettings.DisableCors = false
	require.NoError(t, policy.SetPolicyEngine("noop"))
	return NewHandler(dbMock, spec), dbMock
}

func get(h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	for k, v := range header {
		r.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestHealthcheck(t *testing.T) {
	h, _ := newHandler(t)
	rec := get(h, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServesSwaggerDocument(t *testing.T) {
	h, _ := newHandler(t)
	rec := get(h, "/swagger.json", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, string(api.SwaggerJSON), rec.Body.String())

	rec = get(h, "/docs", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "redoc")
}

func TestRoutesThroughMiddlewares(t *testing.T) {
	h, dbMock := newHandler(t)
	dbMock.ExpectQuery("SELECT handle, name, description, num_employees, logo_url FROM companies ORDER BY name").
		WillReturnRows(pgxmock.NewRows([]string{"handle", "name", "description", "num_employees", "logo_url"}))

	rec := get(h, "/companies", http.Header{"Origin": {"https://example.com"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"companies": []}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRateLimit(t *testing.T) {
	_, dbMock := newHandler(t)
	config.Global.ApiSettings.RateLimit = 1
	t.Cleanup(func() { config.Global.ApiSettings.RateLimit = 0 })
	spec, err := api.Load()
	require.NoError(t, err)
	h := NewHandler(dbMock, spec)

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, get(h, "/", nil).Code)
	}
	assert.Contains(t, codes, http.StatusTooManyRequests)
}

func TestServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, "127.0.0.1:0", 1, http.NotFoundHandler())
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
