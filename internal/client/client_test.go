// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcc/jobly/internal/auth"
	"github.com/sapcc/jobly/models"
)

func ptr[T any](v T) *T {
	return &v
}

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "secret-token", false)
	require.NoError(t, err)
	return c
}

func reply(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Output = &buf
	opts.Formatters = outputFormatters{Format: "csv"}
	t.Cleanup(func() {
		opts.Formatters = outputFormatters{Format: "table"}
	})
	return &buf
}

func TestNewInvalidEndpoint(t *testing.T) {
	_, err := New("localhost", "", false)
	assert.Error(t, err)
}

func TestListCompanies(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/companies", r.URL.Path)
		assert.Equal(t, "net", r.URL.Query().Get("name"))
		assert.Equal(t, "10", r.URL.Query().Get("minEmployees"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		reply(w, http.StatusOK, `{"companies": [{"handle": "c1", "name": "C1", "description": "Desc1", "numEmployees": 1, "logoUrl": null}]}`)
	})

	companies, err := c.ListCompanies(context.Background(), map[string]string{"name": "net", "minEmployees": "10"})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "c1", companies[0].Handle)
	assert.Equal(t, 1, *companies[0].NumEmployees)
	assert.Nil(t, companies[0].LogoURL)
}

func TestGetCompanyNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/companies/nope", r.URL.Path)
		reply(w, http.StatusNotFound, `{"code": 404, "message": "No company: nope"}`)
	})

	_, err := c.GetCompany(context.Background(), "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Equal(t, "No company: nope", apiErr.Message)
}

func TestGetRetriesUnavailable(t *testing.T) {
	RetryBackoff = time.Millisecond
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			reply(w, http.StatusServiceUnavailable, `{"code": 503, "message": "Service Unavailable"}`)
			return
		}
		reply(w, http.StatusOK, `{"job": {"id": 7, "title": "tester", "salary": null, "equity": "0.5", "companyHandle": "c1"}}`)
	})

	job, err := c.GetJob(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, job.ID)
	assert.Equal(t, "0.5", *job.Equity)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCreateIsNotRetried(t *testing.T) {
	RetryBackoff = time.Millisecond
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		reply(w, http.StatusServiceUnavailable, `{"code": 503, "message": "Service Unavailable"}`)
	})

	_, err := c.CreateJob(context.Background(), map[string]any{"title": "t", "companyHandle": "c1"})
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUpdateJobSendsNull(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/jobs/3", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"salary": null, "title": "new"}`, string(body))
		reply(w, http.StatusOK, `{"job": {"id": 3, "title": "new", "salary": null, "equity": null, "companyHandle": "c1"}}`)
	})

	job, err := c.UpdateJob(context.Background(), 3, map[string]any{"salary": nil, "title": "new"})
	require.NoError(t, err)
	assert.Nil(t, job.Salary)
}

func TestDeleteCompany(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		reply(w, http.StatusOK, `{"deleted": "c1"}`)
	})
	assert.NoError(t, c.DeleteCompany(context.Background(), "c1"))
}

func TestCompanyListCommand(t *testing.T) {
	buf := captureOutput(t)
	JoblyClient = newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("maxEmployees"))
		reply(w, http.StatusOK, `{"companies": [
			{"handle": "c1", "name": "C1", "description": "Desc1", "numEmployees": 1, "logoUrl": "http://c1.img"},
			{"handle": "c2", "name": "C2", "description": "Desc2", "numEmployees": 2, "logoUrl": null}]}`)
	})
	CompanyOptions.CompanyList = CompanyList{MaxEmployees: ptr(3)}

	require.NoError(t, CompanyOptions.CompanyList.Execute(nil))
	assert.Contains(t, buf.String(), "c1,C1,Desc1,1,http://c1.img")
	assert.Contains(t, buf.String(), "c2,C2,Desc2,2,Null")
}

func TestJobSetNothing(t *testing.T) {
	JobOptions.JobSet = JobSet{}
	assert.Error(t, JobOptions.JobSet.Execute(nil))
}

func TestWriteTableColumns(t *testing.T) {
	buf := captureOutput(t)
	opts.Formatters.Columns = []string{"title"}

	jobs := []*models.Job{{ID: 1, Title: "tester1", CompanyHandle: "c1"}}
	require.NoError(t, WriteTable(jobs))
	assert.Contains(t, buf.String(), "tester1")
	assert.NotContains(t, buf.String(), "c1")

	opts.Formatters.Columns = []string{"nope"}
	assert.Error(t, WriteTable(jobs))
}

func TestWriteTableStruct(t *testing.T) {
	buf := captureOutput(t)
	require.NoError(t, WriteTable(&models.Job{ID: 1, Title: "tester1", Equity: ptr("0.1"), CompanyHandle: "c1"}))
	assert.Contains(t, buf.String(), "title,tester1")
	assert.Contains(t, buf.String(), "equity,0.1")
	assert.Contains(t, buf.String(), "salary,Null")
}

func TestTokenCommand(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf

	cmd := &TokenOptions{Username: "admin", Admin: true, SecretKey: "s3cret", TTL: time.Hour}
	require.NoError(t, cmd.Execute(nil))

	principal, err := auth.ParseToken([]byte("s3cret"), string(bytes.TrimSpace(buf.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
	assert.True(t, principal.IsAdmin)

	assert.Error(t, (&TokenOptions{Username: "u"}).Execute(nil))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf
	JoblyClient = newClient(t, func(w http.ResponseWriter, r *http.Request) {
		v := models.Version{Version: "1.0.0", Updated: "now", Capabilities: []string{"partial_update"}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	})

	require.NoError(t, (&VersionOptions{}).Execute(nil))
	assert.Contains(t, buf.String(), "Server Version: 1.0.0 (now) [partial_update]")
}
