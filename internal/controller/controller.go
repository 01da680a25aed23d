// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/sapcc/jobly/api"
	"github.com/sapcc/jobly/internal/auth"
	"github.com/sapcc/jobly/internal/db"
	apierrors "github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/internal/store"
)

const maxBodySize = 1 << 20

var ErrEmptyBody = errors.New("request body is empty")

type Controller struct {
	spec     *loads.Document
	store    *store.Store
	producer runtime.Producer
}

func NewController(pool db.PgxIface, spec *loads.Document) *Controller {
	return &Controller{spec: spec, store: store.New(pool), producer: runtime.JSONProducer()}
}

// handlerFunc returns the response status and payload, or an error rendered by ServeError.
type handlerFunc func(r *http.Request, ps httprouter.Params) (int, any, error)

// Router registers every operation of the API.
func (c *Controller) Router() *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		oaerrors.ServeError(w, r, oaerrors.NotFound("path %s was not found", r.URL.Path))
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		oaerrors.ServeError(w, r, oaerrors.New(http.StatusMethodNotAllowed, "method %s is not allowed", r.Method))
	})

	c.handle(router, http.MethodGet, "/", c.GetVersionHandler)

	c.handle(router, http.MethodGet, "/companies", c.GetCompaniesHandler)
	c.handle(router, http.MethodPost, "/companies", c.PostCompaniesHandler)
	c.handle(router, http.MethodGet, "/companies/:handle", c.GetCompanyHandler)
	c.handle(router, http.MethodPatch, "/companies/:handle", c.PatchCompanyHandler)
	c.handle(router, http.MethodDelete, "/companies/:handle", c.DeleteCompanyHandler)

	c.handle(router, http.MethodGet, "/jobs", c.GetJobsHandler)
	c.handle(router, http.MethodPost, "/jobs", c.PostJobsHandler)
	c.handle(router, http.MethodGet, "/jobs/:id", c.GetJobHandler)
	c.handle(router, http.MethodPatch, "/jobs/:id", c.PatchJobHandler)
	c.handle(router, http.MethodDelete, "/jobs/:id", c.DeleteJobHandler)
	return router
}

func (c *Controller) handle(router *httprouter.Router, method, path string, fn handlerFunc) {
	rule := api.PolicyRule(c.spec, method, path)
	router.Handle(method, path, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if rule != "" {
			if err := auth.Authorize(r, rule); err != nil {
				c.serveError(w, r, err)
				return
			}
		}

		status, payload, err := fn(r, ps)
		if err != nil {
			c.serveError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", runtime.JSONMime)
		w.WriteHeader(status)
		if err := c.producer.Produce(w, payload); err != nil {
			log.WithError(err).Error("Failed writing response")
		}
	})
}

// serveError renders classified errors with their code. Anything else is logged and
// reported as an internal error without leaking details.
func (c *Controller) serveError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr oaerrors.Error
	if !errors.As(err, &apiErr) {
		log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
		apiErr = oaerrors.New(http.StatusInternalServerError, "%s", http.StatusText(http.StatusInternalServerError))
	}
	oaerrors.ServeError(w, r, apiErr)
}

// readBody returns the raw body after checking it against the named definition.
func (c *Controller) readBody(r *http.Request, definition string) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, apierrors.InvalidInput(err, "failed reading request body")
	}
	if len(body) == 0 {
		return nil, apierrors.InvalidInput(ErrEmptyBody, "")
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apierrors.InvalidInput(err, "invalid JSON: %s", err.Error())
	}
	if err := api.Validate(c.spec, definition, data); err != nil {
		return nil, apierrors.InvalidInput(err, "%s", err.Error())
	}
	return body, nil
}
