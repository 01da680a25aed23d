// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/sapcc/jobly/internal/db"
	apierrors "github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/models"
)

// jobID parses the :id path parameter. Anything but a positive integer cannot name a job.
func jobID(ps httprouter.Params) (int, error) {
	raw := ps.ByName("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apierrors.NotFound("No job with id: %s", raw)
	}
	return id, nil
}

func (c *Controller) GetJobsHandler(r *http.Request, _ httprouter.Params) (int, any, error) {
	var filter models.JobFilter
	if err := decodeQuery(r.URL.Query(), &filter); err != nil {
		return 0, nil, err
	}

	jobs, err := c.store.FindAllJobs(r.Context(), &filter)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]any{"jobs": jobs}, nil
}

func (c *Controller) PostJobsHandler(r *http.Request, _ httprouter.Params) (int, any, error) {
	body, err := c.readBody(r, "JobNew")
	if err != nil {
		return 0, nil, err
	}
	var job models.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return 0, nil, apierrors.InvalidInput(err, "%s", err.Error())
	}

	created, err := c.store.CreateJob(r.Context(), &job)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, map[string]any{"job": created}, nil
}

func (c *Controller) GetJobHandler(r *http.Request, ps httprouter.Params) (int, any, error) {
	id, err := jobID(ps)
	if err != nil {
		return 0, nil, err
	}
	job, err := c.store.GetJob(r.Context(), id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]any{"job": job}, nil
}

func (c *Controller) PatchJobHandler(r *http.Request, ps httprouter.Params) (int, any, error) {
	id, err := jobID(ps)
	if err != nil {
		return 0, nil, err
	}
	body, err := c.readBody(r, "JobUpdate")
	if err != nil {
		return 0, nil, err
	}
	data, err := db.FieldsFromJSON(body)
	if err != nil {
		return 0, nil, err
	}

	job, err := c.store.UpdateJob(r.Context(), id, data)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]any{"job": job}, nil
}

func (c *Controller) DeleteJobHandler(r *http.Request, ps httprouter.Params) (int, any, error) {
	id, err := jobID(ps)
	if err != nil {
		return 0, nil, err
	}
	if err := c.store.RemoveJob(r.Context(), id); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]string{"deleted": strconv.Itoa(id)}, nil
}
