// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/sapcc/jobly/internal/db"
	apierrors "github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/models"
)

func (c *Controller) GetCompaniesHandler(r *http.Request, _ httprouter.Params) (int, any, error) {
	var filter models.CompanyFilter
	if err := decodeQuery(r.URL.Query(), &filter); err != nil {
		return 0, nil, err
	}

	companies, err := c.store.FindAllCompanies(r.Context(), &filter)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]any{"companies": companies}, nil
}

func (c *Controller) PostCompaniesHandler(r *http.Request, _ httprouter.Params) (int, any, error) {
	body, err := c.readBody(r, "CompanyNew")
	if err != nil {
		return 0, nil, err
	}
	var company models.Company
	if err := json.Unmarshal(body, &company); err != nil {
		return 0, nil, apierrors.InvalidInput(err, "%s", err.Error())
	}

	created, err := c.store.CreateCompany(r.Context(), &company)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, map[string]any{"company": created}, nil
}

func (c *Controller) GetCompanyHandler(r *http.Request, ps httprouter.Params) (int, any, error) {
	company, err := c.store.GetCompany(r.Context(), ps.ByName("handle"))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]any{"company": company}, nil
}

func (c *Controller) PatchCompanyHandler(r *http.Request, ps httprouter.Params) (int, any, error) {
	body, err := c.readBody(r, "CompanyUpdate")
	if err != nil {
		return 0, nil, err
	}
	data, err := db.FieldsFromJSON(body)
	if err != nil {
		return 0, nil, err
	}

	company, err := c.store.UpdateCompany(r.Context(), ps.ByName("handle"), data)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]any{"company": company}, nil
}

func (c *Controller) DeleteCompanyHandler(r *http.Request, ps httprouter.Params) (int, any, error) {
	handle := ps.ByName("handle")
	if err := c.store.RemoveCompany(r.Context(), handle); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]string{"deleted": handle}, nil
}
