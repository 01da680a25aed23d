// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"strconv"
)

var CompanyOptions struct {
	CompanyList   `command:"list" description:"List Companies"`
	CompanyShow   `command:"show" description:"Show Company and its Jobs"`
	CompanyCreate `command:"create" description:"Create Company"`
	CompanySet    `command:"set" description:"Update Company"`
	CompanyDelete `command:"delete" description:"Delete Company"`
}

type CompanyList struct {
	Name         *string `long:"name" description:"List companies whose name contains the given text (case-insensitive)"`
	MinEmployees *int    `long:"min-employees" description:"List companies with at least this many employees"`
	MaxEmployees *int    `long:"max-employees" description:"List companies with at most this many employees"`
}

func (*CompanyList) Execute(_ []string) error {
	o := CompanyOptions.CompanyList
	query := map[string]string{}
	if o.Name != nil {
		query["name"] = *o.Name
	}
	if o.MinEmployees != nil {
		query["minEmployees"] = strconv.Itoa(*o.MinEmployees)
	}
	if o.MaxEmployees != nil {
		query["maxEmployees"] = strconv.Itoa(*o.MaxEmployees)
	}

	companies, err := JoblyClient.ListCompanies(context.Background(), query)
	if err != nil {
		return err
	}
	return WriteTable(companies)
}

type CompanyShow struct {
	Positional struct {
		Company string `positional-arg-name:"handle" description:"Company to display (handle)"`
	} `positional-args:"yes" required:"yes"`
}

func (*CompanyShow) Execute(_ []string) error {
	company, err := JoblyClient.GetCompany(context.Background(), CompanyOptions.CompanyShow.Positional.Company)
	if err != nil {
		return err
	}
	if err := WriteTable(company.Company); err != nil {
		return err
	}
	if len(company.Jobs) == 0 || len(opts.Formatters.Columns) > 0 {
		return nil
	}
	return WriteTable(company.Jobs)
}

type CompanyCreate struct {
	Handle       string  `long:"handle" description:"Unique company handle" required:"true"`
	Name         string  `short:"n" long:"name" description:"Company name" required:"true"`
	Description  string  `long:"description" description:"Company description"`
	NumEmployees *int    `long:"num-employees" description:"Number of employees"`
	LogoURL      *string `long:"logo-url" description:"URL of the company logo"`
}

func (*CompanyCreate) Execute(_ []string) error {
	o := CompanyOptions.CompanyCreate
	body := map[string]any{
		"handle":      o.Handle,
		"name":        o.Name,
		"description": o.Description,
	}
	if o.NumEmployees != nil {
		body["numEmployees"] = *o.NumEmployees
	}
	if o.LogoURL != nil {
		body["logoUrl"] = *o.LogoURL
	}

	company, err := JoblyClient.CreateCompany(context.Background(), body)
	if err != nil {
		return err
	}
	return WriteTable(company)
}

type CompanySet struct {
	Positional struct {
		Company string `positional-arg-name:"handle" description:"Company to set (handle)"`
	} `positional-args:"yes" required:"yes"`
	Name           *string `short:"n" long:"name" description:"Company name"`
	Description    *string `long:"description" description:"Company description"`
	NumEmployees   *int    `long:"num-employees" description:"Number of employees"`
	NoNumEmployees bool    `long:"no-num-employees" description:"Clear the number of employees"`
	LogoURL        *string `long:"logo-url" description:"URL of the company logo"`
	NoLogoURL      bool    `long:"no-logo-url" description:"Clear the company logo"`
}

func (*CompanySet) Execute(_ []string) error {
	o := CompanyOptions.CompanySet
	body := map[string]any{}
	if o.Name != nil {
		body["name"] = *o.Name
	}
	if o.Description != nil {
		body["description"] = *o.Description
	}
	switch {
	case o.NoNumEmployees:
		body["numEmployees"] = nil
	case o.NumEmployees != nil:
		body["numEmployees"] = *o.NumEmployees
	}
	switch {
	case o.NoLogoURL:
		body["logoUrl"] = nil
	case o.LogoURL != nil:
		body["logoUrl"] = *o.LogoURL
	}
	if len(body) == 0 {
		return fmt.Errorf("nothing to update")
	}

	company, err := JoblyClient.UpdateCompany(context.Background(), o.Positional.Company, body)
	if err != nil {
		return err
	}
	return WriteTable(company)
}

type CompanyDelete struct {
	Positional struct {
		Company string `positional-arg-name:"handle" description:"Company to delete (handle)"`
	} `positional-args:"yes" required:"yes"`
}

func (*CompanyDelete) Execute(_ []string) error {
	return JoblyClient.DeleteCompany(context.Background(), CompanyOptions.CompanyDelete.Positional.Company)
}

func init() {
	if _, err := Parser.AddCommand("company", "Companies",
		"Company Commands.", &CompanyOptions); err != nil {
		panic(err)
	}
}
