// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package models

// Company is a row of the companies table.
type Company struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	NumEmployees *int    `json:"numEmployees" db:"num_employees"`
	LogoURL      *string `json:"logoUrl" db:"logo_url"`
}

// CompanyDetail is a company together with the jobs it offers.
type CompanyDetail struct {
	Company
	Jobs []*Job `json:"jobs" db:"-"`
}

// CompanyFilter holds the optional search parameters of a company listing.
type CompanyFilter struct {
	Name         *string `mapstructure:"name"`
	MinEmployees *int    `mapstructure:"minEmployees" validate:"omitempty,min=0"`
	MaxEmployees *int    `mapstructure:"maxEmployees" validate:"omitempty,min=0"`
}
