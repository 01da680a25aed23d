// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package models

// Job is a row of the jobs table. Equity is a NUMERIC rendered as text, e.g. "0.1".
type Job struct {
	ID            int     `json:"id" db:"id"`
	Title         string  `json:"title" db:"title"`
	Salary        *int    `json:"salary" db:"salary"`
	Equity        *string `json:"equity" db:"equity"`
	CompanyHandle string  `json:"companyHandle" db:"company_handle"`
}

type JobFilter struct {
	Title     *string `mapstructure:"title"`
	MinSalary *int    `mapstructure:"minSalary" validate:"omitempty,min=0"`
	HasEquity *bool   `mapstructure:"hasEquity"`
}
