// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"strconv"
)

var JobOptions struct {
	JobList   `command:"list" description:"List Jobs"`
	JobShow   `command:"show" description:"Show Job"`
	JobCreate `command:"create" description:"Create Job"`
	JobSet    `command:"set" description:"Update Job"`
	JobDelete `command:"delete" description:"Delete Job"`
}

type JobList struct {
	Title     *string `long:"title" description:"List jobs whose title contains the given text (case-insensitive)"`
	MinSalary *int    `long:"min-salary" description:"List jobs paying at least this salary"`
	HasEquity bool    `long:"has-equity" description:"List only jobs offering equity"`
}

func (*JobList) Execute(_ []string) error {
	o := JobOptions.JobList
	query := map[string]string{}
	if o.Title != nil {
		query["title"] = *o.Title
	}
	if o.MinSalary != nil {
		query["minSalary"] = strconv.Itoa(*o.MinSalary)
	}
	if o.HasEquity {
		query["hasEquity"] = "true"
	}

	jobs, err := JoblyClient.ListJobs(context.Background(), query)
	if err != nil {
		return err
	}
	return WriteTable(jobs)
}

type JobShow struct {
	Positional struct {
		Job int `positional-arg-name:"id" description:"Job to display (ID)"`
	} `positional-args:"yes" required:"yes"`
}

func (*JobShow) Execute(_ []string) error {
	job, err := JoblyClient.GetJob(context.Background(), JobOptions.JobShow.Positional.Job)
	if err != nil {
		return err
	}
	return WriteTable(job)
}

type JobCreate struct {
	Title   string  `short:"t" long:"title" description:"Job title" required:"true"`
	Salary  *int    `long:"salary" description:"Salary"`
	Equity  *string `long:"equity" description:"Equity as a decimal fraction between 0 and 1"`
	Company string  `long:"company" description:"Handle of the offering company" required:"true"`
}

func (*JobCreate) Execute(_ []string) error {
	o := JobOptions.JobCreate
	body := map[string]any{
		"title":         o.Title,
		"companyHandle": o.Company,
	}
	if o.Salary != nil {
		body["salary"] = *o.Salary
	}
	if o.Equity != nil {
		body["equity"] = *o.Equity
	}

	job, err := JoblyClient.CreateJob(context.Background(), body)
	if err != nil {
		return err
	}
	return WriteTable(job)
}

type JobSet struct {
	Positional struct {
		Job int `positional-arg-name:"id" description:"Job to set (ID)"`
	} `positional-args:"yes" required:"yes"`
	Title    *string `short:"t" long:"title" description:"Job title"`
	Salary   *int    `long:"salary" description:"Salary"`
	NoSalary bool    `long:"no-salary" description:"Clear the salary"`
	Equity   *string `long:"equity" description:"Equity as a decimal fraction between 0 and 1"`
	NoEquity bool    `long:"no-equity" description:"Clear the equity"`
	Company  *string `long:"company" description:"Move the job to another company (handle)"`
}

func (*JobSet) Execute(_ []string) error {
	o := JobOptions.JobSet
	body := map[string]any{}
	if o.Title != nil {
		body["title"] = *o.Title
	}
	switch {
	case o.NoSalary:
		body["salary"] = nil
	case o.Salary != nil:
		body["salary"] = *o.Salary
	}
	switch {
	case o.NoEquity:
		body["equity"] = nil
	case o.Equity != nil:
		body["equity"] = *o.Equity
	}
	if o.Company != nil {
		body["companyHandle"] = *o.Company
	}
	if len(body) == 0 {
		return fmt.Errorf("nothing to update")
	}

	job, err := JoblyClient.UpdateJob(context.Background(), o.Positional.Job, body)
	if err != nil {
		return err
	}
	return WriteTable(job)
}

type JobDelete struct {
	Positional struct {
		Job int `positional-arg-name:"id" description:"Job to delete (ID)"`
	} `positional-args:"yes" required:"yes"`
}

func (*JobDelete) Execute(_ []string) error {
	return JoblyClient.DeleteJob(context.Background(), JobOptions.JobDelete.Positional.Job)
}

func init() {
	if _, err := Parser.AddCommand("job", "Jobs",
		"Job Commands.", &JobOptions); err != nil {
		panic(err)
	}
}
