// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-openapi/runtime"
	runtimeclient "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
	"github.com/sethvargo/go-retry"

	"github.com/sapcc/jobly/models"
)

var (
	RetryBackoff    = 500 * time.Millisecond
	RetryMaxRetries = uint64(3)
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Operation string
	Code      int
	Message   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Operation, e.Code, e.Message)
}

func (e *APIError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// Client talks to a jobly-server.
type Client struct {
	transport *runtimeclient.Runtime
	auth      runtime.ClientAuthInfoWriter
}

func New(endpoint, token string, debug bool) (*Client, error) {
	uri, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if uri.Scheme == "" || uri.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q", endpoint)
	}
	basePath := uri.Path
	if basePath == "" {
		basePath = "/"
	}

	rt := runtimeclient.New(uri.Host, basePath, []string{uri.Scheme})
	rt.SetDebug(debug)

	c := &Client{transport: rt}
	if token != "" {
		c.auth = runtimeclient.BearerToken(token)
	}
	return c, nil
}

type operation struct {
	method string
	path   string
	query  map[string]string
	params map[string]string
	body   any
}

func (c *Client) submit(ctx context.Context, op operation, result any) error {
	name := fmt.Sprintf("[%s %s]", op.method, op.path)
	_, err := c.transport.Submit(&runtime.ClientOperation{
		ID:                 name,
		Method:             op.method,
		PathPattern:        op.path,
		ProducesMediaTypes: []string{"application/json"},
		ConsumesMediaTypes: []string{"application/json"},
		Schemes:            c.transport.DefaultSchemes,
		AuthInfo:           c.auth,
		Context:            ctx,
		Params: runtime.ClientRequestWriterFunc(func(req runtime.ClientRequest, _ strfmt.Registry) error {
			for k, v := range op.params {
				if err := req.SetPathParam(k, v); err != nil {
					return err
				}
			}
			for k, v := range op.query {
				if err := req.SetQueryParam(k, v); err != nil {
					return err
				}
			}
			if op.body != nil {
				return req.SetBodyParam(op.body)
			}
			return nil
		}),
		Reader: runtime.ClientResponseReaderFunc(func(response runtime.ClientResponse, consumer runtime.Consumer) (any, error) {
			if response.Code() >= 200 && response.Code() < 300 {
				return nil, consumer.Consume(response.Body(), result)
			}

			apiErr := &APIError{Operation: name, Code: response.Code(), Message: response.Message()}
			var payload struct {
				Message string `json:"message"`
			}
			if err := consumer.Consume(response.Body(), &payload); err == nil && payload.Message != "" {
				apiErr.Message = payload.Message
			}
			return nil, apiErr
		}),
	})
	return err
}

// get retries rate limited and failed requests, other methods are sent once.
func (c *Client) get(ctx context.Context, op operation, result any) error {
	op.method = http.MethodGet
	backoff := retry.WithMaxRetries(RetryMaxRetries, retry.NewExponential(RetryBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.submit(ctx, op, result)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.retryable() {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) Version(ctx context.Context) (*models.Version, error) {
	var v models.Version
	if err := c.get(ctx, operation{path: "/"}, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) ListCompanies(ctx context.Context, query map[string]string) ([]*models.Company, error) {
	var res struct {
		Companies []*models.Company `json:"companies"`
	}
	if err := c.get(ctx, operation{path: "/companies", query: query}, &res); err != nil {
		return nil, err
	}
	return res.Companies, nil
}

func (c *Client) GetCompany(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	var res struct {
		Company *models.CompanyDetail `json:"company"`
	}
	op := operation{path: "/companies/{handle}", params: map[string]string{"handle": handle}}
	if err := c.get(ctx, op, &res); err != nil {
		return nil, err
	}
	return res.Company, nil
}

func (c *Client) CreateCompany(ctx context.Context, body map[string]any) (*models.Company, error) {
	var res struct {
		Company *models.Company `json:"company"`
	}
	op := operation{method: http.MethodPost, path: "/companies", body: body}
	if err := c.submit(ctx, op, &res); err != nil {
		return nil, err
	}
	return res.Company, nil
}

func (c *Client) UpdateCompany(ctx context.Context, handle string, body map[string]any) (*models.Company, error) {
	var res struct {
		Company *models.Company `json:"company"`
	}
	op := operation{method: http.MethodPatch, path: "/companies/{handle}",
		params: map[string]string{"handle": handle}, body: body}
	if err := c.submit(ctx, op, &res); err != nil {
		return nil, err
	}
	return res.Company, nil
}

func (c *Client) DeleteCompany(ctx context.Context, handle string) error {
	var res struct {
		Deleted string `json:"deleted"`
	}
	op := operation{method: http.MethodDelete, path: "/companies/{handle}", params: map[string]string{"handle": handle}}
	return c.submit(ctx, op, &res)
}

func (c *Client) ListJobs(ctx context.Context, query map[string]string) ([]*models.Job, error) {
	var res struct {
		Jobs []*models.Job `json:"jobs"`
	}
	if err := c.get(ctx, operation{path: "/jobs", query: query}, &res); err != nil {
		return nil, err
	}
	return res.Jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id int) (*models.Job, error) {
	var res struct {
		Job *models.Job `json:"job"`
	}
	op := operation{path: "/jobs/{id}", params: map[string]string{"id": fmt.Sprint(id)}}
	if err := c.get(ctx, op, &res); err != nil {
		return nil, err
	}
	return res.Job, nil
}

func (c *Client) CreateJob(ctx context.Context, body map[string]any) (*models.Job, error) {
	var res struct {
		Job *models.Job `json:"job"`
	}
	if err := c.submit(ctx, operation{method: http.MethodPost, path: "/jobs", body: body}, &res); err != nil {
		return nil, err
	}
	return res.Job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id int, body map[string]any) (*models.Job, error) {
	var res struct {
		Job *models.Job `json:"job"`
	}
	op := operation{method: http.MethodPatch, path: "/jobs/{id}",
		params: map[string]string{"id": fmt.Sprint(id)}, body: body}
	if err := c.submit(ctx, op, &res); err != nil {
		return nil, err
	}
	return res.Job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id int) error {
	var res struct {
		Deleted string `json:"deleted"`
	}
	op := operation{method: http.MethodDelete, path: "/jobs/{id}", params: map[string]string{"id": fmt.Sprint(id)}}
	return c.submit(ctx, op, &res)
}
