// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/sapcc/jobly/api"
	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/models"
)

func (c *Controller) GetVersionHandler(r *http.Request, _ httprouter.Params) (int, any, error) {
	capabilities := []string{"filtering", "partial-update"}
	if !config.Global.ApiSettings.DisableCors {
		capabilities = append(capabilities, "cors")
	}
	if config.Global.ApiSettings.AuthStrategy != "none" {
		capabilities = append(capabilities, config.Global.ApiSettings.AuthStrategy)
	}
	if config.Global.ApiSettings.RateLimit > 0 {
		capabilities = append(capabilities, fmt.Sprintf("ratelimit=%.2f",
			config.Global.ApiSettings.RateLimit))
	}
	return http.StatusOK, &models.Version{
		Capabilities: capabilities,
		Links: []*models.Link{{
			Href: config.GetApiBaseUrl(r),
			Rel:  "self",
		}},
		Updated: config.BuildTime,
		Version: api.Version(c.spec),
	}, nil
}
