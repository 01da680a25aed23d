// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package config

// Set via -ldflags "-X github.com/sapcc/jobly/internal/config.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
)
