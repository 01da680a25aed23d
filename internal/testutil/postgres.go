// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"

	"github.com/sapcc/go-bits/osext"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:17-alpine"

// PostgresURL returns DB_URL when set, otherwise it starts a throwaway
// postgres container. The returned func releases the database.
func PostgresURL(ctx context.Context) (string, func(), error) {
	if url := osext.GetenvOrDefault("DB_URL", ""); url != "" {
		return url, func() {}, nil
	}

	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("jobly_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", nil, err
	}

	terminate := func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			log.WithError(err).Warn("Failed terminating postgres container")
		}
	}

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return "", nil, err
	}
	return url, terminate, nil
}
