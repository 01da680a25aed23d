// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package migrations

import (
	"context"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/z0ne-dev/mgx/v2"

	"github.com/sapcc/jobly/internal/config"
)

var Migrations = mgx.Migrations(
	mgx.NewMigration("initial", func(ctx context.Context, commands mgx.Commands) error {
		if _, err := commands.Exec(ctx, `
			CREATE TABLE companies
			(
				handle        VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
				name          TEXT        UNIQUE NOT NULL,
				num_employees INTEGER     CHECK (num_employees >= 0),
				description   TEXT        NOT NULL,
				logo_url      TEXT
			);`,
		); err != nil {
			return err
		}

		if _, err := commands.Exec(ctx, `
			CREATE TABLE jobs
			(
				id             SERIAL  PRIMARY KEY,
				title          TEXT    NOT NULL,
				salary         INTEGER CHECK (salary >= 0),
				equity         NUMERIC CHECK (equity <= 1.0),
				company_handle VARCHAR(25) NOT NULL
					REFERENCES companies ON DELETE CASCADE
			);`,
		); err != nil {
			return err
		}

		return nil
	}),
	mgx.NewMigration("unique job title", func(ctx context.Context, commands mgx.Commands) error {
		// closes the window between the duplicate check and the insert
		_, err := commands.Exec(ctx, `ALTER TABLE jobs ADD CONSTRAINT jobs_title_key UNIQUE (title);`)
		return err
	}),
	mgx.NewMigration("job company index", func(ctx context.Context, commands mgx.Commands) error {
		_, err := commands.Exec(ctx, `CREATE INDEX jobs_company_handle_idx ON jobs (company_handle);`)
		return err
	}),
)

// Migrate applies all migrations on the configured database.
func Migrate(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, config.Global.Database.Connection)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(ctx); err != nil {
			log.Error(err.Error())
		}
	}()

	migrator, err := mgx.New(Migrations)
	if err != nil {
		return err
	}
	return migrator.Migrate(ctx, conn)
}
