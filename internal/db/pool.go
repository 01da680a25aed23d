// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"

	logrus "github.com/jackc/pgx-logrus"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	log "github.com/sirupsen/logrus"

	"github.com/sapcc/jobly/internal/config"
)

// PgxIface is the subset of *pgxpool.Pool used by the store, also implemented by pgxmock.
type PgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func GetTracer() *tracelog.TraceLog {
	logLevel := tracelog.LogLevelError
	if config.Global.Database.Trace {
		logLevel = tracelog.LogLevelDebug
	}
	return &tracelog.TraceLog{
		Logger:   logrus.NewLogger(log.StandardLogger()),
		LogLevel: logLevel,
	}
}

func NewPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(config.Global.Database.Connection)
	if err != nil {
		return nil, err
	}
	if config.Global.Database.MaxConns > 0 {
		poolConfig.MaxConns = config.Global.Database.MaxConns
	}
	poolConfig.ConnConfig.Tracer = GetTracer()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.WithField("max_conns", poolConfig.MaxConns).Info("Connected to database")
	return pool, nil
}
