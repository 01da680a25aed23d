// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/dre1080/recovr"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/sapcc/jobly/api"
	"github.com/sapcc/jobly/internal/auth"
	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/controller"
	"github.com/sapcc/jobly/internal/db"
	"github.com/sapcc/jobly/internal/middlewares"
	"github.com/sapcc/jobly/internal/policy"
)

const shutdownTimeout = 10 * time.Second

// ExecuteServer connects to the database and serves the API until ctx is cancelled.
func ExecuteServer(ctx context.Context) error {
	log.Info("Starting up jobly-server")

	spec, err := api.Load()
	if err != nil {
		return err
	}

	if err := policy.SetPolicyEngine(config.Global.ApiSettings.PolicyEngine); err != nil {
		return err
	}

	if dsn := config.Global.Default.SentryDSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, ServerName: config.HostName(), Release: config.Version}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	pool, err := db.NewPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	// install postgres status exporter
	collector := pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": pool.Config().ConnConfig.Database})
	prometheus.MustRegister(collector)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serve(ctx, config.Global.Default.Listen, config.Global.ApiSettings.MaxConnections,
			NewHandler(pool, spec))
	})
	if config.Global.Default.Prometheus {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		log.Infof("Serving prometheus metrics to %s/metrics", config.Global.Default.PrometheusListen)
		g.Go(func() error {
			return serve(ctx, config.Global.Default.PrometheusListen, 0, mux)
		})
	}
	return g.Wait()
}

// NewHandler wires the API routes into the middleware chain.
func NewHandler(pool db.PgxIface, spec *loads.Document) http.Handler {
	var handler http.Handler = controller.NewController(pool, spec).Router()

	handler = middlewares.AuditHandler(handler)
	handler = auth.AuthenticateRequest(handler)

	if rl := config.Global.ApiSettings.RateLimit; rl > .0 {
		lmt := tollbooth.NewLimiter(rl, nil)
		lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
		lmt.SetMessageContentType("application/json; charset=utf-8")
		lmt.SetMessage(`{"code":429,"message":"Too Many Requests"}`)
		handler = tollbooth.LimitHandler(lmt, handler)
	}

	if !config.Global.ApiSettings.DisableCors {
		handler = cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"HEAD", "GET", "POST", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Content-Type", "User-Agent", "Authorization"},
		}).Handler(handler)
	}

	handler = middleware.Redoc(middleware.RedocOpts{SpecURL: "/swagger.json", Path: "docs", Title: "Jobly API"}, handler)
	handler = middleware.Spec("", api.SwaggerJSON, handler)

	handler = middlewares.MetricsHandler(handler)
	handler = middlewares.LoggingHandler(handler)
	handler = middlewares.HealthCheckMiddleware(handler)
	handler = recovr.New()(handler)

	if config.Global.Default.SentryDSN != "" {
		handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(handler)
	}
	return handler
}

func serve(ctx context.Context, addr string, maxConnections int, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if maxConnections > 0 {
		ln = netutil.LimitListener(ln, maxConnections)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Serving on http://%s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Infof("Shutting down listener %s", ln.Addr())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
