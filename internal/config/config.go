// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
)

var (
	Global Jobly
)

type Jobly struct {
	ConfigFile  string      `long:"config-file" description:"Use config file"`
	Default     Default     `group:"DEFAULT"`
	Database    Database    `group:"database"`
	ApiSettings ApiSettings `group:"api_settings"`
	Auth        Auth        `group:"auth"`
}

type Default struct {
	Debug            bool   `short:"d" long:"debug" description:"Show debug information"`
	JSONLog          bool   `long:"json-log" ini-name:"json_log" description:"Emit logs as JSON."`
	Listen           string `long:"listen" ini-name:"listen" default:":8080" description:"API listen TCP network address."`
	Host             string `long:"hostname" ini-name:"host" description:"Hostname used by the server. Defaults to auto-discovery."`
	Prometheus       bool   `long:"prometheus" description:"Enable prometheus exporter."`
	PrometheusListen string `long:"prometheus-listen" ini-name:"prometheus_listen" default:"127.0.0.1:9090" description:"Prometheus listen TCP network address."`
	SentryDSN        string `long:"sentry-dsn" ini-name:"sentry_dsn" env:"SENTRY_DSN" description:"Report panics to this Sentry DSN."`
}

type Database struct {
	Connection string `long:"database-connection" ini-name:"connection" env:"DATABASE_URL" description:"Connection string to use to connect to the database."`
	Trace      bool   `long:"database-trace" ini-name:"trace" description:"Log all SQL statements."`
	MaxConns   int32  `long:"database-max-conns" ini-name:"max_conns" default:"10" description:"Maximum size of the connection pool."`
}

type ApiSettings struct {
	ApiBaseURL     string  `long:"api_base_uri" ini-name:"api_base_uri" description:"Base URI for the API for use in links. This will be autodetected from the request if not overridden here."`
	PolicyFile     string  `long:"policy-file" ini-name:"policy_file" description:"YAML policy file, used by the rules policy engine."`
	AuthStrategy   string  `long:"auth-strategy" ini-name:"auth_strategy" description:"The auth strategy for API requests, currently supported: [jwt, none]" default:"none"`
	PolicyEngine   string  `long:"policy-engine" ini-name:"policy_engine" description:"Policy engine to use, currently supported: [rules, noop]" default:"noop"`
	RateLimit      float64 `long:"rate-limit" ini-name:"rate_limit" default:"100" description:"Maximum number of requests to limit per second."`
	DisableCors    bool    `long:"disable-cors" ini-name:"disable_cors" description:"Stops sending Access-Control-Allow-Origin Header to allow cross-origin requests."`
	MaxConnections int     `long:"max-connections" ini-name:"max_connections" default:"0" description:"Maximum number of simultaneous client connections, 0 means unlimited."`
}

type Auth struct {
	SecretKey string        `long:"secret-key" ini-name:"secret_key" env:"SECRET_KEY" description:"HMAC key used to sign and verify JWT bearer tokens."`
	TokenTTL  time.Duration `long:"token-ttl" ini-name:"token_ttl" default:"24h" description:"Lifetime of tokens minted by jobly-cli."`
}

var ErrMissingSecret = errors.New("auth strategy jwt requires auth.secret_key")

// ParseConfig reads the optional ini config file, then re-applies the command line so
// that flags win over file values.
func ParseConfig(parser *flags.Parser) {
	if Global.ConfigFile != "" {
		ini := flags.NewIniParser(parser)
		if err := ini.ParseFile(Global.ConfigFile); err != nil {
			log.Fatalf("Failed reading config file %s: %s", Global.ConfigFile, err)
		}
		if _, err := parser.Parse(); err != nil {
			log.Fatal(err.Error())
		}
	}

	if Global.Default.JSONLog {
		log.SetFormatter(&log.JSONFormatter{})
	}
	if IsDebug() {
		log.SetLevel(log.DebugLevel)
	}

	if err := Validate(); err != nil {
		log.Fatal(err.Error())
	}
}

func Validate() error {
	switch Global.ApiSettings.AuthStrategy {
	case "none":
	case "jwt":
		if Global.Auth.SecretKey == "" {
			return ErrMissingSecret
		}
	default:
		return fmt.Errorf("auth strategy '%s' not supported", Global.ApiSettings.AuthStrategy)
	}
	return nil
}

func IsDebug() bool {
	return Global.Default.Debug
}

func HostName() string {
	if Global.Default.Host == "" {
		host, err := os.Hostname()
		if err != nil {
			log.Fatal(err.Error())
		}
		return host
	}

	return Global.Default.Host
}

// GetApiBaseUrl returns the configured base URL or derives one from the request.
func GetApiBaseUrl(r *http.Request) string {
	if Global.ApiSettings.ApiBaseURL != "" {
		return Global.ApiSettings.ApiBaseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
