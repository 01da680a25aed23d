// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/sapcc/jobly/internal/auth"
)

// TokenOptions mints a bearer token offline with the server's secret key.
type TokenOptions struct {
	Username  string        `short:"u" long:"username" description:"Username to put into the token" required:"true"`
	Admin     bool          `long:"admin" description:"Grant the admin role"`
	SecretKey string        `long:"secret-key" env:"SECRET_KEY" description:"HMAC key the server verifies tokens with"`
	TTL       time.Duration `long:"ttl" default:"24h" description:"Token lifetime, 0 for no expiry"`
}

func (o *TokenOptions) Execute(_ []string) error {
	if o.SecretKey == "" {
		return errors.New("a secret key is required to sign tokens")
	}
	token, err := auth.CreateToken([]byte(o.SecretKey), o.Username, o.Admin, o.TTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(Output, token)
	return nil
}

func init() {
	if _, err := Parser.AddCommand("token", "Token",
		"Create a signed bearer token.", &TokenOptions{}); err != nil {
		panic(err)
	}
}
