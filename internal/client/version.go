// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	"github.com/sapcc/jobly/internal/config"
)

type VersionOptions struct{}

func (*VersionOptions) Execute(_ []string) error {
	fmt.Fprintf(Output, "CLI Version: %s (%s)\n", config.Version, config.BuildTime)
	res, err := JoblyClient.Version(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(Output, "Server Version: %s (%s) %+v\n", res.Version, res.Updated, res.Capabilities)
	return nil
}

func init() {
	if _, err := Parser.AddCommand("version", "Version",
		"Show Version.", &VersionOptions{}); err != nil {
		panic(err)
	}
}
