// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"errors"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/jmoiron/sqlx/reflectx"
)

var (
	Parser                = flags.NewParser(&opts, flags.Default)
	Mapper                = reflectx.NewMapper("json")
	JoblyClient *Client
	Output      io.Writer = os.Stdout
)

type outputFormatters struct {
	Format     string   `short:"f" long:"format" description:"The output format, defaults to table" choice:"table" choice:"csv" choice:"markdown" choice:"html" choice:"value" default:"table"`
	Columns    []string `short:"c" long:"column" description:"specify the column(s) to include, can be repeated to show multiple columns"`
	SortColumn []string `long:"sort-column" description:"specify the column(s) to sort the data (columns specified first have a priority, non-existing columns are ignored), can be repeated"`
}

var opts struct {
	Debug      bool             `long:"debug" description:"Show verbose debug information"`
	Formatters outputFormatters `group:"Output formatters"`

	Endpoint string `long:"endpoint" env:"JOBLY_ENDPOINT" default:"http://localhost:8080" description:"The jobly API endpoint"`
	Token    string `long:"token" env:"JOBLY_TOKEN" description:"Bearer token sent with every request"`
}

func SetupClient() {
	Parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}

		var err error
		if JoblyClient, err = New(opts.Endpoint, opts.Token, opts.Debug); err != nil {
			return err
		}
		return command.Execute(args)
	}

	if _, err := Parser.Parse(); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
