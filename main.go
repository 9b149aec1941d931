/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labscan/cmd"
	"github.com/humaidq/labscan/logging"
)

func main() {
	logging.Init()

	app := &cli.Command{
		Name:  "labscan",
		Usage: "labscan - Pathology report extraction",
		Flags: []cli.Flag{
			cmd.LogLevelFlag,
		},
		Before: cmd.ConfigureLogging,
		Commands: []*cli.Command{
			cmd.CmdExtract,
			cmd.CmdStart,
			cmd.CmdMigrate,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
