/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rikstoto-innsikt/couponcheck/pkg/logging"
	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
)

const name = "couponcheck"

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/rikstoto-innsikt/couponcheck/pkg/cli.version=1.0.0"
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path or ConfigMap URI (cm://namespace/name); default: stdout",
	}
}

func formatFlag(value string, allowed ...serializer.Format) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   value,
		Usage:   fmt.Sprintf("output format (%s)", joinFormats(allowed)),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Sources: cli.EnvVars("KUBECONFIG"),
		Usage:   "path to kubeconfig used for cm:// sources and outputs",
	}
}

// Execute runs the couponcheck command with the process arguments and exits
// non-zero on failure.
func Execute() {
	if err := newRootCmd().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Consistency checks for pari-mutuel coupon records",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureLogging(cmd.Bool("debug"), cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			generateCmd(),
			watchCmd(),
		},
	}
}

func configureLogging(debug, asJSON bool) {
	level := logging.LevelFromEnv()
	if debug {
		level = slog.LevelDebug
	}
	if asJSON {
		logging.SetDefaultStructuredLoggerWithLevel(name, version, level.String())
		return
	}
	logging.SetDefaultCLILogger(level)
}
