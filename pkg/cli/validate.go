/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
	"github.com/rikstoto-innsikt/couponcheck/pkg/validator"
)

// ErrValidationFailed is returned by validate --fail-on-error when at least
// one record failed or could not be read.
var ErrValidationFailed = errors.New("validation failed")

var validateFormats = []serializer.Format{
	serializer.FormatText, serializer.FormatJSON, serializer.FormatYAML, serializer.FormatTable,
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Check coupon records for internal consistency",
		ArgsUsage:             "FILE...",
		Description: `Runs every consistency check against each record and prints a report:
  - Structure: required fields, product and race count
  - Arithmetic: pool totals, bet amounts and percentages, implied odds
  - Rules: markings cover every race and reference real starters
  - Prizes: distribution against the pool, tier shares, payout
  - Integrity: positions, starters, winners
  - Patterns: favorites and odds ranges
  - Outcome: hits and correct races recomputed from markings
  - Statistics: averages, favorite wins, plausibility

Each FILE may be a path, "-" for stdin, an HTTP(S) URL or a ConfigMap URI
(cm://namespace/name). Several records are checked concurrently; reports
are printed in argument order.`,
		Flags: []cli.Flag{
			formatFlag(string(serializer.FormatText), validateFormats...),
			outputFlag(),
			&cli.StringFlag{
				Name:  "tolerances",
				Usage: "tolerance document (YAML or JSON) overriding the default thresholds",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "exit non-zero when any record fails or cannot be read",
			},
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				return fmt.Errorf("at least one record FILE is required")
			}

			outFormat, err := parseOutputFormat(cmd, validateFormats...)
			if err != nil {
				return err
			}

			kubeconfig := cmd.String("kubeconfig")
			tol := validator.DefaultTolerances()
			if uri := cmd.String("tolerances"); uri != "" {
				if tol, err = validator.LoadTolerances(ctx, uri, kubeconfig); err != nil {
					return err
				}
			}

			v := validator.New(
				validator.WithVersion(version),
				validator.WithTolerances(tol),
			)

			results, err := validateAll(ctx, v, files, kubeconfig)
			if err != nil {
				return err
			}

			ser, err := newSerializer(cmd, outFormat)
			if err != nil {
				return err
			}
			defer closeSerializer(ser)

			var out any = reportSet(results)
			if len(results) == 1 {
				out = results[0]
			}
			if err := ser.Serialize(ctx, out); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if cmd.Bool("fail-on-error") {
				if failed := countFailed(results); failed > 0 {
					return fmt.Errorf("%w: %d of %d records", ErrValidationFailed, failed, len(results))
				}
			}
			return nil
		},
	}
}

// validateAll checks every uri concurrently and returns the results in
// argument order.
func validateAll(ctx context.Context, v *validator.Validator, uris []string, kubeconfig string) ([]*report.Result, error) {
	results := make([]*report.Result, len(uris))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, uri := range uris {
		g.Go(func() error {
			result, err := v.ValidateURI(gctx, uri, kubeconfig)
			if err != nil {
				return fmt.Errorf("failed to validate %q: %w", uri, err)
			}
			slog.Debug("validated record", "source", uri, "fatal", result.IsFatal(),
				"status", result.Summary.OverallStatus)
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func countFailed(results []*report.Result) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// reportSet renders several reports one after another in text form.
type reportSet []*report.Result

func (s reportSet) WriteText(w io.Writer) error {
	for i, r := range s {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := r.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}
