/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/generator"
	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
)

var generateFormats = []serializer.Format{serializer.FormatJSON, serializer.FormatYAML}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "generate",
		Aliases:               []string{"gen"},
		EnableShellCompletion: true,
		Usage:                 "Generate a synthetic, internally consistent coupon record",
		Description: `Generates a settled coupon whose pools, odds, markings, prizes, payout and
statistics agree with each other, so it passes every consistency check.
The seed is logged; the same seed and options always produce the same record.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "product",
				Aliases: []string{"p"},
				Value:   string(coupon.ProductV64),
				Usage:   fmt.Sprintf("product to generate (%s)", strings.Join(coupon.SupportedProducts(), ", ")),
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "random seed (default: time based)",
			},
			&cli.IntFlag{
				Name:  "starters",
				Usage: fmt.Sprintf("starters per race, %d-%d (default: random per race)", generator.MinStarters, generator.MaxStarters),
			},
			&cli.IntFlag{
				Name:  "correct",
				Value: -1,
				Usage: "number of races the markings hit (default: random)",
			},
			&cli.IntFlag{
				Name:  "rows",
				Usage: "rows played (default: product of marked horses per race)",
			},
			outputFlag(),
			formatFlag(string(serializer.FormatJSON), generateFormats...),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd, generateFormats...)
			if err != nil {
				return err
			}

			opts, err := generatorOptionsFromCmd(cmd)
			if err != nil {
				return err
			}

			g := generator.New(opts...)
			rec, err := g.Generate()
			if err != nil {
				return fmt.Errorf("failed to generate record: %w", err)
			}
			slog.Info("generated record", "product", rec.Product, "seed", g.Seed(), "id", rec.ID)

			ser, err := newSerializer(cmd, outFormat)
			if err != nil {
				return err
			}
			defer closeSerializer(ser)

			return ser.Serialize(ctx, rec)
		},
	}
}

func generatorOptionsFromCmd(cmd *cli.Command) ([]generator.Option, error) {
	s := cmd.String("product")
	product, ok := coupon.ParseProduct(s)
	if !ok {
		if suggestion, found := coupon.SuggestProduct(s); found {
			return nil, fmt.Errorf("product: %q, did you mean %s? supported values: %v", s, suggestion, coupon.SupportedProducts())
		}
		return nil, fmt.Errorf("product: %q, supported values: %v", s, coupon.SupportedProducts())
	}

	opts := []generator.Option{
		generator.WithProduct(product),
		generator.WithStarters(cmd.Int("starters")),
		generator.WithCorrectRaces(cmd.Int("correct")),
		generator.WithRows(cmd.Int("rows")),
	}
	if cmd.IsSet("seed") {
		opts = append(opts, generator.WithSeed(cmd.Uint64("seed")))
	}
	return opts, nil
}
