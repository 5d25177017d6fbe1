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
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/rikstoto-innsikt/couponcheck/pkg/defaults"
	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
	"github.com/rikstoto-innsikt/couponcheck/pkg/validator"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "watch",
		EnableShellCompletion: true,
		Usage:                 "Validate records as they are written to a directory",
		ArgsUsage:             "DIR",
		Description: `Watches DIR and validates every .json, .yaml or .yml file when it is
created or written. Bursts of events for the same file are coalesced.
Runs until interrupted.`,
		Flags: []cli.Flag{
			formatFlag(string(serializer.FormatText), validateFormats...),
			outputFlag(),
			&cli.StringFlag{
				Name:  "tolerances",
				Usage: "tolerance document (YAML or JSON) overriding the default thresholds",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Value: defaults.WatchDebounce,
				Usage: "quiet period before a changed file is validated",
			},
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				return fmt.Errorf("DIR is required")
			}
			if fi, err := os.Stat(dir); err != nil {
				return fmt.Errorf("failed to stat %q: %w", dir, err)
			} else if !fi.IsDir() {
				return fmt.Errorf("%q is not a directory", dir)
			}

			outFormat, err := parseOutputFormat(cmd, validateFormats...)
			if err != nil {
				return err
			}

			tol := validator.DefaultTolerances()
			if uri := cmd.String("tolerances"); uri != "" {
				if tol, err = validator.LoadTolerances(ctx, uri, cmd.String("kubeconfig")); err != nil {
					return err
				}
			}

			ser, err := newSerializer(cmd, outFormat)
			if err != nil {
				return err
			}
			defer closeSerializer(ser)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &dirWatcher{
				validator: validator.New(validator.WithVersion(version), validator.WithTolerances(tol)),
				out:       ser,
				debounce:  cmd.Duration("debounce"),
			}
			return w.watch(ctx, dir)
		},
	}
}

var watchedExtensions = []string{".json", ".yaml", ".yml"}

// dirWatcher validates record files reported by fsnotify.
type dirWatcher struct {
	validator *validator.Validator
	out       serializer.Serializer
	debounce  time.Duration
}

func (w *dirWatcher) watch(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := fw.Close(); err != nil {
			slog.Warn("failed to close watcher", "error", err)
		}
	}()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}
	slog.Info("watching for records", "dir", dir, "debounce", w.debounce)

	return w.run(ctx, fw.Events, fw.Errors)
}

// run consumes events until ctx is done or the event channel closes. Files
// are validated once no new event has arrived for the debounce period.
func (w *dirWatcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	pending := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !isRecordEvent(ev) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)
			fire = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			clear(pending)
			slices.Sort(names)
			for _, name := range names {
				if err := w.validate(ctx, name); err != nil {
					return err
				}
			}
		}
	}
}

func (w *dirWatcher) validate(ctx context.Context, path string) error {
	result, err := w.validator.ValidateFile(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("failed to validate record", "file", path, "error", err)
		return nil
	}

	slog.Info("validated record", "file", path, "fatal", result.IsFatal(),
		"status", result.Summary.OverallStatus)

	if err := w.out.Serialize(ctx, result); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to write report for %q: %w", path, err)
	}
	return nil
}

func isRecordEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return slices.Contains(watchedExtensions, strings.ToLower(filepath.Ext(ev.Name)))
}
