/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rikstoto-innsikt/couponcheck/pkg/k8s/client"
	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is not one of allowed.
func parseOutputFormat(cmd *cli.Command, allowed ...serializer.Format) (serializer.Format, error) {
	outFormat := serializer.Format(strings.ToLower(cmd.String("format")))
	if outFormat.IsUnknown() || !slices.Contains(allowed, outFormat) {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s", outFormat, joinFormats(allowed))
	}
	return outFormat, nil
}

func joinFormats(formats []serializer.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// newSerializer returns the destination for --output. Stdout goes through
// the root command's writer; ConfigMap URIs use the --kubeconfig client.
func newSerializer(cmd *cli.Command, format serializer.Format) (serializer.Serializer, error) {
	output := strings.TrimSpace(cmd.String("output"))
	switch {
	case output == "" || output == serializer.StdoutURI:
		return serializer.NewWriter(format, cmd.Root().Writer), nil
	case strings.HasPrefix(output, serializer.ConfigMapURIScheme):
		namespace, cmName, err := serializer.ParseConfigMapURI(output)
		if err != nil {
			return nil, err
		}
		cs, err := client.ClientFor(cmd.String("kubeconfig"))
		if err != nil {
			return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
		}
		return serializer.NewConfigMapWriter(cs, namespace, cmName, format), nil
	default:
		return serializer.NewFileWriterOrStdout(format, output)
	}
}

func closeSerializer(s serializer.Serializer) {
	c, ok := s.(serializer.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close serializer", "error", err)
	}
}
