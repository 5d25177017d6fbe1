/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Serializer writes a value to some destination.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is implemented by serializers holding resources.
type Closer interface {
	Close() error
}

// TextWriter is implemented by values with their own plain-text rendering.
// FormatText uses it; values without one fall back to the table rendering.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// Writer serializes values to an io.Writer in the configured format.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer

	mu     sync.Mutex
	closed bool
}

// NewWriter creates a Writer for the given format and output.
// Unknown formats fall back to JSON; a nil output writes to stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Debug("unknown output format, defaulting to json", "format", format)
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter creates a Writer that writes to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a serializer for path. An empty path or "-"
// writes to stdout, a cm://namespace/name URI writes to a ConfigMap, and
// anything else is created as a file.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := ParseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		return NewConfigMapWriter(nil, namespace, name, format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize writes v in the writer's format.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	return encode(w.output, w.format, v)
}

// Close releases the underlying file, if any. It is safe to call repeatedly.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.closer == nil {
		return nil
	}
	w.closed = true
	return w.closer.Close()
}

func encode(out io.Writer, format Format, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatText:
		if tw, ok := v.(TextWriter); ok {
			return tw.WriteText(out)
		}
		return writeTable(out, v)
	case FormatTable:
		return writeTable(out, v)
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

type tableRow struct {
	field string
	value string
}

// writeTable renders v as a flattened two-column FIELD/VALUE table.
func writeTable(out io.Writer, v any) error {
	var rows []tableRow
	flatten("", reflect.ValueOf(v), &rows)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.field, r.value)
	}
	return tw.Flush()
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func flatten(prefix string, v reflect.Value, rows *[]tableRow) {
	label := prefix
	if label == "" {
		label = "."
	}

	if !v.IsValid() {
		*rows = append(*rows, tableRow{label, "<nil>"})
		return
	}

	if t, ok := v.Interface().(time.Time); ok {
		*rows = append(*rows, tableRow{label, t.Format(time.RFC3339)})
		return
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			*rows = append(*rows, tableRow{label, "<nil>"})
			return
		}
		flatten(prefix, v.Elem(), rows)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			flatten(joinKey(prefix, t.Field(i).Name), v.Field(i), rows)
		}
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			*rows = append(*rows, tableRow{label, "<empty>"})
			return
		}
		for i := 0; i < v.Len(); i++ {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), rows)
		}
	case reflect.Map:
		if v.Len() == 0 {
			*rows = append(*rows, tableRow{label, "<empty>"})
			return
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			flatten(joinKey(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), rows)
		}
	default:
		*rows = append(*rows, tableRow{label, fmt.Sprint(v.Interface())})
	}
}
