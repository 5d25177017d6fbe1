/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/rikstoto-innsikt/couponcheck/pkg/defaults"
	"github.com/rikstoto-innsikt/couponcheck/pkg/k8s/client"
)

// ParseConfigMapURI splits cm://namespace/name into its parts.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	rest := strings.TrimPrefix(uri, ConfigMapURIScheme)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: expected format %snamespace/name", uri, ConfigMapURIScheme)
	}
	return parts[0], parts[1], nil
}

// ReadConfigMap returns the document stored in the ConfigMap and the data key
// it was read from. A ConfigMap with a single entry yields that entry; otherwise
// the first key starting with ConfigMapRecordKey is used.
func ReadConfigMap(ctx context.Context, cs kubernetes.Interface, namespace, name string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.K8sAPITimeout)
	defer cancel()

	cm, err := cs.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	if len(cm.Data) == 1 {
		for k, v := range cm.Data {
			return []byte(v), k, nil
		}
	}

	keys := make([]string, 0, len(cm.Data))
	for k := range cm.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.HasPrefix(k, ConfigMapRecordKey) {
			return []byte(cm.Data[k]), k, nil
		}
	}

	return nil, "", fmt.Errorf("ConfigMap %s/%s has no %q entry (keys: %v)", namespace, name, ConfigMapRecordKey, keys)
}

// ConfigMapWriter serializes a value into a ConfigMap, creating or updating it.
type ConfigMapWriter struct {
	Client    kubernetes.Interface
	Namespace string
	Name      string
	format    Format

	mu sync.Mutex
}

// NewConfigMapWriter creates a ConfigMapWriter. A nil client is resolved
// through automatic kubeconfig discovery on first use.
func NewConfigMapWriter(cs kubernetes.Interface, namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		format = FormatJSON
	}
	return &ConfigMapWriter{Client: cs, Namespace: namespace, Name: name, format: format}
}

// Serialize encodes v and stores it under result.<ext> in the ConfigMap.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.Client == nil {
		cs, err := client.ClientFor("")
		if err != nil {
			return fmt.Errorf("failed to create kubernetes client: %w", err)
		}
		w.Client = cs
	}

	var buf bytes.Buffer
	if err := encode(&buf, w.format, v); err != nil {
		return err
	}
	key := ConfigMapResultKey + "." + w.format.Extension()

	ctx, cancel := context.WithTimeout(ctx, defaults.K8sAPITimeout)
	defer cancel()

	cms := w.Client.CoreV1().ConfigMaps(w.Namespace)
	existing, err := cms.Get(ctx, w.Name, metav1.GetOptions{})
	switch {
	case apierrors.IsNotFound(err):
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      w.Name,
				Namespace: w.Namespace,
				Labels:    map[string]string{"app.kubernetes.io/managed-by": "couponcheck"},
			},
			Data: map[string]string{key: buf.String()},
		}
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create ConfigMap %s/%s: %w", w.Namespace, w.Name, err)
		}
	case err != nil:
		return fmt.Errorf("failed to get ConfigMap %s/%s: %w", w.Namespace, w.Name, err)
	default:
		if existing.Data == nil {
			existing.Data = map[string]string{}
		}
		existing.Data[key] = buf.String()
		if _, err := cms.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
			return fmt.Errorf("failed to update ConfigMap %s/%s: %w", w.Namespace, w.Name, err)
		}
	}

	slog.Debug("wrote ConfigMap", "namespace", w.Namespace, "name", w.Name, "key", key)
	return nil
}

// Close is a no-op; it exists so ConfigMapWriter satisfies Closer.
func (w *ConfigMapWriter) Close() error {
	return nil
}
