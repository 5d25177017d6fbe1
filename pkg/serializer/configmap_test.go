/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestParseConfigMapURI(t *testing.T) {
	ns, name, err := ParseConfigMapURI("cm://racing/v64-coupon")
	require.NoError(t, err)
	assert.Equal(t, "racing", ns)
	assert.Equal(t, "v64-coupon", name)
}

func TestReadConfigMap(t *testing.T) {
	ctx := context.Background()
	cs := fake.NewClientset(
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "single", Namespace: "racing"},
			Data:       map[string]string{"anything.yaml": "product: V64\n"},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "multi", Namespace: "racing"},
			Data: map[string]string{
				"notes":       "ignore me",
				"record.json": `{"product":"V75"}`,
			},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "norecord", Namespace: "racing"},
			Data:       map[string]string{"a": "1", "b": "2"},
		},
	)

	data, key, err := ReadConfigMap(ctx, cs, "racing", "single")
	require.NoError(t, err)
	assert.Equal(t, "anything.yaml", key)
	assert.Equal(t, "product: V64\n", string(data))

	data, key, err = ReadConfigMap(ctx, cs, "racing", "multi")
	require.NoError(t, err)
	assert.Equal(t, "record.json", key)
	assert.JSONEq(t, `{"product":"V75"}`, string(data))

	_, _, err = ReadConfigMap(ctx, cs, "racing", "norecord")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no")

	_, _, err = ReadConfigMap(ctx, cs, "racing", "absent")
	require.Error(t, err)
}

func TestConfigMapWriter_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	cs := fake.NewClientset()

	w := NewConfigMapWriter(cs, "racing", "v64-result", FormatJSON)
	require.NoError(t, w.Serialize(ctx, testConfig{Name: "first", Value: 1}))

	cm, err := cs.CoreV1().ConfigMaps("racing").Get(ctx, "v64-result", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "couponcheck", cm.Labels["app.kubernetes.io/managed-by"])

	var got testConfig
	require.NoError(t, json.Unmarshal([]byte(cm.Data["result.json"]), &got))
	assert.Equal(t, "first", got.Name)

	require.NoError(t, w.Serialize(ctx, testConfig{Name: "second", Value: 2}))
	cm, err = cs.CoreV1().ConfigMaps("racing").Get(ctx, "v64-result", metav1.GetOptions{})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(cm.Data["result.json"]), &got))
	assert.Equal(t, "second", got.Name)
	assert.NoError(t, w.Close())
}
