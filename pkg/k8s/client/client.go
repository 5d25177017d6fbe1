/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package client builds Kubernetes clients used for ConfigMap record input
// and result output.
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

var (
	clientOnce   sync.Once
	cachedClient kubernetes.Interface
	clientErr    error
)

// GetKubeClient returns a process-wide client built from automatic discovery.
// The client is created on first call and reused afterwards.
func GetKubeClient() (kubernetes.Interface, error) {
	clientOnce.Do(func() {
		cachedClient, clientErr = BuildKubeClient("")
	})
	return cachedClient, clientErr
}

// ClientFor returns the shared client for an empty kubeconfig, or a fresh
// client for an explicit kubeconfig path.
func ClientFor(kubeconfig string) (kubernetes.Interface, error) {
	if kubeconfig == "" {
		return GetKubeClient()
	}
	return BuildKubeClient(kubeconfig)
}

// BuildKubeClient creates a client from the given kubeconfig file. An empty
// path tries, in order: KUBECONFIG, ~/.kube/config, in-cluster configuration.
func BuildKubeClient(kubeconfig string) (kubernetes.Interface, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")

		if kubeconfig == "" {
			kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
			if _, err := os.Stat(kubeconfig); os.IsNotExist(err) {
				kubeconfig = ""
			}
		}
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config: %w", err)
	}

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return cs, nil
}
