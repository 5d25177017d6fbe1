/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/rikstoto-innsikt/couponcheck/pkg/cli"
)

func main() {
	cli.Execute()
}
