/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"log"

	"github.com/rikstoto-innsikt/couponcheck/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
