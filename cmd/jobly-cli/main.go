// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/sapcc/jobly/internal/client"
)

func main() {
	client.SetupClient()
}
