// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

//go:build tools
// +build tools

// Package tools pins the code generators run by go generate
package tools

import (
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
)
