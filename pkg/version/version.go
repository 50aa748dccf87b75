// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package version

// Version is set during compile time via -ldflags in the `go build` process.
// It stores the docnav release in the form v<MAJOR>.<MINOR>.<PATCH>.
var Version = "binary was not built properly"
