// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import "fmt"

// ConfigError signals a malformed or invalid site configuration.
// Err aggregates every problem that was found.
type ConfigError struct {
	// Source is the configuration file, if known
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid site configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid site configuration %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
