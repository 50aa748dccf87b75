// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import "time"

type options struct {
	buildOptions `mapstructure:",squash"`
	watchOptions `mapstructure:",squash"`
}

type buildOptions struct {
	ConfigPath            string   `mapstructure:"config"`
	DestinationPath       string   `mapstructure:"destination"`
	ContentDir            string   `mapstructure:"content-dir"`
	ContentFormats        []string `mapstructure:"content-formats"`
	IncludeDrafts         bool     `mapstructure:"include-drafts"`
	PrettyURLs            bool     `mapstructure:"pretty-urls"`
	ScanWorkers           int      `mapstructure:"scan-workers"`
	ValidationWorkers     int      `mapstructure:"validation-workers"`
	ValidateExternalLinks bool     `mapstructure:"validate-external-links"`
	HostsToReport         []string `mapstructure:"hosts-to-report"`
	DryRun                bool     `mapstructure:"dry-run"`
	Resolve               bool     `mapstructure:"resolve"`
	CacheDir              string   `mapstructure:"cache-dir"`
}

type watchOptions struct {
	MetricsAddress string        `mapstructure:"metrics-address"`
	Debounce       time.Duration `mapstructure:"debounce"`
}
