// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"os"
	"path/filepath"

	"github.com/gardener/docnav/cmd/configuration"
	"github.com/gardener/docnav/pkg/content"
	"github.com/gardener/docnav/pkg/watch"
	"github.com/spf13/cobra"
)

// build flags are persistent so that the watch command shares them
func configureFlags(command *cobra.Command) {
	flags := command.PersistentFlags()

	flags.StringP("config", "c", "site.yaml",
		"Site configuration file.")
	_ = vip.BindPFlag("config", flags.Lookup("config"))

	flags.StringP("destination", "d", "",
		"Destination path. Required unless --dry-run or --resolve is set.")
	_ = vip.BindPFlag("destination", flags.Lookup("destination"))

	flags.String("content-dir", "",
		"Content directory. Overrides the contentDir of the site configuration.")
	_ = vip.BindPFlag("content-dir", flags.Lookup("content-dir"))

	flags.StringSlice("content-formats", content.DefaultFormats,
		"Supported content format extensions (example: .md)")
	_ = vip.BindPFlag("content-formats", flags.Lookup("content-formats"))

	flags.Bool("include-drafts", false,
		"Includes documents with `draft: true` frontmatter.")
	_ = vip.BindPFlag("include-drafts", flags.Lookup("include-drafts"))

	flags.Bool("pretty-urls", true,
		"Writes pages as <slug>/index.md instead of <slug>.md")
	_ = vip.BindPFlag("pretty-urls", flags.Lookup("pretty-urls"))

	flags.Int("scan-workers", 10,
		"Number of parallel workers loading content documents.")
	_ = vip.BindPFlag("scan-workers", flags.Lookup("scan-workers"))

	flags.Int("validation-workers", 10,
		"Number of parallel workers expanding autogenerated groups and validating external links.")
	_ = vip.BindPFlag("validation-workers", flags.Lookup("validation-workers"))

	flags.Bool("validate-external-links", false,
		"Checks that external sidebar links are reachable.")
	_ = vip.BindPFlag("validate-external-links", flags.Lookup("validate-external-links"))

	flags.StringSlice("hosts-to-report", []string{},
		"When an unreachable external link has a host from the given array it fails the build. Other hosts are only logged.")
	_ = vip.BindPFlag("hosts-to-report", flags.Lookup("hosts-to-report"))

	flags.Bool("dry-run", false,
		"Runs the command end-to-end but instead of writing files, it will output the projected file/folder hierarchy to the standard output.")
	_ = vip.BindPFlag("dry-run", flags.Lookup("dry-run"))

	flags.Bool("resolve", false,
		"Prints the effective site configuration and the resolved sidebar to the standard output. The resolution expands autogenerated groups into link hierarchies.")
	_ = vip.BindPFlag("resolve", flags.Lookup("resolve"))

	cacheDir := ""
	userHomeDir, err := os.UserHomeDir()
	if err == nil {
		// default value $HOME/.docnav/cache
		cacheDir = filepath.Join(userHomeDir, configuration.HomeDir, "cache")
	}
	flags.String("cache-dir", cacheDir,
		"Cache directory, used for the external link validation HTTP cache.")
	_ = vip.BindPFlag("cache-dir", flags.Lookup("cache-dir"))
}

func configureWatchFlags(command *cobra.Command) {
	command.Flags().String("metrics-address", "",
		"If set, serves prometheus metrics on this address under /metrics (example: :9090)")
	_ = vip.BindPFlag("metrics-address", command.Flags().Lookup("metrics-address"))

	command.Flags().Duration("debounce", watch.DefaultDebounce,
		"Quiet period after the last change before the site is rebuilt.")
	_ = vip.BindPFlag("debounce", command.Flags().Lookup("debounce"))
}
