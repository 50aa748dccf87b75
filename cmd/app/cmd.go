// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"flag"
	"strings"

	"github.com/gardener/docnav/cmd/gendocs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// EnvPrefix prefixes the environment variables overriding flag defaults
const EnvPrefix = "DOCNAV"

var vip *viper.Viper

// NewCommand creates a new root command and propagates
// the context to its Run callback closure
func NewCommand(ctx context.Context) *cobra.Command {
	vip = newViper()
	cmd := &cobra.Command{
		Use:   "docnav",
		Short: "Assemble a documentation site from a site configuration and content documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return exec(ctx, vip, cmd.OutOrStdout())
		},
	}
	configureFlags(cmd)

	cmd.AddCommand(newWatchCmd(ctx))
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(gendocs.NewGenCmdDocs())

	if flag.CommandLine.Lookup("v") == nil {
		klog.InitFlags(nil)
	}
	AddFlags(cmd)

	return cmd
}

// flags that are not set are looked up in DOCNAV_* environment variables
// (e.g. DOCNAV_CACHE_DIR for --cache-dir) and then in the tool configuration file
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// AddFlags adds go flags to rootCmd
func AddFlags(rootCmd *cobra.Command) {
	flag.CommandLine.VisitAll(func(gf *flag.Flag) {
		if rootCmd.PersistentFlags().Lookup(gf.Name) == nil {
			rootCmd.PersistentFlags().AddGoFlag(gf)
		}
	})
}
