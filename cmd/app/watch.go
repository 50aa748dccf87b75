// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gardener/docnav/pkg/api"
	"github.com/gardener/docnav/pkg/metrics"
	"github.com/gardener/docnav/pkg/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

func newWatchCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the site whenever its configuration or content changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return watchExec(ctx, vip, cmd.OutOrStdout())
		},
	}
	configureWatchFlags(cmd)
	return cmd
}

func watchExec(ctx context.Context, vip *viper.Viper, out io.Writer) error {
	options, err := loadOptions(vip)
	if err != nil {
		return err
	}
	if options.MetricsAddress != "" {
		metrics.RegisterBuildMetrics(nil)
		metrics.RegisterValidationMetrics(nil)
		serveMetrics(ctx, options.MetricsAddress)
	}
	contentDir := options.ContentDir
	if contentDir == "" {
		// the content directory is fixed for the lifetime of the watch
		cfg, err := api.Load(options.ConfigPath)
		if err != nil {
			return err
		}
		contentDir = cfg.ContentDir
	}
	b, err := newBuilder(options.buildOptions, out)
	if err != nil {
		return err
	}
	w := &watch.Watcher{
		ConfigFile: options.ConfigPath,
		ContentDir: contentDir,
		Debounce:   options.Debounce,
		Build:      b.build,
	}
	return w.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		klog.Infof("serving metrics on %s/metrics\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("metrics server: %v\n", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
