// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gardener/docnav/cmd/app"
	"github.com/joho/godotenv"
	"k8s.io/klog/v2"
)

func main() {
	// DOCNAV_* variables may come from a .env file in the working directory
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		klog.Warningf("failed to load .env file: %v\n", err)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := app.NewCommand(ctx).Execute()
	cancel()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
