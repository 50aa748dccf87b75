// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"k8s.io/klog/v2"
)

// DefaultDebounce is the quiet period after the last change before a rebuild
const DefaultDebounce = 500 * time.Millisecond

// BuildFunc builds the site
type BuildFunc func(ctx context.Context) error

// Watcher rebuilds a site whenever its configuration or content changes.
// Rebuilds are debounced and never run concurrently.
type Watcher struct {
	// ConfigFile is the site configuration file
	ConfigFile string
	// ContentDir is watched recursively
	ContentDir string
	// Debounce is the quiet period before a rebuild, DefaultDebounce if zero
	Debounce time.Duration
	Build    BuildFunc

	fs afero.Fs
}

// Run performs an initial build and then rebuilds on changes until ctx is done.
// Build failures are logged and do not stop watching.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Build == nil {
		return errors.New("invalid argument: build function is nil")
	}
	if w.fs == nil {
		w.fs = afero.NewOsFs()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// the directory of the configuration file is watched since editors replace files on save
	configFile, err := filepath.Abs(w.ConfigFile)
	if err != nil {
		return err
	}
	if err = watcher.Add(filepath.Dir(configFile)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(configFile), err)
	}
	if err = w.addTree(watcher, w.ContentDir); err != nil {
		return err
	}
	klog.Infof("watching %s and %s for changes\n", w.ConfigFile, w.ContentDir)

	w.rebuild(ctx)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event, configFile) {
				continue
			}
			klog.V(4).Infof("%s %s\n", event.Op, event.Name)
			if event.Has(fsnotify.Create) {
				if isDir, _ := afero.IsDir(w.fs, event.Name); isDir {
					if err := w.addTree(watcher, event.Name); err != nil {
						klog.Warningf("%v\n", err)
					}
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watcher error: %v\n", err)
		case <-timer.C:
			w.rebuild(ctx)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	start := time.Now()
	if err := w.Build(ctx); err != nil {
		klog.Errorf("build failed: %v\n", err)
		return
	}
	klog.Infof("build finished in %s\n", time.Since(start).Round(time.Millisecond))
}

// relevant filters events of the configuration directory down to the configuration file
func (w *Watcher) relevant(event fsnotify.Event, configFile string) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if filepath.Dir(name) == filepath.Dir(configFile) && name != configFile {
		contentDir, err := filepath.Abs(w.ContentDir)
		return err == nil && filepath.Dir(name) == contentDir
	}
	return true
}

// addTree watches dir and all its sub-directories
func (w *Watcher) addTree(watcher *fsnotify.Watcher, dir string) error {
	return afero.Walk(w.fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		if !info.IsDir() {
			return nil
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}
