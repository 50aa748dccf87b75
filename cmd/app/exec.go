// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gardener/docnav/cmd/configuration"
	"github.com/gardener/docnav/pkg/api"
	"github.com/gardener/docnav/pkg/content"
	"github.com/gardener/docnav/pkg/gitinfo"
	"github.com/gardener/docnav/pkg/httpclient"
	"github.com/gardener/docnav/pkg/linkvalidator"
	"github.com/gardener/docnav/pkg/metrics"
	"github.com/gardener/docnav/pkg/sidebar"
	"github.com/gardener/docnav/pkg/site"
	"github.com/gardener/docnav/pkg/writers"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

func exec(ctx context.Context, vip *viper.Viper, out io.Writer) error {
	options, err := loadOptions(vip)
	if err != nil {
		return err
	}
	b, err := newBuilder(options.buildOptions, out)
	if err != nil {
		return err
	}
	return b.build(ctx)
}

func loadOptions(vip *viper.Viper) (*options, error) {
	if err := configuration.Load(vip); err != nil {
		return nil, err
	}
	options := &options{}
	if err := vip.Unmarshal(options); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	if options.DestinationPath == "" && !options.DryRun && !options.Resolve {
		return nil, errors.New(`required flag(s) "destination" not set`)
	}
	return options, nil
}

// builder runs the site build pipeline: load configuration, scan content,
// build the sidebar, assemble and write the site
type builder struct {
	buildOptions
	fs        afero.Fs
	out       io.Writer
	validator sidebar.Validator
}

func newBuilder(o buildOptions, out io.Writer) (*builder, error) {
	b := &builder{
		buildOptions: o,
		fs:           afero.NewOsFs(),
		out:          out,
	}
	if o.ValidateExternalLinks {
		client := metrics.InstrumentValidationClient(httpclient.New(o.CacheDir))
		v, err := linkvalidator.New(client, o.HostsToReport)
		if err != nil {
			return nil, err
		}
		b.validator = v
	}
	return b, nil
}

func (b *builder) build(ctx context.Context) (err error) {
	m := metrics.Build{Start: time.Now()}
	defer func() {
		m.Result = result(err)
		metrics.ObserveBuild(m)
		if err == nil {
			klog.Infof("built %d pages in %s\n", m.Pages, time.Since(m.Start).Round(time.Millisecond))
		}
	}()

	klog.Infof("Site configuration: %s\n", b.ConfigPath)
	cfg, err := api.Load(b.ConfigPath)
	if err != nil {
		return err
	}
	if b.ContentDir != "" {
		cfg.ContentDir = b.ContentDir
	}
	klog.Infof("Content dir: %s\n", cfg.ContentDir)
	idx, err := content.Scan(ctx, content.NewSource(b.fs, cfg.ContentDir), content.Options{
		Workers:       b.ScanWorkers,
		Formats:       b.ContentFormats,
		IncludeDrafts: b.IncludeDrafts,
	})
	if err != nil {
		return err
	}
	sb, err := sidebar.Build(ctx, cfg.Sidebar, idx, sidebar.Options{
		Workers:   b.ValidationWorkers,
		Validator: b.validator,
	})
	if err != nil {
		var brokenErr *sidebar.BrokenLinkError
		if errors.As(err, &brokenErr) {
			m.BrokenLinks = len(brokenErr.Links)
		}
		return err
	}
	if b.Resolve {
		return b.printResolved(cfg, sb)
	}

	s, err := site.Assemble(cfg, sb, idx, b.siteOptions(cfg))
	if err != nil {
		return err
	}
	m.Pages = len(s.Pages)
	if b.DryRun {
		w := writers.NewDryRunWriter(b.out)
		if err = site.Write(ctx, s, w); err != nil {
			return err
		}
		return w.Flush()
	}
	klog.Infof("Output dir: %s\n", b.DestinationPath)
	return site.Write(ctx, s, &writers.FSWriter{Fs: b.fs, Root: b.DestinationPath})
}

// printResolved writes the effective site configuration and the resolved
// sidebar as two YAML documents
func (b *builder) printResolved(cfg *api.SiteConfig, sb *sidebar.Sidebar) error {
	c, err := api.Serialize(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(b.out, "%s---\n%s", c, sb.String())
	return err
}

func (b *builder) siteOptions(cfg *api.SiteConfig) site.Options {
	opts := site.Options{
		PrettyURLs: b.PrettyURLs,
		ContentDir: cfg.ContentDir,
	}
	var repo *gitinfo.Repository
	if cfg.LastUpdatedEnabled() {
		repo = gitinfo.New(cfg.ContentDir)
		opts.GitInfo = repo
	}
	if cfg.EditBaseURL() != "" {
		opts.EditPathPrefix = b.editPathPrefix(cfg.ContentDir, repo)
	}
	return opts
}

// edit links address content files relative to the project root, which is the directory
// of the site configuration or, for content outside of it, the git work tree
func (b *builder) editPathPrefix(contentDir string, repo *gitinfo.Repository) string {
	configDir, err := filepath.Abs(filepath.Dir(b.ConfigPath))
	if err == nil {
		var abs, rel string
		if abs, err = filepath.Abs(contentDir); err == nil {
			rel, err = filepath.Rel(configDir, abs)
		}
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			if rel == "." {
				return ""
			}
			return filepath.ToSlash(rel)
		}
	}
	if repo == nil {
		repo = gitinfo.New(contentDir)
	}
	rel, err := repo.RelPath(contentDir)
	if err != nil {
		klog.Warningf("failed to resolve edit path of %s: %v\n", contentDir, err)
		return ""
	}
	if rel == "." {
		return ""
	}
	return rel
}

func result(err error) string {
	var (
		cfgErr    *api.ConfigError
		brokenErr *sidebar.BrokenLinkError
	)
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.As(err, &cfgErr):
		return metrics.ResultConfigError
	case errors.As(err, &brokenErr):
		return metrics.ResultBrokenLinks
	}
	return metrics.ResultError
}
