// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Parse decodes a site configuration. Unknown properties are rejected.
// The result is not validated, see ValidateConfig.
func Parse(b []byte) (*SiteConfig, error) {
	cfg := &SiteConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("configuration is empty")
		}
		return nil, &ConfigError{Err: err}
	}
	return cfg, nil
}

// Load reads, parses and validates the site configuration file at path.
// A relative content directory is resolved against the directory of the file.
func Load(path string) (*SiteConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Err: err}
	}
	cfg, err := Parse(b)
	if err != nil {
		var cErr *ConfigError
		if errors.As(err, &cErr) {
			cErr.Source = path
		}
		return nil, err
	}
	if err = ValidateConfig(cfg); err != nil {
		var cErr *ConfigError
		if errors.As(err, &cErr) {
			cErr.Source = path
		}
		return nil, err
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = DefaultContentDir
	}
	if !filepath.IsAbs(cfg.ContentDir) {
		cfg.ContentDir = filepath.Join(filepath.Dir(path), filepath.FromSlash(cfg.ContentDir))
	}
	klog.V(4).Infof("loaded site configuration %s, content directory %s", path, cfg.ContentDir)
	return cfg, nil
}

// Serialize encodes a site configuration as YAML
func Serialize(cfg *SiteConfig) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to serialize site configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
