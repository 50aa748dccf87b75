// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gardener/docnav/pkg/markdown"
	"github.com/gardener/docnav/pkg/sidebar"
	"github.com/gardener/docnav/pkg/writers"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Write writes every page with its normalized frontmatter followed by
// the navigation manifest
func Write(ctx context.Context, s *Site, w writers.Writer) error {
	for _, p := range s.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		fm, err := markdown.MarshalFrontMatter(p.frontmatter())
		if err != nil {
			return fmt.Errorf("failed to serialize frontmatter of %s: %w", p.Source, err)
		}
		if err = w.Write(p.Name, p.Path, markdown.InsertFrontMatter(fm, p.Body)); err != nil {
			return fmt.Errorf("failed to write page %s: %w", p.Source, err)
		}
		klog.V(6).Infof("written %s/%s\n", p.Path, p.Name)
	}
	b, err := s.Nav()
	if err != nil {
		return err
	}
	return w.Write(NavFileName, "", b)
}

// Nav serializes the navigation manifest of the site
func (s *Site) Nav() ([]byte, error) {
	n := nav{
		Title:       s.Title,
		Description: s.Description,
		Social:      s.Social,
		Sidebar:     []*sidebar.Entry{},
	}
	if s.Sidebar != nil && s.Sidebar.Entries != nil {
		n.Sidebar = s.Sidebar.Entries
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("failed to serialize navigation: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Page) frontmatter() map[string]interface{} {
	fm := make(map[string]interface{}, len(p.Frontmatter)+4)
	for k, v := range p.Frontmatter {
		fm[k] = v
	}
	fm["title"] = p.Title
	delete(fm, "prev")
	delete(fm, "next")
	if p.Prev != nil {
		fm["prev"] = p.Prev
	} else if p.SuppressPrev {
		fm["prev"] = false
	}
	if p.Next != nil {
		fm["next"] = p.Next
	} else if p.SuppressNext {
		fm["next"] = false
	}
	if p.EditURL != "" {
		fm["editUrl"] = p.EditURL
	}
	if p.LastUpdated != nil {
		fm["lastUpdated"] = p.LastUpdated.Format(time.RFC3339)
	}
	return fm
}
