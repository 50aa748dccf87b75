// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"errors"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gardener/docnav/pkg/api"
	"github.com/gardener/docnav/pkg/content"
	"github.com/gardener/docnav/pkg/sidebar"
	"k8s.io/klog/v2"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Assemble combines a validated site configuration, its resolved sidebar and
// the content index into a Site. The result depends only on its inputs.
func Assemble(cfg *api.SiteConfig, sb *sidebar.Sidebar, idx *content.Index, opts Options) (*Site, error) {
	if cfg == nil || sb == nil || idx == nil {
		return nil, errors.New("invalid argument: site configuration, sidebar and content index are required")
	}
	s := &Site{
		Title:       cfg.Title,
		Description: cfg.Description,
		Social:      socialLinks(cfg.Social),
		Sidebar:     sb,
	}
	order := paginationOrder(sb)
	for _, doc := range idx.Documents() {
		p := &Page{
			Slug:        doc.Slug,
			Source:      doc.Path,
			Title:       doc.Title,
			Frontmatter: doc.Frontmatter,
			Body:        doc.Body,
		}
		p.Path, p.Name = outputPath(doc.Slug, opts.PrettyURLs)
		if cfg.PaginationEnabled() {
			setNeighbours(p, order)
		}
		if base := cfg.EditBaseURL(); base != "" {
			p.EditURL = strings.TrimSuffix(base, "/") + "/" + path.Join(opts.EditPathPrefix, doc.Path)
		}
		if cfg.LastUpdatedEnabled() {
			p.LastUpdated = lastUpdated(doc, opts)
		}
		s.Pages = append(s.Pages, p)
	}
	sort.Slice(s.Pages, func(i, j int) bool { return s.Pages[i].Slug < s.Pages[j].Slug })
	return s, nil
}

func socialLinks(social map[string]string) []SocialLink {
	links := make([]SocialLink, 0, len(social))
	for platform, u := range social {
		links = append(links, SocialLink{Platform: platform, URL: u})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Platform < links[j].Platform })
	return links
}

func outputPath(slug string, pretty bool) (string, string) {
	if slug == "" {
		return "", "index.md"
	}
	if pretty {
		return slug, "index.md"
	}
	dir := path.Dir(slug)
	if dir == "." {
		dir = ""
	}
	return dir, path.Base(slug) + ".md"
}

// paginationOrder lists the internal sidebar links in reading order,
// keeping the first occurrence of each document
func paginationOrder(sb *sidebar.Sidebar) []*sidebar.Entry {
	seen := map[string]bool{}
	var order []*sidebar.Entry
	for _, e := range sb.Flatten() {
		if e.External || seen[e.Slug] {
			continue
		}
		seen[e.Slug] = true
		order = append(order, e)
	}
	return order
}

func setNeighbours(p *Page, order []*sidebar.Entry) {
	pos := -1
	for i, e := range order {
		if e.Slug == p.Slug {
			pos = i
			break
		}
	}
	if pos > 0 {
		p.Prev = &PageLink{Label: order[pos-1].Label, Link: order[pos-1].Link}
	}
	if pos >= 0 && pos < len(order)-1 {
		p.Next = &PageLink{Label: order[pos+1].Label, Link: order[pos+1].Link}
	}
	p.Prev, p.SuppressPrev = override(p.Prev, p.Frontmatter["prev"])
	p.Next, p.SuppressNext = override(p.Next, p.Frontmatter["next"])
}

// override applies a `prev` or `next` frontmatter value to a computed link.
// false removes the link, a string replaces its label and an object
// replaces label and link.
func override(l *PageLink, v interface{}) (*PageLink, bool) {
	switch o := v.(type) {
	case bool:
		if !o {
			return nil, true
		}
	case string:
		if l != nil {
			return &PageLink{Label: o, Link: l.Link}, false
		}
	case map[string]interface{}:
		res := &PageLink{}
		if l != nil {
			*res = *l
		}
		if label, ok := o["label"].(string); ok {
			res.Label = label
		}
		if link, ok := o["link"].(string); ok {
			res.Link = link
		}
		if res.Link == "" {
			return l, false
		}
		return res, false
	}
	return l, false
}

func lastUpdated(doc *content.Document, opts Options) *time.Time {
	switch v := doc.Frontmatter["lastUpdated"].(type) {
	case bool:
		if !v {
			return nil
		}
	case time.Time:
		t := v.UTC()
		return &t
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				t = t.UTC()
				return &t
			}
		}
		klog.Warningf("%s: invalid lastUpdated date %q\n", doc.Path, v)
	}
	if opts.GitInfo == nil {
		return nil
	}
	t, err := opts.GitInfo.LastUpdated(filepath.Join(opts.ContentDir, filepath.FromSlash(doc.Path)))
	if err != nil {
		klog.Warningf("failed to read last updated date of %s: %v\n", doc.Path, err)
		return nil
	}
	return t
}
