// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package sidebar

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/gardener/docnav/pkg/api"
	"github.com/gardener/docnav/pkg/content"
	"github.com/gardener/docnav/pkg/jobs"
	"k8s.io/klog/v2"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate -header ../../license_prefix.txt

const reasonDirectoryNotFound = "directory not found"

// slot holds the outcome of a check performed on a node, in walk order
type slot struct {
	broken *BrokenLink
}

type autogenerateTask struct {
	entry *Entry
	dir   string
	slot  *slot
}

type validationTask struct {
	entry *Entry
	slot  *slot
}

type builder struct {
	idx         *content.Index
	slots       []*slot
	autogen     []*autogenerateTask
	validations []*validationTask
	validate    bool
}

// Build resolves the declared sidebar nodes against the content index.
// Declared order is preserved. Every unresolved link and missing autogenerate
// directory is reported in a single *BrokenLinkError.
func Build(ctx context.Context, nodes []*api.SidebarNode, idx *content.Index, opts Options) (*Sidebar, error) {
	b := &builder{idx: idx, validate: opts.Validator != nil}
	entries, err := b.resolve(nodes)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	expand := &jobs.Job[*autogenerateTask]{
		ID:         "Autogenerate",
		MaxWorkers: workers,
		MinWorkers: 1,
		Worker: jobs.WorkerFunc[*autogenerateTask](func(_ context.Context, t *autogenerateTask) error {
			b.expand(t)
			return nil
		}),
	}
	if err = expand.Dispatch(ctx, b.autogen); err != nil {
		return nil, err
	}
	if b.validate {
		check := &jobs.Job[*validationTask]{
			ID:         "Validate",
			MaxWorkers: workers,
			MinWorkers: 1,
			Worker: jobs.WorkerFunc[*validationTask](func(ctx context.Context, t *validationTask) error {
				if err := opts.Validator.Validate(ctx, t.entry.Link); err != nil {
					t.slot.broken = &BrokenLink{Link: t.entry.Link, Label: t.entry.Label, Reason: err.Error()}
				}
				return nil
			}),
		}
		if err = check.Dispatch(ctx, b.validations); err != nil {
			return nil, err
		}
	}
	var broken []BrokenLink
	for _, s := range b.slots {
		if s.broken != nil {
			broken = append(broken, *s.broken)
		}
	}
	if len(broken) > 0 {
		return nil, &BrokenLinkError{Links: broken}
	}
	return &Sidebar{Entries: entries}, nil
}

func (b *builder) newSlot() *slot {
	s := &slot{}
	b.slots = append(b.slots, s)
	return s
}

func (b *builder) resolve(nodes []*api.SidebarNode) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if node.Type == "" {
			if err := node.DecideType(); err != nil {
				return nil, &api.ConfigError{Err: err}
			}
		}
		switch node.Type {
		case api.NodeTypeLink:
			entries = append(entries, b.resolveLink(node))
		case api.NodeTypeGroup:
			children, err := b.resolve(node.Items)
			if err != nil {
				return nil, err
			}
			entries = append(entries, &Entry{
				Type:      EntryTypeGroup,
				Label:     node.Label,
				Badge:     node.Badge,
				Collapsed: node.Collapsed,
				Entries:   children,
			})
		case api.NodeTypeAutogenerate:
			dir := strings.Trim(path.Clean("/"+node.Autogenerate.Directory), "/")
			e := &Entry{
				Type:          EntryTypeGroup,
				Label:         node.Label,
				Badge:         node.Badge,
				Collapsed:     node.Autogenerate.Collapsed,
				Autogenerated: true,
				Directory:     dir,
			}
			b.autogen = append(b.autogen, &autogenerateTask{entry: e, dir: dir, slot: b.newSlot()})
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (b *builder) resolveLink(node *api.SidebarNode) *Entry {
	e := &Entry{Type: EntryTypeLink, Label: node.Label, Badge: node.Badge, Link: node.Link}
	s := b.newSlot()
	if IsExternal(node.Link) {
		e.External = true
		if b.validate {
			b.validations = append(b.validations, &validationTask{entry: e, slot: s})
		}
		return e
	}
	slug, fragment := normalize(node.Link)
	doc, ok := b.idx.Lookup(slug)
	if !ok {
		s.broken = &BrokenLink{Link: node.Link, Label: node.Label, Reason: "no document with slug /" + slug}
		return e
	}
	e.Slug = doc.Slug
	e.Link = Canonical(doc.Slug) + fragment
	return e
}

func (b *builder) expand(t *autogenerateTask) {
	if !b.idx.HasDir(t.dir) {
		t.slot.broken = &BrokenLink{Link: t.dir, Label: t.entry.Label, Reason: reasonDirectoryNotFound}
		return
	}
	t.entry.Entries = expandDir(t.dir, b.idx.Under(t.dir), t.entry.Collapsed)
	klog.V(6).Infof("autogenerated %d entries from %s\n", len(t.entry.Entries), t.dir)
}

type item struct {
	entry *Entry
	order *int
	path  string
}

// expandDir builds the entries of a directory from the documents located in it
// and its sub-directories. Documents with an order come first, then the rest
// sorted by path. Sub-directories become groups labelled with their name.
func expandDir(dir string, docs []*content.Document, collapsed bool) []*Entry {
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}
	var items []*item
	subdirs := map[string][]*content.Document{}
	for _, doc := range docs {
		rel := strings.TrimPrefix(doc.Path, prefix)
		if i := strings.Index(rel, "/"); i >= 0 {
			sub := prefix + rel[:i]
			subdirs[sub] = append(subdirs[sub], doc)
			continue
		}
		if doc.Sidebar.Hidden {
			continue
		}
		label := doc.Sidebar.Label
		if label == "" {
			label = doc.Title
		}
		items = append(items, &item{
			entry: &Entry{
				Type:          EntryTypeLink,
				Label:         label,
				Link:          Canonical(doc.Slug),
				Badge:         doc.Sidebar.Badge,
				Autogenerated: true,
				Slug:          doc.Slug,
			},
			order: doc.Sidebar.Order,
			path:  doc.Path,
		})
	}
	for sub, subdocs := range subdirs {
		children := expandDir(sub, subdocs, collapsed)
		if len(children) == 0 {
			continue
		}
		items = append(items, &item{
			entry: &Entry{
				Type:          EntryTypeGroup,
				Label:         path.Base(sub),
				Collapsed:     collapsed,
				Autogenerated: true,
				Directory:     sub,
				Entries:       children,
			},
			path: sub,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.order != nil && b.order != nil:
			if *a.order != *b.order {
				return *a.order < *b.order
			}
		case a.order != nil:
			return true
		case b.order != nil:
			return false
		}
		return a.path < b.path
	})
	entries := make([]*Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, it.entry)
	}
	return entries
}

// IsExternal reports whether link points outside of the site
func IsExternal(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme != "" || u.Host != ""
}

// normalize strips query and fragment from an internal link and returns the
// slug it refers to together with the fragment
func normalize(link string) (string, string) {
	fragment := ""
	if i := strings.Index(link, "#"); i >= 0 {
		fragment = link[i:]
		link = link[:i]
	}
	if i := strings.Index(link, "?"); i >= 0 {
		link = link[:i]
	}
	return strings.Trim(path.Clean("/"+link), "/"), fragment
}

// Canonical returns the root relative URL of a slug
func Canonical(slug string) string {
	if slug == "" {
		return "/"
	}
	return fmt.Sprintf("/%s/", slug)
}
