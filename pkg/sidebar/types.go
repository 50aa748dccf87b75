// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package sidebar

import (
	"context"

	"gopkg.in/yaml.v3"
)

// EntryType is the kind of a resolved sidebar entry
type EntryType string

const (
	// EntryTypeLink is a navigation item
	EntryTypeLink EntryType = "link"
	// EntryTypeGroup is a labelled list of entries
	EntryTypeGroup EntryType = "group"
)

// Sidebar is the resolved navigation tree of a site
type Sidebar struct {
	Entries []*Entry `yaml:"entries"`
}

// Entry is a resolved sidebar node
type Entry struct {
	Type  EntryType `yaml:"type"`
	Label string    `yaml:"label"`
	// Link is the canonical root relative URL of a document or an external URL
	Link  string `yaml:"link,omitempty"`
	Badge string `yaml:"badge,omitempty"`
	// External marks links leaving the site
	External  bool `yaml:"external,omitempty"`
	Collapsed bool `yaml:"collapsed,omitempty"`
	// Autogenerated marks entries derived from a content directory
	Autogenerated bool `yaml:"autogenerated,omitempty"`
	// Directory is the content directory of an autogenerated group
	Directory string   `yaml:"directory,omitempty"`
	Entries   []*Entry `yaml:"entries,omitempty"`
	// Slug of the linked document, empty for external links
	Slug string `yaml:"-"`
}

// Validator checks external links
//
//counterfeiter:generate . Validator
type Validator interface {
	// Validate returns an error if link must be reported as broken
	Validate(ctx context.Context, link string) error
}

// Options configure the sidebar build
type Options struct {
	// Workers bounds the number of directories expanded and links validated in parallel
	Workers int
	// Validator checks external links, nil to skip external validation
	Validator Validator
}

// Flatten returns the link entries in depth-first order
func (s *Sidebar) Flatten() []*Entry {
	var out []*Entry
	var walk func(entries []*Entry)
	walk = func(entries []*Entry) {
		for _, e := range entries {
			if e.Type == EntryTypeLink {
				out = append(out, e)
				continue
			}
			walk(e.Entries)
		}
	}
	walk(s.Entries)
	return out
}

// String serializes the sidebar as YAML
func (s *Sidebar) String() string {
	b, err := yaml.Marshal(s)
	if err != nil {
		return err.Error()
	}
	return string(b)
}
