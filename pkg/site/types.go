// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"time"

	"github.com/gardener/docnav/pkg/gitinfo"
	"github.com/gardener/docnav/pkg/sidebar"
)

// NavFileName is the name of the navigation manifest written at the output root
const NavFileName = "_nav.yaml"

// Site is the navigable output tree of a documentation site
type Site struct {
	Title       string
	Description string
	// Social links sorted by platform
	Social  []SocialLink
	Sidebar *sidebar.Sidebar
	// Pages sorted by slug
	Pages []*Page
}

// SocialLink is a link to the project on a social platform
type SocialLink struct {
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
}

// Page is an output document
type Page struct {
	Slug string
	// Source is the content root relative path of the document
	Source string
	// Path is the output directory relative to the destination
	Path string
	// Name is the output file name
	Name        string
	Title       string
	Frontmatter map[string]interface{}
	Body        []byte
	Prev        *PageLink
	Next        *PageLink
	// SuppressPrev and SuppressNext are set when the document opts out of pagination links
	SuppressPrev bool
	SuppressNext bool
	EditURL      string
	LastUpdated  *time.Time
}

// PageLink points to a neighbouring page
type PageLink struct {
	Label string `yaml:"label"`
	Link  string `yaml:"link"`
}

// Options configure the assembly
type Options struct {
	// PrettyURLs writes pages as <slug>/index.md instead of <slug>.md
	PrettyURLs bool
	// ContentDir is the content root on disk, used to read git information
	ContentDir string
	// EditPathPrefix is prepended to source paths in edit URLs,
	// e.g. the content root relative to the repository
	EditPathPrefix string
	// GitInfo reads last updated dates, used when enabled in the site configuration
	GitInfo gitinfo.Reader
}

type nav struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description,omitempty"`
	Social      []SocialLink     `yaml:"social,omitempty"`
	Sidebar     []*sidebar.Entry `yaml:"sidebar"`
}
