// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

// DefaultContentDir is the content root used when a site configuration does not declare one
const DefaultContentDir = "src/content/docs"

// SiteConfig models a site configuration declaring the site title, social links
// and the sidebar navigation structure.
type SiteConfig struct {
	// Title of the site.
	//
	// Mandatory
	Title string `yaml:"title"`
	// Description of the site, used in the navigation manifest
	//
	// Optional
	Description string `yaml:"description,omitempty"`
	// ContentDir is the directory holding content documents. Relative paths
	// are resolved against the directory of the configuration file.
	//
	// Optional, defaults to DefaultContentDir
	ContentDir string `yaml:"contentDir,omitempty"`
	// Social maps a platform name (e.g. github) to the URL of the project on that platform
	//
	// Optional
	Social map[string]string `yaml:"social,omitempty"`
	// EditLink configures the "edit this page" links
	//
	// Optional
	EditLink *EditLink `yaml:"editLink,omitempty"`
	// LastUpdated enables last updated dates taken from git history
	//
	// Optional, defaults to false
	LastUpdated *bool `yaml:"lastUpdated,omitempty"`
	// Pagination enables previous/next page links
	//
	// Optional, defaults to true
	Pagination *bool `yaml:"pagination,omitempty"`
	// Sidebar is the ordered navigation structure
	//
	// Optional
	Sidebar []*SidebarNode `yaml:"sidebar,omitempty"`
}

// EditLink configures edit links of pages
type EditLink struct {
	// BaseURL is joined with the content file path of a page
	BaseURL string `yaml:"baseUrl"`
}

// NodeType is the kind of sidebar node decided from its properties
type NodeType string

const (
	// NodeTypeLink is a single navigation item pointing to a document or an external URL
	NodeTypeLink NodeType = "link"
	// NodeTypeGroup is an explicitly listed group of nodes
	NodeTypeGroup NodeType = "group"
	// NodeTypeAutogenerate is a group whose items are derived from a content directory
	NodeTypeAutogenerate NodeType = "autogenerate"
)

// LinkType represents a sidebar item
type LinkType struct {
	// Link is a root relative path to a content document or an absolute URL
	Link string `yaml:"link,omitempty"`
}

// GroupType represents an explicit group
type GroupType struct {
	// Items are the ordered children of the group
	Items []*SidebarNode `yaml:"items,omitempty"`
	// Collapsed renders the group collapsed by default
	Collapsed bool `yaml:"collapsed,omitempty"`
}

// AutogenerateType represents an autogenerated group
type AutogenerateType struct {
	Autogenerate *Autogenerate `yaml:"autogenerate,omitempty"`
}

// Autogenerate declares the content directory a group is generated from
type Autogenerate struct {
	// Directory relative to the content root
	Directory string `yaml:"directory"`
	// Collapsed renders the generated group and its sub-groups collapsed by default
	Collapsed bool `yaml:"collapsed,omitempty"`
}

// SidebarNode is a variant over a link item, an explicit group and an
// autogenerated group. Exactly one of Link, Items and Autogenerate must be set.
type SidebarNode struct {
	// Label is the text displayed for the node
	Label string `yaml:"label"`

	LinkType `yaml:",inline"`

	GroupType `yaml:",inline"`

	AutogenerateType `yaml:",inline"`

	// Badge is an optional short text displayed next to the label
	Badge string `yaml:"badge,omitempty"`
	// Type is decided from the node properties, see DecideType
	Type NodeType `yaml:"-"`
}
