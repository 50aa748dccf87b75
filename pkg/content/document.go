// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/gardener/docnav/pkg/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document is a content file of the site
type Document struct {
	// Path relative to the content root, slash separated
	Path string
	// Slug is the URL path of the document without leading and trailing slashes
	Slug string
	// Title of the document
	Title string
	// Frontmatter as found in the source
	Frontmatter map[string]interface{}
	// Body is the source without frontmatter
	Body []byte
	// Sidebar holds the navigation hints from the frontmatter
	Sidebar SidebarMeta
	// Draft documents are excluded from builds by default
	Draft bool
}

// SidebarMeta are the `sidebar` frontmatter properties of a document
type SidebarMeta struct {
	// Label overrides the title in autogenerated groups
	Label string
	// Order sorts the document before unordered siblings in autogenerated groups
	Order *int
	// Hidden excludes the document from autogenerated groups
	Hidden bool
	// Badge is displayed next to the label
	Badge string
}

var titleCaser = cases.Title(language.English)

// NewDocument parses the source of the content file at path
func NewDocument(p string, source []byte) (*Document, error) {
	md, err := markdown.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", p, err)
	}
	doc := &Document{
		Path:        p,
		Frontmatter: md.Meta,
		Body:        md.Body,
	}
	if s, ok := md.Meta["slug"].(string); ok && strings.TrimSpace(s) != "" {
		if doc.Slug, err = cleanSlug(s); err != nil {
			return nil, fmt.Errorf("invalid slug in %s: %w", p, err)
		}
	} else {
		doc.Slug = Slugify(p)
	}
	switch {
	case stringValue(md.Meta["title"]) != "":
		doc.Title = stringValue(md.Meta["title"])
	case md.Heading != "":
		doc.Title = md.Heading
	default:
		doc.Title = ComputeTitle(p)
	}
	if draft, ok := md.Meta["draft"].(bool); ok {
		doc.Draft = draft
	}
	if sb, ok := md.Meta["sidebar"].(map[string]interface{}); ok {
		doc.Sidebar = sidebarMeta(sb)
	}
	return doc, nil
}

// slugs are URL paths below the site root, relative segments are not allowed
func cleanSlug(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, segment := range strings.Split(s, "/") {
		if segment == ".." {
			return "", fmt.Errorf("slug %q must not contain '..' segments", s)
		}
	}
	return strings.Trim(path.Clean("/"+s), "/"), nil
}

// Slugify derives the slug of a content file from its path
func Slugify(p string) string {
	s := strings.TrimSuffix(p, path.Ext(p))
	s = strings.ToLower(strings.Trim(s, "/"))
	s = strings.ReplaceAll(s, " ", "-")
	if s == "index" {
		return ""
	}
	return strings.TrimSuffix(s, "/index")
}

// ComputeTitle determines a title from the file name, or from the parent
// directory name for index files. `-` and `_` become spaces and the
// result is title cased.
func ComputeTitle(p string) string {
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.EqualFold(name, "index") {
		name = path.Base(path.Dir(p))
		if name == "." || name == "/" {
			name = "home"
		}
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return titleCaser.String(name)
}

func sidebarMeta(sb map[string]interface{}) SidebarMeta {
	meta := SidebarMeta{
		Label: stringValue(sb["label"]),
	}
	if hidden, ok := sb["hidden"].(bool); ok {
		meta.Hidden = hidden
	}
	if order, ok := intValue(sb["order"]); ok {
		meta.Order = &order
	}
	switch b := sb["badge"].(type) {
	case string:
		meta.Badge = b
	case map[string]interface{}:
		meta.Badge = stringValue(b["text"])
	}
	return meta
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
