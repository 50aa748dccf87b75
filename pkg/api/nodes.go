// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/utils/pointer"
)

// DecideType sets the node Type from the variant properties that are present
func (n *SidebarNode) DecideType() error {
	n.Type = ""
	var candidates []string
	if n.Link != "" {
		candidates = append(candidates, string(NodeTypeLink))
	}
	if n.Items != nil {
		candidates = append(candidates, string(NodeTypeGroup))
	}
	if n.Autogenerate != nil {
		candidates = append(candidates, string(NodeTypeAutogenerate))
	}
	switch len(candidates) {
	case 0:
		return fmt.Errorf("node %q has none of link, items or autogenerate", n.Label)
	case 1:
		n.Type = NodeType(candidates[0])
		return nil
	default:
		return fmt.Errorf("node %q is trying to be %s", n.Label, strings.Join(candidates, ","))
	}
}

// IsGroup reports whether the node is an explicit or an autogenerated group
func (n *SidebarNode) IsGroup() bool {
	return n.Type == NodeTypeGroup || n.Type == NodeTypeAutogenerate
}

func (n *SidebarNode) String() string {
	b, err := yaml.Marshal(n)
	if err != nil {
		return n.Label
	}
	return string(b)
}

// PaginationEnabled reports whether previous/next links are generated
func (c *SiteConfig) PaginationEnabled() bool {
	return pointer.BoolDeref(c.Pagination, true)
}

// LastUpdatedEnabled reports whether last updated dates are read from git history
func (c *SiteConfig) LastUpdatedEnabled() bool {
	return pointer.BoolDeref(c.LastUpdated, false)
}

// EditBaseURL returns the edit link base URL or an empty string
func (c *SiteConfig) EditBaseURL() string {
	if c.EditLink == nil {
		return ""
	}
	return c.EditLink.BaseURL
}
