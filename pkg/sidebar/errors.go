// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package sidebar

import (
	"fmt"
	"strings"
)

// BrokenLink is a sidebar link or directory that could not be resolved
type BrokenLink struct {
	Link   string
	Label  string
	Reason string
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%q (%s): %s", b.Label, b.Link, b.Reason)
}

// BrokenLinkError lists every unresolved sidebar link in declaration order
type BrokenLinkError struct {
	Links []BrokenLink
}

func (e *BrokenLinkError) Error() string {
	msgs := make([]string, 0, len(e.Links))
	for _, l := range e.Links {
		msgs = append(msgs, l.String())
	}
	return fmt.Sprintf("%d broken sidebar link(s): %s", len(e.Links), strings.Join(msgs, "; "))
}
