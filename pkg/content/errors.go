// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"
	"strings"
)

// Collision is a slug claimed by more than one document
type Collision struct {
	Slug  string
	Paths []string
}

// CollisionError signals documents that map to the same slug
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	msgs := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		msgs = append(msgs, fmt.Sprintf("slug %q is used by %s", "/"+c.Slug, strings.Join(c.Paths, ", ")))
	}
	return fmt.Sprintf("%d slug collision(s): %s", len(e.Collisions), strings.Join(msgs, "; "))
}
