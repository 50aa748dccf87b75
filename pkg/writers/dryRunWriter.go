// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package writers

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// DryRunWriter records writes instead of performing them and prints
// the resulting file tree on Flush
type DryRunWriter struct {
	out   io.Writer
	files []*file
	t1    time.Time
	mux   sync.Mutex
}

type file struct {
	path string
	size int
}

// NewDryRunWriter creates a DryRunWriter printing to w
func NewDryRunWriter(w io.Writer) *DryRunWriter {
	return &DryRunWriter{
		out: w,
		t1:  time.Now(),
	}
}

func (d *DryRunWriter) Write(name, p string, content []byte) error {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.files = append(d.files, &file{
		path: strings.TrimPrefix(path.Join(p, name), "/"),
		size: len(content),
	})
	return nil
}

// Flush formats and writes the dry-run result to the underlying writer
func (d *DryRunWriter) Flush() error {
	d.mux.Lock()
	defer d.mux.Unlock()
	var b bytes.Buffer
	sort.Slice(d.files, func(i, j int) bool { return d.files[i].path < d.files[j].path })
	format(d.files, &b)
	total := 0
	for _, f := range d.files {
		total += f.size
	}
	fmt.Fprintf(&b, "\n%d files, %d bytes\n", len(d.files), total)
	fmt.Fprintf(&b, "Build finished in %f seconds\n", time.Since(d.t1).Seconds())
	_, err := d.out.Write(b.Bytes())
	return err
}

// format prints files as an indented tree
func format(files []*file, b *bytes.Buffer) {
	seen := map[string]bool{}
	for _, f := range files {
		segments := strings.Split(f.path, "/")
		for i, s := range segments {
			p := strings.Join(segments[:i+1], "/")
			if seen[p] {
				continue
			}
			seen[p] = true
			b.WriteString(strings.Repeat("  ", i))
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
}
