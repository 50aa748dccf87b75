// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gardener/docnav/pkg/jobs"
	"k8s.io/klog/v2"
)

// DefaultFormats are the extensions of content files
var DefaultFormats = []string{".md", ".mdx"}

// Options configure content scanning
type Options struct {
	// Workers is the number of documents loaded in parallel
	Workers int
	// Formats are the file extensions considered content, DefaultFormats if empty
	Formats []string
	// IncludeDrafts keeps documents with `draft: true` frontmatter
	IncludeDrafts bool
}

// Index is the set of content documents of a site, addressable by slug and by directory
type Index struct {
	docs   []*Document
	bySlug map[string]*Document
	dirs   map[string]struct{}
	src    Source
}

// NewIndex creates an index of the given documents. Documents are ordered by path.
// A *CollisionError is returned if two documents share a slug.
func NewIndex(docs ...*Document) (*Index, error) {
	idx := &Index{
		docs:   make([]*Document, len(docs)),
		bySlug: make(map[string]*Document, len(docs)),
		dirs:   map[string]struct{}{"": {}},
	}
	copy(idx.docs, docs)
	sort.Slice(idx.docs, func(i, j int) bool { return idx.docs[i].Path < idx.docs[j].Path })
	claims := map[string][]string{}
	for _, doc := range idx.docs {
		claims[doc.Slug] = append(claims[doc.Slug], doc.Path)
		idx.bySlug[doc.Slug] = doc
		for dir := path.Dir(doc.Path); dir != "." && dir != "/"; dir = path.Dir(dir) {
			idx.dirs[dir] = struct{}{}
		}
	}
	var collisions []Collision
	for slug, paths := range claims {
		if len(paths) > 1 {
			collisions = append(collisions, Collision{Slug: slug, Paths: paths})
		}
	}
	if len(collisions) > 0 {
		sort.Slice(collisions, func(i, j int) bool { return collisions[i].Slug < collisions[j].Slug })
		return nil, &CollisionError{Collisions: collisions}
	}
	return idx, nil
}

// Scan loads and parses every content file of src in parallel
// A missing content root yields an empty index.
func Scan(ctx context.Context, src Source, opts Options) (*Index, error) {
	exists, err := src.Exists("")
	if err != nil {
		return nil, err
	}
	if !exists {
		klog.Warningf("content root not found, no documents indexed\n")
		idx, _ := NewIndex()
		idx.src = src
		return idx, nil
	}
	files, err := src.Tree("")
	if err != nil {
		return nil, err
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	var paths []string
	for _, f := range files {
		if isContent(f, formats) {
			paths = append(paths, f)
		}
	}
	loaded := make([]*Document, len(paths))
	job := &jobs.Job[int]{
		ID:         "Scan",
		MaxWorkers: opts.Workers,
		MinWorkers: 1,
		Worker: jobs.WorkerFunc[int](func(ctx context.Context, i int) error {
			b, err := src.Read(paths[i])
			if err != nil {
				return err
			}
			doc, err := NewDocument(paths[i], b)
			if err != nil {
				return err
			}
			loaded[i] = doc
			return nil
		}),
	}
	tasks := make([]int, len(paths))
	for i := range tasks {
		tasks[i] = i
	}
	if job.MaxWorkers < job.MinWorkers {
		job.MaxWorkers = job.MinWorkers
	}
	if err = job.Dispatch(ctx, tasks); err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(loaded))
	for _, doc := range loaded {
		if doc.Draft && !opts.IncludeDrafts {
			klog.V(4).Infof("skipping draft %s\n", doc.Path)
			continue
		}
		docs = append(docs, doc)
	}
	idx, err := NewIndex(docs...)
	if err != nil {
		return nil, err
	}
	idx.src = src
	klog.V(2).Infof("indexed %d documents\n", len(docs))
	return idx, nil
}

func isContent(p string, formats []string) bool {
	ext := path.Ext(p)
	for _, f := range formats {
		if strings.EqualFold(ext, "."+strings.TrimPrefix(f, ".")) {
			return true
		}
	}
	return false
}

// Lookup returns the document with the given slug
func (idx *Index) Lookup(slug string) (*Document, bool) {
	doc, ok := idx.bySlug[strings.Trim(slug, "/")]
	return doc, ok
}

// Documents returns all documents in path order
func (idx *Index) Documents() []*Document {
	out := make([]*Document, len(idx.docs))
	copy(out, idx.docs)
	return out
}

// Under returns the documents located in dir or its sub-directories in path order
func (idx *Index) Under(dir string) []*Document {
	prefix := cleanDir(dir)
	if prefix != "" {
		prefix += "/"
	}
	var out []*Document
	for _, doc := range idx.docs {
		if strings.HasPrefix(doc.Path, prefix) {
			out = append(out, doc)
		}
	}
	return out
}

// HasDir reports whether dir exists in the content root
func (idx *Index) HasDir(dir string) bool {
	d := cleanDir(dir)
	if _, ok := idx.dirs[d]; ok {
		return true
	}
	if idx.src == nil {
		return false
	}
	ok, err := idx.src.Exists(d)
	if err != nil {
		klog.Warningf("failed to check directory %s: %v\n", d, err)
		return false
	}
	return ok
}

func cleanDir(dir string) string {
	d := path.Clean("/" + dir)
	return strings.TrimPrefix(d, "/")
}

// String lists the indexed slugs
func (idx *Index) String() string {
	var b strings.Builder
	for _, doc := range idx.docs {
		fmt.Fprintf(&b, "/%s -> %s\n", doc.Slug, doc.Path)
	}
	return b.String()
}
