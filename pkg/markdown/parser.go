// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var (
	// parser extension for GitHub Flavored Markdown & Frontmatter support
	extensions = []goldmark.Extender{
		extension.GFM,
		meta.Meta,
	}
	gmParser = goldmark.New(goldmark.WithExtensions(extensions...))
)

// Document is the navigation relevant view of a markdown source
type Document struct {
	// Meta is the parsed frontmatter. Nested mappings are normalized
	// to map[string]interface{}.
	Meta map[string]interface{}
	// Heading is the text of the first level one heading, if any
	Heading string
	// Body is the source without its frontmatter block
	Body []byte
}

// Parse markdown content and returns its frontmatter, first heading and body
func Parse(source []byte) (*Document, error) {
	_, body, err := StripFrontMatter(source)
	if err != nil {
		return nil, err
	}
	reader := text.NewReader(source)
	context := parser.NewContext()
	doc := gmParser.Parser().Parse(reader, parser.WithContext(context))
	fm, err := meta.TryGet(context)
	if err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	return &Document{
		Meta:    normalize(fm).(map[string]interface{}),
		Heading: firstHeading(doc, source),
		Body:    body,
	}, nil
}

func firstHeading(doc ast.Node, source []byte) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			var buf bytes.Buffer
			inlineText(h, source, &buf)
			title = strings.TrimSpace(buf.String())
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func inlineText(n ast.Node, source []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			inlineText(c, source, buf)
		}
	}
}

// goldmark-meta decodes with yaml.v2, which produces map[interface{}]interface{}
// for nested mappings
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return map[string]interface{}{}
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalizeValue(val)
		}
		return out
	}
	return v
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}, map[interface{}]interface{}:
		return normalize(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = normalizeValue(t[i])
		}
		return out
	}
	return v
}
