// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package content_test

import (
	"github.com/gardener/docnav/pkg/content"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"k8s.io/utils/pointer"
)

var _ = Describe("Document", func() {
	It("takes navigation properties from the frontmatter", func() {
		doc, err := content.NewDocument("types/email.md", []byte(`---
title: Email
draft: true
sidebar:
  label: E-mail
  order: 2
  badge: New
---
# Email rule
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Path).To(Equal("types/email.md"))
		Expect(doc.Slug).To(Equal("types/email"))
		Expect(doc.Title).To(Equal("Email"))
		Expect(doc.Draft).To(BeTrue())
		Expect(doc.Sidebar).To(Equal(content.SidebarMeta{Label: "E-mail", Order: pointer.Int(2), Badge: "New"}))
		Expect(string(doc.Body)).To(Equal("# Email rule\n"))
	})

	It("reads badges given as objects and hidden flags", func() {
		doc, err := content.NewDocument("types/date.md", []byte("---\nsidebar:\n  hidden: true\n  badge:\n    text: Beta\n    variant: caution\n---\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Sidebar.Hidden).To(BeTrue())
		Expect(doc.Sidebar.Badge).To(Equal("Beta"))
		Expect(doc.Sidebar.Order).To(BeNil())
	})

	It("prefers the slug from the frontmatter", func() {
		doc, err := content.NewDocument("guides/intro.md", []byte("---\nslug: /guides/introduction/\n---\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Slug).To(Equal("guides/introduction"))
	})

	DescribeTable("confines frontmatter slugs to the site root",
		func(slug, want string) {
			doc, err := content.NewDocument("guides/intro.md", []byte("---\nslug: "+slug+"\n---\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Slug).To(Equal(want))
		},
		Entry("redundant separators", "guides//intro/", "guides/intro"),
		Entry("current directory segments", "./guides/./intro", "guides/intro"),
	)

	DescribeTable("rejects slugs escaping the site root",
		func(slug string) {
			_, err := content.NewDocument("evil.md", []byte("---\nslug: "+slug+"\n---\n"))
			Expect(err).To(MatchError(ContainSubstring("evil.md")))
			Expect(err).To(MatchError(ContainSubstring("'..' segments")))
		},
		Entry("leading parent segments", "../../etc/evil"),
		Entry("inner parent segment", "guides/../../evil"),
		Entry("rooted parent segment", "/../evil"),
	)

	It("falls back to the first heading and to the file name for the title", func() {
		doc, err := content.NewDocument("guides/error_handling.md", []byte("# Handling errors\n\ntext\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Title).To(Equal("Handling errors"))
		doc, err = content.NewDocument("guides/error_handling.md", []byte("text\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Title).To(Equal("Error Handling"))
	})

	It("fails on malformed frontmatter", func() {
		_, err := content.NewDocument("broken.md", []byte("---\ntitle: x\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("broken.md"))
	})

	DescribeTable("Slugify", func(path, slug string) {
		Expect(content.Slugify(path)).To(Equal(slug))
	},
		Entry("plain file", "guides/introduction.md", "guides/introduction"),
		Entry("mdx file", "types/email.mdx", "types/email"),
		Entry("mixed case and spaces", "Guides/Custom Validation.md", "guides/custom-validation"),
		Entry("directory index", "integrations/index.md", "integrations"),
		Entry("root index", "index.md", ""),
	)

	DescribeTable("ComputeTitle", func(path, title string) {
		Expect(content.ComputeTitle(path)).To(Equal(title))
	},
		Entry("dashes", "guides/custom-validation.md", "Custom Validation"),
		Entry("underscores", "guides/error_handling.md", "Error Handling"),
		Entry("index uses directory", "integrations/sveltekit/index.md", "Sveltekit"),
		Entry("root index", "index.md", "Home"),
	)
})
