// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site_test

import (
	"context"
	"errors"
	"time"

	"github.com/gardener/docnav/pkg/sidebar"
	"github.com/gardener/docnav/pkg/site"
	"github.com/gardener/docnav/pkg/writers/writersfakes"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("Write", func() {
	var (
		s   *site.Site
		w   *writersfakes.FakeWriter
		ctx context.Context
		err error
	)

	BeforeEach(func() {
		updated := time.Date(2024, 5, 17, 8, 30, 0, 0, time.UTC)
		s = &site.Site{
			Title:  "Sveltecult",
			Social: []site.SocialLink{{Platform: "github", URL: "https://github.com/sveltecult"}},
			Sidebar: &sidebar.Sidebar{Entries: []*sidebar.Entry{
				{Type: sidebar.EntryTypeGroup, Label: "Available Rules", Autogenerated: true, Directory: "types", Entries: []*sidebar.Entry{
					{Type: sidebar.EntryTypeLink, Label: "Email", Link: "/types/email/", Autogenerated: true, Slug: "types/email"},
				}},
			}},
			Pages: []*site.Page{
				{
					Slug:         "types/email",
					Source:       "types/email.md",
					Path:         "types/email",
					Name:         "index.md",
					Title:        "Email",
					Frontmatter:  map[string]interface{}{"title": "E-mail", "next": false},
					Body:         []byte("# Email rule\n"),
					Prev:         &site.PageLink{Label: "Date", Link: "/types/date/"},
					SuppressNext: true,
					EditURL:      "https://github.com/sveltecult/docs/edit/main/types/email.md",
					LastUpdated:  &updated,
				},
			},
		}
		w = &writersfakes.FakeWriter{}
		ctx = context.Background()
	})

	JustBeforeEach(func() {
		err = site.Write(ctx, s, w)
	})

	It("writes pages with normalized frontmatter and the navigation", func() {
		Expect(err).NotTo(HaveOccurred())
		Expect(w.WriteCallCount()).To(Equal(2))
		name, path, b := w.WriteArgsForCall(0)
		Expect(name).To(Equal("index.md"))
		Expect(path).To(Equal("types/email"))
		Expect(string(b)).To(Equal(`---
editUrl: https://github.com/sveltecult/docs/edit/main/types/email.md
lastUpdated: "2024-05-17T08:30:00Z"
next: false
prev:
  label: Date
  link: /types/date/
title: Email
---
# Email rule
`))
		name, path, b = w.WriteArgsForCall(1)
		Expect(name).To(Equal(site.NavFileName))
		Expect(path).To(Equal(""))
		Expect(string(b)).To(HavePrefix("title: Sveltecult\n"))
		var nav struct {
			Title   string            `yaml:"title"`
			Social  []site.SocialLink `yaml:"social"`
			Sidebar []*sidebar.Entry  `yaml:"sidebar"`
		}
		Expect(yaml.Unmarshal(b, &nav)).To(Succeed())
		Expect(nav.Social).To(Equal(s.Social))
		Expect(nav.Sidebar).To(HaveLen(1))
		Expect(nav.Sidebar[0].Directory).To(Equal("types"))
		Expect(nav.Sidebar[0].Entries[0].Link).To(Equal("/types/email/"))
		Expect(nav.Sidebar[0].Entries[0].Autogenerated).To(BeTrue())
	})

	Context("writer fails", func() {
		BeforeEach(func() {
			w.WriteReturns(errors.New("disk full"))
		})
		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("disk full")))
			Expect(w.WriteCallCount()).To(Equal(1))
		})
	})

	Context("cancelled", func() {
		BeforeEach(func() {
			var cancel context.CancelFunc
			ctx, cancel = context.WithCancel(ctx)
			cancel()
		})
		It("stops writing", func() {
			Expect(err).To(MatchError(context.Canceled))
			Expect(w.WriteCallCount()).To(Equal(0))
		})
	})

	Context("empty sidebar", func() {
		BeforeEach(func() {
			s.Sidebar = &sidebar.Sidebar{}
			s.Pages = nil
			s.Social = nil
		})
		It("writes an empty navigation", func() {
			Expect(err).NotTo(HaveOccurred())
			_, _, b := w.WriteArgsForCall(0)
			Expect(string(b)).To(Equal("title: Sveltecult\nsidebar: []\n"))
		})
	})
})
