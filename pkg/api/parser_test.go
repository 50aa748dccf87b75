// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api_test

import (
	"errors"
	"path/filepath"

	"github.com/gardener/docnav/pkg/api"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"k8s.io/utils/pointer"
)

var _ = Describe("Parser", func() {
	Describe("Parse", func() {
		var (
			in  string
			cfg *api.SiteConfig
			err error
		)
		JustBeforeEach(func() {
			cfg, err = api.Parse([]byte(in))
		})
		Context("a complete configuration", func() {
			BeforeEach(func() {
				in = `
title: Sveltecult
description: Validation for Svelte
contentDir: docs
social:
  github: https://github.com/sveltecult
editLink:
  baseUrl: https://github.com/sveltecult/docs/edit/main/
lastUpdated: true
pagination: false
sidebar:
  - label: Guides
    collapsed: true
    items:
      - label: Introduction
        link: /guides/introduction/
        badge: New
  - label: Available Rules
    autogenerate:
      directory: types
`
			})
			It("decodes every property", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Title).To(Equal("Sveltecult"))
				Expect(cfg.Description).To(Equal("Validation for Svelte"))
				Expect(cfg.ContentDir).To(Equal("docs"))
				Expect(cfg.Social).To(Equal(map[string]string{"github": "https://github.com/sveltecult"}))
				Expect(cfg.EditBaseURL()).To(Equal("https://github.com/sveltecult/docs/edit/main/"))
				Expect(cfg.LastUpdatedEnabled()).To(BeTrue())
				Expect(cfg.PaginationEnabled()).To(BeFalse())
				Expect(cfg.Sidebar).To(HaveLen(2))
				Expect(cfg.Sidebar[0].Collapsed).To(BeTrue())
				Expect(cfg.Sidebar[0].Items).To(HaveLen(1))
				Expect(cfg.Sidebar[0].Items[0].Link).To(Equal("/guides/introduction/"))
				Expect(cfg.Sidebar[0].Items[0].Badge).To(Equal("New"))
				Expect(cfg.Sidebar[1].Autogenerate).To(Equal(&api.Autogenerate{Directory: "types"}))
			})
		})
		Context("defaults", func() {
			BeforeEach(func() {
				in = "title: Sveltecult\n"
			})
			It("enables pagination and disables last updated", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.PaginationEnabled()).To(BeTrue())
				Expect(cfg.LastUpdatedEnabled()).To(BeFalse())
				Expect(cfg.EditBaseURL()).To(BeEmpty())
				Expect(cfg.Sidebar).To(BeEmpty())
			})
		})
		Context("unknown property", func() {
			BeforeEach(func() {
				in = "title: Sveltecult\nsidbar: []\n"
			})
			It("fails with a ConfigError", func() {
				var cErr *api.ConfigError
				Expect(errors.As(err, &cErr)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("sidbar"))
				Expect(cfg).To(BeNil())
			})
		})
		Context("empty document", func() {
			BeforeEach(func() {
				in = ""
			})
			It("fails with a ConfigError", func() {
				var cErr *api.ConfigError
				Expect(errors.As(err, &cErr)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("empty"))
			})
		})
		Context("malformed YAML", func() {
			BeforeEach(func() {
				in = "title: [Sveltecult\n"
			})
			It("fails with a ConfigError", func() {
				var cErr *api.ConfigError
				Expect(errors.As(err, &cErr)).To(BeTrue())
			})
		})
	})

	Describe("Load", func() {
		It("loads, validates and resolves the content directory", func() {
			cfg, err := api.Load(filepath.Join("testdata", "site.yaml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Title).To(Equal("Sveltecult"))
			Expect(cfg.ContentDir).To(Equal(filepath.Join("testdata", "src", "content", "docs")))
			Expect(cfg.Sidebar).To(HaveLen(3))
			Expect(cfg.Sidebar[0].Type).To(Equal(api.NodeTypeGroup))
			Expect(cfg.Sidebar[1].Type).To(Equal(api.NodeTypeAutogenerate))
			Expect(cfg.Sidebar[2].Autogenerate.Directory).To(Equal("integrations"))
		})
		It("fails with a ConfigError naming the missing file", func() {
			_, err := api.Load(filepath.Join("testdata", "missing.yaml"))
			var cErr *api.ConfigError
			Expect(errors.As(err, &cErr)).To(BeTrue())
			Expect(cErr.Source).To(Equal(filepath.Join("testdata", "missing.yaml")))
		})
	})

	Describe("Serialize", func() {
		It("round trips a configuration", func() {
			cfg := &api.SiteConfig{
				Title:      "Sveltecult",
				Pagination: pointer.Bool(false),
				Sidebar: []*api.SidebarNode{
					{Label: "Rules", AutogenerateType: api.AutogenerateType{Autogenerate: &api.Autogenerate{Directory: "types"}}},
				},
			}
			out, err := api.Serialize(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HavePrefix("title: Sveltecult\npagination: false\n"))
			Expect(out).To(ContainSubstring("directory: types"))
			Expect(out).NotTo(ContainSubstring("badge"))
			back, err := api.Parse([]byte(out))
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(Equal(cfg))
		})
	})
})
