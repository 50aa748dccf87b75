// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package sidebar_test

import (
	"context"
	"errors"

	"github.com/gardener/docnav/pkg/api"
	"github.com/gardener/docnav/pkg/content"
	"github.com/gardener/docnav/pkg/sidebar"
	"github.com/gardener/docnav/pkg/sidebar/sidebarfakes"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"k8s.io/utils/pointer"
)

func doc(path, title string) *content.Document {
	return &content.Document{Path: path, Slug: content.Slugify(path), Title: title}
}

func link(label, target string) *api.SidebarNode {
	return &api.SidebarNode{Label: label, LinkType: api.LinkType{Link: target}}
}

func group(label string, items ...*api.SidebarNode) *api.SidebarNode {
	if items == nil {
		items = []*api.SidebarNode{}
	}
	return &api.SidebarNode{Label: label, GroupType: api.GroupType{Items: items}}
}

func autogenerate(label, dir string) *api.SidebarNode {
	return &api.SidebarNode{Label: label, AutogenerateType: api.AutogenerateType{Autogenerate: &api.Autogenerate{Directory: dir}}}
}

func labels(entries []*sidebar.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func siteIndex() *content.Index {
	date := doc("types/date.md", "Date")
	date.Sidebar.Order = pointer.Int(1)
	email := doc("types/email.md", "Email")
	email.Sidebar.Label = "E-mail"
	email.Sidebar.Badge = "New"
	secret := doc("types/secret.md", "Secret")
	secret.Sidebar.Hidden = true
	idx, err := content.NewIndex(
		doc("index.md", "Sveltecult"),
		doc("guides/introduction.md", "Introduction"),
		doc("guides/contributing.md", "Contributing"),
		doc("guides/error_handling.md", "Error Handling"),
		doc("guides/custom.md", "Custom Validation"),
		doc("types/string.md", "String"),
		date,
		email,
		secret,
		doc("types/advanced/regex.md", "Regex"),
		doc("types/advanced/hidden/deep.md", "Deep"),
		doc("integrations/sveltekit.md", "SvelteKit"),
		doc("integrations/superforms.md", "Superforms"),
	)
	Expect(err).NotTo(HaveOccurred())
	hidden, _ := idx.Lookup("types/advanced/hidden/deep")
	hidden.Sidebar.Hidden = true
	return idx
}

var _ = Describe("Build", func() {
	var (
		ctx   context.Context
		nodes []*api.SidebarNode
		idx   *content.Index
		opts  sidebar.Options
		sb    *sidebar.Sidebar
		err   error
	)

	BeforeEach(func() {
		ctx = context.Background()
		idx = siteIndex()
		opts = sidebar.Options{Workers: 4}
		nodes = []*api.SidebarNode{
			group("Guides",
				link("Introduction", "/guides/introduction/"),
				link("Contributing", "/guides/contributing/"),
				link("Error Handling", "/guides/error_handling/"),
				link("Custom Validation", "/guides/custom/"),
			),
			autogenerate("Available Rules", "types"),
			autogenerate("Integrations", "integrations"),
		}
	})

	JustBeforeEach(func() {
		sb, err = sidebar.Build(ctx, nodes, idx, opts)
	})

	It("resolves the declared structure in order", func() {
		Expect(err).NotTo(HaveOccurred())
		Expect(labels(sb.Entries)).To(Equal([]string{"Guides", "Available Rules", "Integrations"}))
		guides := sb.Entries[0]
		Expect(guides.Type).To(Equal(sidebar.EntryTypeGroup))
		Expect(labels(guides.Entries)).To(Equal([]string{"Introduction", "Contributing", "Error Handling", "Custom Validation"}))
		Expect(guides.Entries[2].Link).To(Equal("/guides/error_handling/"))
		Expect(guides.Entries[2].Slug).To(Equal("guides/error_handling"))
	})

	It("expands autogenerated groups from the content directory", func() {
		Expect(err).NotTo(HaveOccurred())
		rules := sb.Entries[1]
		Expect(rules.Autogenerated).To(BeTrue())
		Expect(rules.Directory).To(Equal("types"))
		Expect(labels(rules.Entries)).To(Equal([]string{"Date", "advanced", "E-mail", "String"}))
		Expect(rules.Entries[2].Badge).To(Equal("New"))
		Expect(rules.Entries[2].Link).To(Equal("/types/email/"))
		advanced := rules.Entries[1]
		Expect(advanced.Type).To(Equal(sidebar.EntryTypeGroup))
		Expect(advanced.Directory).To(Equal("types/advanced"))
		Expect(labels(advanced.Entries)).To(Equal([]string{"Regex"}))
		Expect(labels(sb.Entries[2].Entries)).To(Equal([]string{"Superforms", "SvelteKit"}))
	})

	It("flattens links depth first", func() {
		Expect(err).NotTo(HaveOccurred())
		var links []string
		for _, e := range sb.Flatten() {
			links = append(links, e.Link)
		}
		Expect(links).To(Equal([]string{
			"/guides/introduction/", "/guides/contributing/", "/guides/error_handling/", "/guides/custom/",
			"/types/date/", "/types/advanced/regex/", "/types/email/", "/types/string/",
			"/integrations/superforms/", "/integrations/sveltekit/",
		}))
	})

	It("yields equal structures when built twice", func() {
		Expect(err).NotTo(HaveOccurred())
		again, err := sidebar.Build(ctx, nodes, idx, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(again).To(Equal(sb))
	})

	Context("a link to a missing document", func() {
		BeforeEach(func() {
			nodes[0].Items = append(nodes[0].Items, link("Missing", "/guides/missing/"))
		})
		It("names the broken link", func() {
			var blErr *sidebar.BrokenLinkError
			Expect(errors.As(err, &blErr)).To(BeTrue())
			Expect(blErr.Links).To(Equal([]sidebar.BrokenLink{
				{Link: "/guides/missing/", Label: "Missing", Reason: "no document with slug /guides/missing"},
			}))
			Expect(err.Error()).To(ContainSubstring("/guides/missing/"))
			Expect(sb).To(BeNil())
		})
	})

	Context("several problems", func() {
		BeforeEach(func() {
			nodes = []*api.SidebarNode{
				link("First", "/nope/"),
				autogenerate("Reference", "reference"),
				group("Guides", link("Second", "guides/gone")),
			}
		})
		It("collects all of them in declaration order", func() {
			var blErr *sidebar.BrokenLinkError
			Expect(errors.As(err, &blErr)).To(BeTrue())
			Expect(blErr.Links).To(HaveLen(3))
			Expect(blErr.Links[0].Label).To(Equal("First"))
			Expect(blErr.Links[1]).To(Equal(sidebar.BrokenLink{Link: "reference", Label: "Reference", Reason: "directory not found"}))
			Expect(blErr.Links[2].Label).To(Equal("Second"))
		})
	})

	Context("groups with the same label", func() {
		BeforeEach(func() {
			nodes = []*api.SidebarNode{
				group("Guides", link("Introduction", "/guides/introduction/")),
				group("Guides", link("Contributing", "/guides/contributing/")),
			}
		})
		It("keeps both", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(labels(sb.Entries)).To(Equal([]string{"Guides", "Guides"}))
			Expect(labels(sb.Entries[1].Entries)).To(Equal([]string{"Contributing"}))
		})
	})

	Context("empty sidebar", func() {
		BeforeEach(func() {
			nodes = nil
		})
		It("has no entries", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(sb.Entries).To(BeEmpty())
			Expect(sb.Flatten()).To(BeEmpty())
		})
	})

	Context("links with query and fragment", func() {
		BeforeEach(func() {
			nodes = []*api.SidebarNode{
				link("Home", "/"),
				link("Errors", "guides/error_handling?lang=en#custom-messages"),
			}
		})
		It("normalizes them", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(sb.Entries[0].Link).To(Equal("/"))
			Expect(sb.Entries[1].Link).To(Equal("/guides/error_handling/#custom-messages"))
		})
	})

	Context("undecided nodes", func() {
		BeforeEach(func() {
			nodes = []*api.SidebarNode{{Label: "Nothing"}}
		})
		It("fails with a ConfigError", func() {
			var cErr *api.ConfigError
			Expect(errors.As(err, &cErr)).To(BeTrue())
		})
	})

	Context("external links", func() {
		var validator *sidebarfakes.FakeValidator

		BeforeEach(func() {
			nodes = []*api.SidebarNode{
				link("GitHub", "https://github.com/sveltecult"),
				group("More", link("Svelte", "https://svelte.dev/docs")),
			}
		})

		It("passes them through", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(sb.Entries[0].External).To(BeTrue())
			Expect(sb.Entries[0].Link).To(Equal("https://github.com/sveltecult"))
			Expect(sb.Entries[0].Slug).To(BeEmpty())
		})

		Context("with validation", func() {
			BeforeEach(func() {
				validator = &sidebarfakes.FakeValidator{}
				validator.ValidateCalls(func(_ context.Context, link string) error {
					if link == "https://svelte.dev/docs" {
						return errors.New("HTTP Status 404 Not Found")
					}
					return nil
				})
				opts.Validator = validator
			})
			It("reports failed links", func() {
				Expect(validator.ValidateCallCount()).To(Equal(2))
				var blErr *sidebar.BrokenLinkError
				Expect(errors.As(err, &blErr)).To(BeTrue())
				Expect(blErr.Links).To(Equal([]sidebar.BrokenLink{
					{Link: "https://svelte.dev/docs", Label: "Svelte", Reason: "HTTP Status 404 Not Found"},
				}))
			})
		})
	})

	Context("cancelled context", func() {
		BeforeEach(func() {
			var cancel context.CancelFunc
			ctx, cancel = context.WithCancel(ctx)
			cancel()
		})
		It("aborts the expansion", func() {
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
