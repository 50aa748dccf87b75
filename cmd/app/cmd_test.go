// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gardener/docnav/cmd/configuration"
	"github.com/gardener/docnav/pkg/api"
	"github.com/gardener/docnav/pkg/metrics"
	"github.com/gardener/docnav/pkg/sidebar"
	"github.com/gardener/docnav/pkg/util/tests"
	"github.com/gardener/docnav/pkg/version"
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
)

const siteConfig = `title: Demo
editLink:
  baseUrl: https://github.com/acme/demo/edit/main
sidebar:
  - label: Start
    link: /
  - label: Guides
    autogenerate:
      directory: guides
`

var siteFiles = map[string]string{
	"src/content/docs/index.md":        "# Welcome\n",
	"src/content/docs/guides/intro.md": "---\ntitle: Intro\n---\nHello\n",
	"src/content/docs/guides/setup.md": "---\ntitle: Setup\n---\nSteps\n",
}

var _ = Describe("docnav command", func() {
	var (
		dir     string
		dest    string
		args    []string
		out     *bytes.Buffer
		err     error
		homeEnv string
	)

	BeforeEach(func() {
		dir, err = os.MkdirTemp("", "docnav-cmd")
		Expect(err).NotTo(HaveOccurred())
		dest = filepath.Join(dir, "out")
		files := map[string]string{"site.yaml": siteConfig}
		for k, v := range siteFiles {
			files[k] = v
		}
		Expect(tests.WriteFiles(afero.NewOsFs(), dir, files)).To(Succeed())
		homeEnv = os.Getenv("HOME")
		Expect(os.Setenv("HOME", dir)).To(Succeed())
		out = &bytes.Buffer{}
		args = []string{"-c", filepath.Join(dir, "site.yaml")}
	})

	AfterEach(func() {
		Expect(os.Setenv("HOME", homeEnv)).To(Succeed())
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	JustBeforeEach(func() {
		cmd := NewCommand(context.Background())
		cmd.SetArgs(args)
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		err = cmd.Execute()
	})

	Context("build", func() {
		BeforeEach(func() {
			args = append(args, "-d", dest)
		})
		It("writes pages and the navigation manifest", func() {
			Expect(err).NotTo(HaveOccurred())
			for _, f := range []string{"index.md", "guides/intro/index.md", "guides/setup/index.md", "_nav.yaml"} {
				Expect(filepath.Join(dest, f)).To(BeAnExistingFile())
			}
			b, err := os.ReadFile(filepath.Join(dest, "guides", "intro", "index.md"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(ContainSubstring("editUrl: https://github.com/acme/demo/edit/main/src/content/docs/guides/intro.md"))
			Expect(string(b)).To(ContainSubstring("title: Intro"))
			Expect(string(b)).To(HaveSuffix("Hello\n"))
		})
		Context("without pretty URLs", func() {
			BeforeEach(func() {
				args = append(args, "--pretty-urls=false")
			})
			It("writes pages as <slug>.md", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(filepath.Join(dest, "guides", "intro.md")).To(BeAnExistingFile())
			})
		})
		Context("with a broken sidebar link", func() {
			BeforeEach(func() {
				broken := siteConfig + "  - label: Missing\n    link: /missing/\n"
				Expect(os.WriteFile(filepath.Join(dir, "site.yaml"), []byte(broken), 0644)).To(Succeed())
			})
			It("fails and writes nothing", func() {
				var brokenErr *sidebar.BrokenLinkError
				Expect(errors.As(err, &brokenErr)).To(BeTrue())
				Expect(brokenErr.Links).To(HaveLen(1))
				Expect(brokenErr.Links[0].Link).To(Equal("/missing/"))
				Expect(dest).NotTo(BeADirectory())
			})
		})
		Context("with an invalid site configuration", func() {
			BeforeEach(func() {
				Expect(os.WriteFile(filepath.Join(dir, "site.yaml"), []byte("title: Demo\nsidbar: []\n"), 0644)).To(Succeed())
			})
			It("fails with a configuration error", func() {
				var cfgErr *api.ConfigError
				Expect(errors.As(err, &cfgErr)).To(BeTrue())
				Expect(cfgErr.Source).To(Equal(filepath.Join(dir, "site.yaml")))
			})
		})
	})

	Context("resolve", func() {
		BeforeEach(func() {
			args = append(args, "--resolve")
		})
		It("prints the effective configuration and the resolved sidebar", func() {
			Expect(err).NotTo(HaveOccurred())
			docs := strings.SplitN(out.String(), "---\n", 2)
			Expect(docs).To(HaveLen(2))
			Expect(docs[0]).To(HavePrefix("title: Demo\n"))
			Expect(docs[0]).To(ContainSubstring("contentDir: " + filepath.Join(dir, "src", "content", "docs")))
			Expect(docs[1]).To(HavePrefix("entries:\n"))
			Expect(out.String()).To(ContainSubstring("label: Intro"))
			Expect(out.String()).To(ContainSubstring("link: /guides/setup/"))
			Expect(dest).NotTo(BeADirectory())
		})
	})

	Context("dry run", func() {
		BeforeEach(func() {
			args = append(args, "--dry-run")
		})
		It("prints the projected files", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(ContainSubstring("4 files"))
			Expect(dest).NotTo(BeADirectory())
		})
	})

	Context("missing destination", func() {
		It("fails", func() {
			Expect(err).To(MatchError(`required flag(s) "destination" not set`))
		})
	})

	Context("destination from the environment", func() {
		BeforeEach(func() {
			Expect(os.Setenv("DOCNAV_DESTINATION", dest)).To(Succeed())
		})
		AfterEach(func() {
			Expect(os.Unsetenv("DOCNAV_DESTINATION")).To(Succeed())
		})
		It("builds", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Join(dest, "_nav.yaml")).To(BeAnExistingFile())
		})
	})

	Context("tool configuration from the environment", func() {
		BeforeEach(func() {
			tool := filepath.Join(dir, "tool.yaml")
			Expect(os.WriteFile(tool, []byte(fmt.Sprintf("config: %s\ndestination: %s\n",
				filepath.Join(dir, "site.yaml"), dest)), 0644)).To(Succeed())
			Expect(os.Setenv(configuration.ConfigEnv, tool)).To(Succeed())
			args = []string{}
		})
		AfterEach(func() {
			Expect(os.Unsetenv(configuration.ConfigEnv)).To(Succeed())
		})
		It("builds with the site configuration and destination it names", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Join(dest, "guides", "intro", "index.md")).To(BeAnExistingFile())
			Expect(filepath.Join(dest, "_nav.yaml")).To(BeAnExistingFile())
		})
	})

	Context("version", func() {
		BeforeEach(func() {
			args = []string{"version"}
		})
		It("prints the version", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(Equal(version.Version + "\n"))
		})
	})

	Context("completion", func() {
		BeforeEach(func() {
			args = []string{"completion", "bash"}
		})
		It("prints the completion script", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(ContainSubstring("docnav"))
		})
	})
})

var _ = Describe("loadOptions", func() {
	var cmdVip = func(args ...string) (*options, error) {
		cmd := NewCommand(context.Background())
		Expect(cmd.PersistentFlags().Parse(args)).To(Succeed())
		return loadOptions(vip)
	}

	It("applies flag defaults", func() {
		o, err := cmdVip("-d", "out")
		Expect(err).NotTo(HaveOccurred())
		Expect(o.ConfigPath).To(Equal("site.yaml"))
		Expect(o.DestinationPath).To(Equal("out"))
		Expect(o.PrettyURLs).To(BeTrue())
		Expect(o.ScanWorkers).To(Equal(10))
		Expect(o.ValidationWorkers).To(Equal(10))
		Expect(o.ContentFormats).To(Equal([]string{".md", ".mdx"}))
	})

	It("prefers flags over the environment", func() {
		Expect(os.Setenv("DOCNAV_SCAN_WORKERS", "3")).To(Succeed())
		defer os.Unsetenv("DOCNAV_SCAN_WORKERS")
		o, err := cmdVip("-d", "out")
		Expect(err).NotTo(HaveOccurred())
		Expect(o.ScanWorkers).To(Equal(3))
		o, err = cmdVip("-d", "out", "--scan-workers", "5")
		Expect(err).NotTo(HaveOccurred())
		Expect(o.ScanWorkers).To(Equal(5))
	})

	It("reads lists from the environment", func() {
		Expect(os.Setenv("DOCNAV_HOSTS_TO_REPORT", "a.example.com,b.example.com")).To(Succeed())
		defer os.Unsetenv("DOCNAV_HOSTS_TO_REPORT")
		o, err := cmdVip("--resolve")
		Expect(err).NotTo(HaveOccurred())
		Expect(o.HostsToReport).To(Equal([]string{"a.example.com", "b.example.com"}))
	})
})

var _ = Describe("result", func() {
	table.DescribeTable("classifies build errors",
		func(err error, want string) {
			Expect(result(err)).To(Equal(want))
		},
		table.Entry("success", nil, metrics.ResultSuccess),
		table.Entry("config", fmt.Errorf("load: %w", &api.ConfigError{Source: "site.yaml", Err: errors.New("bad")}), metrics.ResultConfigError),
		table.Entry("broken links", &sidebar.BrokenLinkError{Links: []sidebar.BrokenLink{{Link: "/x/"}}}, metrics.ResultBrokenLinks),
		table.Entry("other", errors.New("disk full"), metrics.ResultError),
	)
})
