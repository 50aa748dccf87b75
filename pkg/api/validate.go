// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/idna"
	"k8s.io/klog/v2"
)

// knownPlatforms are the social platforms the documentation themes have icons for
var knownPlatforms = map[string]struct{}{
	"bitbucket": {}, "blueSky": {}, "codeberg": {}, "codePen": {}, "discord": {},
	"discourse": {}, "email": {}, "facebook": {}, "github": {}, "gitlab": {},
	"gitter": {}, "instagram": {}, "linkedin": {}, "mastodon": {}, "matrix": {},
	"patreon": {}, "reddit": {}, "rss": {}, "slack": {}, "stackOverflow": {},
	"telegram": {}, "threads": {}, "twitch": {}, "twitter": {}, "x.com": {},
	"youtube": {},
}

// ValidateConfig performs validation of a site configuration. All problems are
// collected and returned together as a *ConfigError.
func ValidateConfig(cfg *SiteConfig) error {
	if cfg == nil {
		return &ConfigError{Err: fmt.Errorf("configuration is nil")}
	}
	var errs *multierror.Error
	if strings.TrimSpace(cfg.Title) == "" {
		errs = multierror.Append(errs, fmt.Errorf("title must not be empty"))
	}
	errs = validateSocial(cfg.Social, errs)
	if base := cfg.EditBaseURL(); base != "" || cfg.EditLink != nil {
		if err := validateURL(base, false); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("editLink.baseUrl: %w", err))
		}
	}
	errs = validateNodes("sidebar", cfg.Sidebar, errs)
	if err := errs.ErrorOrNil(); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

func validateSocial(social map[string]string, errs *multierror.Error) *multierror.Error {
	platforms := make([]string, 0, len(social))
	for platform := range social {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	for _, platform := range platforms {
		if strings.TrimSpace(platform) == "" {
			errs = multierror.Append(errs, fmt.Errorf("social: platform name must not be empty"))
			continue
		}
		if _, ok := knownPlatforms[platform]; !ok {
			klog.Warningf("social platform %q has no known icon\n", platform)
		}
		if err := validateURL(social[platform], platform == "email"); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("social.%s: %w", platform, err))
		}
	}
	return errs
}

func validateURL(raw string, allowMailto bool) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("URL must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https":
	case "mailto":
		if !allowMailto || u.Opaque == "" {
			return fmt.Errorf("URL %q must be an absolute http(s) URL", raw)
		}
		return nil
	default:
		return fmt.Errorf("URL %q must be an absolute http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	if _, err := idna.Lookup.ToASCII(u.Hostname()); err != nil {
		return fmt.Errorf("URL %q has an invalid host: %w", raw, err)
	}
	return nil
}

func validateNodes(prefix string, nodes []*SidebarNode, errs *multierror.Error) *multierror.Error {
	for i, node := range nodes {
		at := fmt.Sprintf("%s[%d]", prefix, i)
		if node == nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: node must not be empty", at))
			continue
		}
		errs = validateNode(at, node, errs)
	}
	return errs
}

func validateNode(at string, node *SidebarNode, errs *multierror.Error) *multierror.Error {
	if strings.TrimSpace(node.Label) == "" {
		errs = multierror.Append(errs, fmt.Errorf("%s: label must not be empty", at))
	}
	if err := node.DecideType(); err != nil {
		return multierror.Append(errs, fmt.Errorf("%s: %w", at, err))
	}
	switch node.Type {
	case NodeTypeLink:
		if node.Collapsed {
			errs = multierror.Append(errs, fmt.Errorf("%s: collapsed is only supported on groups", at))
		}
	case NodeTypeAutogenerate:
		dir := strings.TrimSpace(node.Autogenerate.Directory)
		if dir == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s: autogenerate directory must not be empty", at))
		} else if escapesRoot(dir) {
			errs = multierror.Append(errs, fmt.Errorf("%s: autogenerate directory %q is outside of the content directory", at, dir))
		}
	case NodeTypeGroup:
		errs = validateNodes(at+".items", node.Items, errs)
	}
	return errs
}

func escapesRoot(dir string) bool {
	cleaned := path.Clean(strings.Trim(dir, "/"))
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}
