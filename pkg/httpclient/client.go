// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package httpclient

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate -header ../../license_prefix.txt

import (
	"net/http"
	"path/filepath"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/peterbourgon/diskv"
)

// Client sends HTTP requests
//
//counterfeiter:generate . Client
type Client interface {
	Do(req *http.Request) (resp *http.Response, err error)
}

// cacheSizeMax bounds the in-memory part of the disk cache
const cacheSizeMax = 100 * 1024 * 1024

// New creates an HTTP client. When cacheDir is set responses are cached
// on disk under <cacheDir>/diskv and revalidated following their cache headers.
func New(cacheDir string) *http.Client {
	if cacheDir == "" {
		return &http.Client{Transport: http.DefaultTransport}
	}
	flatTransform := func(s string) []string { return []string{} }
	d := diskv.New(diskv.Options{
		BasePath:     filepath.Join(cacheDir, "diskv"),
		Transform:    flatTransform,
		CacheSizeMax: cacheSizeMax,
	})
	cacheTransport := &httpcache.Transport{
		Transport:           http.DefaultTransport,
		Cache:               diskcache.NewWithDiskv(d),
		MarkCachedResponses: true,
	}
	return cacheTransport.Client()
}

// IsCached reports whether resp was served from the cache
func IsCached(resp *http.Response) bool {
	return resp != nil && resp.Header.Get(httpcache.XFromCache) == "1"
}
