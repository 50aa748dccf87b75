// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package linkvalidator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gardener/docnav/pkg/httpclient"
	"k8s.io/klog/v2"
)

// retryIntervals are the waits in seconds between attempts on HTTP 429
var retryIntervals = []int{1, 5, 10, 20}

// timeout of a single validation request
var timeout = 5 * time.Second

// Validator checks that external links are reachable
type Validator struct {
	client        httpclient.Client
	validated     *linkSet
	hostsToReport []string
}

// New creates a Validator. Broken links on one of hostsToReport are returned
// as errors, broken links on any other host are only logged.
func New(client httpclient.Client, hostsToReport []string) (*Validator, error) {
	if client == nil {
		return nil, errors.New("invalid argument: client is nil")
	}
	return &Validator{
		client:        client,
		validated:     &linkSet{set: make(map[string]error)},
		hostsToReport: hostsToReport,
	}, nil
}

// Validate validates a link
func (v *Validator) Validate(ctx context.Context, link string) error {
	linkURL, err := url.Parse(strings.TrimSuffix(link, "/"))
	if err != nil {
		return fmt.Errorf("error when parsing link %s: %w", link, err)
	}
	if linkURL.Scheme != "http" && linkURL.Scheme != "https" {
		klog.V(6).Infof("skipping validation of %s\n", link)
		return nil
	}
	// ignore sample hosts e.g. localhost
	host := linkURL.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		return nil
	}
	// unify links destination by excluding query, fragment & user info
	u := &url.URL{
		Scheme: linkURL.Scheme,
		Host:   linkURL.Host,
		Path:   linkURL.Path,
	}
	unifiedURL := u.String()
	if ok, err := v.validated.get(unifiedURL); ok {
		return v.report(host, err)
	}
	err = v.check(ctx, linkURL.String())
	v.validated.add(unifiedURL, err)
	if err != nil {
		klog.Warningf("failed to validate absolute link %s: %v\n", link, err)
	}
	return v.report(host, err)
}

func (v *Validator) report(host string, err error) error {
	if err != nil && slices.Contains(v.hostsToReport, host) {
		return err
	}
	return nil
}

// check tries HEAD and falls back to GET on error status codes other than
// authorization errors
func (v *Validator) check(ctx context.Context, link string) error {
	status, err := v.do(ctx, http.MethodHead, link)
	if err != nil {
		return err
	}
	if !failed(status) {
		return nil
	}
	status, err = v.do(ctx, http.MethodGet, link)
	if err != nil {
		return err
	}
	if failed(status) {
		return fmt.Errorf("HTTP Status %d %s", status, http.StatusText(status))
	}
	return nil
}

func failed(status int) bool {
	return status >= 400 && status != http.StatusForbidden && status != http.StatusUnauthorized
}

func (v *Validator) do(ctx context.Context, method string, link string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, link, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare %s validation request: %w", method, err)
	}
	resp, err := doValidation(ctx, req, v.client)
	if err != nil {
		return 0, err
	}
	if httpclient.IsCached(resp) {
		klog.V(6).Infof("%s %s: HTTP Status %d from cache\n", method, link, resp.StatusCode)
	}
	return resp.StatusCode, nil
}

// doValidation performs several attempts to execute http request if http status code is 429
func doValidation(ctx context.Context, req *http.Request, client httpclient.Client) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return resp, err
	}
	resp.Body.Close()
	attempts := 0
	for resp.StatusCode == http.StatusTooManyRequests && attempts < len(retryIntervals)-1 {
		klog.Warningf("retrying request to %s\n", req.URL)
		sleep := retryIntervals[attempts] + rand.Intn(attempts+1)
		// check for Retry-After Header and overwrite sleep time
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			// support only value in seconds <= 5 min
			if after, err := strconv.Atoi(retryAfter); err == nil && after <= 5*60 {
				sleep = after
			}
		}
		select {
		case <-time.After(time.Duration(sleep) * time.Second):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		resp, err = client.Do(req)
		if err != nil {
			return resp, err
		}
		resp.Body.Close()
		attempts++
	}
	return resp, nil
}

// linkSet holds the outcome of validated link destinations
// used to avoid redundant checks & HTTP Status 429
type linkSet struct {
	set map[string]error
	mux sync.RWMutex
}

func (l *linkSet) get(dest string) (bool, error) {
	l.mux.RLock()
	defer l.mux.RUnlock()
	err, ok := l.set[dest]
	return ok, err
}

func (l *linkSet) add(dest string, err error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	l.set[dest] = err
}
