/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedScheme is returned for locators no opener is registered for.
var ErrUnsupportedScheme = errors.New("unsupported source scheme")

// Opener builds a Source for a parsed locator.
type Opener func(locator *url.URL) (Source, error)

// Registry maps locator schemes to source openers. Built-in openers handle
// http, https and file; callers can register more.
type Registry struct {
	mu      sync.RWMutex
	openers map[string]Opener
}

// NewRegistry creates a registry with the built-in openers. The client is
// shared by all HTTP sources; nil uses NewHTTPClient's default.
func NewRegistry(client *http.Client) *Registry {
	r := &Registry{openers: make(map[string]Opener)}
	httpOpener := func(u *url.URL) (Source, error) {
		return NewHTTPSource(u.String(), client), nil
	}
	r.Register("http", httpOpener)
	r.Register("https", httpOpener)
	r.Register("file", func(u *url.URL) (Source, error) {
		path := u.Path
		if u.Host != "" && u.Host != "localhost" {
			// file://relative/path.json
			path = u.Host + u.Path
		}
		if path == "" {
			return nil, fmt.Errorf("file locator %q has no path", u.String())
		}
		return NewFileSource(path), nil
	})
	return r
}

// Register adds or replaces the opener for scheme.
func (r *Registry) Register(scheme string, opener Opener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openers[strings.ToLower(scheme)] = opener
}

// Schemes returns the registered schemes, sorted.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schemes := make([]string, 0, len(r.openers))
	for s := range r.openers {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Open returns the source for locator.
func (r *Registry) Open(locator string) (Source, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("invalid source locator %q: %w", locator, err)
	}
	r.mu.RLock()
	opener, ok := r.openers[strings.ToLower(u.Scheme)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q in %q", ErrUnsupportedScheme, u.Scheme, locator)
	}
	return opener(u)
}
