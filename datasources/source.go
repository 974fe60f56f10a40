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
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 32 << 20

// Source produces the envelope for a widget. Fetch is called at most once per
// widget.
type Source interface {
	Fetch(ctx context.Context) (*Envelope, error)
}

// HTTPSource fetches an envelope with a single GET request.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource returns a source for url. A nil client uses a client with
// the default 30s timeout.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = NewHTTPClient(30 * time.Second)
	}
	return &HTTPSource{url: url, client: client}
}

// NewHTTPClient returns the client used for data endpoints. A zero timeout
// leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			MaxIdleConns:    20,
			MaxConnsPerHost: 10,
			IdleConnTimeout: 20 * time.Second,
		},
	}
}

// Fetch issues the request. A non-2xx response is still returned as an
// envelope when its body parses as one, so the caller can report the
// application-level code.
func (s *HTTPSource) Fetch(ctx context.Context) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &TransportError{Locator: s.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Locator: s.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Locator: s.url, Status: resp.Status, StatusCode: resp.StatusCode, Err: err}
	}
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, &TransportError{Locator: s.url, Status: resp.Status, StatusCode: resp.StatusCode, Err: err}
	}
	return env, nil
}

// String returns the locator.
func (s *HTTPSource) String() string {
	return s.url
}

// FileSource reads an envelope from a local file.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) (*Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Locator: s.String(), Err: err}
	}
	body, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &TransportError{Locator: s.String(), Err: err}
	}
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, &TransportError{Locator: s.String(), Err: fmt.Errorf("%s: %w", s.path, err)}
	}
	return env, nil
}

// String returns the locator.
func (s *FileSource) String() string {
	return "file://" + s.path
}
