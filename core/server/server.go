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

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/kasperleth/ktable/core/config"
	"github.com/kasperleth/ktable/core/query"
	"github.com/kasperleth/ktable/core/rendering"
	"github.com/kasperleth/ktable/core/views"
	"github.com/kasperleth/ktable/core/widget"
	"github.com/kasperleth/ktable/datasources"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownWidget is returned when no widget has the requested container id.
var ErrUnknownWidget = errors.New("unknown widget")

// Option configures a Server.
type Option func(*Server)

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// Server hosts any number of independent widgets, one per container id.
type Server struct {
	logger   *zap.Logger
	renderer *rendering.TableRenderer
	registry *datasources.Registry
	title    string

	mu      sync.RWMutex
	widgets []*widget.Widget // page order
	byID    map[string]*widget.Widget
}

// New creates a server with no widgets.
func New(logger *zap.Logger, renderer *rendering.TableRenderer, registry *datasources.Registry, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger:   logger,
		renderer: renderer,
		registry: registry,
		title:    "ktable",
		byID:     make(map[string]*widget.Widget),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddWidget opens the data source of cfg and adds a widget for it. Container
// ids must be unique.
func (s *Server) AddWidget(cfg *config.Config) (*widget.Widget, error) {
	src, err := s.registry.Open(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("widget %s: %w", cfg.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[cfg.ID]; exists {
		return nil, fmt.Errorf("widget %s: container id already in use", cfg.ID)
	}
	w := widget.New(cfg, src, widget.WithLogger(s.logger))
	s.widgets = append(s.widgets, w)
	s.byID[cfg.ID] = w
	return w, nil
}

// Widget returns the widget with the given container id.
func (s *Server) Widget(id string) (*widget.Widget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownWidget, id)
	}
	return w, nil
}

// Widgets returns every widget in page order.
func (s *Server) Widgets() []*widget.Widget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*widget.Widget(nil), s.widgets...)
}

// Start begins loading every widget. Each widget fetches at most once no
// matter how often Start is called.
func (s *Server) Start(ctx context.Context) {
	for _, w := range s.Widgets() {
		w.Start(ctx)
	}
}

// Wait blocks until every widget has finished loading or ctx ends. A widget
// whose load failed still counts as finished.
func (s *Server) Wait(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, w := range s.Widgets() {
		g.Go(func() error {
			select {
			case <-w.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

// HandlerResult represents a failed request
type HandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// HandlePageRequest renders the page hosting every widget.
func (s *Server) HandlePageRequest(w io.Writer) *HandlerResult {
	vm := views.PageViewModel{Title: s.title}
	for _, wd := range s.Widgets() {
		vm.Widgets = append(vm.Widgets, wd.Snapshot())
	}

	// Render into a buffer so a template error never leaves half a page
	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, vm); err != nil {
		return &HandlerResult{Error: err, StatusCode: 500, Message: "failed to render page"}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &HandlerResult{Error: err}
	}
	return nil
}

// HandleWidgetRequest renders the fragment of the widget named by the id
// parameter.
func (s *Server) HandleWidgetRequest(w io.Writer, requestURL *url.URL) *HandlerResult {
	id := requestURL.Query().Get("id")
	if id == "" {
		return &HandlerResult{StatusCode: 400, Message: "id parameter is required"}
	}
	wd, err := s.Widget(id)
	if err != nil {
		return &HandlerResult{Error: err, StatusCode: 404, Message: fmt.Sprintf("widget '%s' not found", id)}
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, wd.Snapshot()); err != nil {
		return &HandlerResult{Error: err, StatusCode: 500, Message: "failed to render widget"}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &HandlerResult{Error: err}
	}
	return nil
}

// HandleSortRequest applies a header click and returns where to send the
// browser next.
func (s *Server) HandleSortRequest(requestURL *url.URL) (string, *HandlerResult) {
	click, err := query.NewClick(requestURL)
	if err != nil {
		return "", &HandlerResult{Error: err, StatusCode: 400, Message: err.Error()}
	}
	wd, err := s.Widget(click.Widget)
	if err != nil {
		return "", &HandlerResult{Error: err, StatusCode: 404, Message: fmt.Sprintf("widget '%s' not found", click.Widget)}
	}

	if err := wd.Click(click.Column); err != nil {
		switch {
		case errors.Is(err, widget.ErrNotSortable):
			return "", &HandlerResult{Error: err, StatusCode: 400, Message: fmt.Sprintf("column '%s' is not sortable", click.Column)}
		case errors.Is(err, widget.ErrNotLoaded):
			return "", &HandlerResult{Error: err, StatusCode: 409, Message: "table data not loaded yet"}
		default:
			return "", &HandlerResult{Error: err, StatusCode: 500, Message: "sort failed"}
		}
	}
	return query.ReturnURL(click.Widget), nil
}

// WidgetStatus is the health of one widget.
type WidgetStatus struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	State   string `json:"state"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// Status reports the load state of every widget in page order.
func (s *Server) Status() []WidgetStatus {
	widgets := s.Widgets()
	out := make([]WidgetStatus, 0, len(widgets))
	for _, w := range widgets {
		st := WidgetStatus{
			ID:      w.ID(),
			Source:  w.Config().Source,
			State:   w.State().String(),
			Records: len(w.Records()),
		}
		if err := w.Err(); err != nil {
			st.Error = err.Error()
		}
		out = append(out, st)
	}
	return out
}
