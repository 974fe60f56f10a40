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

// Package widget holds the state of one sortable table: its sort state, the
// header built once after the data arrives, and the body rows rebuilt on
// every sort.
package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/safehtml"
	"github.com/kasperleth/ktable/core/config"
	"github.com/kasperleth/ktable/core/query"
	"github.com/kasperleth/ktable/core/views"
	"github.com/kasperleth/ktable/datasources"
	"go.uber.org/zap"
)

var (
	// ErrNotLoaded is returned for operations that need the data before it
	// has arrived, or after the load failed.
	ErrNotLoaded = errors.New("table data not loaded")
	// ErrNotSortable is returned for a click on a column that is unknown or
	// not declared sortable.
	ErrNotSortable = errors.New("column is not sortable")
)

// State is the load state of a widget.
type State int

const (
	Pending State = iota
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Widget) {
		w.logger = logger
	}
}

// WithSortURL overrides how the click target of a sortable header is built.
func WithSortURL(fn func(widget, column string) safehtml.URL) Option {
	return func(w *Widget) {
		w.sortURL = fn
	}
}

// Widget is one table instance bound to one container id and one source.
// All state is guarded by mu; the completion of the load, clicks and
// snapshots never interleave.
type Widget struct {
	cfg     *config.Config
	src     datasources.Source
	logger  *zap.Logger
	sortURL func(widget, column string) safehtml.URL

	once sync.Once
	done chan struct{}

	mu             sync.Mutex
	state          State
	err            error
	records        []datasources.Record
	header         []views.HeaderCell
	rows           []views.Row
	sortColumn     string
	sortDescending bool
}

// New creates a widget for a resolved configuration. Nothing is fetched until
// Start is called.
func New(cfg *config.Config, src datasources.Source, opts ...Option) *Widget {
	w := &Widget{
		cfg:     cfg,
		src:     src,
		logger:  zap.NewNop(),
		sortURL: query.SortURL,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(zap.String("widget", cfg.ID))
	return w
}

// ID returns the container id.
func (w *Widget) ID() string {
	return w.cfg.ID
}

// Config returns the resolved configuration. It must not be modified.
func (w *Widget) Config() *config.Config {
	return w.cfg
}

// Start issues the fetch on its own goroutine. Only the first call has any
// effect; the data is never fetched twice.
func (w *Widget) Start(ctx context.Context) {
	w.once.Do(func() {
		go w.load(ctx)
	})
}

// Done is closed once the load has finished, successfully or not.
func (w *Widget) Done() <-chan struct{} {
	return w.done
}

// Load starts the fetch if needed and blocks until it finishes or ctx ends.
func (w *Widget) Load(ctx context.Context) error {
	w.Start(ctx)
	select {
	case <-w.done:
		return w.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the load state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Err returns the terminal load error, or nil.
func (w *Widget) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// SortState returns the active sort column and direction.
func (w *Widget) SortState() (column string, descending bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sortColumn, w.sortDescending
}

func (w *Widget) load(ctx context.Context) {
	defer close(w.done)
	env, err := w.src.Fetch(ctx)
	w.complete(env, err)
}

// complete is the only code path that stores records, builds the header and
// renders the body for the first time.
func (w *Widget) complete(env *datasources.Envelope, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		var status string
		var te *datasources.TransportError
		if errors.As(err, &te) {
			status = te.Status
		}
		w.logger.Error("fetch failed",
			zap.String("status", status),
			zap.Error(err))
		w.state = Failed
		w.err = err
		return
	}

	if verr := env.Validate(); verr != nil {
		w.logger.Error("error response",
			zap.Int("code", env.ResponseCode),
			zap.String("response", env.Label()),
			zap.ByteString("envelope", env.Raw),
			zap.Error(verr))
		w.state = Failed
		w.err = verr
		return
	}

	w.logger.Info("data loaded",
		zap.Int("code", env.ResponseCode),
		zap.String("response", env.Label()),
		zap.Int("records", len(env.Payload)))
	w.records = env.Payload
	w.buildHeader()
	w.state = Loaded
	w.render()
}

// buildHeader creates the header cells and sets the initial sort state.
// It runs once per widget, from complete.
func (w *Widget) buildHeader() {
	if w.header != nil {
		return
	}

	var first, lastSorted string
	var lastDirection config.Direction
	header := make([]views.HeaderCell, 0, len(w.cfg.Columns)+1)
	for i, col := range w.cfg.Columns {
		if i == 0 {
			first = col.Key
		}
		if col.Sorted != nil {
			lastSorted = col.Key
			lastDirection = *col.Sorted
		}

		cell := views.HeaderCell{
			Key:      col.Key,
			Label:    col.Label,
			Sortable: col.Sortable,
		}
		if col.Sortable {
			cell.SortURL = w.sortURL(w.cfg.ID, col.Key)
		}
		header = append(header, cell)
	}

	if len(w.cfg.Icons) > 0 {
		header = append(header, views.HeaderCell{IconColumn: true})
	}
	w.header = header

	if lastSorted != "" {
		w.sortColumn = lastSorted
		w.sortDescending = lastDirection == config.Descending
	} else {
		w.sortColumn = first
		w.sortDescending = false
	}
}

// Click applies a click on the header of column key: the active column flips
// direction, any other sortable column becomes active ascending. The body is
// then rendered again.
func (w *Widget) Click(key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Loaded {
		return ErrNotLoaded
	}
	col, ok := w.cfg.Columns.Find(key)
	if !ok || !col.Sortable {
		w.logger.Warn("click on column that is not sortable", zap.String("column", key))
		return fmt.Errorf("%w: %q", ErrNotSortable, key)
	}

	if key == w.sortColumn {
		w.sortDescending = !w.sortDescending
	} else {
		w.sortColumn = key
		w.sortDescending = false
	}
	w.render()

	w.logger.Debug("sorted",
		zap.String("column", w.sortColumn),
		zap.Bool("descending", w.sortDescending))
	return nil
}

// Refresh renders the body again from the current records and sort state.
func (w *Widget) Refresh() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Loaded {
		return ErrNotLoaded
	}
	w.render()
	return nil
}

// render rebuilds every body row. The caller holds mu.
func (w *Widget) render() {
	w.rows = make([]views.Row, 0, len(w.records))
	w.refreshIndicators()

	sortRecords(w.records, w.sortColumn, w.sortDescending)

	fill := config.Deref(w.cfg.Settings.FillMissingCells)
	for _, rec := range w.records {
		var row views.Row
		for _, col := range w.cfg.Columns {
			value, ok := rec[col.Key]
			if !ok && !fill {
				// Later cells shift left under the wrong header.
				continue
			}
			row.Cells = append(row.Cells, views.Cell{Key: col.Key, Text: value, Missing: !ok})
		}

		if len(w.cfg.Icons) > 0 {
			row.HasIcons = true
			row.Icons = make([]views.IconLink, 0, len(w.cfg.Icons))
			for _, icon := range w.cfg.Icons {
				row.Icons = append(row.Icons, w.iconLink(icon, rec))
			}
		}
		w.rows = append(w.rows, row)
	}
}

// refreshIndicators resets every sortable header cell to the unsorted class
// and marks the active one. Skipped when no indicator classes are configured.
func (w *Widget) refreshIndicators() {
	s := w.cfg.Settings
	if !s.HasIndicators() {
		return
	}

	active := config.Deref(s.SortAscClass)
	if w.sortDescending {
		active = config.Deref(s.SortDescClass)
	}
	for i := range w.header {
		cell := &w.header[i]
		if !cell.Sortable {
			continue
		}
		cell.Indicator = config.Deref(s.UnsortedClass)
		if cell.Key == w.sortColumn {
			cell.Indicator = active
		}
	}
}

func (w *Widget) iconLink(icon config.Icon, rec datasources.Record) views.IconLink {
	link := views.IconLink{
		Class: config.Deref(icon.Class),
		Title: config.Deref(icon.Title),
	}
	if icon.Href != nil {
		link.Linked = true
		link.Href = safehtml.URLSanitized(ExpandHref(*icon.Href, w.cfg.Columns, rec))
	}
	return link
}

// ExpandHref replaces every %%key%% in tmpl with the record's value for key,
// one declared column at a time in declaration order. A key the record lacks
// is replaced by the empty string.
func ExpandHref(tmpl string, cols config.Columns, rec datasources.Record) string {
	for _, col := range cols {
		tmpl = strings.ReplaceAll(tmpl, "%%"+col.Key+"%%", rec[col.Key])
	}
	return tmpl
}

// Snapshot returns a copy of the rendered table that stays valid while the
// widget keeps sorting.
func (w *Widget) Snapshot() views.TableViewModel {
	w.mu.Lock()
	defer w.mu.Unlock()

	vm := views.TableViewModel{
		ID:             w.cfg.ID,
		TableClass:     config.Deref(w.cfg.Settings.TableClass),
		Loaded:         w.state == Loaded,
		Header:         w.header,
		Rows:           w.rows,
		HasIconColumn:  len(w.cfg.Icons) > 0,
		SortColumn:     w.sortColumn,
		SortDescending: w.sortDescending,
	}
	return vm.Clone()
}

// Records returns a copy of the records in their current order.
func (w *Widget) Records() []datasources.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]datasources.Record(nil), w.records...)
}
