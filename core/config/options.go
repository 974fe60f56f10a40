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

// Package config holds the widget configuration model, the resolver that
// merges caller options over defaults, and the loaders for widget definitions
// and server settings.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Direction is the sort direction a column can declare as its initial sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc", "desc" and their long forms, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadDirection, s)
}

// Valid reports whether d is one of the declared directions.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Column is one declared table column. Key is the record field it displays.
type Column struct {
	Key      string
	Label    string
	Sortable bool
	Sorted   *Direction // initial sort for this column, nil when not declared
}

// Columns is an ordered list of column definitions. Declaration order is the
// display order.
type Columns []Column

// Keys returns the column keys in declaration order.
func (c Columns) Keys() []string {
	keys := make([]string, len(c))
	for i, col := range c {
		keys[i] = col.Key
	}
	return keys
}

// Find returns the column with the given key.
func (c Columns) Find(key string) (Column, bool) {
	for _, col := range c {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// Settings are optional display settings.
type Settings struct {
	SortAscClass     *string `yaml:"sort_asc_class"`
	SortDescClass    *string `yaml:"sort_desc_class"`
	UnsortedClass    *string `yaml:"unsorted_class"`
	TableClass       *string `yaml:"table_class"`
	FillMissingCells *bool   `yaml:"fill_missing_cells"`
}

// HasIndicators reports whether sort indicator styling is configured at all.
// Indicators are skipped only when both the ascending and descending classes
// are unset.
func (s Settings) HasIndicators() bool {
	return s.SortAscClass != nil || s.SortDescClass != nil
}

// Icon is a per-row action icon. Href may contain %%key%% placeholders.
type Icon struct {
	Class *string `yaml:"class"`
	Title *string `yaml:"title"`
	Href  *string `yaml:"href"`
}

// Options are the caller-supplied widget options. A nil field means "not
// supplied" and falls back to the default as a whole.
type Options struct {
	ID       *string   `yaml:"id"`
	Source   *string   `yaml:"source"`
	Columns  Columns   `yaml:"columns"`
	Settings *Settings `yaml:"settings"`
	Icons    []Icon    `yaml:"icons"`
}

// Config is the effective, resolved widget configuration. It is not modified
// after Resolve returns.
type Config struct {
	ID       string
	Source   string
	Columns  Columns
	Settings Settings
	Icons    []Icon
}

// Defaults returns the static defaults object used by Resolve.
func Defaults() Options {
	return Options{
		Settings: &Settings{
			SortAscClass:     Ptr("sort-asc"),
			SortDescClass:    Ptr("sort-desc"),
			UnsortedClass:    Ptr("sort-none"),
			TableClass:       Ptr("ktable"),
			FillMissingCells: Ptr(false),
		},
	}
}

// Ptr returns a pointer to v. Handy for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value, or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// Resolve shallow-merges opts over defaults: any field the caller supplied
// replaces the default field entirely. The merged result is validated so that
// a malformed configuration fails here instead of rendering a table that looks
// normal.
func Resolve(opts, defaults Options) (*Config, error) {
	merged := defaults
	if opts.ID != nil {
		merged.ID = opts.ID
	}
	if opts.Source != nil {
		merged.Source = opts.Source
	}
	if opts.Columns != nil {
		merged.Columns = opts.Columns
	}
	if opts.Settings != nil {
		merged.Settings = opts.Settings
	}
	if opts.Icons != nil {
		merged.Icons = opts.Icons
	}

	cfg := &Config{
		ID:     Deref(merged.ID),
		Source: strings.TrimSpace(Deref(merged.Source)),
	}
	if cfg.ID == "" {
		cfg.ID = "ktable-" + uuid.NewString()
	}
	if !validID.MatchString(cfg.ID) {
		return nil, &Error{Widget: cfg.ID, Field: "id", Err: ErrBadID}
	}
	if cfg.Source == "" {
		return nil, &Error{Widget: cfg.ID, Field: "source", Err: ErrNoSource}
	}
	if len(merged.Columns) == 0 {
		return nil, &Error{Widget: cfg.ID, Field: "columns", Err: ErrNoColumns}
	}

	seen := make(map[string]bool, len(merged.Columns))
	cfg.Columns = make(Columns, 0, len(merged.Columns))
	for i, col := range merged.Columns {
		field := fmt.Sprintf("columns[%d]", i)
		if col.Key == "" {
			return nil, &Error{Widget: cfg.ID, Field: field, Err: ErrEmptyColumnKey}
		}
		if seen[col.Key] {
			return nil, &Error{Widget: cfg.ID, Field: field, Err: fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Key)}
		}
		seen[col.Key] = true
		if col.Sorted != nil {
			if !col.Sorted.Valid() {
				return nil, &Error{Widget: cfg.ID, Field: field, Err: fmt.Errorf("%w: %q", ErrBadDirection, *col.Sorted)}
			}
			col.Sorted = Ptr(*col.Sorted)
		}
		cfg.Columns = append(cfg.Columns, col)
	}

	if merged.Settings != nil {
		s := *merged.Settings
		cfg.Settings = Settings{
			SortAscClass:     clonePtr(s.SortAscClass),
			SortDescClass:    clonePtr(s.SortDescClass),
			UnsortedClass:    clonePtr(s.UnsortedClass),
			TableClass:       clonePtr(s.TableClass),
			FillMissingCells: clonePtr(s.FillMissingCells),
		}
	}

	if len(merged.Icons) > 0 {
		cfg.Icons = make([]Icon, len(merged.Icons))
		for i, icon := range merged.Icons {
			cfg.Icons[i] = Icon{
				Class: clonePtr(icon.Class),
				Title: clonePtr(icon.Title),
				Href:  clonePtr(icon.Href),
			}
		}
	}
	return cfg, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// validID is what a container id may look like. It doubles as an HTML id and
// a URL fragment.
var validID = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.:-]*$`)

var (
	ErrBadID           = errors.New("container id must start with a letter and use only letters, digits and -_.:")
	ErrNoSource        = errors.New("no data source configured")
	ErrNoColumns       = errors.New("no columns declared")
	ErrEmptyColumnKey  = errors.New("column key is empty")
	ErrDuplicateColumn = errors.New("duplicate column key")
	ErrBadDirection    = errors.New("invalid sort direction")
)

// Error is a configuration error for a single widget.
type Error struct {
	Widget string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("widget %s: %s: %v", e.Widget, e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
