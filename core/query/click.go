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

// Package query builds and parses the URLs behind sortable column headers.
package query

import (
	"errors"
	"net/url"

	"github.com/google/safehtml"
)

// SortPath is the path a sort click is sent to.
const SortPath = "/sort"

// ErrIncompleteClick is returned when a click URL lacks the widget or column.
var ErrIncompleteClick = errors.New("sort click needs widget and column parameters")

// Click is one click on a sortable column header.
type Click struct {
	Widget string // container id of the widget
	Column string // column key
}

// NewClick parses a click from a request URL.
func NewClick(u *url.URL) (*Click, error) {
	q := u.Query()
	c := &Click{
		Widget: q.Get("widget"),
		Column: q.Get("column"),
	}
	if c.Widget == "" || c.Column == "" {
		return nil, ErrIncompleteClick
	}
	return c, nil
}

// ToURL converts the click back to a URL string relative to base. An empty
// base uses SortPath.
func (c *Click) ToURL(base string) string {
	if base == "" {
		base = SortPath
	}
	u := &url.URL{Path: base}
	q := u.Query()
	q.Set("widget", c.Widget)
	q.Set("column", c.Column)
	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the click to a safehtml.URL.
func (c *Click) ToSafeURL(base string) safehtml.URL {
	return safehtml.URLSanitized(c.ToURL(base))
}

// SortURL returns the header link that sorts widget by column.
func SortURL(widget, column string) safehtml.URL {
	return (&Click{Widget: widget, Column: column}).ToSafeURL(SortPath)
}

// ReturnURL is where the browser goes after a click: the page, scrolled to
// the widget's container.
func ReturnURL(widget string) string {
	u := &url.URL{Path: "/", Fragment: widget}
	return u.String()
}
