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

package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/safehtml"
	"github.com/kasperleth/ktable/core/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() views.TableViewModel {
	return views.TableViewModel{
		ID:         "orders",
		TableClass: "ktable",
		Loaded:     true,
		Header: []views.HeaderCell{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name", Sortable: true, SortURL: safehtml.URLSanitized("/sort/name"), Indicator: "sort-asc"},
			{IconColumn: true},
		},
		HasIconColumn: true,
		Rows: []views.Row{
			{
				Cells:    []views.Cell{{Key: "id", Text: "2"}, {Key: "name", Text: "Alpha"}},
				HasIcons: true,
				Icons: []views.IconLink{
					{Class: "fa fa-eye", Title: "View", Linked: true, Href: safehtml.URLSanitized("x?id=2")},
					{Class: "fa fa-info", Title: "Info"},
				},
			},
			{
				Cells:    []views.Cell{{Key: "id", Text: "1"}, {Key: "name", Text: "<b>bravo</b>"}},
				HasIcons: true,
				Icons: []views.IconLink{
					{Class: "fa fa-eye", Title: "View", Linked: true, Href: safehtml.URLSanitized("javascript:alert(1)")},
					{Class: "fa fa-info", Title: "Info"},
				},
			},
		},
		SortColumn: "name",
	}
}

func render(t *testing.T, vm views.TableViewModel) string {
	t.Helper()
	r, err := NewTableRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, vm))
	return buf.String()
}

func TestRenderTable(t *testing.T) {
	out := render(t, sampleTable())

	assert.Contains(t, out, `<div id="orders" class="ktable-container">`)
	assert.Contains(t, out, `<table class="ktable">`)
	assert.Contains(t, out, `<th>ID</th>`)
	assert.Contains(t, out, `<th><a href="/sort/name">Name<span class="indicator sort-asc"></span></a></th>`)
	assert.Contains(t, out, `<th class="ktable-icons" style="width:1%"></th>`)
	assert.Contains(t, out, `<td>Alpha</td>`)
	assert.Contains(t, out, `<a href="x?id=2" title="View"><i class="fa fa-eye"></i></a>`)
	assert.Contains(t, out, `<i class="fa fa-info" title="Info"></i>`)
	assert.Equal(t, 2, strings.Count(out, `<td class="ktable-icons">`))

	// Rows keep their order.
	assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "bravo"))
}

func TestRenderEscapes(t *testing.T) {
	out := render(t, sampleTable())

	assert.Contains(t, out, `<td>&lt;b&gt;bravo&lt;/b&gt;</td>`)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "about:invalid#zGoSafez")
}

func TestRenderWithoutIcons(t *testing.T) {
	vm := views.TableViewModel{
		ID:     "plain",
		Loaded: true,
		Header: []views.HeaderCell{{Key: "name", Label: "Name"}},
		Rows:   []views.Row{{Cells: []views.Cell{{Key: "name", Text: "x"}}}},
	}
	out := render(t, vm)

	assert.NotContains(t, out, "ktable-icons")
	assert.Equal(t, 1, strings.Count(out, "<td>"))
}

func TestRenderBeforeLoad(t *testing.T) {
	out := render(t, views.TableViewModel{ID: "pending", TableClass: "ktable"})

	assert.Contains(t, out, `<div id="pending" class="ktable-container">`)
	assert.NotContains(t, out, "<table")
	assert.NotContains(t, out, "<th")
}

func TestRenderPage(t *testing.T) {
	r, err := NewTableRenderer()
	require.NoError(t, err)

	second := sampleTable()
	second.ID = "customers"
	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, views.PageViewModel{
		Title:   "Demo & Co",
		Widgets: []views.TableViewModel{sampleTable(), second},
	}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Demo &amp; Co</title>")
	first := strings.Index(out, `<div id="orders"`)
	other := strings.Index(out, `<div id="customers"`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, other)
	assert.Less(t, first, other)
}

func TestRenderText(t *testing.T) {
	vm := sampleTable()
	vm.Rows[1].Cells[1].Text = "bravo"
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, vm))
	out := buf.String()

	assert.Contains(t, out, "Name ▲")
	assert.NotContains(t, out, "ID ▲")
	assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "bravo"))

	vm.SortDescending = true
	buf.Reset()
	require.NoError(t, RenderText(&buf, vm))
	assert.Contains(t, buf.String(), "Name ▼")
}

func TestRenderTextBeforeLoad(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, views.TableViewModel{ID: "pending"}))
	assert.Equal(t, "pending: no data\n", buf.String())
}
