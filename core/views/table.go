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

package views

import (
	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// TableViewModel is the rendered state of one widget, formatted for template
// consumption.
type TableViewModel struct {
	ID         string // container id
	TableClass string
	Loaded     bool // header and body exist only once data has loaded
	Header     []HeaderCell
	Rows       []Row

	HasIconColumn bool

	SortColumn     string
	SortDescending bool
}

// HeaderCell is one cell of the header row.
type HeaderCell struct {
	Key        string
	Label      string
	Sortable   bool
	SortURL    safehtml.URL // target of the clickable label, sortable cells only
	Indicator  string       // CSS class of the sort indicator element
	IconColumn bool         // the label-less header over the action icons
}

// Row is one body row.
type Row struct {
	Cells    []Cell
	HasIcons bool
	Icons    []IconLink
}

// Cell is one body cell.
type Cell struct {
	Key     string
	Text    string
	Missing bool // the record had no value; only present when filling gaps
}

// IconLink is one action icon inside a row's icon cell.
type IconLink struct {
	Class  string
	Title  string
	Linked bool
	Href   safehtml.URL
}

// Anchor returns the container id as an HTML identifier. Container ids are
// restricted to identifier characters when the configuration is resolved.
func (vm TableViewModel) Anchor() safehtml.Identifier {
	return uncheckedconversions.IdentifierFromStringKnownToSatisfyTypeContract(vm.ID)
}

// Clone returns a deep copy so templates never observe a concurrent re-sort.
func (vm TableViewModel) Clone() TableViewModel {
	out := vm
	out.Header = append([]HeaderCell(nil), vm.Header...)
	if vm.Rows != nil {
		out.Rows = make([]Row, len(vm.Rows))
		for i, row := range vm.Rows {
			out.Rows[i] = Row{
				Cells:    append([]Cell(nil), row.Cells...),
				HasIcons: row.HasIcons,
				Icons:    append([]IconLink(nil), row.Icons...),
			}
		}
	}
	return out
}

// CellTexts returns the text of every cell of every row, mostly for logs and
// tests.
func (vm TableViewModel) CellTexts() [][]string {
	out := make([][]string, len(vm.Rows))
	for i, row := range vm.Rows {
		texts := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			texts[j] = c.Text
		}
		out[i] = texts
	}
	return out
}

// PageViewModel hosts several independent widgets on one page.
type PageViewModel struct {
	Title   string
	Widgets []TableViewModel
}
