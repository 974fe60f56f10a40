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
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kasperleth/ktable/core/views"
)

const (
	ascMarker  = " ▲"
	descMarker = " ▼"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderText writes the widget as a terminal table. The active sort column
// carries an arrow. Rows keep exactly the cells the HTML body has, so a record
// with a missing value shows the same left shift.
func RenderText(w io.Writer, vm views.TableViewModel) error {
	if !vm.Loaded {
		_, err := fmt.Fprintf(w, "%s: no data\n", vm.ID)
		return err
	}

	headers := make([]string, 0, len(vm.Header))
	for _, cell := range vm.Header {
		if cell.IconColumn {
			continue
		}
		label := cell.Label
		if cell.Sortable && cell.Key == vm.SortColumn {
			if vm.SortDescending {
				label += descMarker
			} else {
				label += ascMarker
			}
		}
		headers = append(headers, label)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)

	for _, row := range vm.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, c.Text)
		}
		t.Row(cells...)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}
