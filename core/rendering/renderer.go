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
	"embed"
	"io"

	"github.com/google/safehtml/template"
	"github.com/kasperleth/ktable/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// TableRenderer handles rendering of table view models to HTML
type TableRenderer struct {
	tableTemplate *template.Template
	pageTemplate  *template.Template
}

// NewTableRenderer creates a new table renderer
func NewTableRenderer() (*TableRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	// Parse the widget fragment template
	tableTemplate, err := template.New("table.html").ParseFS(trustedFS, "templates/table.html")
	if err != nil {
		return nil, err
	}

	// The page template embeds one fragment per widget
	pageTemplate, err := template.New("page.html").ParseFS(trustedFS, "templates/page.html", "templates/table.html")
	if err != nil {
		return nil, err
	}

	return &TableRenderer{
		tableTemplate: tableTemplate,
		pageTemplate:  pageTemplate,
	}, nil
}

// Render renders one widget fragment to the provided writer
func (r *TableRenderer) Render(w io.Writer, vm views.TableViewModel) error {
	return r.tableTemplate.Execute(w, vm)
}

// RenderPage renders a full page hosting every widget to the provided writer
func (r *TableRenderer) RenderPage(w io.Writer, vm views.PageViewModel) error {
	return r.pageTemplate.Execute(w, vm)
}
