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

package demo

import (
	"strings"

	"github.com/kasperleth/ktable/core/config"
)

// Widgets returns the demo widget definitions with sources under base, the
// address where Handler is mounted.
func Widgets(base string) []config.Options {
	base = strings.TrimSuffix(base, "/")
	return []config.Options{
		{
			ID:     config.Ptr("orders"),
			Source: config.Ptr(base + OrdersPath),
			Columns: config.Columns{
				{Key: "id", Label: "Order", Sortable: true},
				{Key: "customer", Label: "Customer", Sortable: true, Sorted: config.Ptr(config.Ascending)},
				{Key: "status", Label: "Status", Sortable: true},
				{Key: "region", Label: "Region"},
				{Key: "amount", Label: "Amount", Sortable: true},
			},
			Icons: []config.Icon{
				{
					Class: config.Ptr("icon-view"),
					Title: config.Ptr("Raw order"),
					Href:  config.Ptr(base + OrdersPath + "?id=%%id%%"),
				},
				{
					Class: config.Ptr("icon-customer"),
					Title: config.Ptr("Customer"),
					Href:  config.Ptr(base + CustomersPath + "?name=%%customer%%"),
				},
			},
		},
		{
			ID:     config.Ptr("customers"),
			Source: config.Ptr(base + CustomersPath),
			Columns: config.Columns{
				{Key: "name", Label: "Name", Sortable: true},
				{Key: "country", Label: "Country", Sortable: true, Sorted: config.Ptr(config.Descending)},
				{Key: "contact", Label: "Contact"},
				{Key: "since", Label: "Customer since", Sortable: true},
			},
			Settings: &config.Settings{
				SortAscClass:     config.Ptr("sort-asc"),
				SortDescClass:    config.Ptr("sort-desc"),
				UnsortedClass:    config.Ptr("sort-none"),
				TableClass:       config.Ptr("ktable"),
				FillMissingCells: config.Ptr(true),
			},
		},
		{
			ID:      config.Ptr("broken"),
			Source:  config.Ptr(base + BrokenPath),
			Columns: config.Columns{{Key: "id", Label: "ID", Sortable: true}},
		},
		{
			ID:      config.Ptr("garbage"),
			Source:  config.Ptr(base + GarbagePath),
			Columns: config.Columns{{Key: "id", Label: "ID", Sortable: true}},
		},
	}
}
