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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kasperleth/ktable/core/config"
	"github.com/kasperleth/ktable/core/widget"
	"github.com/kasperleth/ktable/datasources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDemo(t *testing.T) map[string]*widget.Widget {
	t.Helper()
	ts := httptest.NewServer(Handler())
	t.Cleanup(ts.Close)

	registry := datasources.NewRegistry(ts.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := make(map[string]*widget.Widget)
	for _, opts := range Widgets(ts.URL + "/") {
		cfg, err := config.Resolve(opts, config.Defaults())
		require.NoError(t, err)
		src, err := registry.Open(cfg.Source)
		require.NoError(t, err)

		w := widget.New(cfg, src)
		_ = w.Load(ctx)
		out[cfg.ID] = w
	}
	return out
}

func TestDemoWidgets(t *testing.T) {
	widgets := loadDemo(t)
	require.Len(t, widgets, 4)

	orders := widgets["orders"]
	require.NoError(t, orders.Err())
	vm := orders.Snapshot()
	require.Len(t, vm.Rows, 6)
	assert.Equal(t, "customer", vm.SortColumn)
	var customers []string
	for _, row := range vm.Rows {
		customers = append(customers, row.Cells[1].Text)
	}
	assert.Equal(t, []string{
		"acme corp", "Aurora AB", "Borealis GmbH", "Kiwi Traders", "Nordlys ApS", "zenith labs",
	}, customers)
	assert.Contains(t, vm.Rows[0].Icons[0].Href.String(), "/api/orders?id=1043")

	cust := widgets["customers"].Snapshot()
	require.True(t, cust.Loaded)
	for _, row := range cust.Rows {
		assert.Len(t, row.Cells, 4)
	}
	assert.Equal(t, "US", cust.Rows[0].Cells[1].Text)

	var re *datasources.ResponseError
	require.ErrorAs(t, widgets["broken"].Err(), &re)
	assert.Equal(t, 500, re.Code)
	assert.Equal(t, "FAIL", re.Response)

	var te *datasources.TransportError
	require.ErrorAs(t, widgets["garbage"].Err(), &te)
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)
	assert.False(t, widgets["garbage"].Snapshot().Loaded)
}

func TestHandlerMethods(t *testing.T) {
	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+OrdersPath, "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(ts.URL + BrokenPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}
