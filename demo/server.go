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

import "net/http"

// Paths served by Handler.
const (
	OrdersPath    = "/api/orders"
	CustomersPath = "/api/customers"
	BrokenPath    = "/api/broken"
	GarbagePath   = "/api/garbage"
)

// Handler serves the demo data endpoints: two healthy envelopes, one
// application error envelope and one response that is not JSON at all.
func Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+OrdersPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ordersJSON)
	})

	mux.HandleFunc("GET "+CustomersPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, customersJSON)
	})

	mux.HandleFunc("GET "+BrokenPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, []byte(brokenJSON))
	})

	mux.HandleFunc("GET "+GarbagePath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(garbageHTML))
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
