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

import _ "embed"

//go:embed data/orders.json
var ordersJSON []byte

//go:embed data/customers.json
var customersJSON []byte

// brokenJSON is what a failing backend answers.
const brokenJSON = `{"response":"FAIL","responsecode":500}`

// garbageHTML is what a misconfigured proxy answers.
const garbageHTML = `<html><body><h1>502 Bad Gateway</h1></body></html>`
