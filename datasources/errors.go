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

package datasources

import (
	"fmt"
	"strconv"
)

// TransportError means the request never produced a usable envelope: the
// network failed, the body was not JSON, or a non-2xx status came without a
// parseable envelope.
type TransportError struct {
	Locator    string
	Status     string // HTTP status line, empty when no response arrived
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("fetch %s: %s: %v", e.Locator, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError is an application-level failure reported by the envelope
// itself.
type ResponseError struct {
	Code     int
	Response string
	Err      error // optional detail, e.g. ErrMissingPayload
}

func (e *ResponseError) Error() string {
	msg := "error response " + strconv.Itoa(e.Code) + " " + e.Response
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}
