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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StatusOK is the application-level response code of a successful envelope.
const StatusOK = 200

// UnknownResponse is the status label reported when an envelope has none.
const UnknownResponse = "UNKNOWN"

var (
	ErrNotJSON         = errors.New("response body is not a JSON object")
	ErrBadResponseCode = errors.New("responsecode is not an integer")
	ErrBadPayload      = errors.New("payload is not an array of records")
	ErrMissingPayload  = errors.New("payload is missing")
)

// Record is one payload row: field key to display value.
type Record map[string]string

// Envelope is the response contract of a data endpoint.
type Envelope struct {
	Response     string
	ResponseCode int
	Payload      []Record
	HasPayload   bool            // false when the payload key was absent
	Raw          json.RawMessage // the envelope exactly as received
}

// Label returns the status label, defaulting to UNKNOWN when absent.
func (e *Envelope) Label() string {
	if e.Response == "" {
		return UnknownResponse
	}
	return e.Response
}

// OK reports whether the envelope carries a successful response code.
func (e *Envelope) OK() bool {
	return e.ResponseCode == StatusOK
}

// Validate returns a *ResponseError when the envelope cannot be rendered:
// either its code is not 200 or a successful envelope has no payload.
func (e *Envelope) Validate() error {
	if !e.OK() {
		return &ResponseError{Code: e.ResponseCode, Response: e.Label()}
	}
	if !e.HasPayload {
		return &ResponseError{Code: e.ResponseCode, Response: e.Label(), Err: ErrMissingPayload}
	}
	return nil
}

type wireEnvelope struct {
	Response     *string           `json:"response"`
	ResponseCode json.RawMessage   `json:"responsecode"`
	Payload      []json.RawMessage `json:"payload"`
}

// DecodeEnvelope parses a JSON envelope. Record values of any JSON type are
// converted to display text.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotJSON
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	env := &Envelope{Raw: json.RawMessage(trimmed)}
	if v, ok := raw["response"]; ok {
		env.Response = displayValue(v)
	}
	if v, ok := raw["responsecode"]; ok {
		code, err := parseCode(v)
		if err != nil {
			return nil, err
		}
		env.ResponseCode = code
	}
	if v, ok := raw["payload"]; ok && !isNull(v) {
		var rows []map[string]json.RawMessage
		if err := json.Unmarshal(v, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		env.HasPayload = true
		env.Payload = make([]Record, 0, len(rows))
		for i, row := range rows {
			if row == nil {
				return nil, fmt.Errorf("%w: element %d is not an object", ErrBadPayload, i)
			}
			rec := make(Record, len(row))
			for key, value := range row {
				rec[key] = displayValue(value)
			}
			env.Payload = append(env.Payload, rec)
		}
	}
	return env, nil
}

// parseCode accepts a JSON integer or a string holding one.
func parseCode(v json.RawMessage) (int, error) {
	if isNull(v) {
		return 0, nil
	}
	text := displayValue(v)
	code, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBadResponseCode, text)
	}
	return code, nil
}

// displayValue renders a JSON value as cell text. Strings are unquoted,
// numbers and booleans keep their literal text, null is empty, and objects
// or arrays become compact JSON.
func displayValue(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || isNull(v) {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err == nil {
		return buf.String()
	}
	return string(v)
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}
