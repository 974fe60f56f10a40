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

package query

import (
	"net/url"
	"testing"
)

func TestClickRoundTrip(t *testing.T) {
	c := &Click{Widget: "orders", Column: "name"}
	u, err := url.Parse(c.ToURL(""))
	if err != nil {
		t.Fatalf("failed to parse %q: %v", c.ToURL(""), err)
	}
	if u.Path != SortPath {
		t.Errorf("Expected path %q, got %q", SortPath, u.Path)
	}

	parsed, err := NewClick(u)
	if err != nil {
		t.Fatalf("NewClick: %v", err)
	}
	if *parsed != *c {
		t.Errorf("Expected %+v, got %+v", c, parsed)
	}
}

func TestClickEscapesValues(t *testing.T) {
	c := &Click{Widget: "a&b", Column: "first name"}
	got := c.ToURL("/w/sort")
	want := "/w/sort?column=first+name&widget=a%26b"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if SortURL("a&b", "first name").String() != "/sort?column=first+name&widget=a%26b" {
		t.Errorf("Unexpected safe URL %q", SortURL("a&b", "first name").String())
	}
}

func TestNewClickIncomplete(t *testing.T) {
	for _, raw := range []string{"/sort", "/sort?widget=a", "/sort?column=b", "/sort?widget=&column=b"} {
		u, _ := url.Parse(raw)
		if _, err := NewClick(u); err != ErrIncompleteClick {
			t.Errorf("%s: expected ErrIncompleteClick, got %v", raw, err)
		}
	}
}

func TestReturnURL(t *testing.T) {
	if got := ReturnURL("orders"); got != "/#orders" {
		t.Errorf("Expected /#orders, got %q", got)
	}
}
