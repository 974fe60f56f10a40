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

package widget

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kasperleth/ktable/datasources"
)

func TestCompareRecords(t *testing.T) {
	tests := []struct {
		name       string
		a, b       string
		descending bool
		want       int
	}{
		{"ascending", "alpha", "bravo", false, -1},
		{"descending", "alpha", "bravo", true, 1},
		{"ignores case", "Alpha", "alpha", false, 0},
		{"ignores case descending", "ALPHA", "alpha", true, 0},
		{"upper before lower by letter", "Bravo", "alpha", false, 1},
		{"digits are text", "10", "9", false, -1},
		{"empty first", "", "a", false, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := datasources.Record{"k": tt.a}
			b := datasources.Record{"k": tt.b}
			if got := compareRecords(a, b, "k", tt.descending); got != tt.want {
				t.Errorf("compareRecords(%q, %q, descending=%v) = %d, want %d", tt.a, tt.b, tt.descending, got, tt.want)
			}
		})
	}
}

func TestCompareRecordsMissingValue(t *testing.T) {
	a := datasources.Record{}
	b := datasources.Record{"k": "x"}
	if got := compareRecords(a, b, "k", false); got >= 0 {
		t.Errorf("missing value should sort first, got %d", got)
	}
}

func TestSortRecordsIsStable(t *testing.T) {
	records := []datasources.Record{
		{"k": "b", "i": "0"},
		{"k": "A", "i": "1"},
		{"k": "a", "i": "2"},
		{"k": "B", "i": "3"},
	}

	sortRecords(records, "k", false)
	if diff := cmp.Diff([]string{"1", "2", "0", "3"}, order(records)); diff != "" {
		t.Errorf("ascending order mismatch (-want +got):\n%s", diff)
	}

	// Equal keys keep their relative order in descending sorts too.
	sortRecords(records, "k", true)
	if diff := cmp.Diff([]string{"0", "3", "1", "2"}, order(records)); diff != "" {
		t.Errorf("descending order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortRecordsMatchesCompare(t *testing.T) {
	records := []datasources.Record{
		{"k": "delta"}, {"k": "Charlie"}, {"k": "alpha"}, {"k": "BRAVO"}, {"k": "echo"},
	}
	for _, descending := range []bool{false, true} {
		sortRecords(records, "k", descending)
		for i := 1; i < len(records); i++ {
			if compareRecords(records[i-1], records[i], "k", descending) > 0 {
				t.Errorf("descending=%v: %q sorted before %q", descending, records[i-1]["k"], records[i]["k"])
			}
		}
	}
}

func order(records []datasources.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r["i"]
	}
	return out
}

func TestSortRecordsDescendingReversesAscending(t *testing.T) {
	records := []datasources.Record{
		{"k": "mike"}, {"k": "Alpha"}, {"k": "zulu"}, {"k": "kilo"}, {"k": "Echo"},
	}

	sortRecords(records, "k", false)
	asc := keys(records)
	sortRecords(records, "k", true)
	desc := keys(records)

	reversed := make([]string, len(asc))
	for i, k := range asc {
		reversed[len(asc)-1-i] = k
	}
	if diff := cmp.Diff(reversed, desc); diff != "" {
		t.Errorf("descending is not the reverse of ascending (-want +got):\n%s", diff)
	}
}

func keys(records []datasources.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r["k"]
	}
	return out
}
