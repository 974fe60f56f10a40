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
	"slices"
	"strings"

	"github.com/kasperleth/ktable/datasources"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// foldKey lower-cases a value for comparison. A Caser keeps state between
// calls, so a fresh one is made for each sort.
func foldKey(c cases.Caser, s string) string {
	return c.String(s)
}

// compareRecords orders two records by the value of column, ignoring case.
// A record without the column sorts as the empty string.
// Returns negative if a sorts before b, zero if equal, positive otherwise.
func compareRecords(a, b datasources.Record, column string, descending bool) int {
	c := cases.Lower(language.Und)
	cmp := strings.Compare(foldKey(c, a[column]), foldKey(c, b[column]))
	if descending {
		return -cmp // Reverse for descending
	}
	return cmp
}

// keyedRecord pairs a record with its folded sort key so each value is
// lower-cased once per sort rather than once per comparison.
type keyedRecord struct {
	key string
	rec datasources.Record
}

// sortRecords stably sorts records in place by column.
func sortRecords(records []datasources.Record, column string, descending bool) {
	if len(records) < 2 {
		return
	}

	c := cases.Lower(language.Und)
	keyed := make([]keyedRecord, len(records))
	for i, rec := range records {
		keyed[i] = keyedRecord{key: foldKey(c, rec[column]), rec: rec}
	}

	slices.SortStableFunc(keyed, func(a, b keyedRecord) int {
		cmp := strings.Compare(a.key, b.key)
		if descending {
			return -cmp
		}
		return cmp
	})

	for i := range keyed {
		records[i] = keyed[i].rec
	}
}
