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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "people.json")
	require.NoError(t, os.WriteFile(data, []byte(`{"response":"OK","responsecode":200,"payload":[
		{"name":"bravo","age":"31"},
		{"name":"Alpha","age":"27"},
		{"name":"charlie","age":"45"}]}`), 0o600))

	def := filepath.Join(dir, "people.yaml")
	require.NoError(t, os.WriteFile(def, []byte(`
id: people
source: file://`+data+`
columns:
  name: {label: Name, sortable: true}
  age: {label: Age, sortable: true}
`), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", "--widget", def, "--click", "name"})
	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Name ▼")
	assert.Less(t, strings.Index(text, "charlie"), strings.Index(text, "bravo"))
	assert.Less(t, strings.Index(text, "bravo"), strings.Index(text, "Alpha"))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "ktable dev\n", out.String())
}
