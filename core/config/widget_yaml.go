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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// columnYAML is the on-disk shape of a column definition.
type columnYAML struct {
	Label    string     `yaml:"label"`
	Sortable bool       `yaml:"sortable"`
	Sorted   *Direction `yaml:"sorted"`
}

// UnmarshalYAML decodes a columns mapping while keeping declaration order.
// A column value may be a full definition or just its label.
func (c *Columns) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: columns must be a mapping of key to definition", value.Line)
	}
	cols := make(Columns, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, defNode := value.Content[i], value.Content[i+1]
		col := Column{Key: keyNode.Value}
		if defNode.Kind == yaml.ScalarNode {
			col.Label = defNode.Value
		} else {
			var def columnYAML
			if err := defNode.Decode(&def); err != nil {
				return fmt.Errorf("column %q: %w", keyNode.Value, err)
			}
			col.Label = def.Label
			col.Sortable = def.Sortable
			col.Sorted = def.Sorted
		}
		cols = append(cols, col)
	}
	*c = cols
	return nil
}

// UnmarshalYAML parses a direction scalar.
func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	dir, err := ParseDirection(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = dir
	return nil
}

// ParseWidget decodes a widget definition. Unknown top-level keys are
// rejected.
func ParseWidget(data []byte) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("failed to parse widget definition: %w", err)
	}
	return opts, nil
}

// LoadWidget reads and decodes a widget definition file.
func LoadWidget(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read widget definition: %w", err)
	}
	opts, err := ParseWidget(data)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
