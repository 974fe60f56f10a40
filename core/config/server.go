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
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// EnvPrefix is the prefix of environment variables that override server
// settings, e.g. KTABLE_LOG_LEVEL=debug sets log.level.
const EnvPrefix = "KTABLE_"

// ServerConfig is the process-level configuration of the widget server.
type ServerConfig struct {
	Listen  string      `koanf:"listen"`
	Title   string      `koanf:"title"`
	Log     LogConfig   `koanf:"log"`
	Fetch   FetchConfig `koanf:"fetch"`
	Widgets []string    `koanf:"widgets"` // widget definition files
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	Level      string `koanf:"level"`
	File       string `koanf:"file"`
	MaxSize    int    `koanf:"maxsize"` // megabytes
	MaxBackups int    `koanf:"maxbackups"`
	Compress   bool   `koanf:"compress"`
}

// FetchConfig configures the HTTP data source.
type FetchConfig struct {
	Timeout time.Duration `koanf:"timeout"` // 0 disables the client timeout
}

func serverDefaults() map[string]interface{} {
	return map[string]interface{}{
		"listen":         "127.0.0.1:8097",
		"title":          "ktable",
		"log.level":      "info",
		"log.file":       "",
		"log.maxsize":    10,
		"log.maxbackups": 5,
		"log.compress":   false,
		"fetch.timeout":  "30s",
	}
}

// LoadServerConfig layers defaults, the TOML file at path (skipped when path
// is empty) and KTABLE_* environment variables, in that order. Relative widget
// paths are resolved against the directory of the config file.
func LoadServerConfig(path string) (*ServerConfig, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(serverDefaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg ServerConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Fetch.Timeout < 0 {
		return nil, fmt.Errorf("fetch.timeout must not be negative, got %s", cfg.Fetch.Timeout)
	}

	if path != "" {
		base := filepath.Dir(path)
		for i, w := range cfg.Widgets {
			if !filepath.IsAbs(w) {
				cfg.Widgets[i] = filepath.Join(base, w)
			}
		}
	}
	return &cfg, nil
}

// envKey maps KTABLE_LOG_LEVEL to log.level.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}
