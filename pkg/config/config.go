// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/sortdir/pkg/category"
	"github.com/walteh/sortdir/pkg/organize"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 CategoryConfig is one entry of the category table
type CategoryConfig struct {
	Name       string   `json:"name" yaml:"name" toml:"name"`
	Extensions []string `json:"extensions" yaml:"extensions" toml:"extensions"`
}

// 📚 Config represents the complete configuration
type Config struct {
	// Root overrides the default directory (the user's Desktop)
	Root string `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty"`
	// Categories replaces the built-in table when non-empty; order decides overlaps
	Categories []CategoryConfig `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories,omitempty"`
	// IgnoreFiles are extra exact names to leave in place
	IgnoreFiles []string `json:"ignore_files,omitempty" yaml:"ignore_files,omitempty" toml:"ignore_files,omitempty"`
	// IgnorePatterns are doublestar globs matched against file names
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" toml:"ignore_patterns,omitempty"`
	// MaxCollisionAttempts caps the "(N)" counter, zero for no cap
	MaxCollisionAttempts int `json:"max_collision_attempts,omitempty" yaml:"max_collision_attempts,omitempty" toml:"max_collision_attempts,omitempty"`
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.MaxCollisionAttempts < 0 {
		return errors.Errorf("max_collision_attempts must not be negative")
	}

	for i, c := range cfg.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return errors.Errorf("categories[%d]: name is required", i)
		}
	}

	// Building these runs the remaining name, extension and pattern checks
	if _, err := cfg.Table(); err != nil {
		return err
	}
	if _, err := cfg.Ignore(); err != nil {
		return err
	}

	// Clean up paths
	if cfg.Root != "" {
		cfg.Root = filepath.Clean(cfg.Root)
	}

	return nil
}

// 🗂️ Table returns the category table, the built-in one when none is configured
func (cfg *Config) Table() (*category.Table, error) {
	if len(cfg.Categories) == 0 {
		return category.DefaultTable(), nil
	}

	cats := make([]category.Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		cats = append(cats, category.Category{Name: c.Name, Extensions: c.Extensions})
	}

	table, err := category.NewTable(cats...)
	if err != nil {
		return nil, errors.Errorf("building category table: %w", err)
	}
	return table, nil
}

// 🙈 Ignore returns the default ignore rules plus the configured ones
func (cfg *Config) Ignore() (*organize.Ignore, error) {
	ig, err := organize.NewIgnore(cfg.IgnoreFiles, cfg.IgnorePatterns)
	if err != nil {
		return nil, errors.Errorf("building ignore rules: %w", err)
	}
	return ig, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	root := cfg.Root
	if root == "" {
		root = "<desktop>"
	}
	categories := "default"
	if len(cfg.Categories) > 0 {
		categories = fmt.Sprintf("%d custom", len(cfg.Categories))
	}
	return fmt.Sprintf("%s (categories: %s, ignore: %d names, %d patterns)",
		root, categories, len(cfg.IgnoreFiles), len(cfg.IgnorePatterns))
}

// 🏠 ExpandHome replaces a leading "~" with home
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
