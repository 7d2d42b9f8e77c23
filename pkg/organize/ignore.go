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

package organize

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// HiddenPrefix marks hidden files; they are never moved.
const HiddenPrefix = "."

// DefaultIgnoredNames are platform metadata files left in place.
var DefaultIgnoredNames = []string{".DS_Store", ".localized", "desktop.ini"}

// 🙈 Ignore decides which file names are left alone.
// Names and the hidden prefix are checked independently: the name set
// contains entries (desktop.ini) that the prefix rule alone would not catch.
type Ignore struct {
	Names    map[string]bool
	Patterns []string // doublestar patterns matched against the base name
}

// 🏭 NewIgnore builds an Ignore from the defaults plus extra names and patterns
func NewIgnore(names, patterns []string) (*Ignore, error) {
	ig := &Ignore{Names: make(map[string]bool, len(DefaultIgnoredNames)+len(names))}
	for _, n := range DefaultIgnoredNames {
		ig.Names[n] = true
	}
	for _, n := range names {
		ig.Names[n] = true
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid ignore pattern %q", p)
		}
		ig.Patterns = append(ig.Patterns, p)
	}
	return ig, nil
}

// DefaultIgnore returns an Ignore holding only the defaults
func DefaultIgnore() *Ignore {
	ig, _ := NewIgnore(nil, nil)
	return ig
}

// 🔍 Match returns the skip reason for name, or "" when it should be organized
func (ig *Ignore) Match(ctx context.Context, name string) string {
	if ig.Names[name] {
		return ReasonIgnored
	}
	if strings.HasPrefix(name, HiddenPrefix) {
		return ReasonHidden
	}
	for _, pattern := range ig.Patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("name", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("name", name).Str("pattern", pattern).Msg("file ignored by pattern")
			return ReasonPattern
		}
	}
	return ""
}
