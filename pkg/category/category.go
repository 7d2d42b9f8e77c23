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

// Package category maps file extensions to the folder a file is sorted into.
package category

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// CatchAll is the category assigned to every extension no other category claims.
const CatchAll = "Others"

// 📦 Category is a named bucket and the extensions that map to it
type Category struct {
	Name       string   // Folder name under the root
	Extensions []string // Lowercase, with leading dot
}

// 🔍 Overlap describes an extension listed by more than one category.
// Winner is the earlier category in table order.
type Overlap struct {
	Extension string
	Winner    string
	Shadowed  string
}

// 📚 Table is an ordered, immutable category list.
//
// Classification is first-match-wins in table order: when two categories list
// the same extension the earlier one claims it and the later entry is never
// consulted for that extension.
type Table struct {
	categories []Category
	index      map[string]int // extension -> position in categories
	overlaps   []Overlap
}

// 🏭 NewTable builds a table from categories in the given order.
// A category named CatchAll is folded into the catch-all slot, which is
// always last.
func NewTable(categories ...Category) (*Table, error) {
	t := &Table{
		index: make(map[string]int),
	}

	seen := make(map[string]bool, len(categories))
	var others *Category

	for _, c := range categories {
		if err := validateName(c.Name); err != nil {
			return nil, err
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return nil, errors.Errorf("duplicate category %q", c.Name)
		}
		seen[key] = true

		exts := make([]string, 0, len(c.Extensions))
		for _, ext := range c.Extensions {
			norm, err := NormalizeExtension(ext)
			if err != nil {
				return nil, errors.Errorf("category %q: %w", c.Name, err)
			}
			exts = append(exts, norm)
		}

		if strings.EqualFold(c.Name, CatchAll) {
			others = &Category{Name: CatchAll, Extensions: exts}
			continue
		}
		t.categories = append(t.categories, Category{Name: c.Name, Extensions: exts})
	}

	if others == nil {
		others = &Category{Name: CatchAll}
	}
	t.categories = append(t.categories, *others)

	for i, c := range t.categories {
		for _, ext := range c.Extensions {
			if prev, ok := t.index[ext]; ok {
				if prev != i {
					t.overlaps = append(t.overlaps, Overlap{
						Extension: ext,
						Winner:    t.categories[prev].Name,
						Shadowed:  c.Name,
					})
				}
				continue
			}
			t.index[ext] = i
		}
	}

	return t, nil
}

// 🎯 Classify returns the category for a file extension such as ".JPG".
// Matching is case-insensitive. Unknown and empty extensions map to CatchAll.
func (t *Table) Classify(ext string) Category {
	if i, ok := t.index[strings.ToLower(ext)]; ok {
		return t.categories[i]
	}
	return t.categories[len(t.categories)-1]
}

// Categories returns the categories in table order, catch-all last.
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Extensions: append([]string(nil), c.Extensions...)}
	}
	return out
}

// Overlaps lists extensions shadowed by an earlier category.
func (t *Table) Overlaps() []Overlap {
	return append([]Overlap(nil), t.overlaps...)
}

// NormalizeExtension lowercases ext and adds a missing leading dot.
func NormalizeExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return "", errors.Errorf("empty extension")
	}
	if strings.ContainsAny(ext, `/\`) {
		return "", errors.Errorf("extension %q contains a path separator", ext)
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext, nil
}

// validateName checks that name is usable as a single folder name under the root
func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Errorf("category name is required")
	case name == "." || name == "..":
		return errors.Errorf("invalid category name %q", name)
	case strings.HasPrefix(name, "."):
		return errors.Errorf("category name %q must not start with a dot", name)
	case strings.ContainsAny(name, `/\`):
		return errors.Errorf("category name %q contains a path separator", name)
	}
	return nil
}
