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

package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDefaults(t *testing.T) {
	table := DefaultTable()

	// Every configured extension maps to its own category, in any case
	for _, c := range Defaults() {
		for _, ext := range c.Extensions {
			assert.Equal(t, c.Name, table.Classify(ext).Name, "extension %s should classify as %s", ext, c.Name)
			assert.Equal(t, c.Name, table.Classify(strings.ToUpper(ext)).Name, "upper-case %s should classify as %s", ext, c.Name)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{name: "lower_jpg", ext: ".jpg", want: "Images"},
		{name: "upper_jpg", ext: ".JPG", want: "Images"},
		{name: "mixed_pdf", ext: ".PdF", want: "PDFs"},
		{name: "markdown", ext: ".md", want: "Documents"},
		{name: "unknown", ext: ".xyz", want: CatchAll},
		{name: "empty", ext: "", want: CatchAll},
		{name: "no_dot", ext: "jpg", want: CatchAll},
		{name: "only_dot", ext: ".", want: CatchAll},
	}

	table := DefaultTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Classify(tt.ext).Name)
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	table, err := NewTable(
		Category{Name: "Code", Extensions: []string{".ts", ".go"}},
		Category{Name: "Videos", Extensions: []string{".mp4", ".ts"}},
	)
	require.NoError(t, err, "building table should succeed")

	assert.Equal(t, "Code", table.Classify(".ts").Name, "earlier category should win the overlap")
	assert.Equal(t, "Videos", table.Classify(".mp4").Name, "non-overlapping extension should still match")

	overlaps := table.Overlaps()
	require.Len(t, overlaps, 1, "should report one overlap")
	assert.Equal(t, Overlap{Extension: ".ts", Winner: "Code", Shadowed: "Videos"}, overlaps[0])
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name        string
		categories  []Category
		wantErr     bool
		errContains string
		check       func(t *testing.T, table *Table)
	}{
		{
			name:       "catch_all_appended",
			categories: []Category{{Name: "Images", Extensions: []string{".png"}}},
			check: func(t *testing.T, table *Table) {
				cats := table.Categories()
				require.Len(t, cats, 2)
				assert.Equal(t, CatchAll, cats[1].Name, "catch-all should be last")
			},
		},
		{
			name: "catch_all_folded_to_end",
			categories: []Category{
				{Name: "others", Extensions: []string{".bin"}},
				{Name: "Images", Extensions: []string{".png"}},
			},
			check: func(t *testing.T, table *Table) {
				cats := table.Categories()
				require.Len(t, cats, 2)
				assert.Equal(t, "Images", cats[0].Name)
				assert.Equal(t, CatchAll, cats[1].Name)
				assert.Equal(t, CatchAll, table.Classify(".bin").Name, "explicit catch-all extension should match")
			},
		},
		{
			name:       "extensions_normalized",
			categories: []Category{{Name: "Images", Extensions: []string{"PNG", " .Jpg "}}},
			check: func(t *testing.T, table *Table) {
				assert.Equal(t, []string{".png", ".jpg"}, table.Categories()[0].Extensions)
				assert.Equal(t, "Images", table.Classify(".JPG").Name)
			},
		},
		{
			name:        "empty_name",
			categories:  []Category{{Name: " "}},
			wantErr:     true,
			errContains: "category name is required",
		},
		{
			name:        "duplicate_name",
			categories:  []Category{{Name: "Images"}, {Name: "images"}},
			wantErr:     true,
			errContains: "duplicate category",
		},
		{
			name:        "separator_in_name",
			categories:  []Category{{Name: "a/b"}},
			wantErr:     true,
			errContains: "path separator",
		},
		{
			name:        "dot_name",
			categories:  []Category{{Name: ".."}},
			wantErr:     true,
			errContains: "invalid category name",
		},
		{
			name:        "hidden_name",
			categories:  []Category{{Name: ".hidden"}},
			wantErr:     true,
			errContains: "must not start with a dot",
		},
		{
			name:        "empty_extension",
			categories:  []Category{{Name: "Images", Extensions: []string{""}}},
			wantErr:     true,
			errContains: "empty extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.categories...)
			if tt.wantErr {
				require.Error(t, err, "NewTable should fail")
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err, "NewTable should succeed")
			if tt.check != nil {
				tt.check(t, table)
			}
		})
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	table := DefaultTable()
	cats := table.Categories()
	cats[0].Extensions[0] = ".mutated"

	assert.Equal(t, "Images", table.Classify(".jpg").Name, "mutating the copy must not change classification")
	assert.Equal(t, ".jpg", table.Categories()[0].Extensions[0])
}

func TestDefaultTableHasNoOverlaps(t *testing.T) {
	assert.Empty(t, DefaultTable().Overlaps())
}
