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
	"sort"
)

// 📊 Outcome is the terminal state of one processed entry
type Outcome int

const (
	OutcomeMoved   Outcome = iota // Relocated into its category folder
	OutcomeSkipped                // Filtered out, untouched
	OutcomeFailed                 // Relocation attempted and failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Skip reasons recorded on skipped entries
const (
	ReasonNotRegular = "not a regular file"
	ReasonIgnored    = "ignored name"
	ReasonHidden     = "hidden file"
	ReasonPattern    = "matches ignore pattern"
)

// 📄 MoveRecord is the result of processing one directory entry
type MoveRecord struct {
	Source      string  // Name in the root
	Category    string  // Destination category, empty when skipped
	Destination string  // Name inside the category folder, empty unless moved
	Size        int64   // Bytes, as listed in the snapshot
	Outcome     Outcome // Terminal state
	Reason      string  // Skip reason or failure step
	Err         error   // Failure cause, nil unless failed
}

// 📢 Reporter receives every MoveRecord as soon as its entry is done
type Reporter interface {
	Report(ctx context.Context, rec MoveRecord)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, rec MoveRecord)

func (f ReporterFunc) Report(ctx context.Context, rec MoveRecord) {
	f(ctx, rec)
}

type discardReporter struct{}

func (discardReporter) Report(context.Context, MoveRecord) {}

// 📈 Summary aggregates a run. Only successful moves reach the Tally.
type Summary struct {
	Tally   map[string]int // Category -> successful moves
	Bytes   int64          // Total size of moved files
	Failed  int
	Skipped int
}

func newSummary() *Summary {
	return &Summary{Tally: make(map[string]int)}
}

func (s *Summary) add(rec MoveRecord) {
	switch rec.Outcome {
	case OutcomeMoved:
		s.Tally[rec.Category]++
		s.Bytes += rec.Size
	case OutcomeFailed:
		s.Failed++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// Total returns the number of successful moves
func (s *Summary) Total() int {
	total := 0
	for _, n := range s.Tally {
		total += n
	}
	return total
}

// Categories returns the categories with at least one move, sorted by name
func (s *Summary) Categories() []string {
	names := make([]string, 0, len(s.Tally))
	for name, n := range s.Tally {
		if n > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Empty reports whether nothing was moved
func (s *Summary) Empty() bool {
	return s.Total() == 0
}
