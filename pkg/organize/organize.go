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
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/sortdir/pkg/category"
	"github.com/walteh/sortdir/pkg/filesystem"
	"github.com/walteh/sortdir/pkg/naming"
	"gitlab.com/tozd/go/errors"
)

// ErrRootNotFound is returned when the directory to organize does not exist.
var ErrRootNotFound = errors.Base("root directory not found")

// Failure steps recorded as the Reason of failed entries
const (
	StepCreateDir = "creating category folder"
	StepResolve   = "resolving unique name"
	StepMove      = "moving file"
)

// 🔧 Options contains configuration for the organizer
type Options struct {
	// Root is the directory whose immediate children are organized
	Root string
	// Table classifies extensions; DefaultTable when nil
	Table *category.Table
	// Ignore filters names; DefaultIgnore when nil
	Ignore *Ignore
	// FS performs all filesystem access
	FS filesystem.FileSystem
	// Reporter receives each MoveRecord; discarded when nil
	Reporter Reporter
	// MaxCollisionAttempts caps the rename counter; zero means no cap
	MaxCollisionAttempts int
}

// 🗂️ Organizer moves a directory's files into category folders
type Organizer struct {
	root        string
	table       *category.Table
	ignore      *Ignore
	fs          filesystem.FileSystem
	reporter    Reporter
	maxAttempts int
}

// 🏭 New creates an organizer with the given options
func New(opts Options) (*Organizer, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root is required")
	}
	if opts.FS == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.MaxCollisionAttempts < 0 {
		return nil, errors.Errorf("max collision attempts must not be negative")
	}

	o := &Organizer{
		root:        filepath.Clean(opts.Root),
		table:       opts.Table,
		ignore:      opts.Ignore,
		fs:          opts.FS,
		reporter:    opts.Reporter,
		maxAttempts: opts.MaxCollisionAttempts,
	}
	if o.table == nil {
		o.table = category.DefaultTable()
	}
	if o.ignore == nil {
		o.ignore = DefaultIgnore()
	}
	if o.reporter == nil {
		o.reporter = discardReporter{}
	}
	return o, nil
}

// Root returns the directory being organized
func (o *Organizer) Root() string {
	return o.root
}

// 🏃 Organize sorts every eligible file in the root and returns the summary.
//
// A missing root fails with ErrRootNotFound before anything is moved. Per-file
// failures never end the run. A cancelled context stops the run between
// entries and returns the partial summary together with the context error.
func (o *Organizer) Organize(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx).With().Str("root", o.root).Logger()

	// Take the snapshot
	entries, err := o.fs.ReadDir(ctx, o.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%s: %w", o.root, ErrRootNotFound)
		}
		return nil, errors.Errorf("listing root: %w", err)
	}
	logger.Debug().Int("entries", len(entries)).Msg("listed root")

	summary := newSummary()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			logger.Warn().Int("moved", summary.Total()).Msg("organize interrupted")
			return summary, errors.Errorf("organize interrupted: %w", err)
		}

		rec := o.process(ctx, entry)
		summary.add(rec)
		o.reporter.Report(ctx, rec)
	}

	logger.Debug().
		Int("moved", summary.Total()).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("organize complete")

	return summary, nil
}

// 📄 process runs one entry through filter, classify, ensure, deconflict and move
func (o *Organizer) process(ctx context.Context, entry filesystem.Entry) MoveRecord {
	rec := MoveRecord{Source: entry.Name, Size: entry.Size}

	// Filter
	if !entry.Regular {
		return skipped(rec, ReasonNotRegular)
	}
	if reason := o.ignore.Match(ctx, entry.Name); reason != "" {
		return skipped(rec, reason)
	}

	// Classify
	_, ext := naming.SplitName(entry.Name)
	rec.Category = o.table.Classify(ext).Name

	// Ensure destination
	folder := filepath.Join(o.root, rec.Category)
	if err := o.fs.CreateDir(ctx, folder); err != nil {
		return failed(rec, StepCreateDir, err)
	}

	// Deconflict
	unique, err := naming.UniqueName(ctx, o.fs, folder, entry.Name, o.maxAttempts)
	if err != nil {
		return failed(rec, StepResolve, err)
	}

	// Move
	if err := o.fs.Move(ctx, filepath.Join(o.root, entry.Name), filepath.Join(folder, unique)); err != nil {
		return failed(rec, StepMove, err)
	}

	rec.Destination = unique
	rec.Outcome = OutcomeMoved
	return rec
}

func skipped(rec MoveRecord, reason string) MoveRecord {
	rec.Outcome = OutcomeSkipped
	rec.Reason = reason
	return rec
}

func failed(rec MoveRecord, step string, err error) MoveRecord {
	rec.Outcome = OutcomeFailed
	rec.Reason = step
	rec.Err = err
	return rec
}
