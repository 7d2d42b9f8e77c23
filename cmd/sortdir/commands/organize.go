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

package commands

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sortdir/cmd/sortdir/opts"
	"github.com/walteh/sortdir/pkg/config"
	"github.com/walteh/sortdir/pkg/filesystem"
	"github.com/walteh/sortdir/pkg/log"
	"github.com/walteh/sortdir/pkg/organize"
	"gitlab.com/tozd/go/errors"
)

// LockFile is locked in the root while a run is in progress.
// The leading dot keeps it out of the run itself.
const LockFile = ".sortdir.lock"

// DefaultRootDir is the directory under $HOME organized when nothing else is given
const DefaultRootDir = "Desktop"

// ErrAlreadyRunning is returned when another run holds the lock
var ErrAlreadyRunning = errors.Base("another sortdir run is in progress")

// NewOrganizeCmd creates the organize command
func NewOrganizeCmd(ro *opts.RootOpts) *cobra.Command {
	var maxAttempts int

	cmd := &cobra.Command{
		Use:   "organize [dir]",
		Short: "Move the directory's files into category folders",
		Long: `Organize sorts every regular, non-hidden file directly inside dir
(default ~/Desktop) into a category folder next to it.
It will:
1. Take a snapshot of the directory
2. Classify each file by extension
3. Create the category folder if needed
4. Pick a free name, adding "(N)" on clashes
5. Move the file and print a summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "organize").Logger().WithContext(cmd.Context())

			// An unknown home only matters when no directory is given
			home, _ := os.UserHomeDir()
			root, err := ResolveRoot(ro.Config, args, home)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("max-collision-attempts") {
				ro.Config.MaxCollisionAttempts = maxAttempts
			}

			return Organize(ctx, ro, root)
		},
	}

	cmd.Flags().IntVar(&maxAttempts, "max-collision-attempts", 0, "give up on a file after this many \"(N)\" candidates (0 = no limit)")

	return cmd
}

// ResolveRoot picks the directory to organize: the argument, else the
// configured root, else ~/Desktop
func ResolveRoot(cfg *config.Config, args []string, home string) (string, error) {
	var root string
	switch {
	case len(args) > 0 && args[0] != "":
		root = args[0]
	case cfg.Root != "":
		root = cfg.Root
	default:
		if home == "" {
			return "", errors.Errorf("cannot determine home directory; pass a directory to organize")
		}
		root = filepath.Join(home, DefaultRootDir)
	}

	root = config.ExpandHome(root, home)
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("getting absolute path of %s: %w", root, err)
	}
	return abs, nil
}

// Organize runs one pass over root and prints the per-file lines and summary
func Organize(ctx context.Context, ro *opts.RootOpts, root string) error {
	logger := zerolog.Ctx(ctx)
	out := log.FromContext(ctx)

	table, err := ro.Config.Table()
	if err != nil {
		return err
	}
	for _, o := range table.Overlaps() {
		out.Warningf("extension %s is listed in %s and %s; using %s", o.Extension, o.Winner, o.Shadowed, o.Winner)
	}

	ignore, err := ro.Config.Ignore()
	if err != nil {
		return err
	}

	// The lock lives inside root, so root has to exist first
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("%s: %w", root, organize.ErrRootNotFound)
		}
		return errors.Errorf("checking root: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", root)
	}

	unlock, err := acquireLock(ctx, root)
	if err != nil {
		return err
	}
	defer unlock()

	org, err := organize.New(organize.Options{
		Root:                 root,
		Table:                table,
		Ignore:               ignore,
		FS:                   filesystem.NewOS(),
		Reporter:             out,
		MaxCollisionAttempts: ro.Config.MaxCollisionAttempts,
	})
	if err != nil {
		return errors.Errorf("creating organizer: %w", err)
	}

	out.Header("organizing " + org.Root())

	summary, runErr := org.Organize(ctx)
	if summary != nil {
		out.Summary(ctx, summary)
	}
	if runErr != nil {
		return runErr
	}

	if summary.Failed == 0 {
		out.Successf("finished organizing %s", org.Root())
	}
	logger.Debug().Int("moved", summary.Total()).Msg("organize finished")
	return nil
}

// acquireLock takes the per-root lock and returns its release function.
// Only a lock held by another run is fatal; any other lock error (read-only
// root, a directory in the way) is a warning and the run goes on unlocked.
// The lock file is never unlinked.
func acquireLock(ctx context.Context, root string) (func(), error) {
	logger := zerolog.Ctx(ctx)
	lockPath := filepath.Join(root, LockFile)
	lock := flock.New(lockPath)

	ok, err := lock.TryLock()
	if err != nil {
		log.FromContext(ctx).Warningf("running without lock: %v", err)
		logger.Warn().Err(err).Str("lock", lockPath).Msg("lock unavailable")
		return func() {}, nil
	}
	if !ok {
		return nil, errors.Errorf("%s: %w", lockPath, ErrAlreadyRunning)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn().Err(err).Str("lock", lockPath).Msg("failed to release lock")
		}
	}, nil
}
