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

package filesystem

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrDestinationExists is returned by Move when the target name is already taken.
var ErrDestinationExists = errors.Base("destination already exists")

// 📄 Entry is one immediate child of a listed directory
type Entry struct {
	Name    string // Base name
	Regular bool   // Regular file, or a symlink that resolves to one
	Size    int64  // Size in bytes, zero for non-regular entries
}

// 💾 FileSystem is every filesystem operation the organizer performs
type FileSystem interface {
	// ReadDir returns a point-in-time listing of dir's immediate children
	ReadDir(ctx context.Context, dir string) ([]Entry, error)
	// Exists reports whether anything, including a dangling symlink, has this path
	Exists(ctx context.Context, path string) (bool, error)
	// CreateDir creates path and its parents; an existing directory is not an error
	CreateDir(ctx context.Context, path string) error
	// Move relocates src to dst without ever replacing an existing dst
	Move(ctx context.Context, src, dst string) error
}

// 🔧 OS implements FileSystem on the host filesystem
type OS struct{}

// 🏭 NewOS creates an OS filesystem
func NewOS() *OS {
	return &OS{}
}

var _ FileSystem = (*OS)(nil)

func (o *OS) ReadDir(ctx context.Context, dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		entry := Entry{Name: d.Name()}

		// os.ReadDir does not follow symlinks; Stat does
		info, err := d.Info()
		if err == nil && info.Mode()&fs.ModeSymlink != 0 {
			info, err = os.Stat(filepath.Join(dir, d.Name()))
		}
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("name", d.Name()).Err(err).Msg("stat failed, treating entry as non-regular")
			entries = append(entries, entry)
			continue
		}

		if info.Mode().IsRegular() {
			entry.Regular = true
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (o *OS) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (o *OS) CreateDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}

func (o *OS) Move(ctx context.Context, src, dst string) error {
	err := renameNoReplace(src, dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		return errors.WithStack(ErrDestinationExists)
	}
	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("renaming: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("cross-device move, copying instead")
	if err := moveByCopy(src, dst); err != nil {
		return errors.Errorf("moving across devices: %w", err)
	}
	return nil
}

// moveByCopy copies src to a freshly created dst and removes src.
// dst is created with O_EXCL so a concurrent writer is never overwritten.
func moveByCopy(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errors.Errorf("checking source: %w", err)
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return errors.Errorf("reading symlink: %w", err)
		}
		if err := os.Symlink(target, dst); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return errors.WithStack(ErrDestinationExists)
			}
			return errors.Errorf("creating symlink: %w", err)
		}
	} else if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
		return err
	}

	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing source: %w", err)
	}
	return nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.WithStack(ErrDestinationExists)
		}
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		os.Remove(dst) // Clean up partial copy
		return errors.Errorf("copying file: %w", err)
	}

	if err := destination.Close(); err != nil {
		os.Remove(dst)
		return errors.Errorf("closing destination file: %w", err)
	}

	return nil
}
