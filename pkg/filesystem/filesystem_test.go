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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent directory")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing %s", path)
}

func TestReadDir(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "b.txt"), "hello")
	writeFile(t, filepath.Join(dir, "a.jpg"), "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Images"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "b.txt"), filepath.Join(dir, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	entries, err := NewOS().ReadDir(ctx, dir)
	require.NoError(t, err, "ReadDir should succeed")

	byName := map[string]Entry{}
	var names []string
	for _, e := range entries {
		byName[e.Name] = e
		names = append(names, e.Name)
	}

	assert.Equal(t, []string{"Images", "a.jpg", "b.txt", "dangling", "link.txt"}, names, "entries should be in lexical order")
	assert.True(t, byName["b.txt"].Regular, "regular file should be regular")
	assert.Equal(t, int64(5), byName["b.txt"].Size, "size should be recorded")
	assert.True(t, byName["a.jpg"].Regular, "empty file should be regular")
	assert.False(t, byName["Images"].Regular, "directory should not be regular")
	assert.True(t, byName["link.txt"].Regular, "symlink to a file should count as regular")
	assert.False(t, byName["dangling"].Regular, "dangling symlink should not be regular")
}

func TestReadDirMissing(t *testing.T) {
	_, err := NewOS().ReadDir(testContext(t), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err, "ReadDir on a missing directory should fail")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "error should wrap fs.ErrNotExist")
}

func TestExists(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	osfs := NewOS()

	writeFile(t, filepath.Join(dir, "file"), "x")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "file", path: filepath.Join(dir, "file"), want: true},
		{name: "directory", path: dir, want: true},
		{name: "dangling_symlink", path: filepath.Join(dir, "dangling"), want: true},
		{name: "missing", path: filepath.Join(dir, "missing"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := osfs.Exists(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateDirIdempotent(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "Images")
	osfs := NewOS()

	require.NoError(t, osfs.CreateDir(ctx, path), "first create should succeed")
	require.NoError(t, osfs.CreateDir(ctx, path), "second create should succeed")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateDirOverFile(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "Images")
	writeFile(t, path, "not a dir")

	err := NewOS().CreateDir(ctx, path)
	require.Error(t, err, "creating a directory over a file should fail")
}

func TestMove(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		wantErr error
		check   func(t *testing.T, dir string)
	}{
		{
			name: "moves_file",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "src.txt"), "content")
			},
			check: func(t *testing.T, dir string) {
				content, err := os.ReadFile(filepath.Join(dir, "dst", "src.txt"))
				require.NoError(t, err, "destination should exist")
				assert.Equal(t, "content", string(content))
				_, err = os.Stat(filepath.Join(dir, "src.txt"))
				assert.True(t, os.IsNotExist(err), "source should be gone")
			},
		},
		{
			name: "refuses_to_overwrite",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "src.txt"), "new")
				writeFile(t, filepath.Join(dir, "dst", "src.txt"), "old")
			},
			wantErr: ErrDestinationExists,
			check: func(t *testing.T, dir string) {
				content, err := os.ReadFile(filepath.Join(dir, "dst", "src.txt"))
				require.NoError(t, err)
				assert.Equal(t, "old", string(content), "existing destination must be untouched")
				_, err = os.Stat(filepath.Join(dir, "src.txt"))
				assert.NoError(t, err, "source should remain")
			},
		},
		{
			name:    "vanished_source",
			setup:   func(t *testing.T, dir string) {},
			wantErr: fs.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "dst"), 0o755))
			tt.setup(t, dir)

			err := NewOS().Move(ctx, filepath.Join(dir, "src.txt"), filepath.Join(dir, "dst", "src.txt"))
			if tt.wantErr != nil {
				require.Error(t, err, "Move should fail")
				assert.True(t, errors.Is(err, tt.wantErr), "error %v should wrap %v", err, tt.wantErr)
			} else {
				require.NoError(t, err, "Move should succeed")
			}
			if tt.check != nil {
				tt.check(t, dir)
			}
		})
	}
}

func TestMoveByCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "payload")
	require.NoError(t, os.Chmod(src, 0o600))

	require.NoError(t, moveByCopy(src, dst), "copy fallback should succeed")

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm(), "permissions should be preserved")

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be removed")
}

func TestMoveByCopySymlink(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "link")
	dst := filepath.Join(dir, "moved")
	require.NoError(t, os.Symlink("target.txt", src))

	require.NoError(t, moveByCopy(src, dst))

	target, err := os.Readlink(dst)
	require.NoError(t, err, "destination should be a symlink")
	assert.Equal(t, "target.txt", target)
}

func TestMoveByCopyRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	err := moveByCopy(src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))
}
