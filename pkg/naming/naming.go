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

// Package naming picks collision-free file names inside a directory.
package naming

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrTooManyCollisions is returned when every candidate up to the attempt limit is taken.
var ErrTooManyCollisions = errors.Base("too many name collisions")

// 🔍 Checker reports whether a path is already taken
type Checker interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// 🎯 UniqueName returns name if dir/name is free, otherwise the first free
// "stem(N)ext" for N = 1, 2, 3, ...
//
// Every candidate is checked against the live filesystem. maxAttempts caps N;
// zero means no cap.
func UniqueName(ctx context.Context, checker Checker, dir, name string, maxAttempts int) (string, error) {
	taken, err := checker.Exists(ctx, filepath.Join(dir, name))
	if err != nil {
		return "", errors.Errorf("checking %s: %w", name, err)
	}
	if !taken {
		return name, nil
	}

	stem, ext := SplitName(name)
	for counter := 1; maxAttempts == 0 || counter <= maxAttempts; counter++ {
		candidate := fmt.Sprintf("%s(%d)%s", stem, counter, ext)
		taken, err := checker.Exists(ctx, filepath.Join(dir, candidate))
		if err != nil {
			return "", errors.Errorf("checking %s: %w", candidate, err)
		}
		if !taken {
			zerolog.Ctx(ctx).Debug().
				Str("dir", dir).
				Str("name", name).
				Str("candidate", candidate).
				Int("attempts", counter).
				Msg("resolved name collision")
			return candidate, nil
		}
	}

	return "", errors.Errorf("%s after %d attempts: %w", name, maxAttempts, ErrTooManyCollisions)
}

// SplitName splits name at its last dot into stem and extension.
// A leading dot does not start an extension (".env" has none) and a trailing
// dot stays with the stem ("notes." has none either).
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}
