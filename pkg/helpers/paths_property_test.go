// DirDock Core
// Copyright (c) 2026 The DirDock Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of DirDock Core.
//
// DirDock Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DirDock Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DirDock Core.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyToPosixPathIdempotent verifies converting twice gives the same result.
func TestPropertyToPosixPathIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.StringMatching(`([a-zA-Z]:\\)?[a-zA-Z0-9_\- ./\\]{0,50}`).Draw(t, "path")

		once := ToPosixPath(path)
		twice := ToPosixPath(once)

		if once != twice {
			t.Fatalf("Not idempotent: first=%q, second=%q", once, twice)
		}
	})
}

// TestPropertyToPosixPathNoBackslashes verifies converted output never
// contains backslashes.
func TestPropertyToPosixPathNoBackslashes(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.StringMatching(`([a-zA-Z]:\\)?[a-zA-Z0-9_\- ./\\]{0,50}`).Draw(t, "path")

		result := ToPosixPath(path)

		if strings.Contains(result, `\`) {
			t.Fatalf("Backslash survived conversion: %q from input %q", result, path)
		}
	})
}

// TestPropertyFormatPathUnixIdempotent verifies
// FormatPath(FormatPath(p, "unix"), "unix") == FormatPath(p, "unix").
func TestPropertyFormatPathUnixIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.StringMatching(`([a-zA-Z]:\\)?[a-zA-Z0-9_\- ./\\]{0,50}`).Draw(t, "path")

		once := FormatPath(path, PathFormatUnix)
		twice := FormatPath(once, PathFormatUnix)

		if once != twice {
			t.Fatalf("Not idempotent: first=%q, second=%q", once, twice)
		}
	})
}

// TestPropertyFormatPathWindowsUnchanged verifies the windows format never
// alters input.
func TestPropertyFormatPathWindowsUnchanged(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.String().Draw(t, "path")

		if got := FormatPath(path, PathFormatWindows); got != path {
			t.Fatalf("Windows format changed input: %q -> %q", path, got)
		}
	})
}
