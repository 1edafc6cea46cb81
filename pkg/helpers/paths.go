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
)

// Path format identifiers used in launcher definitions. A launcher declares
// which form its command expects the substituted path to be in.
const (
	PathFormatWindows = "windows"
	PathFormatUnix    = "unix"
)

// ToPosixPath converts a native Windows path to its POSIX/WSL equivalent.
// A drive-letter path like "C:\Users\x" becomes "/mnt/c/Users/x" (drive
// letter lower-cased). Any other input only has backslashes normalized to
// forward slashes. Already-POSIX input passes through unchanged, so the
// conversion is idempotent.
func ToPosixPath(path string) string {
	if len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0]) {
		rest := strings.ReplaceAll(path[2:], "\\", "/")
		rest = strings.TrimPrefix(rest, "/")
		drive := strings.ToLower(string(path[0]))
		if rest == "" {
			return "/mnt/" + drive
		}
		return "/mnt/" + drive + "/" + rest
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// FormatPath returns the path in the form a launcher command expects.
// The unix format maps through ToPosixPath, anything else is returned
// unchanged.
func FormatPath(path, format string) string {
	if format == PathFormatUnix {
		return ToPosixPath(path)
	}
	return path
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
