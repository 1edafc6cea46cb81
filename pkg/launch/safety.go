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

package launch

import "strings"

// UnsafeReason classifies why a path was rejected for shell embedding.
type UnsafeReason string

const (
	ReasonInvalidPath         UnsafeReason = "INVALID_PATH"
	ReasonCommandSubstitution UnsafeReason = "COMMAND_SUBSTITUTION"
	ReasonShellMetachar       UnsafeReason = "SHELL_METACHAR"
	ReasonRedirection         UnsafeReason = "REDIRECTION"
	ReasonNewline             UnsafeReason = "NEWLINE"
)

// ValidatePathSafety flags path content that is dangerous to embed in a
// shell command, checked in precedence order: command substitution first,
// then generic metacharacters, then redirection, then embedded newlines.
//
// '&' is deliberately not flagged: it is legitimate in some filenames and
// escaping is unconditional before substitution. Callers must not rely on
// this check alone where '&' is shell-significant.
func ValidatePathSafety(path string) (UnsafeReason, bool) {
	if path == "" {
		return ReasonInvalidPath, false
	}
	if strings.Contains(path, "$(") {
		return ReasonCommandSubstitution, false
	}
	if strings.ContainsAny(path, ";|`$") {
		return ReasonShellMetachar, false
	}
	if strings.ContainsAny(path, "><") {
		return ReasonRedirection, false
	}
	if strings.ContainsAny(path, "\n\r") {
		return ReasonNewline, false
	}
	return "", true
}

// EscapeForShell quotes a path for safe embedding in a shell command.
// Quoting is unconditional, even when the path has no special characters:
// double quotes with doubled internal quotes for the Windows command
// interpreter, single quotes with internal quotes replaced by '\'' for
// POSIX shells.
func EscapeForShell(path, goos string) string {
	if goos == "windows" {
		return `"` + strings.ReplaceAll(path, `"`, `""`) + `"`
	}
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}
