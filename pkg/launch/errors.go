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

// Package launch builds and executes (or previews) launcher commands for
// target directories. It is the only package with side effects; everything
// it calls below the coordinator is a pure query function.
package launch

// ErrorKind identifies a validation or execution failure. Values pass
// through verbatim to the calling layer for localization.
type ErrorKind string

const (
	ErrorInvalidConfig           ErrorKind = "INVALID_CONFIG"
	ErrorPathNotFound            ErrorKind = "PATH_NOT_FOUND"
	ErrorPathNotDirectory        ErrorKind = "PATH_NOT_DIRECTORY"
	ErrorPathUnsafe              ErrorKind = "PATH_UNSAFE"
	ErrorWindowsTerminalNotFound ErrorKind = "WINDOWS_TERMINAL_NOT_FOUND"
	ErrorWSLNotFound             ErrorKind = "WSL_NOT_FOUND"
	ErrorWSLDistroNotFound       ErrorKind = "WSL_DISTRO_NOT_FOUND"
	ErrorTerminalNotFound        ErrorKind = "TERMINAL_NOT_FOUND"
	ErrorSpawnFailed             ErrorKind = "SPAWN_FAILED"
)

// Result is the outcome of a single pipeline step. The zero value means
// the step passed; the pipeline short-circuits on the first failure.
type Result struct {
	Detail string
	Kind   ErrorKind
}

// Ok reports whether the step passed.
func (r Result) Ok() bool {
	return r.Kind == ""
}

// Fail builds a failed Result.
func Fail(kind ErrorKind, detail string) Result {
	return Result{Kind: kind, Detail: detail}
}

// ActionType says how the calling UI layer should interpret an action value.
type ActionType string

const (
	// ActionURL opens the value as an external URL.
	ActionURL ActionType = "url"
	// ActionInternal navigates to an app-internal location named by value.
	ActionInternal ActionType = "internal"
)

// Action is an optional remediation hint attached to certain errors. The
// engine never acts on these itself.
type Action struct {
	Type     ActionType `json:"type"`
	LabelKey string     `json:"labelKey"`
	Value    string     `json:"value"`
}

// errorActions maps error kinds to remediation hints. Static data, not
// computed per call.
var errorActions = map[ErrorKind][]Action{
	ErrorWindowsTerminalNotFound: {
		{Type: ActionURL, LabelKey: "error.action.installWindowsTerminal", Value: "https://aka.ms/terminal"},
	},
	ErrorWSLNotFound: {
		{Type: ActionURL, LabelKey: "error.action.installWsl", Value: "https://learn.microsoft.com/windows/wsl/install"},
	},
	ErrorWSLDistroNotFound: {
		{Type: ActionInternal, LabelKey: "error.action.editLauncher", Value: "launchers"},
	},
	ErrorTerminalNotFound: {
		{Type: ActionInternal, LabelKey: "error.action.editLauncher", Value: "launchers"},
	},
	ErrorInvalidConfig: {
		{Type: ActionInternal, LabelKey: "error.action.editLauncher", Value: "launchers"},
	},
	ErrorPathNotFound: {
		{Type: ActionInternal, LabelKey: "error.action.editDirectory", Value: "directories"},
	},
	ErrorPathNotDirectory: {
		{Type: ActionInternal, LabelKey: "error.action.editDirectory", Value: "directories"},
	},
}

// ActionsFor returns the remediation actions for an error kind, or nil.
// The returned slice is a copy.
func ActionsFor(kind ErrorKind) []Action {
	actions, ok := errorActions[kind]
	if !ok {
		return nil
	}
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}
