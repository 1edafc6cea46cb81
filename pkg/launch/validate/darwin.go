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

package validate

import (
	"strings"

	"github.com/DirDockProject/dirdock-core/pkg/config"
	"github.com/DirDockProject/dirdock-core/pkg/helpers/command"
	"github.com/DirDockProject/dirdock-core/pkg/helpers/ttlcache"
	"github.com/DirDockProject/dirdock-core/pkg/launch"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

// Mac validates launcher dependencies on macOS hosts via app bundle paths
// and PATH binary probes.
type Mac struct {
	base
}

// NewMac creates the macOS validator.
func NewMac(fs afero.Fs, exec command.Executor, clock clockwork.Clock) *Mac {
	return &Mac{base: newBase(fs, exec, clock, "which")}
}

// terminalProbe describes how to verify a known terminal identifier:
// either a fixed app bundle path or a binary name looked up on PATH.
type terminalProbe struct {
	identifier string
	appBundle  string
	binary     string
}

// macKnownTerminals is matched against the command text in order, so more
// specific identifiers must come before their substrings (iterm2 before
// iterm). Identifiers not in the table pass optimistically: they cannot
// be verified.
var macKnownTerminals = []terminalProbe{
	{identifier: "iterm2", appBundle: "/Applications/iTerm.app"},
	{identifier: "iterm", appBundle: "/Applications/iTerm.app"},
	{identifier: "alacritty", binary: "alacritty"},
	{identifier: "wezterm", binary: "wezterm"},
	{identifier: "kitty", binary: "kitty"},
	{identifier: "terminal", appBundle: "/System/Applications/Utilities/Terminal.app"},
	{identifier: "code", binary: "code"},
}

// ValidateTerminal pattern-matches the command text against the known
// terminal table and probes the first match. The verdict is memoized per
// launcher.
func (v *Mac) ValidateTerminal(l *config.Launcher) launch.Result {
	res, err := ttlcache.Get(v.cache, launcherKey(l), func() (launch.Result, error) {
		return v.checkTerminal(l), nil
	})
	if err != nil {
		return launch.Result{}
	}
	return res
}

func (v *Mac) checkTerminal(l *config.Launcher) launch.Result {
	cmd := strings.ToLower(l.Command)
	for _, probe := range macKnownTerminals {
		if !strings.Contains(cmd, probe.identifier) {
			continue
		}
		if !v.probeTerminal(probe) {
			return launch.Fail(launch.ErrorTerminalNotFound, probe.identifier)
		}
		return launch.Result{}
	}
	return launch.Result{}
}

func (v *Mac) probeTerminal(probe terminalProbe) bool {
	if probe.appBundle != "" {
		return v.appBundleExists(probe.appBundle)
	}
	return v.binaryExists(probe.binary)
}

// appBundleExists checks a fixed app bundle path, memoized per path.
// No subprocess involved, but the result is cached anyway so repeated
// launches stay stat-free inside the TTL window.
func (v *Mac) appBundleExists(path string) bool {
	found, err := ttlcache.Get(v.cache, "app:"+path, func() (bool, error) {
		_, statErr := v.fs.Stat(path)
		return statErr == nil, nil
	})
	if err != nil {
		return false
	}
	return found
}

// DetectInstalled snapshots known terminal availability for UI display.
func (v *Mac) DetectInstalled() launch.InstallSnapshot {
	tools := make(map[string]bool, len(macKnownTerminals))
	for _, probe := range macKnownTerminals {
		if _, seen := tools[probe.identifier]; seen {
			continue
		}
		tools[probe.identifier] = v.probeTerminal(probe)
	}
	return launch.InstallSnapshot{Tools: tools}
}
