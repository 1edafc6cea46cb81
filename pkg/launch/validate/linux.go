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

// Linux validates launcher dependencies on Linux hosts via PATH binary
// probes.
type Linux struct {
	base
}

// NewLinux creates the Linux validator.
func NewLinux(fs afero.Fs, exec command.Executor, clock clockwork.Clock) *Linux {
	return &Linux{base: newBase(fs, exec, clock, "which")}
}

// linuxKnownTerminals is matched against the command text in order, so
// identifiers containing others (xfce4-terminal vs xterm) are listed
// first. Unrecognized identifiers pass optimistically.
var linuxKnownTerminals = []terminalProbe{
	{identifier: "gnome-terminal", binary: "gnome-terminal"},
	{identifier: "xfce4-terminal", binary: "xfce4-terminal"},
	{identifier: "x-terminal-emulator", binary: "x-terminal-emulator"},
	{identifier: "terminator", binary: "terminator"},
	{identifier: "alacritty", binary: "alacritty"},
	{identifier: "wezterm", binary: "wezterm"},
	{identifier: "konsole", binary: "konsole"},
	{identifier: "tilix", binary: "tilix"},
	{identifier: "kitty", binary: "kitty"},
	{identifier: "xterm", binary: "xterm"},
	{identifier: "nautilus", binary: "nautilus"},
	{identifier: "dolphin", binary: "dolphin"},
	{identifier: "thunar", binary: "thunar"},
	{identifier: "code", binary: "code"},
}

// ValidateTerminal pattern-matches the command text against the known
// terminal table and probes the first match. The verdict is memoized per
// launcher.
func (v *Linux) ValidateTerminal(l *config.Launcher) launch.Result {
	res, err := ttlcache.Get(v.cache, launcherKey(l), func() (launch.Result, error) {
		return v.checkTerminal(l), nil
	})
	if err != nil {
		return launch.Result{}
	}
	return res
}

func (v *Linux) checkTerminal(l *config.Launcher) launch.Result {
	cmd := strings.ToLower(l.Command)
	for _, probe := range linuxKnownTerminals {
		if !strings.Contains(cmd, probe.identifier) {
			continue
		}
		if !v.binaryExists(probe.binary) {
			return launch.Fail(launch.ErrorTerminalNotFound, probe.identifier)
		}
		return launch.Result{}
	}
	return launch.Result{}
}

// DetectInstalled snapshots known terminal availability for UI display.
func (v *Linux) DetectInstalled() launch.InstallSnapshot {
	tools := make(map[string]bool, len(linuxKnownTerminals))
	for _, probe := range linuxKnownTerminals {
		tools[probe.identifier] = v.binaryExists(probe.binary)
	}
	return launch.InstallSnapshot{Tools: tools}
}
