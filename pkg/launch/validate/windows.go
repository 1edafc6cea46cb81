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
	"bytes"
	"context"
	"strings"

	"github.com/DirDockProject/dirdock-core/pkg/config"
	"github.com/DirDockProject/dirdock-core/pkg/helpers/command"
	"github.com/DirDockProject/dirdock-core/pkg/helpers/ttlcache"
	"github.com/DirDockProject/dirdock-core/pkg/launch"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
)

// Windows validates launcher dependencies on Windows hosts: the Windows
// Terminal binary, the WSL subsystem and individual WSL distros.
type Windows struct {
	base
}

// NewWindows creates the Windows validator. Exported (alongside NewMac and
// NewLinux) so tests can exercise any OS variant on any host.
func NewWindows(fs afero.Fs, exec command.Executor, clock clockwork.Clock) *Windows {
	return &Windows{base: newBase(fs, exec, clock, "where.exe")}
}

// wslState is the cached result of a single `wsl.exe -l -q` probe.
type wslState struct {
	distros   []string
	installed bool
}

// ValidateTerminal inspects the command text for Windows Terminal and WSL
// signatures and, when found, queries real installation state. The verdict
// is memoized per launcher; the underlying probes are memoized separately
// so distinct launchers sharing a dependency still probe once.
func (v *Windows) ValidateTerminal(l *config.Launcher) launch.Result {
	res, err := ttlcache.Get(v.cache, launcherKey(l), func() (launch.Result, error) {
		return v.checkTerminal(l), nil
	})
	if err != nil {
		return launch.Result{}
	}
	return res
}

func (v *Windows) checkTerminal(l *config.Launcher) launch.Result {
	cmd := strings.ToLower(l.Command)

	if usesWindowsTerminal(cmd) && !v.windowsTerminalInstalled() {
		return launch.Fail(launch.ErrorWindowsTerminalNotFound, "")
	}

	if usesWSL(cmd) {
		state := v.wslProbe()
		if !state.installed {
			return launch.Fail(launch.ErrorWSLNotFound, "")
		}
		if distro := wslDistroArg(l.Command); distro != "" && !hasDistro(state.distros, distro) {
			return launch.Fail(launch.ErrorWSLDistroNotFound, distro)
		}
	}

	return launch.Result{}
}

// DetectInstalled snapshots Windows tooling state for UI display.
func (v *Windows) DetectInstalled() launch.InstallSnapshot {
	state := v.wslProbe()
	return launch.InstallSnapshot{
		Tools: map[string]bool{
			"windowsTerminal": v.windowsTerminalInstalled(),
			"wsl":             state.installed,
			"vscode":          v.binaryExists("code"),
		},
		WSLDistros: state.distros,
	}
}

func (v *Windows) windowsTerminalInstalled() bool {
	found, err := ttlcache.Get(v.cache, "probe:windows-terminal", func() (bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		_, lookupErr := v.exec.Output(ctx, "where.exe", "wt.exe")
		return lookupErr == nil, nil
	})
	if err != nil {
		return false
	}
	return found
}

// wslProbe lists installed WSL distros. A failed invocation means WSL
// itself is absent.
func (v *Windows) wslProbe() wslState {
	state, err := ttlcache.Get(v.cache, "probe:wsl-distros", func() (wslState, error) {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		out, runErr := v.exec.Output(ctx, "wsl.exe", "-l", "-q")
		if runErr != nil {
			log.Debug().Err(runErr).Msg("wsl list probe failed, treating WSL as absent")
			return wslState{installed: false}, nil
		}
		return wslState{installed: true, distros: parseWSLDistroList(out)}, nil
	})
	if err != nil {
		return wslState{}
	}
	return state
}

// parseWSLDistroList decodes `wsl.exe -l -q` output, which is UTF-16LE on
// every supported Windows build, into a list of distro names. Some shims
// emit plain UTF-8 instead; embedded NUL bytes are the tell for UTF-16.
func parseWSLDistroList(raw []byte) []string {
	decoded := raw
	if bytes.ContainsRune(raw, 0) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, err := decoder.Bytes(raw); err == nil {
			decoded = out
		}
	}

	var distros []string
	for _, line := range strings.Split(string(decoded), "\n") {
		name := strings.TrimSpace(strings.Trim(line, "\r\x00"))
		if name != "" {
			distros = append(distros, name)
		}
	}
	return distros
}

func usesWindowsTerminal(cmd string) bool {
	return strings.Contains(cmd, "wt.exe") || hasToken(cmd, "wt")
}

func usesWSL(cmd string) bool {
	return strings.Contains(cmd, "wsl.exe") || hasToken(cmd, "wsl")
}

func hasToken(cmd, token string) bool {
	for _, field := range strings.Fields(cmd) {
		if field == token {
			return true
		}
	}
	return false
}

// wslDistroArg extracts the distro named by a -d/--distribution flag, or
// "" when the command targets the default distro.
func wslDistroArg(cmd string) string {
	fields := strings.Fields(cmd)
	for i, field := range fields {
		if (field == "-d" || field == "--distribution") && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

func hasDistro(distros []string, want string) bool {
	for _, d := range distros {
		if strings.EqualFold(d, want) {
			return true
		}
	}
	return false
}
