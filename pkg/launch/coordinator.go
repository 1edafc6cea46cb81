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

import (
	"runtime"
	"strings"

	"github.com/DirDockProject/dirdock-core/pkg/config"
	"github.com/DirDockProject/dirdock-core/pkg/helpers"
	"github.com/DirDockProject/dirdock-core/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// InstallSnapshot is a point-in-time view of which launcher dependencies
// are present on the host. For UI display only, independent of the
// short-circuiting validation path.
type InstallSnapshot struct {
	Tools      map[string]bool `json:"tools"`
	WSLDistros []string        `json:"wslDistros,omitempty"`
}

// Validator verifies that a launcher's declared command is runnable on
// this host. One implementation exists per OS family.
type Validator interface {
	// ValidateConfig checks the launcher record itself.
	ValidateConfig(l *config.Launcher) Result
	// ValidatePath checks that path exists and is a directory. Results are
	// never cached.
	ValidatePath(path string) Result
	// ValidateTerminal checks nested OS dependencies declared by the
	// launcher command (terminal emulator, WSL, a specific distro).
	// Probe results are memoized behind a TTL cache.
	ValidateTerminal(l *config.Launcher) Result
	// DetectInstalled snapshots known tool availability for UI display.
	DetectInstalled() InstallSnapshot
	// InvalidateCache clears all memoized probes.
	InvalidateCache()
}

// PreviewResult is the outcome of building a launch command without
// spawning it.
type PreviewResult struct {
	Command       string    `json:"command,omitempty"`
	FormattedPath string    `json:"formattedPath,omitempty"`
	OriginalPath  string    `json:"originalPath,omitempty"`
	LauncherName  string    `json:"terminalName,omitempty"`
	PathFormat    string    `json:"pathFormat,omitempty"`
	ErrorKind     ErrorKind `json:"errorType,omitempty"`
	ErrorDetail   string    `json:"errorDetail,omitempty"`
	Success       bool      `json:"success"`
}

// LaunchResult is the outcome of a launch attempt.
type LaunchResult struct {
	ErrorKind   ErrorKind `json:"errorType,omitempty"`
	ErrorDetail string    `json:"errorDetail,omitempty"`
	Actions     []Action  `json:"actions,omitempty"`
	Success     bool      `json:"success"`
}

// Coordinator runs the launch pipeline. It owns all side effects:
// filesystem stats, subprocess probes and the final spawn.
type Coordinator struct {
	validator Validator
	executor  command.Executor
	goos      string
}

// NewCoordinator creates a Coordinator for the current OS.
func NewCoordinator(v Validator, exec command.Executor) *Coordinator {
	return NewCoordinatorFor(runtime.GOOS, v, exec)
}

// NewCoordinatorFor creates a Coordinator pinned to a specific GOOS value.
// Exposed so tests can exercise Windows and POSIX behavior on any host.
func NewCoordinatorFor(goos string, v Validator, exec command.Executor) *Coordinator {
	return &Coordinator{goos: goos, validator: v, executor: exec}
}

// plan is a fully validated, substituted launch command ready to spawn.
type plan struct {
	originalPath  string
	formattedPath string
	// command is the escape-then-substitute shell form, always built for
	// preview display and used for shell-mode spawns.
	command string
	exe     string
	args    []string
	// shellFree is true when the template decomposed into executable+args
	// and the platform allows bypassing the shell.
	shellFree bool
}

// build runs the validation pipeline and constructs the launch plan,
// short-circuiting on the first failed step.
func (c *Coordinator) build(dir *config.Directory, l *config.Launcher) (plan, Result) {
	if r := c.validator.ValidateConfig(l); !r.Ok() {
		return plan{}, r
	}
	if r := c.validator.ValidatePath(dir.Path); !r.Ok() {
		return plan{}, r
	}
	if r := c.validator.ValidateTerminal(l); !r.Ok() {
		return plan{}, r
	}
	if reason, safe := ValidatePathSafety(dir.Path); !safe {
		return plan{}, Fail(ErrorPathUnsafe, string(reason))
	}

	formatted := helpers.FormatPath(dir.Path, l.PathFormat)

	// Escaping always happens before substitution. This invariant is why
	// '&' can stay unflagged in the safety check.
	escaped := EscapeForShell(formatted, c.goos)
	p := plan{
		originalPath:  dir.Path,
		formattedPath: formatted,
		command:       strings.ReplaceAll(l.Command, config.PathPlaceholder, escaped),
	}

	// Windows stays pinned to shell mode: cmd.exe resolves .cmd/.bat
	// targets the way users expect. POSIX prefers shell-free execution
	// whenever the template decomposes, which removes the injection
	// surface entirely.
	if c.goos != "windows" {
		if d, ok := TryShellFreeDecomposition(l.Command); ok {
			p.shellFree = true
			p.exe = d.Executable
			p.args = make([]string, 0, len(d.ArgTemplates))
			for _, tmpl := range d.ArgTemplates {
				p.args = append(p.args, strings.ReplaceAll(tmpl, config.PathPlaceholder, formatted))
			}
		}
	}

	return p, Result{}
}

// Preview runs the full pipeline through path formatting and escaping but
// stops before spawning, returning the substituted command for display.
func (c *Coordinator) Preview(dir *config.Directory, l *config.Launcher) PreviewResult {
	p, r := c.build(dir, l)
	if !r.Ok() {
		return PreviewResult{ErrorKind: r.Kind, ErrorDetail: r.Detail}
	}
	return PreviewResult{
		Success:       true,
		Command:       p.command,
		FormattedPath: p.formattedPath,
		OriginalPath:  p.originalPath,
		LauncherName:  l.Name,
		PathFormat:    l.PathFormat,
	}
}

// Launch runs the pipeline and spawns the launcher detached with discarded
// I/O. The child is never waited on or inspected; a failed spawn surfaces
// exactly once as SPAWN_FAILED and is never retried.
func (c *Coordinator) Launch(dir *config.Directory, l *config.Launcher) LaunchResult {
	p, r := c.build(dir, l)
	if !r.Ok() {
		log.Info().
			Str("launcher", l.ID).
			Str("kind", string(r.Kind)).
			Str("detail", r.Detail).
			Msg("launch rejected")
		return LaunchResult{ErrorKind: r.Kind, ErrorDetail: r.Detail, Actions: ActionsFor(r.Kind)}
	}

	var err error
	if p.shellFree {
		log.Debug().
			Str("exe", p.exe).
			Strs("args", p.args).
			Msg("spawning shell-free")
		err = c.executor.StartDetached(p.exe, p.args...)
	} else if c.goos == "windows" {
		log.Debug().Str("command", p.command).Msg("spawning via cmd")
		err = c.executor.StartDetached("cmd", "/c", p.command)
	} else {
		log.Debug().Str("command", p.command).Msg("spawning via sh")
		err = c.executor.StartDetached("sh", "-c", p.command)
	}
	if err != nil {
		log.Error().Err(err).Str("launcher", l.ID).Msg("spawn failed")
		return LaunchResult{
			ErrorKind:   ErrorSpawnFailed,
			ErrorDetail: err.Error(),
			Actions:     ActionsFor(ErrorSpawnFailed),
		}
	}

	log.Info().Str("launcher", l.ID).Str("path", dir.Path).Msg("launched")
	return LaunchResult{Success: true}
}

// DetectInstalled reports which known tools are present, for UI display.
func (c *Coordinator) DetectInstalled() InstallSnapshot {
	return c.validator.DetectInstalled()
}

// InvalidateCache clears all memoized validator probes, e.g. after a
// launcher edit.
func (c *Coordinator) InvalidateCache() {
	c.validator.InvalidateCache()
}
