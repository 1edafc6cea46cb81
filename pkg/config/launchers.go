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

package config

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PathPlaceholder is the literal substring in a launcher command that gets
// replaced with the target directory path. It may occur multiple times.
const PathPlaceholder = "{path}"

// Launcher defines an external program (terminal, editor, file manager)
// that can be opened on a target directory. The command must contain the
// PathPlaceholder literal.
type Launcher struct {
	ID         string `toml:"id" validate:"required"`
	Name       string `toml:"name"`
	Icon       string `toml:"icon,omitempty"`
	Command    string `toml:"command" validate:"required,pathtemplate"`
	PathFormat string `toml:"path_format,omitempty" validate:"omitempty,oneof=windows unix"`
	Builtin    bool   `toml:"-"`
	Hidden     bool   `toml:"hidden,omitempty"`
	Order      int    `toml:"order,omitempty"`
}

// LauncherOverride adjusts a builtin launcher. Builtins are never deleted,
// only hidden or reordered.
type LauncherOverride struct {
	Hidden *bool  `toml:"hidden,omitempty"`
	Order  *int   `toml:"order,omitempty"`
	ID     string `toml:"id" validate:"required"`
}

// Directory is a target directory record. The path is re-stat'd on every
// launch and never cached, since filesystem state changes independently of
// the app.
type Directory struct {
	ID   string `toml:"id" validate:"required"`
	Path string `toml:"path" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// pathtemplate requires the literal {path} placeholder in the command
	err := v.RegisterValidation("pathtemplate", func(fl validator.FieldLevel) bool {
		return strings.Contains(fl.Field().String(), PathPlaceholder)
	})
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateLauncher checks a launcher record against its struct rules.
func ValidateLauncher(l *Launcher) error {
	//nolint:wrapcheck // validator errors carry the field context already
	return validate.Struct(l)
}

// normalizeLaunchers assigns generated ids to custom launchers missing one
// and drops records that fail validation. Called with the lock held.
func (c *Instance) normalizeLaunchers() {
	kept := make([]Launcher, 0, len(c.vals.Launchers))
	for i := range c.vals.Launchers {
		l := c.vals.Launchers[i]
		if l.ID == "" {
			l.ID = uuid.NewString()
			log.Debug().Msgf("assigned id %s to custom launcher %q", l.ID, l.Name)
		}
		l.Builtin = false
		if err := ValidateLauncher(&l); err != nil {
			log.Error().Err(err).Msgf("dropping invalid custom launcher: %s", l.ID)
			continue
		}
		kept = append(kept, l)
	}
	c.vals.Launchers = kept
}

// Launchers returns the merged launcher list for a platform: builtins with
// user overrides applied, then custom launchers, sorted by order.
func (c *Instance) Launchers(goos string) []Launcher {
	c.mu.RLock()
	defer c.mu.RUnlock()

	merged := BuiltinLaunchers(goos)
	for i := range merged {
		for _, o := range c.vals.Overrides {
			if o.ID != merged[i].ID {
				continue
			}
			if o.Hidden != nil {
				merged[i].Hidden = *o.Hidden
			}
			if o.Order != nil {
				merged[i].Order = *o.Order
			}
		}
	}

	merged = append(merged, c.vals.Launchers...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Order < merged[j].Order
	})
	return merged
}

// LookupLauncher finds a launcher by id in the merged list.
func (c *Instance) LookupLauncher(goos, id string) (Launcher, bool) {
	for _, l := range c.Launchers(goos) {
		if l.ID == id {
			return l, true
		}
	}
	return Launcher{}, false
}

// Directories returns the configured target directories.
func (c *Instance) Directories() []Directory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dirs := make([]Directory, len(c.vals.Directories))
	copy(dirs, c.vals.Directories)
	return dirs
}

// LookupDirectory finds a directory record by id.
func (c *Instance) LookupDirectory(id string) (Directory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.vals.Directories {
		if d.ID == id {
			return d, true
		}
	}
	return Directory{}, false
}

// BuiltinLaunchers returns the default launcher catalog for a platform.
// The returned slice is a fresh copy safe for the caller to modify.
func BuiltinLaunchers(goos string) []Launcher {
	var defs []Launcher
	switch goos {
	case "windows":
		defs = []Launcher{
			{
				ID:         "windows-terminal",
				Name:       "Windows Terminal",
				Icon:       "terminal",
				Command:    "wt.exe -w 0 nt -d {path}",
				PathFormat: "windows",
				Order:      10,
			},
			{
				ID:         "wsl-ubuntu",
				Name:       "Ubuntu (WSL)",
				Icon:       "linux",
				Command:    "wt.exe -w 0 new-tab wsl.exe -d Ubuntu --cd {path}",
				PathFormat: "windows",
				Order:      20,
			},
			{
				ID:         "cmd",
				Name:       "Command Prompt",
				Icon:       "terminal",
				Command:    "cmd.exe /k cd /d {path}",
				PathFormat: "windows",
				Order:      30,
			},
			{
				ID:         "powershell",
				Name:       "PowerShell",
				Icon:       "terminal",
				Command:    "powershell.exe -NoExit -Command Set-Location {path}",
				PathFormat: "windows",
				Order:      40,
			},
			{
				ID:         "explorer",
				Name:       "Explorer",
				Icon:       "folder",
				Command:    "explorer.exe {path}",
				PathFormat: "windows",
				Order:      50,
			},
			{
				ID:         "vscode",
				Name:       "VS Code",
				Icon:       "code",
				Command:    "code {path}",
				PathFormat: "windows",
				Order:      60,
			},
		}
	case "darwin":
		defs = []Launcher{
			{
				ID:         "terminal",
				Name:       "Terminal",
				Icon:       "terminal",
				Command:    "open -a Terminal {path}",
				PathFormat: "unix",
				Order:      10,
			},
			{
				ID:         "iterm",
				Name:       "iTerm2",
				Icon:       "terminal",
				Command:    "open -a iTerm {path}",
				PathFormat: "unix",
				Order:      20,
			},
			{
				ID:         "finder",
				Name:       "Finder",
				Icon:       "folder",
				Command:    "open {path}",
				PathFormat: "unix",
				Order:      30,
			},
			{
				ID:         "vscode",
				Name:       "VS Code",
				Icon:       "code",
				Command:    "code {path}",
				PathFormat: "unix",
				Order:      40,
			},
		}
	default:
		defs = []Launcher{
			{
				ID:         "gnome-terminal",
				Name:       "GNOME Terminal",
				Icon:       "terminal",
				Command:    "gnome-terminal --working-directory={path}",
				PathFormat: "unix",
				Order:      10,
			},
			{
				ID:         "konsole",
				Name:       "Konsole",
				Icon:       "terminal",
				Command:    "konsole --workdir {path}",
				PathFormat: "unix",
				Order:      20,
			},
			{
				ID:         "xfce4-terminal",
				Name:       "Xfce Terminal",
				Icon:       "terminal",
				Command:    "xfce4-terminal --working-directory={path}",
				PathFormat: "unix",
				Order:      30,
			},
			{
				ID:         "nautilus",
				Name:       "Files",
				Icon:       "folder",
				Command:    "nautilus {path}",
				PathFormat: "unix",
				Order:      40,
			},
			{
				ID:         "vscode",
				Name:       "VS Code",
				Icon:       "code",
				Command:    "code {path}",
				PathFormat: "unix",
				Order:      50,
			},
		}
	}

	for i := range defs {
		defs[i].Builtin = true
	}
	return defs
}
