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

// Package validate verifies that a launcher's declared command is runnable
// on this host. One implementation exists per OS family behind the shared
// launch.Validator contract, with probe results memoized in a TTL cache.
package validate

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/DirDockProject/dirdock-core/pkg/config"
	"github.com/DirDockProject/dirdock-core/pkg/helpers/command"
	"github.com/DirDockProject/dirdock-core/pkg/helpers/ttlcache"
	"github.com/DirDockProject/dirdock-core/pkg/launch"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

// probeTimeout bounds every probe subprocess so a hung external command
// cannot stall the caller indefinitely.
const probeTimeout = 2 * time.Second

// New selects the validator implementation for the current OS. Called once
// at startup; the choice never changes at runtime.
func New(fs afero.Fs, exec command.Executor, clock clockwork.Clock) launch.Validator {
	switch runtime.GOOS {
	case "windows":
		return NewWindows(fs, exec, clock)
	case "darwin":
		return NewMac(fs, exec, clock)
	default:
		return NewLinux(fs, exec, clock)
	}
}

// base carries the checks and probe plumbing shared by all OS validators.
// Caching is shared by composition: each validator embeds the same cache
// type rather than inheriting behavior.
type base struct {
	fs    afero.Fs
	exec  command.Executor
	cache *ttlcache.Cache
	// whichCmd locates binaries on PATH: "where.exe" on Windows, "which"
	// elsewhere.
	whichCmd string
}

func newBase(fs afero.Fs, exec command.Executor, clock clockwork.Clock, whichCmd string) base {
	return base{
		fs:       fs,
		exec:     exec,
		cache:    ttlcache.New(ttlcache.DefaultTTL, clock),
		whichCmd: whichCmd,
	}
}

// ValidateConfig checks the launcher record itself. No filesystem or
// process access happens here.
func (*base) ValidateConfig(l *config.Launcher) launch.Result {
	if l == nil || strings.TrimSpace(l.Command) == "" {
		return launch.Fail(launch.ErrorInvalidConfig, "launcher command is empty")
	}
	if !strings.Contains(l.Command, config.PathPlaceholder) {
		return launch.Fail(launch.ErrorInvalidConfig, "command missing "+config.PathPlaceholder+" placeholder")
	}
	return launch.Result{}
}

// ValidatePath checks that path exists and is a directory. Never cached:
// filesystem state changes independently of the app. Stat errors map to
// PATH_NOT_FOUND.
func (b *base) ValidatePath(path string) launch.Result {
	info, err := b.fs.Stat(path)
	if err != nil {
		return launch.Fail(launch.ErrorPathNotFound, path)
	}
	if !info.IsDir() {
		return launch.Fail(launch.ErrorPathNotDirectory, path)
	}
	return launch.Result{}
}

// InvalidateCache clears all memoized probes, forcing re-probes on the
// next validation. Called after a launcher edit or on demand.
func (b *base) InvalidateCache() {
	b.cache.InvalidateAll()
}

// binaryExists probes for a binary on PATH, memoized per binary name.
func (b *base) binaryExists(name string) bool {
	found, err := ttlcache.Get(b.cache, "bin:"+name, func() (bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		_, lookupErr := b.exec.Output(ctx, b.whichCmd, name)
		return lookupErr == nil, nil
	})
	if err != nil {
		return false
	}
	return found
}

// launcherKey is the composite memoization key for a per-launcher terminal
// verdict. The command is included so editing a launcher in place does not
// serve a stale verdict for the full TTL.
func launcherKey(l *config.Launcher) string {
	return "launcher:" + l.ID + ":" + l.Command
}
