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
	"errors"
	"testing"

	"github.com/DirDockProject/dirdock-core/pkg/config"
	"github.com/DirDockProject/dirdock-core/pkg/launch"
	"github.com/DirDockProject/dirdock-core/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

// utf16le encodes a string the way wsl.exe emits its listing output.
func utf16le(t *testing.T, s string) []byte {
	t.Helper()
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

var wslUbuntuLauncher = &config.Launcher{
	ID:      "wsl-ubuntu",
	Command: "wt.exe -w 0 new-tab wsl.exe -d Ubuntu --cd {path}",
}

func TestWindows_ValidateTerminal(t *testing.T) {
	t.Parallel()

	t.Run("distro_missing", func(t *testing.T) {
		t.Parallel()

		executor := mocks.NewMockCommandExecutor()
		executor.ExpectedCalls = nil
		executor.On("Output", mock.Anything, "where.exe", []string{"wt.exe"}).
			Return([]byte(`C:\wt.exe`), nil)
		executor.On("Output", mock.Anything, "wsl.exe", []string{"-l", "-q"}).
			Return(utf16le(t, "Debian\r\n"), nil)

		v := NewWindows(afero.NewMemMapFs(), executor, clockwork.NewFakeClock())

		r := v.ValidateTerminal(wslUbuntuLauncher)

		assert.Equal(t, launch.ErrorWSLDistroNotFound, r.Kind)
		assert.Equal(t, "Ubuntu", r.Detail)
	})

	t.Run("distro_match_is_case_insensitive", func(t *testing.T) {
		t.Parallel()

		executor := mocks.NewMockCommandExecutor()
		executor.ExpectedCalls = nil
		executor.On("Output", mock.Anything, "where.exe", []string{"wt.exe"}).
			Return([]byte(`C:\wt.exe`), nil)
		executor.On("Output", mock.Anything, "wsl.exe", []string{"-l", "-q"}).
			Return(utf16le(t, "ubuntu\r\nDebian\r\n"), nil)

		v := NewWindows(afero.NewMemMapFs(), executor, clockwork.NewFakeClock())

		assert.True(t, v.ValidateTerminal(wslUbuntuLauncher).Ok())
	})

	t.Run("wsl_not_installed", func(t *testing.T) {
		t.Parallel()

		executor := mocks.NewMockCommandExecutor()
		executor.ExpectedCalls = nil
		executor.On("Output", mock.Anything, "where.exe", []string{"wt.exe"}).
			Return([]byte(`C:\wt.exe`), nil)
		executor.On("Output", mock.Anything, "wsl.exe", []string{"-l", "-q"}).
			Return([]byte(nil), errors.New("exit status 1"))

		v := NewWindows(afero.NewMemMapFs(), executor, clockwork.NewFakeClock())

		r := v.ValidateTerminal(wslUbuntuLauncher)

		assert.Equal(t, launch.ErrorWSLNotFound, r.Kind)
	})

	t.Run("windows_terminal_not_installed", func(t *testing.T) {
		t.Parallel()

		executor := mocks.NewMockCommandExecutor()
		executor.ExpectedCalls = nil
		executor.On("Output", mock.Anything, "where.exe", []string{"wt.exe"}).
			Return([]byte(nil), errors.New("exit status 1"))

		v := NewWindows(afero.NewMemMapFs(), executor, clockwork.NewFakeClock())

		r := v.ValidateTerminal(wslUbuntuLauncher)

		assert.Equal(t, launch.ErrorWindowsTerminalNotFound, r.Kind)
		executor.AssertNotCalled(t, "Output", mock.Anything, "wsl.exe", []string{"-l", "-q"})
	})

	t.Run("non_terminal_launcher_probes_nothing", func(t *testing.T) {
		t.Parallel()

		executor := mocks.NewMockCommandExecutor()
		executor.ExpectedCalls = nil

		v := NewWindows(afero.NewMemMapFs(), executor, clockwork.NewFakeClock())

		r := v.ValidateTerminal(&config.Launcher{ID: "vscode", Command: "code {path}"})

		assert.True(t, r.Ok())
		executor.AssertNumberOfCalls(t, "Output", 0)
	})

	t.Run("default_distro_skips_distro_check", func(t *testing.T) {
		t.Parallel()

		executor := mocks.NewMockCommandExecutor()
		executor.ExpectedCalls = nil
		executor.On("Output", mock.Anything, "wsl.exe", []string{"-l", "-q"}).
			Return(utf16le(t, "Debian\r\n"), nil)

		v := NewWindows(afero.NewMemMapFs(), executor, clockwork.NewFakeClock())

		r := v.ValidateTerminal(&config.Launcher{ID: "wsl", Command: "wsl.exe --cd {path}"})

		assert.True(t, r.Ok(), "no -d flag means the default distro, which cannot be missing")
	})
}

func TestWindows_ProbesAreCached(t *testing.T) {
	t.Parallel()

	executor := mocks.NewMockCommandExecutor()
	executor.ExpectedCalls = nil
	executor.On("Output", mock.Anything, "where.exe", []string{"wt.exe"}).
		Return([]byte(`C:\wt.exe`), nil)
	executor.On("Output", mock.Anything, "wsl.exe", []string{"-l", "-q"}).
		Return(utf16le(t, "Ubuntu\r\n"), nil)

	clock := clockwork.NewFakeClock()
	v := NewWindows(afero.NewMemMapFs(), executor, clock)

	require.True(t, v.ValidateTerminal(wslUbuntuLauncher).Ok())
	require.True(t, v.ValidateTerminal(wslUbuntuLauncher).Ok())

	// one wt probe plus one wsl probe, regardless of call count
	executor.AssertNumberOfCalls(t, "Output", 2)

	v.InvalidateCache()
	require.True(t, v.ValidateTerminal(wslUbuntuLauncher).Ok())
	executor.AssertNumberOfCalls(t, "Output", 4)
}

func TestWindows_EditedLauncherReprobes(t *testing.T) {
	t.Parallel()

	executor := mocks.NewMockCommandExecutor()
	executor.ExpectedCalls = nil
	executor.On("Output", mock.Anything, "where.exe", []string{"wt.exe"}).
		Return([]byte(`C:\wt.exe`), nil)
	executor.On("Output", mock.Anything, "wsl.exe", []string{"-l", "-q"}).
		Return(utf16le(t, "Debian\r\n"), nil)

	v := NewWindows(afero.NewMemMapFs(), executor, clockwork.NewFakeClock())

	r := v.ValidateTerminal(wslUbuntuLauncher)
	require.Equal(t, launch.ErrorWSLDistroNotFound, r.Kind)

	// same id, different command: the verdict key includes the command so
	// the edit takes effect without waiting out the TTL
	edited := &config.Launcher{
		ID:      wslUbuntuLauncher.ID,
		Command: "wt.exe -w 0 new-tab wsl.exe -d Debian --cd {path}",
	}
	assert.True(t, v.ValidateTerminal(edited).Ok())
}

func TestWindows_DetectInstalled(t *testing.T) {
	t.Parallel()

	executor := mocks.NewMockCommandExecutor()
	executor.ExpectedCalls = nil
	executor.On("Output", mock.Anything, "where.exe", []string{"wt.exe"}).
		Return([]byte(`C:\wt.exe`), nil)
	executor.On("Output", mock.Anything, "wsl.exe", []string{"-l", "-q"}).
		Return(utf16le(t, "Ubuntu\r\nDebian\r\n"), nil)
	executor.On("Output", mock.Anything, "where.exe", []string{"code"}).
		Return([]byte(nil), errors.New("exit status 1"))

	v := NewWindows(afero.NewMemMapFs(), executor, clockwork.NewFakeClock())

	snap := v.DetectInstalled()

	assert.True(t, snap.Tools["windowsTerminal"])
	assert.True(t, snap.Tools["wsl"])
	assert.False(t, snap.Tools["vscode"])
	assert.Equal(t, []string{"Ubuntu", "Debian"}, snap.WSLDistros)
}

func TestParseWSLDistroList(t *testing.T) {
	t.Parallel()

	t.Run("utf16le_with_bom", func(t *testing.T) {
		t.Parallel()
		raw := utf16le(t, "Ubuntu\r\nDebian\r\n\r\n")
		assert.Equal(t, []string{"Ubuntu", "Debian"}, parseWSLDistroList(raw))
	})

	t.Run("utf8_fallback", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"Ubuntu"}, parseWSLDistroList([]byte("Ubuntu\n")))
	})

	t.Run("empty_output", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, parseWSLDistroList(nil))
	})
}

func TestWSLDistroArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  string
		want string
	}{
		{name: "short_flag", cmd: "wsl.exe -d Ubuntu --cd {path}", want: "Ubuntu"},
		{name: "long_flag", cmd: "wsl.exe --distribution Debian --cd {path}", want: "Debian"},
		{name: "no_flag", cmd: "wsl.exe --cd {path}", want: ""},
		{name: "flag_without_value", cmd: "wsl.exe --cd {path} -d", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wslDistroArg(tt.cmd))
		})
	}
}
