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
	"testing"

	"github.com/DirDockProject/dirdock-core/pkg/config"
	"github.com/DirDockProject/dirdock-core/pkg/launch"
	"github.com/DirDockProject/dirdock-core/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_ReturnsValidatorForHost(t *testing.T) {
	t.Parallel()

	v := New(afero.NewMemMapFs(), mocks.NewMockCommandExecutor(), clockwork.NewFakeClock())
	require.NotNil(t, v)
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	v := NewLinux(afero.NewMemMapFs(), mocks.NewMockCommandExecutor(), clockwork.NewFakeClock())

	tests := []struct {
		name string
		l    *config.Launcher
		kind launch.ErrorKind
	}{
		{name: "nil_launcher", l: nil, kind: launch.ErrorInvalidConfig},
		{name: "empty_command", l: &config.Launcher{ID: "x"}, kind: launch.ErrorInvalidConfig},
		{name: "whitespace_command", l: &config.Launcher{ID: "x", Command: "   "}, kind: launch.ErrorInvalidConfig},
		{name: "missing_placeholder", l: &config.Launcher{ID: "x", Command: "code ."}, kind: launch.ErrorInvalidConfig},
		{name: "valid", l: &config.Launcher{ID: "x", Command: "code {path}"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := v.ValidateConfig(tt.l)

			assert.Equal(t, tt.kind, r.Kind)
			assert.Equal(t, tt.kind == "", r.Ok())
		})
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/u/proj", 0o750))
	require.NoError(t, afero.WriteFile(fs, "/home/u/notes.txt", []byte("x"), 0o600))

	v := NewLinux(fs, mocks.NewMockCommandExecutor(), clockwork.NewFakeClock())

	t.Run("directory_passes", func(t *testing.T) {
		t.Parallel()
		assert.True(t, v.ValidatePath("/home/u/proj").Ok())
	})

	t.Run("file_is_not_a_directory", func(t *testing.T) {
		t.Parallel()
		r := v.ValidatePath("/home/u/notes.txt")
		assert.Equal(t, launch.ErrorPathNotDirectory, r.Kind)
		assert.Equal(t, "/home/u/notes.txt", r.Detail)
	})

	t.Run("missing_path", func(t *testing.T) {
		t.Parallel()
		r := v.ValidatePath("/gone")
		assert.Equal(t, launch.ErrorPathNotFound, r.Kind)
	})
}

func TestValidatePath_NeverCached(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tmp/d", 0o750))

	v := NewLinux(fs, mocks.NewMockCommandExecutor(), clockwork.NewFakeClock())

	require.True(t, v.ValidatePath("/tmp/d").Ok())

	require.NoError(t, fs.RemoveAll("/tmp/d"))

	r := v.ValidatePath("/tmp/d")
	assert.Equal(t, launch.ErrorPathNotFound, r.Kind, "path state must be re-checked on every call")
}
