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

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/DirDockProject/dirdock-core/pkg/config"
	"github.com/DirDockProject/dirdock-core/pkg/helpers"
	"github.com/DirDockProject/dirdock-core/pkg/helpers/command"
	"github.com/DirDockProject/dirdock-core/pkg/launch"
	"github.com/DirDockProject/dirdock-core/pkg/launch/validate"
	"github.com/adrg/xdg"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	previewID := flag.String(
		"preview",
		"",
		"print the command a launcher would run, without running it",
	)
	launchID := flag.String(
		"launch",
		"",
		"open a launcher on the target directory",
	)
	dirArg := flag.String(
		"dir",
		"",
		"target directory path or configured directory id",
	)
	doDetect := flag.Bool(
		"detect",
		false,
		"print installed launcher tool state",
	)
	doList := flag.Bool(
		"list",
		false,
		"print available launchers",
	)
	showVersion := flag.Bool(
		"version",
		false,
		"print version and exit",
	)
	debugMode := flag.Bool(
		"debug",
		false,
		"enable debug logging",
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(config.AppVersion)
		return nil
	}

	if err := helpers.InitLogging(filepath.Join(os.TempDir(), config.AppName), nil); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	fs := afero.NewOsFs()
	cfg, err := config.NewConfig(fs, filepath.Join(xdg.ConfigHome, config.AppName), config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if *debugMode || cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	executor := &command.RealExecutor{}
	validator := validate.New(fs, executor, clockwork.NewRealClock())
	coordinator := launch.NewCoordinator(validator, executor)

	switch {
	case *doList:
		for _, l := range cfg.Launchers(runtime.GOOS) {
			marker := " "
			if l.Hidden {
				marker = "x"
			}
			fmt.Printf("[%s] %-20s %-20s %s\n", marker, l.ID, l.Name, l.Command)
		}
		return nil
	case *doDetect:
		return printJSON(coordinator.DetectInstalled())
	case *previewID != "":
		dir, lookupErr := resolveDirectory(cfg, *dirArg)
		if lookupErr != nil {
			return lookupErr
		}
		l, ok := cfg.LookupLauncher(runtime.GOOS, *previewID)
		if !ok {
			return fmt.Errorf("unknown launcher: %s", *previewID)
		}
		return printJSON(coordinator.Preview(&dir, &l))
	case *launchID != "":
		dir, lookupErr := resolveDirectory(cfg, *dirArg)
		if lookupErr != nil {
			return lookupErr
		}
		l, ok := cfg.LookupLauncher(runtime.GOOS, *launchID)
		if !ok {
			return fmt.Errorf("unknown launcher: %s", *launchID)
		}
		res := coordinator.Launch(&dir, &l)
		if !res.Success {
			return fmt.Errorf("launch failed: %s (%s)", res.ErrorKind, res.ErrorDetail)
		}
		return nil
	default:
		flag.Usage()
		return nil
	}
}

// resolveDirectory accepts either a configured directory id or a raw path.
func resolveDirectory(cfg *config.Instance, arg string) (config.Directory, error) {
	if arg == "" {
		return config.Directory{}, errors.New("-dir is required")
	}
	if dir, ok := cfg.LookupDirectory(arg); ok {
		return dir, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return config.Directory{}, fmt.Errorf("error resolving directory path: %w", err)
	}
	return config.Directory{ID: "adhoc", Path: abs}, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
