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
	"strings"
	"unicode"

	"github.com/DirDockProject/dirdock-core/pkg/config"
)

// Decomposition is a command template broken into an executable and
// argument templates, each of which may still embed the path placeholder
// (e.g. "--dir={path}").
type Decomposition struct {
	Executable   string
	ArgTemplates []string
}

// TryShellFreeDecomposition decides whether a command template can be
// executed directly as executable+args without invoking a shell. It
// returns false when the template needs shell semantics: metacharacters
// outside the placeholder, a placeholder inside a quoted region, or
// malformed quoting.
func TryShellFreeDecomposition(template string) (Decomposition, bool) {
	// Metacharacters anywhere outside the placeholder force shell mode.
	remainder := strings.ReplaceAll(template, config.PathPlaceholder, "")
	if strings.ContainsAny(remainder, ";|&`$><\n\r") {
		return Decomposition{}, false
	}

	// A placeholder inside an open quoted region means the shell has to
	// interpret the quoting.
	if placeholderInQuotes(template) {
		return Decomposition{}, false
	}

	tokens, ok := tokenize(template)
	if !ok || len(tokens) == 0 {
		return Decomposition{}, false
	}

	return Decomposition{
		Executable:   tokens[0],
		ArgTemplates: tokens[1:],
	}, true
}

// placeholderInQuotes reports whether any occurrence of the placeholder
// starts inside a single- or double-quoted region.
func placeholderInQuotes(template string) bool {
	var quote byte
	for i := 0; i < len(template); i++ {
		if quote != 0 && strings.HasPrefix(template[i:], config.PathPlaceholder) {
			return true
		}
		c := template[i]
		switch {
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote == c:
			quote = 0
		}
	}
	return false
}

// tokenize splits a template on whitespace, honoring single and double
// quotes (quotes are stripped from tokens). Returns false on an
// unterminated quote.
func tokenize(template string) ([]string, bool) {
	var tokens []string
	var current strings.Builder
	var quote rune
	inToken := false

	for _, r := range template {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, false
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, true
}
