// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat client.
package commands

import (
	"strings"
	"unicode"
)

// Sigil is the leading character that marks input as a command.
const Sigil = "/"

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing user input.
type ParseResult struct {
	// IsCommand is true if the trimmed input starts with the sigil.
	IsCommand bool

	// CommandName is the lowercased command token including the sigil
	// (e.g. "/help"). Arguments keep their original case.
	CommandName string

	// Args are the whitespace-delimited arguments after the command token.
	Args []string

	// RawInput is the trimmed original input.
	RawInput string
}

// =============================================================================
// PARSER
// =============================================================================

// Parse parses user input. Returns IsCommand=false if the trimmed input does
// not start with the sigil; empty input is therefore never a command.
func Parse(input string) ParseResult {
	input = strings.TrimSpace(input)

	result := ParseResult{RawInput: input}
	if !strings.HasPrefix(input, Sigil) {
		return result
	}
	result.IsCommand = true

	parts := strings.FieldsFunc(input, unicode.IsSpace)
	if len(parts) == 0 {
		return result
	}

	// Case-insensitive on the command token only, never on arguments.
	result.CommandName = strings.ToLower(parts[0])
	if len(parts) > 1 {
		result.Args = parts[1:]
	}
	return result
}

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), Sigil)
}
