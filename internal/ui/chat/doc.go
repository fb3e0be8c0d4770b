// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the Bubble Tea chat view. It renders the
// conversation transcript, the input line, and a status bar, and talks
// to the rest of the application only through the orchestrator.
//
// Key bindings:
//
//	Enter   submit the current input
//	Esc     cancel the in-flight response
//	Ctrl+S  cycle the prompt style
//	Ctrl+L  clear the conversation
//	Ctrl+C  quit
package chat
