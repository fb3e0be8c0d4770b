// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat client.
//
// Input beginning with the / sigil is parsed into a command token and
// arguments and dispatched against a fixed registry: /help, /open, /calc
// (alias /calculate), and /clipboard. Matching is case-insensitive on the
// command token only. Handlers execute locally and return a Result; they
// never call the model themselves. A handler that needs an AI follow-up
// sets ContinueToModel and leaves the call to the router.
package commands
