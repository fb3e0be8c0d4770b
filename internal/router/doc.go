// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router resolves one turn of user input into the assistant's
// response text.
//
// The router is the single decision point of the client: it classifies raw
// input as either a local slash command or a conversational turn, executes
// the appropriate action, and composes the text that is appended to the
// conversation. It is a pure function of its inputs plus the capabilities it
// calls: it holds no mutable state and never touches persistence.
//
// Command failures are resolved locally into error-shaped text and never
// reach the model; no network call is made for invalid local commands.
// Model failures are the turn's failure outcome and propagate to the caller.
package router
