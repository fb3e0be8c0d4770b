// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm provides the client for hosted chat-completion APIs.
//
// The client is a stateless bridge: it maps (system prompt, ordered message
// history, options) to generated text and owns timeout and error shaping for
// the remote call. It performs no automatic retries; a failed call surfaces
// to the caller, and retrying is a user action.
package llm
