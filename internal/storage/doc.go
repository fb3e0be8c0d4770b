// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for conversation history and
// the prompt-style preference.
//
// State lives in a single SQLite key-value table with two well-known keys,
// each value JSON-serialized. The store is owned by the orchestrator: loaded
// once at startup and rewritten after every mutation. Nothing else in the
// client touches it.
package storage
