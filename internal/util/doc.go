// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across clippy packages.
//
// It holds atomic file writes for config and state files, plus
// rune-safe and display-width-aware string truncation for the TUI.
// Anything with domain knowledge belongs in a real package, not here.
package util
