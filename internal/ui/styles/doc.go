// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the clippy TUI.
//
// A Theme bundles every lipgloss style the chat view uses, built once at
// startup from the detected terminal background. Colors are adaptive
// pairs so the same palette reads well on light and dark terminals; no
// other package constructs lipgloss styles directly.
package styles
