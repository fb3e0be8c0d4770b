// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package platform wraps privileged OS capabilities behind small interfaces.
package platform

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// =============================================================================
// CLIPBOARD
// =============================================================================

// Clipboard reads the system clipboard.
type Clipboard interface {
	// Read returns the current clipboard text. It fails when the OS denies
	// access or no clipboard mechanism is available.
	Read() (string, error)
}

// SystemClipboard reads the OS clipboard.
type SystemClipboard struct{}

// NewSystemClipboard creates the default clipboard reader.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// Read implements Clipboard.
func (c *SystemClipboard) Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard unavailable: %w", err)
	}
	return text, nil
}
