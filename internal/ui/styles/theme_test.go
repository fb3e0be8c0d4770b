// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}
	// Styles must render without panicking in any terminal.
	if out := theme.ErrorBanner.Render("boom"); out == "" {
		t.Error("ErrorBanner rendered empty string")
	}
	if out := theme.UserText.Render("hello"); out == "" {
		t.Error("UserText rendered empty string")
	}
}
