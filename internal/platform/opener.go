// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package platform wraps privileged OS capabilities behind small interfaces.
package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkg/browser"
)

// ErrInvalidURL is returned for URLs that do not use http or https.
var ErrInvalidURL = errors.New("invalid URL")

// =============================================================================
// URL OPENER
// =============================================================================

// Opener opens a URL in the user's default browser.
type Opener interface {
	// Open opens the given URL. The URL must begin with http:// or
	// https://; anything else fails with ErrInvalidURL without attempting
	// to open.
	Open(url string) error
}

// BrowserOpener opens URLs via the OS default browser.
type BrowserOpener struct{}

// NewBrowserOpener creates the default URL opener.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{}
}

// Open implements Opener.
func (o *BrowserOpener) Open(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open URL: %w", err)
	}
	return nil
}
