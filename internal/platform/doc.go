// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package platform wraps privileged OS capabilities behind small interfaces:
// opening URLs in the default browser and reading the system clipboard.
//
// The router depends on these interfaces, never on the OS bindings directly,
// so tests can substitute fakes. Capability failures are reported as errors,
// never panics; the caller turns them into user-visible text.
package platform
