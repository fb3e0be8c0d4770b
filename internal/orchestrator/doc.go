// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator drives the conversation turn loop.
//
// The orchestrator sits between the UI and the router. It owns the
// conversation history and the active prompt style, admits at most one
// turn at a time, hands the router a snapshot of history as it stood at
// submission, and persists state through a StateStore after every
// mutation. Persistence failures are logged and tolerated; a working
// session matters more than a written one.
package orchestrator
