// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and persists the clippy configuration file.
//
// Settings live in TOML at ~/.clippy/config.toml, covering the API
// endpoint, model parameters, and the data directory. Missing files and
// missing fields fall back to defaults, and the CLIPPY_API_KEY,
// CLIPPY_BASE_URL, and CLIPPY_MODEL environment variables override the
// file. Saves are atomic and mode 0600 because the file may hold the
// API key.
package config
