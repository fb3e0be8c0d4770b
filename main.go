// clippy - A terminal chat client for OpenAI-compatible APIs.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/studychain01/clippy-ai/internal/config"
	"github.com/studychain01/clippy-ai/internal/llm"
	"github.com/studychain01/clippy-ai/internal/orchestrator"
	"github.com/studychain01/clippy-ai/internal/platform"
	"github.com/studychain01/clippy-ai/internal/router"
	"github.com/studychain01/clippy-ai/internal/storage"
	"github.com/studychain01/clippy-ai/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("clippy %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: clippy is an interactive application and needs a terminal")
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return err
	}
	store, err := storage.Open(filepath.Join(dataDir, "state.db"))
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer store.Close()

	client := llm.NewClient(cfg.API.Key).
		WithBaseURL(cfg.API.BaseURL).
		WithModel(cfg.API.Model).
		WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)

	r := router.New(client, platform.NewBrowserOpener(), platform.NewSystemClipboard())

	orch, err := orchestrator.New(r, store)
	if err != nil {
		return fmt.Errorf("failed to restore conversation state: %w", err)
	}

	program := tea.NewProgram(chat.New(orch), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
