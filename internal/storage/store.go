// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for conversation history and
// the prompt-style preference.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/studychain01/clippy-ai/internal/model"
)

// Well-known keys. Each value is JSON-serialized.
const (
	// KeyConversation holds the conversation history.
	KeyConversation = "conversation_history"

	// KeyPromptStyle holds the prompt-style preference.
	KeyPromptStyle = "prompt_style"
)

// ErrKeyNotFound is returned when a key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// =============================================================================
// STORE
// =============================================================================

// Store is a SQLite-backed key-value store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time; keep the pool to a single
	// connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// KEY-VALUE OPERATIONS
// =============================================================================

// Put JSON-serializes v and writes it under key, replacing any previous
// value.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Get reads the value under key into v. Returns ErrKeyNotFound if the key
// has never been written.
func (s *Store) Get(key string, v any) error {
	var data string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("failed to unmarshal %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// =============================================================================
// TYPED HELPERS
// =============================================================================

// LoadConversation loads the persisted conversation, or a fresh one if none
// has been saved yet.
func (s *Store) LoadConversation() (*model.Conversation, error) {
	var conv model.Conversation
	err := s.Get(KeyConversation, &conv)
	if errors.Is(err, ErrKeyNotFound) {
		return model.NewConversation(), nil
	}
	if err != nil {
		return nil, err
	}
	if conv.Messages == nil {
		conv.Messages = make([]model.Message, 0)
	}
	return &conv, nil
}

// SaveConversation persists the conversation.
func (s *Store) SaveConversation(conv *model.Conversation) error {
	return s.Put(KeyConversation, conv)
}

// LoadStyle loads the persisted prompt style, defaulting to balanced.
func (s *Store) LoadStyle() (model.PromptStyle, error) {
	var raw string
	err := s.Get(KeyPromptStyle, &raw)
	if errors.Is(err, ErrKeyNotFound) {
		return model.StyleBalanced, nil
	}
	if err != nil {
		return model.StyleBalanced, err
	}
	return model.ParseStyle(raw), nil
}

// SaveStyle persists the prompt style.
func (s *Store) SaveStyle(style model.PromptStyle) error {
	return s.Put(KeyPromptStyle, style.String())
}
