// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for conversation history and
// the prompt-style preference.
package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/studychain01/clippy-ai/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// KEY-VALUE TESTS
// =============================================================================

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := store.Put("test_key", payload{Name: "x", Count: 3}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got payload
	if err := store.Get("test_key", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "x" || got.Count != 3 {
		t.Errorf("Get = %+v", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	var v string
	err := store.Get("never_written", &v)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("error = %v, want ErrKeyNotFound", err)
	}
}

func TestPutReplacesValue(t *testing.T) {
	store := newTestStore(t)

	store.Put("k", "first")
	store.Put("k", "second")

	var got string
	if err := store.Get("k", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "second" {
		t.Errorf("Get = %q, want latest value", got)
	}
}

func TestDeleteMissingKeyIsNotError(t *testing.T) {
	store := newTestStore(t)
	if err := store.Delete("never_written"); err != nil {
		t.Errorf("Delete = %v", err)
	}
}

// =============================================================================
// CONVERSATION PERSISTENCE TESTS
// =============================================================================

func TestLoadConversationFreshStore(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.LoadConversation()
	if err != nil {
		t.Fatalf("LoadConversation failed: %v", err)
	}
	if !conv.IsEmpty() {
		t.Error("fresh store should yield an empty conversation")
	}
	if conv.ID == "" {
		t.Error("fresh conversation should have an ID")
	}
}

func TestConversationRoundTrip(t *testing.T) {
	store := newTestStore(t)

	conv := model.NewConversation()
	conv.AppendUser("what is 2+2?")
	conv.AppendAssistant("4")

	if err := store.SaveConversation(conv); err != nil {
		t.Fatalf("SaveConversation failed: %v", err)
	}

	loaded, err := store.LoadConversation()
	if err != nil {
		t.Fatalf("LoadConversation failed: %v", err)
	}
	if loaded.ID != conv.ID {
		t.Errorf("ID = %q, want %q", loaded.ID, conv.ID)
	}
	if loaded.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", loaded.MessageCount())
	}
	if loaded.Messages[0].Content != "what is 2+2?" {
		t.Errorf("first message = %q", loaded.Messages[0].Content)
	}
	if loaded.Messages[1].Role != model.RoleAssistant {
		t.Errorf("second role = %q", loaded.Messages[1].Role)
	}
}

// =============================================================================
// STYLE PERSISTENCE TESTS
// =============================================================================

func TestLoadStyleDefaultsToBalanced(t *testing.T) {
	store := newTestStore(t)

	style, err := store.LoadStyle()
	if err != nil {
		t.Fatalf("LoadStyle failed: %v", err)
	}
	if style != model.StyleBalanced {
		t.Errorf("style = %q, want balanced default", style)
	}
}

func TestStyleRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveStyle(model.StyleCreative); err != nil {
		t.Fatalf("SaveStyle failed: %v", err)
	}

	style, err := store.LoadStyle()
	if err != nil {
		t.Fatalf("LoadStyle failed: %v", err)
	}
	if style != model.StyleCreative {
		t.Errorf("style = %q, want creative", style)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.SaveStyle(model.StyleBrief)
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	style, err := reopened.LoadStyle()
	if err != nil {
		t.Fatalf("LoadStyle failed: %v", err)
	}
	if style != model.StyleBrief {
		t.Errorf("style = %q, want brief after reopen", style)
	}
}
