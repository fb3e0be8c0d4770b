// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator drives the conversation turn loop.
package orchestrator

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/studychain01/clippy-ai/internal/model"
	"github.com/studychain01/clippy-ai/internal/router"
)

// ===== ERRORS =====

var (
	// ErrBusy is returned when a turn is already in flight.
	ErrBusy = errors.New("a response is already being generated")

	// ErrEmptyInput is returned for whitespace-only submissions.
	ErrEmptyInput = errors.New("message is empty")
)

// ===== INTERFACES =====

// Resolver turns one user input into response text. *router.Router is
// the production implementation.
type Resolver interface {
	ResolveTurn(ctx context.Context, input string, tc router.TurnContext) (string, error)
}

// StateStore persists conversation state between sessions.
type StateStore interface {
	LoadConversation() (*model.Conversation, error)
	SaveConversation(conv *model.Conversation) error
	LoadStyle() (model.PromptStyle, error)
	SaveStyle(style model.PromptStyle) error
}

// ===== ORCHESTRATOR =====

// Orchestrator coordinates turns between the UI and the router. At most
// one turn is in flight at a time; further submissions fail with
// ErrBusy until the current one resolves.
type Orchestrator struct {
	mu       sync.Mutex
	busy     bool
	conv     *model.Conversation
	style    model.PromptStyle
	resolver Resolver
	store    StateStore
}

// New restores conversation history and prompt style from the store. A
// store with no prior state yields an empty conversation and the
// balanced style.
func New(resolver Resolver, store StateStore) (*Orchestrator, error) {
	conv, err := store.LoadConversation()
	if err != nil {
		return nil, err
	}
	style, err := store.LoadStyle()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		conv:     conv,
		style:    style,
		resolver: resolver,
		store:    store,
	}, nil
}

// Submit runs one full turn: append the user message, resolve it
// through the router, append the response, and persist. The returned
// message is the assistant's reply.
//
// When resolution fails the user message stays in history so the next
// submission retains context, and the error is returned for the caller
// to surface. Cancelling ctx aborts an in-flight model call.
func (o *Orchestrator) Submit(ctx context.Context, input string) (model.Message, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return model.Message{}, ErrEmptyInput
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return model.Message{}, ErrBusy
	}
	o.busy = true
	// Snapshot before appending so the router sees the history as it
	// stood at submission time, without the new user turn.
	history := o.conv.Snapshot()
	systemPrompt := o.style.SystemPrompt()
	o.conv.AppendUser(trimmed)
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	text, err := o.resolver.ResolveTurn(ctx, trimmed, router.TurnContext{
		SystemPrompt: systemPrompt,
		History:      history,
	})
	if err != nil {
		o.persist()
		return model.Message{}, err
	}

	o.mu.Lock()
	msg := o.conv.AppendAssistant(text)
	o.mu.Unlock()
	o.persist()
	return msg, nil
}

// Busy reports whether a turn is currently in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Title returns the conversation title, derived from the first user
// message. Empty until the first message arrives.
func (o *Orchestrator) Title() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conv.GetTitle()
}

// History returns a copy of the conversation messages.
func (o *Orchestrator) History() []model.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conv.Snapshot()
}

// Clear discards the conversation history and persists the empty state.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	o.conv.Clear()
	o.mu.Unlock()
	o.persist()
}

// Style returns the active prompt style.
func (o *Orchestrator) Style() model.PromptStyle {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.style
}

// CycleStyle advances to the next prompt style and persists the choice.
// The new style applies from the next submitted turn.
func (o *Orchestrator) CycleStyle() model.PromptStyle {
	o.mu.Lock()
	o.style = o.style.Next()
	next := o.style
	o.mu.Unlock()

	// Style persistence failures are not fatal; the in-memory style
	// still governs this session.
	if err := o.store.SaveStyle(next); err != nil {
		log.Printf("failed to persist prompt style: %v", err)
	}
	return next
}

func (o *Orchestrator) persist() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.store.SaveConversation(o.conv); err != nil {
		log.Printf("failed to persist conversation: %v", err)
	}
}
