// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router resolves one turn of user input into the assistant's
// response text.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/studychain01/clippy-ai/internal/commands"
	"github.com/studychain01/clippy-ai/internal/llm"
	"github.com/studychain01/clippy-ai/internal/model"
	"github.com/studychain01/clippy-ai/internal/platform"
)

// ErrorPrefix marks command failures in the rendered response.
const ErrorPrefix = "⚠ "

// clipboardPromptPrefix is the one-shot prompt wrapped around carried
// clipboard content.
const clipboardPromptPrefix = "Please provide a concise summary of this clipboard content:\n\n"

// =============================================================================
// GENERATOR INTERFACE
// =============================================================================

// Generator is the model capability the router depends on. *llm.Client
// satisfies it; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, messages []llm.ChatMessage, opts *llm.Options) (string, error)
	OneShot(ctx context.Context, systemPrompt, userText string, opts *llm.Options) (string, error)
}

// =============================================================================
// TURN CONTEXT
// =============================================================================

// TurnContext is the read-only chat context for one turn. The router never
// mutates it.
type TurnContext struct {
	// SystemPrompt is the system-prompt template for the current style.
	SystemPrompt string

	// History is a snapshot of the conversation so far, excluding the
	// input being resolved.
	History []model.Message
}

// =============================================================================
// ROUTER
// =============================================================================

// Router classifies input, executes local commands, and composes the final
// response text for each turn.
type Router struct {
	registry *commands.Registry
	cmdCtx   *commands.Context
	client   Generator
}

// New creates a router over the given model client and capabilities.
func New(client Generator, opener platform.Opener, clip platform.Clipboard) *Router {
	return &Router{
		registry: commands.NewRegistry(),
		cmdCtx:   commands.NewContext(opener, clip),
		client:   client,
	}
}

// ResolveTurn resolves one line of raw user input into the assistant's
// response text.
//
// Command failures never produce a non-nil error: they are rendered as
// error-shaped text so the turn still completes. A non-nil error is returned
// only when the model call itself fails; that error is the turn's failure
// outcome and the caller surfaces it distinctly from assistant text.
func (r *Router) ResolveTurn(ctx context.Context, input string, tc TurnContext) (string, error) {
	parsed := commands.Parse(input)

	// Default, highest-volume path: ordinary chat.
	if !parsed.IsCommand {
		return r.chat(ctx, parsed.RawInput, tc)
	}

	cmd := r.registry.Get(parsed.CommandName)
	if cmd == nil {
		return ErrorPrefix + fmt.Sprintf(
			"Unknown command: %s. Type /help for available commands.", parsed.CommandName), nil
	}

	result := cmd.Handler(r.cmdCtx, parsed.Args)

	if result.ContinueToModel {
		return r.continueToModel(ctx, result, tc)
	}

	switch {
	case result.Response != "":
		return result.Response, nil
	case result.Err != "":
		return ErrorPrefix + result.Err, nil
	default:
		return "Done.", nil
	}
}

// chat forwards the input unchanged as the latest user turn and returns the
// model's output verbatim.
func (r *Router) chat(ctx context.Context, input string, tc TurnContext) (string, error) {
	msgs := make([]llm.ChatMessage, 0, len(tc.History)+1)
	for _, m := range tc.History {
		msgs = append(msgs, llm.ChatMessage{Role: m.Role.String(), Content: m.Content})
	}
	msgs = append(msgs, llm.NewUserMessage(input))

	return r.client.Generate(ctx, tc.SystemPrompt, msgs, nil)
}

// continueToModel performs the one-shot follow-up a command requested and
// joins the command's acknowledgement with the model's text.
func (r *Router) continueToModel(ctx context.Context, result commands.Result, tc TurnContext) (string, error) {
	prompt := clipboardPromptPrefix + result.Carried

	summary, err := r.client.OneShot(ctx, tc.SystemPrompt, prompt, nil)
	if err != nil {
		return "", err
	}

	if result.Response == "" {
		return summary, nil
	}
	return strings.TrimSpace(result.Response) + "\n\n" + summary, nil
}
