// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router resolves one turn of user input into the assistant's
// response text.
package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/studychain01/clippy-ai/internal/llm"
	"github.com/studychain01/clippy-ai/internal/model"
)

// =============================================================================
// TEST FAKES
// =============================================================================

// fakeGenerator replays a canned response and records every call.
type fakeGenerator struct {
	response string
	err      error

	calls        int
	lastSystem   string
	lastMessages []llm.ChatMessage
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt string, messages []llm.ChatMessage, opts *llm.Options) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastMessages = messages
	return f.response, f.err
}

func (f *fakeGenerator) OneShot(ctx context.Context, systemPrompt, userText string, opts *llm.Options) (string, error) {
	return f.Generate(ctx, systemPrompt, []llm.ChatMessage{llm.NewUserMessage(userText)}, opts)
}

type fakeOpener struct {
	lastURL string
	err     error
}

func (f *fakeOpener) Open(url string) error {
	f.lastURL = url
	return f.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) Read() (string, error) {
	return f.text, f.err
}

func newTestRouter(gen *fakeGenerator) (*Router, *fakeOpener, *fakeClipboard) {
	opener := &fakeOpener{}
	clip := &fakeClipboard{}
	return New(gen, opener, clip), opener, clip
}

func resolve(t *testing.T, r *Router, input string) string {
	t.Helper()
	text, err := r.ResolveTurn(context.Background(), input, TurnContext{SystemPrompt: "sys"})
	if err != nil {
		t.Fatalf("ResolveTurn(%q) error: %v", input, err)
	}
	return text
}

// =============================================================================
// CHAT PATH TESTS
// =============================================================================

func TestChatForwardedVerbatim(t *testing.T) {
	gen := &fakeGenerator{response: "model says hi"}
	r, _, _ := newTestRouter(gen)

	history := []model.Message{
		model.NewUserMessage("earlier question"),
		model.NewAssistantMessage("earlier answer"),
	}

	text, err := r.ResolveTurn(context.Background(), "what is Go?", TurnContext{
		SystemPrompt: "be helpful",
		History:      history,
	})
	if err != nil {
		t.Fatalf("ResolveTurn error: %v", err)
	}

	if text != "model says hi" {
		t.Errorf("output = %q, want model output verbatim", text)
	}
	if gen.calls != 1 {
		t.Fatalf("model calls = %d, want 1", gen.calls)
	}
	if gen.lastSystem != "be helpful" {
		t.Errorf("system prompt = %q", gen.lastSystem)
	}

	// History forwarded in order, input appended as the newest user turn.
	if len(gen.lastMessages) != 3 {
		t.Fatalf("forwarded %d messages, want 3", len(gen.lastMessages))
	}
	last := gen.lastMessages[2]
	if last.Role != "user" || last.Content != "what is Go?" {
		t.Errorf("last message = %+v, want the raw input as a user turn", last)
	}
}

func TestChatModelErrorPropagates(t *testing.T) {
	gen := &fakeGenerator{err: llm.ErrRateLimited}
	r, _, _ := newTestRouter(gen)

	_, err := r.ResolveTurn(context.Background(), "hello", TurnContext{})
	if !errors.Is(err, llm.ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited to propagate", err)
	}
}

// =============================================================================
// COMMAND PATH TESTS
// =============================================================================

func TestHelpNeverCallsModel(t *testing.T) {
	gen := &fakeGenerator{response: "should not be used"}
	r, _, _ := newTestRouter(gen)

	first := resolve(t, r, "/help")
	second := resolve(t, r, "/help")

	if gen.calls != 0 {
		t.Errorf("model calls = %d, want 0", gen.calls)
	}
	if first != second {
		t.Error("/help output should be deterministic")
	}
	if !strings.Contains(first, "/calc") {
		t.Errorf("help output missing commands: %q", first)
	}
}

func TestOpenNormalizesURL(t *testing.T) {
	gen := &fakeGenerator{}
	r, opener, _ := newTestRouter(gen)

	text := resolve(t, r, "/open example.com")

	if opener.lastURL != "https://example.com" {
		t.Errorf("opened %q, want https://example.com", opener.lastURL)
	}
	if !strings.Contains(text, "https://example.com") {
		t.Errorf("confirmation = %q", text)
	}
	if gen.calls != 0 {
		t.Error("/open must not call the model")
	}
}

func TestOpenMissingURL(t *testing.T) {
	r, opener, _ := newTestRouter(&fakeGenerator{})

	text := resolve(t, r, "/open")

	if !strings.HasPrefix(text, ErrorPrefix) {
		t.Errorf("error response %q missing failure marker", text)
	}
	if !strings.Contains(text, "URL") {
		t.Errorf("error = %q, want mention of URL", text)
	}
	if opener.lastURL != "" {
		t.Error("opener must not be invoked")
	}
}

func TestCalcEvaluation(t *testing.T) {
	gen := &fakeGenerator{}
	r, _, _ := newTestRouter(gen)

	text := resolve(t, r, "/calc 2 + 2 * 3")
	if !strings.Contains(text, "8") {
		t.Errorf("result = %q, want 8", text)
	}

	// Alias behaves identically.
	alias := resolve(t, r, "/calculate 2 + 2 * 3")
	if alias != text {
		t.Errorf("alias result %q differs from %q", alias, text)
	}

	if gen.calls != 0 {
		t.Error("/calc must not call the model")
	}
}

func TestCalcInjectionRejected(t *testing.T) {
	gen := &fakeGenerator{}
	r, _, _ := newTestRouter(gen)

	text := resolve(t, r, "/calc 2; DROP TABLE users")

	if !strings.HasPrefix(text, ErrorPrefix) {
		t.Errorf("response %q should be an error", text)
	}
	if gen.calls != 0 {
		t.Error("rejected input must never reach the model")
	}
}

func TestUnknownCommand(t *testing.T) {
	gen := &fakeGenerator{}
	r, _, _ := newTestRouter(gen)

	text := resolve(t, r, "/frobnicate now")

	if !strings.Contains(text, "Unknown command") {
		t.Errorf("response = %q", text)
	}
	if !strings.Contains(text, "/frobnicate") {
		t.Errorf("response %q should name the command", text)
	}
	if !strings.Contains(text, "/help") {
		t.Errorf("response %q should point at /help", text)
	}
	if gen.calls != 0 {
		t.Error("unknown commands must not call the model")
	}
}

func TestCommandMatchingCaseInsensitive(t *testing.T) {
	gen := &fakeGenerator{}
	r, _, _ := newTestRouter(gen)

	text := resolve(t, r, "/CALC 1 + 1")
	if !strings.Contains(text, "2") {
		t.Errorf("uppercase command token should dispatch: %q", text)
	}
}

// =============================================================================
// CLIPBOARD FLOW TESTS
// =============================================================================

func TestClipboardSummaryFlow(t *testing.T) {
	gen := &fakeGenerator{response: "a tidy summary"}
	r, _, clip := newTestRouter(gen)
	clip.text = "copied article body"

	text := resolve(t, r, "/clipboard")

	if gen.calls != 1 {
		t.Fatalf("model calls = %d, want exactly 1", gen.calls)
	}

	// The one-shot prompt carries the clipboard content with no history.
	if len(gen.lastMessages) != 1 {
		t.Fatalf("one-shot sent %d messages, want 1", len(gen.lastMessages))
	}
	if !strings.Contains(gen.lastMessages[0].Content, "copied article body") {
		t.Errorf("prompt %q missing clipboard text", gen.lastMessages[0].Content)
	}

	// Acknowledgement and summary joined by a blank line.
	parts := strings.SplitN(text, "\n\n", 2)
	if len(parts) != 2 {
		t.Fatalf("response %q should contain a blank-line join", text)
	}
	if !strings.Contains(parts[1], "a tidy summary") {
		t.Errorf("second part = %q, want model summary", parts[1])
	}
}

func TestClipboardEmpty(t *testing.T) {
	gen := &fakeGenerator{}
	r, _, clip := newTestRouter(gen)
	clip.text = "  \n "

	text := resolve(t, r, "/clipboard")

	if !strings.Contains(strings.ToLower(text), "empty") {
		t.Errorf("response = %q, want mention of empty", text)
	}
	if gen.calls != 0 {
		t.Error("empty clipboard must not call the model")
	}
}

func TestClipboardUnavailable(t *testing.T) {
	gen := &fakeGenerator{}
	r, _, clip := newTestRouter(gen)
	clip.err = errors.New("permission denied")

	text := resolve(t, r, "/clipboard")

	if !strings.Contains(strings.ToLower(text), "paste") {
		t.Errorf("response = %q, want instruction to paste directly", text)
	}
	if gen.calls != 0 {
		t.Error("unavailable clipboard must not call the model")
	}
}

func TestClipboardModelErrorPropagates(t *testing.T) {
	gen := &fakeGenerator{err: llm.ErrServer}
	r, _, clip := newTestRouter(gen)
	clip.text = "content"

	_, err := r.ResolveTurn(context.Background(), "/clipboard", TurnContext{})
	if !errors.Is(err, llm.ErrServer) {
		t.Errorf("error = %v, want ErrServer to propagate", err)
	}
}

// =============================================================================
// IDEMPOTENCE
// =============================================================================

func TestResolveTurnIdempotent(t *testing.T) {
	inputs := []string{"hello", "/help", "/calc 6 / 4", "/open example.com", "/clipboard"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			gen := &fakeGenerator{response: "replayed output"}
			r, _, clip := newTestRouter(gen)
			clip.text = "stable clipboard"

			first := resolve(t, r, input)
			second := resolve(t, r, input)

			if first != second {
				t.Errorf("output differs across identical turns:\n%q\n%q", first, second)
			}
		})
	}
}
