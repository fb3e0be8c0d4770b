// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat client.
package commands

import (
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// TEST FAKES
// =============================================================================

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

func testContext() (*Context, *fakeOpener, *fakeClipboard) {
	opener := &fakeOpener{}
	clip := &fakeClipboard{}
	return NewContext(opener, clip), opener, clip
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCmd  bool
		wantName string
		wantArgs []string
	}{
		{"plain chat", "hello there", false, "", nil},
		{"empty", "", false, "", nil},
		{"whitespace only", "   ", false, "", nil},
		{"bare command", "/help", true, "/help", nil},
		{"command with args", "/open example.com", true, "/open", []string{"example.com"}},
		{"leading whitespace", "  /help  ", true, "/help", nil},
		{"uppercase command", "/HELP", true, "/help", nil},
		{"mixed case with args", "/Calc 2 + 2", true, "/calc", []string{"2", "+", "2"}},
		{"args keep case", "/open EXAMPLE.com", true, "/open", []string{"EXAMPLE.com"}},
		{"bare sigil", "/", true, "/", nil},
		{"sigil mid-input is chat", "what does /help do", false, "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			if got.IsCommand != tc.wantCmd {
				t.Fatalf("Parse(%q).IsCommand = %v, want %v", tc.input, got.IsCommand, tc.wantCmd)
			}
			if got.CommandName != tc.wantName {
				t.Errorf("CommandName = %q, want %q", got.CommandName, tc.wantName)
			}
			if len(got.Args) != len(tc.wantArgs) {
				t.Fatalf("Args = %v, want %v", got.Args, tc.wantArgs)
			}
			for i := range got.Args {
				if got.Args[i] != tc.wantArgs[i] {
					t.Errorf("Args[%d] = %q, want %q", i, got.Args[i], tc.wantArgs[i])
				}
			}
		})
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistryFixedCommandSet(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"/help", "/open", "/calc", "/clipboard"} {
		if r.Get(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}

	// /calculate resolves to the same command as /calc.
	if r.Get("/calculate") != r.Get("/calc") {
		t.Error("/calculate should alias /calc")
	}

	if r.Get("/frobnicate") != nil {
		t.Error("unknown commands must not resolve")
	}
}

func TestRegistryAllIsSorted(t *testing.T) {
	r := NewRegistry()
	cmds := r.All()
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1].Name > cmds[i].Name {
			t.Fatalf("All() not sorted: %q before %q", cmds[i-1].Name, cmds[i].Name)
		}
	}
}

// =============================================================================
// /help TESTS
// =============================================================================

func TestHelpIsDeterministicAndComplete(t *testing.T) {
	r := NewRegistry()
	ctx, _, _ := testContext()

	first := r.Get("/help").Handler(ctx, nil)
	second := r.Get("/help").Handler(ctx, nil)

	if first.Err != "" {
		t.Fatalf("help failed: %s", first.Err)
	}
	if first.Response != second.Response {
		t.Error("help output should be deterministic")
	}
	for _, want := range []string{"/help", "/open", "/calc", "/clipboard", "/calculate"} {
		if !strings.Contains(first.Response, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

// =============================================================================
// /open TESTS
// =============================================================================

func TestOpenCommand(t *testing.T) {
	t.Run("missing URL", func(t *testing.T) {
		ctx, opener, _ := testContext()
		res := handleOpen(ctx, nil)
		if !strings.Contains(res.Err, "URL") {
			t.Errorf("Err = %q, want mention of URL", res.Err)
		}
		if opener.lastURL != "" {
			t.Error("opener must not be invoked on missing args")
		}
	})

	t.Run("scheme prepended", func(t *testing.T) {
		ctx, opener, _ := testContext()
		res := handleOpen(ctx, []string{"example.com"})
		if res.Err != "" {
			t.Fatalf("unexpected error: %s", res.Err)
		}
		if opener.lastURL != "https://example.com" {
			t.Errorf("opened %q, want %q", opener.lastURL, "https://example.com")
		}
		if !strings.Contains(res.Response, "https://example.com") {
			t.Errorf("confirmation %q should contain the normalized URL", res.Response)
		}
	})

	t.Run("existing scheme preserved", func(t *testing.T) {
		ctx, opener, _ := testContext()
		handleOpen(ctx, []string{"http://example.com"})
		if opener.lastURL != "http://example.com" {
			t.Errorf("opened %q, want scheme preserved", opener.lastURL)
		}
	})

	t.Run("multi-token args joined", func(t *testing.T) {
		ctx, opener, _ := testContext()
		handleOpen(ctx, []string{"example.com/some", "path"})
		if opener.lastURL != "https://example.com/some path" {
			t.Errorf("opened %q", opener.lastURL)
		}
	})

	t.Run("capability failure surfaces", func(t *testing.T) {
		ctx, opener, _ := testContext()
		opener.err = errors.New("no browser found")
		res := handleOpen(ctx, []string{"example.com"})
		if !strings.Contains(res.Err, "no browser found") {
			t.Errorf("Err = %q, want capability message", res.Err)
		}
	})
}

// =============================================================================
// /calc TESTS
// =============================================================================

func TestCalcCommand(t *testing.T) {
	ctx, _, _ := testContext()

	t.Run("missing expression", func(t *testing.T) {
		res := handleCalc(ctx, nil)
		if !strings.Contains(res.Err, "expression") {
			t.Errorf("Err = %q, want mention of expression", res.Err)
		}
	})

	t.Run("precedence", func(t *testing.T) {
		res := handleCalc(ctx, []string{"2", "+", "2", "*", "3"})
		if res.Err != "" {
			t.Fatalf("unexpected error: %s", res.Err)
		}
		if !strings.Contains(res.Response, "8") {
			t.Errorf("Response = %q, want result 8", res.Response)
		}
	})

	t.Run("injection rejected before evaluation", func(t *testing.T) {
		res := handleCalc(ctx, []string{"2;", "DROP", "TABLE"})
		if res.Err == "" {
			t.Fatal("whitelist violation should fail")
		}
		if res.Response != "" {
			t.Error("rejected input must not produce a result")
		}
	})

	t.Run("division by zero", func(t *testing.T) {
		res := handleCalc(ctx, []string{"1/0"})
		if res.Err == "" {
			t.Error("non-finite result should fail")
		}
	})
}

// =============================================================================
// /clipboard TESTS
// =============================================================================

func TestClipboardCommand(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		ctx, _, clip := testContext()
		clip.err = errors.New("permission denied")
		res := handleClipboard(ctx, nil)
		if !strings.Contains(strings.ToLower(res.Err), "paste") {
			t.Errorf("Err = %q, want instruction to paste directly", res.Err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		ctx, _, clip := testContext()
		clip.text = "   \n\t "
		res := handleClipboard(ctx, nil)
		if !strings.Contains(strings.ToLower(res.Err), "empty") {
			t.Errorf("Err = %q, want mention of empty", res.Err)
		}
	})

	t.Run("content carried to model", func(t *testing.T) {
		ctx, _, clip := testContext()
		clip.text = "some copied article"
		res := handleClipboard(ctx, nil)
		if res.Err != "" {
			t.Fatalf("unexpected error: %s", res.Err)
		}
		if !res.ContinueToModel {
			t.Error("ContinueToModel should be set")
		}
		if res.Carried != "some copied article" {
			t.Errorf("Carried = %q", res.Carried)
		}
		if res.Response == "" {
			t.Error("acknowledgement response should be set")
		}
	})
}
