// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat client.
package commands

import (
	"fmt"
	"strings"

	"github.com/studychain01/clippy-ai/internal/calc"
)

// =============================================================================
// /help
// =============================================================================

// handleHelp returns a handler that renders a static reference of all
// registered commands. No model call, no side effects.
func handleHelp(r *Registry) func(ctx *Context, args []string) Result {
	return func(ctx *Context, args []string) Result {
		var b strings.Builder
		b.WriteString("**Available commands**\n\n")
		for _, cmd := range r.All() {
			b.WriteString(fmt.Sprintf("- `%s`: %s", cmd.Usage, cmd.Description))
			if len(cmd.Aliases) > 0 {
				b.WriteString(fmt.Sprintf(" (alias: %s)", strings.Join(cmd.Aliases, ", ")))
			}
			b.WriteString("\n")
		}
		b.WriteString("\nAnything that doesn't start with / is sent to the assistant.")
		return ok(b.String())
	}
}

// =============================================================================
// /open
// =============================================================================

// handleOpen normalizes the argument to a URL and opens it in the default
// browser.
func handleOpen(ctx *Context, args []string) Result {
	if len(args) == 0 {
		return fail("Missing URL. Usage: /open <url>")
	}

	url := strings.Join(args, " ")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	if err := ctx.Opener.Open(url); err != nil {
		return fail(fmt.Sprintf("Could not open %s: %v", url, err))
	}
	return ok(fmt.Sprintf("Opened %s in your browser.", url))
}

// =============================================================================
// /calc
// =============================================================================

// handleCalc validates and evaluates an arithmetic expression. Validation
// happens inside calc.Eval before anything is interpreted; a command error
// here never reaches the model.
func handleCalc(ctx *Context, args []string) Result {
	if len(args) == 0 {
		return fail("Missing expression. Usage: /calc <expression>")
	}

	expr := strings.Join(args, " ")
	result, err := calc.Eval(expr)
	if err != nil {
		return fail(fmt.Sprintf("Could not evaluate %q: %v", expr, err))
	}
	return ok(fmt.Sprintf("%s = %s", expr, calc.FormatResult(result)))
}

// =============================================================================
// /clipboard
// =============================================================================

// handleClipboard reads the clipboard and, when it has content, requests an
// AI summary by setting ContinueToModel.
func handleClipboard(ctx *Context, args []string) Result {
	text, err := ctx.Clipboard.Read()
	if err != nil {
		return fail("Could not read the clipboard. Paste the content directly instead.")
	}
	if strings.TrimSpace(text) == "" {
		return fail("The clipboard is empty.")
	}

	return Result{
		Response:        "Summarizing clipboard content...",
		ContinueToModel: true,
		Carried:         text,
	}
}
