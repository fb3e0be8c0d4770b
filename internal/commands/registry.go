// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat client.
package commands

import (
	"sort"

	"github.com/studychain01/clippy-ai/internal/platform"
)

// =============================================================================
// RESULT TYPE
// =============================================================================

// Result describes the outcome of executing one command. It is transient:
// consumed within a single turn, never persisted.
type Result struct {
	// Response is the text to show the user on success.
	Response string

	// Err is a user-visible error description. Exactly one of Response and
	// Err is expected to be set.
	Err string

	// ContinueToModel requests an AI follow-up: the router sends Carried to
	// the model as a one-shot prompt and appends the summary to Response.
	ContinueToModel bool

	// Carried is the content to forward to the model when ContinueToModel
	// is set.
	Carried string
}

// ok builds a success result.
func ok(response string) Result {
	return Result{Response: response}
}

// fail builds an error result.
func fail(err string) Result {
	return Result{Err: err}
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/calculate")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/open <url>")
	Usage string

	// Handler executes the command with its arguments
	Handler func(ctx *Context, args []string) Result
}

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context provides command handlers access to the external capabilities they
// may invoke. Each capability is invoked at most once per execution.
type Context struct {
	// Opener opens URLs in the default browser
	Opener platform.Opener

	// Clipboard reads the system clipboard
	Clipboard platform.Clipboard
}

// NewContext creates a command context with the given capabilities.
func NewContext(opener platform.Opener, clip platform.Clipboard) *Context {
	return &Context{Opener: opener, Clipboard: clip}
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands. The command set is fixed: there is
// no plugin mechanism.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name, so that help output is
// deterministic.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Description: "Show available commands",
		Usage:       "/help",
		Handler:     handleHelp(r),
	})

	r.Register(&Command{
		Name:        "/open",
		Description: "Open a URL in your default browser",
		Usage:       "/open <url>",
		Handler:     handleOpen,
	})

	r.Register(&Command{
		Name:        "/calc",
		Aliases:     []string{"/calculate"},
		Description: "Evaluate an arithmetic expression",
		Usage:       "/calc <expression>",
		Handler:     handleCalc,
	})

	r.Register(&Command{
		Name:        "/clipboard",
		Description: "Summarize the current clipboard content",
		Usage:       "/clipboard",
		Handler:     handleClipboard,
	})
}
