// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/studychain01/clippy-ai/internal/orchestrator"
	"github.com/studychain01/clippy-ai/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// Rows reserved for header, input area, and status bar.
	reservedRows = 5
)

// Model is the Bubble Tea model for the chat view.
type Model struct {
	orch  *orchestrator.Orchestrator
	theme *styles.Theme

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width    int
	height   int
	thinking bool
	errText  string

	// pending is the submitted input for the in-flight turn. The
	// orchestrator appends it to history asynchronously, so the view
	// renders it from here until the turn resolves.
	pending string

	cancelMgr *cancelManager
}

// New creates the chat view bound to an orchestrator.
func New(orch *orchestrator.Orchestrator) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message or /help for commands"
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Focus()

	vp := viewport.New(defaultWidth, defaultHeight-reservedRows)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := styles.NewTheme()
	sp.Style = theme.Spinner

	// Markdown rendering for assistant replies. A nil renderer falls
	// back to plain text.
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(defaultWidth-4),
	)

	m := Model{
		orch:      orch,
		theme:     theme,
		viewport:  vp,
		input:     ti,
		spinner:   sp,
		renderer:  renderer,
		width:     defaultWidth,
		height:    defaultHeight,
		cancelMgr: newCancelManager(),
	}
	m.refreshViewport()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	vpHeight := m.height - reservedRows
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width
	if vpWidth < 1 {
		vpWidth = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
	m.input.Width = m.width - lipgloss.Width(m.input.Prompt) - 2

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(vpWidth-4),
	)
	if err == nil {
		m.renderer = renderer
	}
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
