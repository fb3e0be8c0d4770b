// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studychain01/clippy-ai/internal/model"
	"github.com/studychain01/clippy-ai/internal/orchestrator"
)

// ===== MESSAGES =====

// turnDoneMsg carries the assistant reply for a completed turn.
type turnDoneMsg struct {
	reply model.Message
}

// turnErrMsg carries a failed turn's error.
type turnErrMsg struct {
	err error
}

// ===== UPDATE =====

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case turnDoneMsg:
		m.thinking = false
		m.pending = ""
		m.cancelMgr.cancel()
		m.refreshViewport()
		return m, nil

	case turnErrMsg:
		m.thinking = false
		m.pending = ""
		m.cancelMgr.cancel()
		switch {
		case errors.Is(msg.err, context.Canceled):
			m.errText = "Response cancelled."
		case errors.Is(msg.err, orchestrator.ErrBusy):
			m.errText = "Please wait for the current response to finish."
		default:
			m.errText = msg.err.Error()
		}
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancelMgr.cancel()
		return m, tea.Quit

	case "esc":
		if m.thinking {
			m.cancelMgr.cancel()
		}
		return m, nil

	case "ctrl+s":
		m.orch.CycleStyle()
		return m, nil

	case "ctrl+l":
		if !m.thinking {
			m.orch.Clear()
			m.errText = ""
			m.refreshViewport()
		}
		return m, nil

	case "enter":
		return m.submitInput()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	if m.thinking {
		return m, nil
	}
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		// Nothing to send. Keep the prompt as is.
		return m, nil
	}

	m.input.Reset()
	m.errText = ""
	m.thinking = true
	m.pending = input

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)

	submit := func() tea.Msg {
		reply, err := m.orch.Submit(ctx, input)
		if err != nil {
			return turnErrMsg{err: err}
		}
		return turnDoneMsg{reply: reply}
	}

	// History does not hold the new message yet; the transcript picks
	// it up from m.pending until the turn resolves.
	m.refreshViewport()
	return m, tea.Batch(submit, m.spinner.Tick, textinput.Blink)
}
