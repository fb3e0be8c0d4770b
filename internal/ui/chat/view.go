// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studychain01/clippy-ai/internal/model"
	"github.com/studychain01/clippy-ai/internal/router"
	"github.com/studychain01/clippy-ai/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.thinking {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.ThinkingText.Render(" Thinking... (Esc to cancel)"))
	} else if m.errText != "" {
		// One-line banner; long provider messages get cut, not wrapped.
		b.WriteString(m.theme.ErrorBanner.Render(util.TruncateRunes(m.errText, 200)))
	}
	b.WriteString("\n")

	b.WriteString(m.theme.InputContainer.Width(m.width).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.theme.App.Render(b.String())
}

func (m Model) renderHeader() string {
	title := util.TruncateWidth(m.orch.Title(), m.width-12)
	return m.theme.Header.Width(m.width).Render("clippy  " + title)
}

func (m Model) renderStatusBar() string {
	style := m.theme.StatusStyle.Render(m.orch.Style().DisplayName())
	shortcuts := strings.Join([]string{
		m.theme.ShortcutKey.Render("^S") + m.theme.ShortcutDesc.Render(" style"),
		m.theme.ShortcutKey.Render("^L") + m.theme.ShortcutDesc.Render(" clear"),
		m.theme.ShortcutKey.Render("^C") + m.theme.ShortcutDesc.Render(" quit"),
	}, "  ")
	left := fmt.Sprintf("Style: %s", style)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(shortcuts) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + shortcuts)
}

// renderTranscript renders the full conversation for the viewport.
func (m Model) renderTranscript() string {
	history := m.orch.History()
	parts := make([]string, 0, len(history)+1)
	for _, msg := range history {
		parts = append(parts, m.renderMessage(msg))
	}
	if p := m.pendingMessage(history); p != "" {
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return m.theme.InputPlaceholder.Render("No messages yet. Say hello, or try /help.")
	}
	return strings.Join(parts, "\n\n")
}

// pendingMessage renders the in-flight user message, unless the
// orchestrator has already appended it to history.
func (m Model) pendingMessage(history []model.Message) string {
	if !m.thinking || m.pending == "" {
		return ""
	}
	if n := len(history); n > 0 && history[n-1].Role == model.RoleUser && history[n-1].Content == m.pending {
		return ""
	}
	return m.renderMessage(model.NewUserMessage(m.pending))
}

func (m Model) renderMessage(msg model.Message) string {
	ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	switch msg.Role {
	case model.RoleUser:
		label := m.theme.UserLabel.Render(msg.Role.DisplayName()) + " " + ts
		return label + "\n" + m.theme.UserText.Render(msg.Content)

	case model.RoleAssistant:
		label := m.theme.AssistantLabel.Render(msg.Role.DisplayName()) + " " + ts
		// Command failures carry a warning prefix and are styled as
		// notices rather than chat prose.
		if strings.HasPrefix(msg.Content, router.ErrorPrefix) {
			return label + "\n" + m.theme.CommandNotice.Render(msg.Content)
		}
		return label + "\n" + m.theme.AssistantText.Render(m.renderMarkdown(msg.Content))

	default:
		return ts + " " + m.theme.CommandNotice.Render(msg.Content)
	}
}

// renderMarkdown renders assistant content through glamour, falling
// back to the raw text when rendering is unavailable.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
