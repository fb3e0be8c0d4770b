// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and prompt styles.
package model

import "strings"

// =============================================================================
// PROMPT STYLE TYPE
// =============================================================================

// PromptStyle selects the system-prompt template used for model requests.
// There is a single process-wide current value, persisted across runs and
// mutated only by explicit user selection.
type PromptStyle string

const (
	StyleBalanced     PromptStyle = "balanced"
	StyleBrief        PromptStyle = "brief"
	StyleCreative     PromptStyle = "creative"
	StyleProfessional PromptStyle = "professional"
)

// AllStyles lists the selectable styles in display order.
var AllStyles = []PromptStyle{
	StyleBalanced,
	StyleBrief,
	StyleCreative,
	StyleProfessional,
}

// systemPrompts maps each style to its system-prompt template.
var systemPrompts = map[PromptStyle]string{
	StyleBalanced: "You are a helpful desktop assistant. Give clear, " +
		"accurate answers. Use markdown formatting when it improves readability.",
	StyleBrief: "You are a helpful desktop assistant. Keep answers short and " +
		"to the point. Prefer a sentence over a paragraph and a paragraph over a page.",
	StyleCreative: "You are an imaginative desktop assistant. Favor vivid, " +
		"original phrasing and offer unexpected angles while staying accurate.",
	StyleProfessional: "You are a professional desktop assistant. Use formal, " +
		"precise language suitable for business communication.",
}

// String returns the string representation of the style.
func (s PromptStyle) String() string {
	return string(s)
}

// DisplayName returns a capitalized name for display.
func (s PromptStyle) DisplayName() string {
	switch s {
	case StyleBalanced:
		return "Balanced"
	case StyleBrief:
		return "Brief"
	case StyleCreative:
		return "Creative"
	case StyleProfessional:
		return "Professional"
	default:
		return string(s)
	}
}

// Valid reports whether the style is one of the known styles.
func (s PromptStyle) Valid() bool {
	_, ok := systemPrompts[s]
	return ok
}

// SystemPrompt returns the system-prompt template for the style. Unknown
// styles fall back to the balanced template.
func (s PromptStyle) SystemPrompt() string {
	if prompt, ok := systemPrompts[s]; ok {
		return prompt
	}
	return systemPrompts[StyleBalanced]
}

// Next returns the next style in display order, wrapping around. Used by the
// UI to cycle through styles.
func (s PromptStyle) Next() PromptStyle {
	for i, style := range AllStyles {
		if style == s {
			return AllStyles[(i+1)%len(AllStyles)]
		}
	}
	return StyleBalanced
}

// ParseStyle parses a style name case-insensitively. Unknown names fall back
// to StyleBalanced.
func ParseStyle(name string) PromptStyle {
	s := PromptStyle(strings.ToLower(strings.TrimSpace(name)))
	if s.Valid() {
		return s
	}
	return StyleBalanced
}
