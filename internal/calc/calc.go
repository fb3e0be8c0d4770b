// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package calc provides a small arithmetic expression evaluator for the
// /calc command.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyExpression is returned for empty or whitespace-only input.
	ErrEmptyExpression = errors.New("empty expression")

	// ErrDisallowedChar is returned when the input contains a character
	// outside the [0-9+-*/(). ] whitelist.
	ErrDisallowedChar = errors.New("expression contains disallowed characters")

	// ErrNotFinite is returned when evaluation produces NaN or infinity
	// (division by zero, overflow).
	ErrNotFinite = errors.New("result is not a finite number")
)

// SyntaxError describes a parse failure at a specific position.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Message)
}

// =============================================================================
// PUBLIC API
// =============================================================================

// Eval validates and evaluates an arithmetic expression.
//
// The character whitelist is checked before any parsing happens so that
// rejected input is never interpreted, even partially.
func Eval(expr string) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, ErrEmptyExpression
	}

	if err := Validate(expr); err != nil {
		return 0, err
	}

	p := &parser{input: expr}
	result, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, &SyntaxError{Pos: p.pos, Message: fmt.Sprintf("unexpected %q", p.input[p.pos])}
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, ErrNotFinite
	}
	return result, nil
}

// Validate checks the expression against the character whitelist without
// evaluating it.
func Validate(expr string) error {
	for _, r := range expr {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '*' || r == '/':
		case r == '(' || r == ')' || r == '.' || r == ' ':
		default:
			return fmt.Errorf("%w: %q", ErrDisallowedChar, r)
		}
	}
	return nil
}

// FormatResult formats an evaluation result for display, trimming trailing
// zeros so that 8.0 renders as "8" and 2.50 as "2.5".
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// =============================================================================
// PARSER
// =============================================================================

// parser is a recursive-descent parser over the whitelisted input.
type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

// peek returns the next non-space byte without consuming it, or 0 at end.
func (p *parser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// parseExpr handles + and - with left associativity.
func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

// parseTerm handles * and / with left associativity.
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}

	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			// Division by zero falls out of Eval as ErrNotFinite.
			left /= right
		default:
			return left, nil
		}
	}
}

// parseFactor handles unary minus, parentheses, and numbers.
func (p *parser) parseFactor() (float64, error) {
	switch p.peek() {
	case 0:
		return 0, &SyntaxError{Pos: p.pos, Message: "unexpected end of expression"}
	case '-':
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, &SyntaxError{Pos: p.pos, Message: "missing closing parenthesis"}
		}
		p.pos++
		return v, nil
	default:
		return p.parseNumber()
	}
}

// parseNumber consumes a decimal literal.
func (p *parser) parseNumber() (float64, error) {
	p.skipSpaces()
	start := p.pos

	sawDigit := false
	sawDot := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			sawDigit = true
			p.pos++
			continue
		}
		if c == '.' {
			if sawDot {
				return 0, &SyntaxError{Pos: p.pos, Message: "multiple decimal points"}
			}
			sawDot = true
			p.pos++
			continue
		}
		break
	}

	if !sawDigit {
		if p.pos < len(p.input) {
			return 0, &SyntaxError{Pos: start, Message: fmt.Sprintf("unexpected %q", p.input[start])}
		}
		return 0, &SyntaxError{Pos: start, Message: "expected a number"}
	}

	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, &SyntaxError{Pos: start, Message: "invalid number"}
	}
	return v, nil
}
