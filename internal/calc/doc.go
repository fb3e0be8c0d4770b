// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package calc provides a small arithmetic expression evaluator for the
// /calc command.
//
// The evaluator is a recursive-descent parser over a fixed grammar:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := '-' factor | '(' expr ')' | number
//
// Only the operators + - * /, parentheses, and decimal literals are
// accepted. Input is validated against a character whitelist before parsing;
// the whitelist is a security boundary, not a syntax convenience. The
// package never delegates to a general-purpose code evaluator.
package calc
