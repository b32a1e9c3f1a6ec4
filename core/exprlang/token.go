/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors
*/

package exprlang

// TokenType represents the type of a token
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_NUMBER
	TOKEN_STRING
	TOKEN_IDENT
	TOKEN_MINUS
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_COMMA
	TOKEN_DOT
	TOKEN_TRUE  // true
	TOKEN_FALSE // false
	TOKEN_NONE  // none
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}
