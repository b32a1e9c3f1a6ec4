/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors
*/

package exprlang

import (
	"fmt"
	"strconv"
	"strings"
)

// astNode is the interface for all parsed nodes.
type astNode interface {
	ast()
}

// intLit represents an integer literal
type intLit struct {
	Value int64
}

func (n *intLit) ast() {}

// floatLit represents a floating-point literal
type floatLit struct {
	Value float64
}

func (n *floatLit) ast() {}

// stringLit represents a string literal
type stringLit struct {
	Value string
}

func (n *stringLit) ast() {}

// boolLit represents a boolean literal
type boolLit struct {
	Value bool
}

func (n *boolLit) ast() {}

// noneLit represents the absence literal
type noneLit struct{}

func (n *noneLit) ast() {}

// ident represents an identifier (column name)
type ident struct {
	Name string
}

func (n *ident) ast() {}

// call represents a function-style call, e.g. lower(name)
type call struct {
	Func string
	Args []astNode
}

func (n *call) ast() {}

// methodCall represents a method-style call, e.g. name.lower()
type methodCall struct {
	Recv astNode
	Name string
	Args []astNode
}

func (n *methodCall) ast() {}

// Parser parses tokens into an AST
type Parser struct {
	lexer *Lexer
	cur   Token
}

// NewParser creates a new parser
func NewParser(input string) *Parser {
	return &Parser{lexer: NewLexer(input)}
}

func (p *Parser) advance() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// Parse parses the input and returns the AST
func (p *Parser) Parse() (astNode, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TOKEN_EOF {
		return nil, fmt.Errorf("unexpected token %q after expression", p.cur.Value)
	}
	return node, nil
}

func (p *Parser) parseExpr() (astNode, error) {
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (astNode, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.cur.Type == TOKEN_DOT {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != TOKEN_IDENT {
			return nil, fmt.Errorf("expected identifier after '.', got %q", p.cur.Value)
		}
		name := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != TOKEN_LPAREN {
			return nil, fmt.Errorf("expected '(' after method name %q", name)
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		node = &methodCall{Recv: node, Name: name, Args: args}
	}
	return node, nil
}

func (p *Parser) parseArgs() ([]astNode, error) {
	// Skip '('
	if err := p.advance(); err != nil {
		return nil, err
	}

	var args []astNode
	if p.cur.Type != TOKEN_RPAREN {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		for p.cur.Type == TOKEN_COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}

	if p.cur.Type != TOKEN_RPAREN {
		return nil, fmt.Errorf("expected ')' after arguments")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) parsePrimary() (astNode, error) {
	switch p.cur.Type {
	case TOKEN_MINUS:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != TOKEN_NUMBER {
			return nil, fmt.Errorf("expected number after '-'")
		}
		node, err := p.parseNumber(p.cur.Value)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch n := node.(type) {
		case *intLit:
			n.Value = -n.Value
		case *floatLit:
			n.Value = -n.Value
		}
		return node, nil

	case TOKEN_NUMBER:
		node, err := p.parseNumber(p.cur.Value)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil

	case TOKEN_STRING:
		val := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &stringLit{Value: val}, nil

	case TOKEN_TRUE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &boolLit{Value: true}, nil

	case TOKEN_FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &boolLit{Value: false}, nil

	case TOKEN_NONE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &noneLit{}, nil

	case TOKEN_IDENT:
		name := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type == TOKEN_LPAREN {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &call{Func: name, Args: args}, nil
		}
		return &ident{Name: name}, nil

	case TOKEN_LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TOKEN_RPAREN {
			return nil, fmt.Errorf("expected ')' after expression")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr, nil

	case TOKEN_EOF:
		return nil, fmt.Errorf("unexpected end of expression")

	default:
		return nil, fmt.Errorf("unexpected token: %v", p.cur.Value)
	}
}

func (p *Parser) parseNumber(text string) (astNode, error) {
	if strings.Contains(text, ".") {
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", text)
		}
		return &floatLit{Value: val}, nil
	}
	val, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number: %s", text)
	}
	return &intLit{Value: val}, nil
}
