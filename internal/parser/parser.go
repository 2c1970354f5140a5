// Package parser turns a lexer.Token stream into an internal/ast.Pattern.
package parser

import (
	"fmt"

	"github.com/tmc/rew/internal/ast"
	"github.com/tmc/rew/internal/diag"
	"github.com/tmc/rew/internal/lexer"
)

// Parse lexes and parses src in one step, using cfg's metacharacters.
func Parse(src string, cfg lexer.Config) (*ast.Pattern, error) {
	tokens, err := lexer.Lex(src, cfg)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	pat, err := p.parsePatternUntil(lexer.EOF)
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != lexer.EOF {
		return nil, p.errorf(diag.ParseError, "unexpected trailing input")
	}
	return pat, nil
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) peek() lexer.Token { return p.tokens[p.pos] }

func (p *parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(kind diag.Kind, format string, args ...any) error {
	t := p.peek()
	return &diag.Error{Kind: kind, Message: fmt.Sprintf(format, args...), Range: ast.SourceRange{Start: t.Start, End: t.End}}
}

// parsePatternUntil reads segments (literal text and expressions) until it
// sees a token of kind stop (not consumed) or EOF.
func (p *parser) parsePatternUntil(stop lexer.Kind) (*ast.Pattern, error) {
	start := p.peek().Start
	var segs []ast.Segment
	for {
		tok := p.peek()
		if tok.Kind == stop || tok.Kind == lexer.EOF {
			break
		}
		switch tok.Kind {
		case lexer.LiteralChunk, lexer.ArgChunk:
			p.advance()
			text := tok.Text
			segs = append(segs, ast.Segment{Literal: &text})
		case lexer.ExprOpen:
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			segs = append(segs, ast.Segment{Expression: expr})
		default:
			return nil, p.errorf(diag.ParseError, "unexpected %s", tok.Kind)
		}
	}
	end := p.peek().Start
	return &ast.Pattern{Segments: segs, Range: ast.SourceRange{Start: start, End: end}}, nil
}

// parseExpression parses a `{...}` expression; the caller must have left
// the current token positioned at ExprOpen.
func (p *parser) parseExpression() (*ast.Expression, error) {
	open := p.advance() // ExprOpen

	if p.peek().Kind == lexer.ExprClose {
		close := p.advance()
		return &ast.Expression{
			Chain: []ast.FilterInvocation{{Name: "", Range: ast.SourceRange{Start: open.End, End: close.Start}}},
			Range: ast.SourceRange{Start: open.Start, End: close.End},
		}, nil
	}

	chain, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	closeStart := p.tokens[p.pos-1].End
	return &ast.Expression{Chain: chain, Range: ast.SourceRange{Start: open.Start, End: closeStart}}, nil
}

func (p *parser) parseChain() ([]ast.FilterInvocation, error) {
	var chain []ast.FilterInvocation
	for {
		filter, err := p.parseFilter()
		if err != nil {
			return nil, err
		}
		chain = append(chain, filter)

		switch p.peek().Kind {
		case lexer.Pipe:
			p.advance()
			if p.peek().Kind == lexer.ExprClose {
				return nil, p.errorf(diag.ParseError, "trailing '|' with no filter after it")
			}
			continue
		case lexer.ExprClose:
			p.advance()
			return chain, nil
		default:
			return nil, p.errorf(diag.ParseError, "unexpected %s in filter chain", p.peek().Kind)
		}
	}
}

func (p *parser) parseFilter() (ast.FilterInvocation, error) {
	start := p.peek().Start

	name, err := p.parseFilterName()
	if err != nil {
		return ast.FilterInvocation{}, err
	}

	var args []ast.Arg
	for p.peek().Kind == lexer.Colon {
		p.advance()
		arg, err := p.parseArg()
		if err != nil {
			return ast.FilterInvocation{}, err
		}
		args = append(args, arg)
	}

	end := p.tokens[p.pos-1].End
	if p.pos == 0 || end < start {
		end = start
	}
	return ast.FilterInvocation{Name: name, Args: args, Range: ast.SourceRange{Start: start, End: end}}, nil
}

func (p *parser) parseFilterName() (string, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.ArgChunk:
		p.advance()
		return tok.Text, nil
	case lexer.Colon:
		return "", p.errorf(diag.ParseError, "stray ':' with no filter name before it")
	case lexer.Pipe, lexer.ExprClose:
		return "", p.errorf(diag.ParseError, "empty filter chain element")
	default:
		return "", p.errorf(diag.ParseError, "expected a filter name, got %s", tok.Kind)
	}
}

// parseArg reads one argument: a run of text and/or nested expressions up
// to (not including) the next Colon, Pipe, or ExprClose.
func (p *parser) parseArg() (ast.Arg, error) {
	start := p.peek().Start
	pat, err := p.parsePatternUntilAny(lexer.Colon, lexer.Pipe, lexer.ExprClose)
	if err != nil {
		return ast.Arg{}, err
	}
	end := p.peek().Start

	switch len(pat.Segments) {
	case 0:
		return ast.Arg{Text: "", Range: ast.SourceRange{Start: start, End: end}}, nil
	case 1:
		if seg := pat.Segments[0]; seg.Literal != nil {
			return ast.Arg{Text: *seg.Literal, Range: ast.SourceRange{Start: start, End: end}}, nil
		}
	}
	return ast.Arg{Pattern: pat, Range: ast.SourceRange{Start: start, End: end}}, nil
}

func (p *parser) parsePatternUntilAny(stops ...lexer.Kind) (*ast.Pattern, error) {
	start := p.peek().Start
	var segs []ast.Segment
	for {
		tok := p.peek()
		if tok.Kind == lexer.EOF {
			break
		}
		stopHere := false
		for _, s := range stops {
			if tok.Kind == s {
				stopHere = true
				break
			}
		}
		if stopHere {
			break
		}
		switch tok.Kind {
		case lexer.LiteralChunk, lexer.ArgChunk:
			p.advance()
			text := tok.Text
			segs = append(segs, ast.Segment{Literal: &text})
		case lexer.ExprOpen:
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			segs = append(segs, ast.Segment{Expression: expr})
		default:
			return nil, p.errorf(diag.ParseError, "unexpected %s", tok.Kind)
		}
	}
	end := p.peek().Start
	return &ast.Pattern{Segments: segs, Range: ast.SourceRange{Start: start, End: end}}, nil
}
