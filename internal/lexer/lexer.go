package lexer

import (
	"fmt"

	"github.com/tmc/rew/internal/ast"
	"github.com/tmc/rew/internal/diag"
)

// Lex scans src into a token stream using cfg's metacharacters. It returns
// the first lexical error encountered (unterminated expression, invalid
// escape, or an unexpected close brace), wrapped as a *diag.Error.
func Lex(src string, cfg Config) ([]Token, error) {
	l := &lexerState{src: src, cfg: cfg}
	return l.run()
}

type lexerState struct {
	src    string
	cfg    Config
	pos    int
	depth  int
	tokens []Token
}

func (l *lexerState) run() ([]Token, error) {
	for {
		if l.depth == 0 {
			if err := l.scanLiteral(); err != nil {
				return nil, err
			}
		} else {
			if err := l.scanInExpr(); err != nil {
				return nil, err
			}
		}
		if l.pos >= len(l.src) {
			break
		}
	}
	if l.depth > 0 {
		return nil, &diag.Error{
			Kind:    diag.LexError,
			Message: "unterminated expression: missing '" + string(l.cfg.ExprClose) + "'",
			Range:   ast.SourceRange{Start: l.pos, End: l.pos},
		}
	}
	l.tokens = append(l.tokens, Token{Kind: EOF, Start: l.pos, End: l.pos})
	return l.tokens, nil
}

// scanLiteral consumes depth-0 text up to (not including) the next
// unescaped ExprOpen, or EOF.
func (l *lexerState) scanLiteral() error {
	start := l.pos
	var buf []byte
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == l.cfg.Escape:
			resolved, n, err := l.resolveEscape(l.pos)
			if err != nil {
				return err
			}
			buf = append(buf, resolved)
			l.pos += n
		case c == l.cfg.ExprOpen:
			l.flushLiteral(buf, start)
			l.tokens = append(l.tokens, Token{Kind: ExprOpen, Start: l.pos, End: l.pos + 1})
			l.pos++
			l.depth++
			return nil
		case c == l.cfg.ExprClose:
			return &diag.Error{
				Kind:    diag.LexError,
				Message: "unexpected '" + string(l.cfg.ExprClose) + "' outside of an expression",
				Range:   ast.SourceRange{Start: l.pos, End: l.pos + 1},
			}
		default:
			buf = append(buf, c)
			l.pos++
		}
	}
	l.flushLiteral(buf, start)
	return nil
}

func (l *lexerState) flushLiteral(buf []byte, start int) {
	if len(buf) == 0 {
		return
	}
	l.tokens = append(l.tokens, Token{Kind: LiteralChunk, Text: string(buf), Start: start, End: l.pos})
}

// scanInExpr consumes depth>0 text: filter-name/argument runs separated by
// Pipe and Colon, with nested expressions opening sub-patterns.
func (l *lexerState) scanInExpr() error {
	start := l.pos
	var buf []byte
	flush := func() {
		if len(buf) > 0 {
			l.tokens = append(l.tokens, Token{Kind: ArgChunk, Text: string(buf), Start: start, End: l.pos})
			buf = nil
		}
	}
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == l.cfg.Escape:
			resolved, n, err := l.resolveEscape(l.pos)
			if err != nil {
				return err
			}
			if len(buf) == 0 {
				start = l.pos
			}
			buf = append(buf, resolved)
			l.pos += n
		case c == l.cfg.Pipe:
			flush()
			l.tokens = append(l.tokens, Token{Kind: Pipe, Start: l.pos, End: l.pos + 1})
			l.pos++
			start = l.pos
		case c == l.cfg.Colon:
			flush()
			l.tokens = append(l.tokens, Token{Kind: Colon, Start: l.pos, End: l.pos + 1})
			l.pos++
			start = l.pos
		case c == l.cfg.ExprOpen:
			flush()
			l.tokens = append(l.tokens, Token{Kind: ExprOpen, Start: l.pos, End: l.pos + 1})
			l.pos++
			l.depth++
			return nil
		case c == l.cfg.ExprClose:
			flush()
			l.tokens = append(l.tokens, Token{Kind: ExprClose, Start: l.pos, End: l.pos + 1})
			l.pos++
			l.depth--
			return nil
		default:
			if len(buf) == 0 {
				start = l.pos
			}
			buf = append(buf, c)
			l.pos++
		}
	}
	flush()
	return nil
}

// resolveEscape interprets the escape sequence starting at pos (which must
// be l.cfg.Escape), returning the literal byte it produces and the number
// of source bytes consumed.
func (l *lexerState) resolveEscape(pos int) (byte, int, error) {
	if pos+1 >= len(l.src) {
		return 0, 0, &diag.Error{
			Kind:    diag.LexError,
			Message: "dangling escape at end of pattern",
			Range:   ast.SourceRange{Start: pos, End: pos + 1},
		}
	}
	next := l.src[pos+1]
	switch next {
	case l.cfg.ExprOpen, l.cfg.ExprClose, l.cfg.Pipe, l.cfg.Colon, l.cfg.Escape:
		return next, 2, nil
	default:
		return 0, 0, &diag.Error{
			Kind:    diag.LexError,
			Message: fmt.Sprintf("invalid escape '%s%c'", string(l.cfg.Escape), next),
			Range:   ast.SourceRange{Start: pos, End: pos + 2},
		}
	}
}
