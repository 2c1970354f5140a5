// Package compile implements the compiler (component E): it walks a
// parsed ast.Pattern, resolves filter names against the registry,
// type-checks and parses arguments, compiles nested sub-patterns and
// regexes, and assigns each expression a stable ID.
package compile

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/tmc/rew/internal/ast"
	"github.com/tmc/rew/internal/diag"
	"github.com/tmc/rew/internal/filter"
	"github.com/tmc/rew/internal/lexer"
	"github.com/tmc/rew/internal/parser"
)

// Pipeline is a compiled pattern. It implements filter.SubPipeline so a
// compiled pattern can itself serve as a nested sub-pattern argument to
// another filter.
type Pipeline struct {
	segments []segment
}

type segment struct {
	literal   string
	isLiteral bool
	expr      *expression
}

// expression is one compiled `{...}` group.
type expression struct {
	id        int
	generator bool // chain[0]'s spec is a generator (spec §4.6)
	chain     []filter.Filter
}

// Compile parses src with cfg's metacharacters and binds it against reg.
func Compile(src string, cfg lexer.Config, reg *filter.Registry) (*Pipeline, error) {
	pat, err := parser.Parse(src, cfg)
	if err != nil {
		return nil, err
	}
	c := &compiler{reg: reg}
	segs, err := c.compilePattern(pat)
	if err != nil {
		return nil, err
	}
	return &Pipeline{segments: segs}, nil
}

type compiler struct {
	reg    *filter.Registry
	nextID int
}

func (c *compiler) compilePattern(pat *ast.Pattern) ([]segment, error) {
	var out []segment
	for _, seg := range pat.Segments {
		if seg.Literal != nil {
			out = append(out, segment{literal: *seg.Literal, isLiteral: true})
			continue
		}
		expr, err := c.compileExpression(seg.Expression)
		if err != nil {
			return nil, err
		}
		out = append(out, segment{expr: expr})
	}
	return out, nil
}

func (c *compiler) compileExpression(e *ast.Expression) (*expression, error) {
	id := c.nextID
	c.nextID++
	e.ID = id

	// Bare `{}` is the identity/input-substitution shorthand: a chain of
	// one unnamed filter invocation.
	if len(e.Chain) == 1 && e.Chain[0].Name == "" {
		return &expression{id: id, chain: []filter.Filter{identityFilter{}}}, nil
	}

	chain := make([]filter.Filter, 0, len(e.Chain))
	var generator bool
	for i, inv := range e.Chain {
		spec, ok := c.reg.Get(inv.Name)
		if !ok {
			return nil, bindErrf(inv.Range, "unknown filter %q", inv.Name)
		}
		if len(inv.Args) < spec.MinArgs || (spec.MaxArgs >= 0 && len(inv.Args) > spec.MaxArgs) {
			return nil, bindErrf(inv.Range, "filter %q takes %s, got %d", inv.Name, arityDesc(*spec), len(inv.Args))
		}
		args, err := c.compileArgs(*spec, inv.Args)
		if err != nil {
			return nil, err
		}
		f, err := spec.Build(args)
		if err != nil {
			return nil, argErrf(inv.Range, "filter %q: %v", inv.Name, err)
		}
		chain = append(chain, f)
		if i == 0 && spec.Generator {
			generator = true
		}
	}
	return &expression{id: id, generator: generator, chain: chain}, nil
}

func (c *compiler) compileArgs(spec filter.Spec, args []ast.Arg) ([]filter.RawArg, error) {
	out := make([]filter.RawArg, len(args))
	for i, a := range args {
		kind := spec.ArgKindAt(i)
		if a.IsPattern() {
			if kind != filter.PatternArg {
				return nil, bindErrf(a.Range, "argument %d of filter %q does not accept a nested pattern", i+1, spec.Name)
			}
			sub, err := c.compileSubPattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			out[i] = filter.RawArg{Sub: sub}
			continue
		}
		if kind == filter.PatternArg {
			return nil, bindErrf(a.Range, "argument %d of filter %q requires a nested pattern", i+1, spec.Name)
		}
		if err := validateStaticArg(kind, a.Text, a.Range); err != nil {
			return nil, err
		}
		out[i] = filter.RawArg{Text: a.Text}
	}
	return out, nil
}

func (c *compiler) compileSubPattern(pat *ast.Pattern) (filter.SubPipeline, error) {
	segs, err := c.compilePattern(pat)
	if err != nil {
		return nil, err
	}
	return &Pipeline{segments: segs}, nil
}

// validateStaticArg surfaces un-parseable compile-time literal arguments
// as ArgumentError immediately, rather than waiting for the filter's
// runtime closure to reject them on the first input line (spec §7: "ArgumentError
// — un-parseable integer/range/regex at compile time"). Regex arguments
// are validated by the filter's own Build function, which compiles them
// eagerly rather than lazily inside the returned Filter.
func validateStaticArg(kind filter.ArgKind, text string, r ast.SourceRange) error {
	switch kind {
	case filter.Integer:
		if _, err := cast.ToIntE(text); err != nil {
			return argErrf(r, "invalid integer %q", text)
		}
	case filter.RangeArg:
		if _, err := filter.ParseRange(text); err != nil {
			return argErrf(r, "invalid range %q: %v", text, err)
		}
	}
	return nil
}

func arityDesc(spec filter.Spec) string {
	if spec.MaxArgs < 0 {
		return fmt.Sprintf("at least %d argument(s)", spec.MinArgs)
	}
	if spec.MinArgs == spec.MaxArgs {
		return fmt.Sprintf("exactly %d argument(s)", spec.MinArgs)
	}
	return fmt.Sprintf("%d to %d argument(s)", spec.MinArgs, spec.MaxArgs)
}

func bindErrf(r ast.SourceRange, format string, args ...any) error {
	return &diag.Error{Kind: diag.BindError, Message: fmt.Sprintf(format, args...), Range: r}
}

func argErrf(r ast.SourceRange, format string, args ...any) error {
	return &diag.Error{Kind: diag.ArgumentError, Message: fmt.Sprintf(format, args...), Range: r}
}

// identityFilter implements the bare `{}` shorthand: the current value,
// unchanged.
type identityFilter struct{}

func (identityFilter) Eval(_ filter.Runtime, in string) (string, error) { return in, nil }
