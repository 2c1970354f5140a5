// Package rew compiles rew's line/path pattern language and runs the
// compiled pipeline over an input stream. It wires together the pattern
// lexer, parser, filter registry, compiler, evaluator, output framer, and
// error formatter; cmd/rew is a thin CLI shell over this package.
package rew

import (
	"errors"
	"io"
	"strings"

	"github.com/tmc/rew/internal/compile"
	"github.com/tmc/rew/internal/diag"
	"github.com/tmc/rew/internal/eval"
	"github.com/tmc/rew/internal/filter"
	"github.com/tmc/rew/internal/frame"
	"github.com/tmc/rew/internal/lexer"
)

// Options configures compilation.
type Options struct {
	// Escape overrides the '#' escape metacharacter (-e/--escape).
	Escape byte
	// Registry overrides the default filter catalogue; nil uses
	// filter.Default.
	Registry *filter.Registry
}

// Pipeline is a compiled pattern ready to run against an input stream.
type Pipeline struct {
	compiled *compile.Pipeline
}

// Compile parses and binds pattern against the filter registry, returning
// a ready-to-run Pipeline or a fatal *diag.Error (Lex/Parse/Bind/Argument).
func Compile(pattern string, opts Options) (*Pipeline, error) {
	cfg := lexer.DefaultConfig
	if opts.Escape != 0 {
		cfg.Escape = opts.Escape
	}
	reg := opts.Registry
	if reg == nil {
		reg = filter.Default
	}
	p, err := compile.Compile(pattern, cfg, reg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{compiled: p}, nil
}

// ReadMode controls how the input stream is split into values.
type ReadMode int

const (
	// ReadLines splits on Separator (default "\n").
	ReadLines ReadMode = iota
	// ReadRaw treats the entire stream as a single value.
	ReadRaw
)

// RunOptions configures one run of a compiled Pipeline.
type RunOptions struct {
	Read      ReadMode
	Separator string // used when Read == ReadLines; default "\n"

	Mode       frame.Mode
	Terminator frame.Terminator
	NoPrintEnd bool

	// Seed makes the generator PRNG deterministic when non-nil.
	Seed *uint64

	// FailFast escalates the first EvalError to a fatal run error instead
	// of skipping the offending line and continuing (spec §7).
	FailFast bool

	// OnEvalError is called for every skipped (non-fatal) runtime error,
	// letting the caller render and print it; if nil the error is
	// discarded silently.
	OnEvalError func(*diag.Error)
}

// RunResult reports the outcome of a run for exit-code purposes.
type RunResult struct {
	// SawEvalError reports whether at least one line failed at runtime.
	SawEvalError bool
}

// Run reads values from r, evaluates the pipeline against each, and writes
// framed output to w. It returns a non-nil error only for a fatal
// condition: an I/O failure, or (with FailFast) the first EvalError.
func (p *Pipeline) Run(r io.Reader, w io.Writer, opts RunOptions) (RunResult, error) {
	sep := opts.Separator
	if sep == "" {
		sep = "\n"
	}

	ctx := eval.NewContext(opts.Seed)
	framer := frame.New(w, opts.Mode, opts.Terminator, opts.NoPrintEnd)

	var result RunResult

	emitOne := func(line string, last bool) error {
		outputs, err := p.compiled.Emit(ctx, line)
		if err != nil {
			result.SawEvalError = true
			de := asDiagEvalError(line, err)
			if opts.OnEvalError != nil {
				opts.OnEvalError(de)
			}
			if opts.FailFast {
				return de
			}
			return nil
		}
		return framer.EmitLine(line, outputs, last)
	}

	if opts.Read == ReadRaw {
		data, err := io.ReadAll(r)
		if err != nil {
			return result, &diag.Error{Kind: diag.IoError, Message: err.Error()}
		}
		if err := emitOne(string(data), true); err != nil {
			return result, err
		}
		if err := framer.Flush(); err != nil {
			return result, &diag.Error{Kind: diag.IoError, Message: err.Error()}
		}
		return result, nil
	}

	lines, err := splitStream(r, sep)
	if err != nil {
		return result, &diag.Error{Kind: diag.IoError, Message: err.Error()}
	}
	for i, line := range lines {
		if err := emitOne(line, i == len(lines)-1); err != nil {
			return result, err
		}
	}
	if err := framer.Flush(); err != nil {
		if errors.Is(err, io.ErrClosedPipe) {
			return result, nil
		}
		return result, &diag.Error{Kind: diag.IoError, Message: err.Error()}
	}
	return result, nil
}

// splitStream reads all of r and splits it on sep, dropping one trailing
// empty segment caused by a final separator (mirroring the usual
// line-oriented read of a file ending in a newline).
func splitStream(r io.Reader, sep string) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	s := strings.TrimSuffix(string(data), sep)
	return strings.Split(s, sep), nil
}

func asDiagEvalError(input string, err error) *diag.Error {
	var de *diag.Error
	if errors.As(err, &de) {
		return de
	}
	type named interface {
		FilterName() string
		Input() string
	}
	if fe, ok := errAs[named](err); ok {
		return &diag.Error{Kind: diag.EvalError, Message: err.Error(), FilterName: fe.FilterName(), Input: fe.Input()}
	}
	return &diag.Error{Kind: diag.EvalError, Message: err.Error(), Input: input}
}

func errAs[T any](err error) (T, bool) {
	var zero T
	for err != nil {
		if v, ok := err.(T); ok {
			return v, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return zero, false
		}
		err = u.Unwrap()
	}
	return zero, false
}
