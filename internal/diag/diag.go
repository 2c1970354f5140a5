// Package diag implements the error formatter (component H): typed
// compile- and runtime-diagnostics with caret-pointed source rendering.
package diag

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/colorstring"
	wordwrap "github.com/mitchellh/go-wordwrap"

	"github.com/tmc/rew/internal/ast"
)

// Kind classifies a diagnostic, matching spec §7's error kinds.
type Kind int

const (
	LexError Kind = iota
	ParseError
	BindError
	ArgumentError
	EvalError
	IoError
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	case BindError:
		return "bind error"
	case ArgumentError:
		return "argument error"
	case EvalError:
		return "eval error"
	case IoError:
		return "I/O error"
	default:
		return "error"
	}
}

// Fatal reports whether errors of this kind abort compilation (exit 2).
// EvalError and IoError are runtime kinds and are never "fatal" in this
// sense even though IoError is always process-fatal; that distinction is
// handled by the caller, not this type.
func (k Kind) Fatal() bool {
	switch k {
	case LexError, ParseError, BindError, ArgumentError:
		return true
	default:
		return false
	}
}

// Error is a single diagnostic. Compile-time kinds (Lex/Parse/Bind/
// Argument) populate Range against the pattern source; EvalError
// populates FilterName and Input instead.
type Error struct {
	Kind    Kind
	Message string
	Range   ast.SourceRange

	// Runtime-only fields, set for EvalError.
	FilterName string
	Input      string
}

func (e *Error) Error() string {
	if e.FilterName != "" {
		return fmt.Sprintf("%s: filter %q: %s", e.Kind, e.FilterName, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Options controls how Render presents a diagnostic.
type Options struct {
	// Color enables ANSI coloring of the caret line and message prefix.
	Color bool
	// Wrap is the terminal width to wrap the message text to; 0 disables
	// wrapping.
	Wrap uint
}

// OptionsForStderr derives presentation options by probing whether fd is a
// terminal, matching the teacher's convention of staying plain when output
// is redirected. Color is also disabled when NO_COLOR is set.
func OptionsForStderr(fd uintptr, width uint) Options {
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return Options{Color: tty && os.Getenv("NO_COLOR") == "", Wrap: width * boolToUint(tty)}
}

func boolToUint(b bool) uint {
	if b {
		return 1
	}
	return 0
}

// Render returns a human diagnostic for err against source: the message,
// then the offending source line and a caret underline at err.Range. An
// EvalError gets the message plus its input and filter name instead of a
// caret; an IoError, or any error rendered with an empty source, gets the
// message line alone.
func Render(source string, err *Error, opts Options) string {
	var b strings.Builder

	prefix := "error"
	if !err.Kind.Fatal() {
		prefix = "warning"
	}
	if opts.Color {
		b.WriteString(colorstring.Color(fmt.Sprintf("[red]%s:[reset] ", prefix)))
	} else {
		b.WriteString(prefix + ": ")
	}

	msg := err.Message
	if opts.Wrap > 0 {
		msg = wordwrap.WrapString(msg, opts.Wrap)
	}
	b.WriteString(msg)
	b.WriteByte('\n')

	if err.Kind == EvalError {
		fmt.Fprintf(&b, "  input: %s\n  filter: %s\n", truncate(err.Input, 80), err.FilterName)
		return b.String()
	}
	if err.Kind == IoError || source == "" {
		return b.String()
	}

	line, lineStart := lineContaining(source, err.Range.Start)
	b.WriteString(line)
	b.WriteByte('\n')

	caretCol := err.Range.Start - lineStart
	caretLen := err.Range.End - err.Range.Start
	if caretLen < 1 {
		caretLen = 1
	}
	if caretCol < 0 {
		caretCol = 0
	}
	caret := strings.Repeat(" ", caretCol) + strings.Repeat("^", caretLen)
	if opts.Color {
		b.WriteString(colorstring.Color(fmt.Sprintf("[red]%s[reset]\n", caret)))
	} else {
		b.WriteString(caret + "\n")
	}

	return b.String()
}

func lineContaining(source string, offset int) (line string, lineStart int) {
	if offset > len(source) {
		offset = len(source)
	}
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := len(source)
	if idx := strings.IndexByte(source[offset:], '\n'); idx >= 0 {
		end = offset + idx
	}
	return source[start:end], start
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
