// Package frame implements the output framer (component G): the three
// emission modes (standard, diff, pretty) and the terminator policy that
// governs the standard mode.
package frame

import (
	"bufio"
	"fmt"
	"io"

	"github.com/samber/lo"
)

// Mode selects the framing.
type Mode int

const (
	Standard Mode = iota
	Diff
	Pretty
)

// Terminator is appended after each emitted value in Standard and Diff
// mode; Pretty mode always uses a bare LF regardless of this setting.
type Terminator struct {
	// Value is the literal bytes to append, e.g. "\n" or "\x00".
	Value string
	// Raw suppresses any terminator at all (-R/--print-raw).
	Raw bool
}

var (
	LF  = Terminator{Value: "\n"}
	NUL = Terminator{Value: "\x00"}
	Raw = Terminator{Raw: true}
)

func Custom(s string) Terminator { return Terminator{Value: s} }

func (t Terminator) bytes() string { return lo.Ternary(t.Raw, "", t.Value) }

// Framer writes emitted values to an underlying writer according to Mode,
// Term, and NoPrintEnd.
type Framer struct {
	w          *bufio.Writer
	mode       Mode
	term       Terminator
	noPrintEnd bool
}

// New builds a Framer. noPrintEnd only affects Standard mode (spec §4.7).
func New(w io.Writer, mode Mode, term Terminator, noPrintEnd bool) *Framer {
	return &Framer{w: bufio.NewWriter(w), mode: mode, term: term, noPrintEnd: noPrintEnd}
}

// EmitLine writes every output value produced for one input line. last
// reports whether this is the final input line of the run, used to apply
// --no-print-end in Standard mode.
func (f *Framer) EmitLine(input string, outputs []string, last bool) error {
	switch f.mode {
	case Diff:
		return f.emitDiff(input, outputs)
	case Pretty:
		return f.emitPretty(input, outputs)
	default:
		return f.emitStandard(outputs, last)
	}
}

func (f *Framer) emitStandard(outputs []string, last bool) error {
	for i, out := range outputs {
		if _, err := f.w.WriteString(out); err != nil {
			return err
		}
		omit := f.noPrintEnd && last && i == len(outputs)-1
		if !omit {
			if _, err := f.w.WriteString(f.term.bytes()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Framer) emitDiff(input string, outputs []string) error {
	for _, out := range outputs {
		if _, err := fmt.Fprintf(f.w, "<%s%s>%s%s", input, f.term.bytes(), out, f.term.bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (f *Framer) emitPretty(input string, outputs []string) error {
	for _, out := range outputs {
		if _, err := fmt.Fprintf(f.w, "%s -> %s\n", input, out); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying buffered writer.
func (f *Framer) Flush() error { return f.w.Flush() }
