package filter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/tmc/rew/internal/seq"
)

const defaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func init() {
	Register(Spec{
		Name: "global-counter", Aliases: []string{"c"},
		MinArgs: 0, MaxArgs: 0, Generator: true,
		Build: noArgFilter(func(rt Runtime, _ string) (string, error) {
			return fmt.Sprintf("%d", rt.NextGlobalCounter()), nil
		}),
	})

	Register(Spec{
		Name: "local-counter", Aliases: []string{"C"},
		MinArgs: 0, MaxArgs: 0, Generator: true,
		Build: noArgFilter(func(rt Runtime, _ string) (string, error) {
			return fmt.Sprintf("%d", rt.NextLocalCounter()), nil
		}),
	})

	Register(Spec{
		Name: "sequence", Aliases: []string{"rs"},
		MinArgs: 1, MaxArgs: 2, ArgKinds: []ArgKind{Text, Integer}, Generator: true,
		Build: func(args []RawArg) (Filter, error) {
			text := args[0].Text
			if len(args) > 1 {
				text += ":" + args[1].Text // optional STEP argument
			}
			s, err := seq.Parse(text)
			if err != nil {
				return nil, fmt.Errorf("invalid sequence %q: %w", text, err)
			}
			if s.Infinite() {
				return nil, fmt.Errorf("sequence %q must be bounded inside a pattern", text)
			}
			values := s.Values()
			return &sequenceFilter{values: values}, nil
		},
	})

	Register(Spec{
		Name: "random-int", Aliases: []string{"ri"},
		MinArgs: 1, MaxArgs: 1, ArgKinds: []ArgKind{RangeArg}, Generator: true,
		Build: func(args []RawArg) (Filter, error) {
			r, err := ParseRange(args[0].Text)
			if err != nil {
				return nil, fmt.Errorf("invalid range %q: %w", args[0].Text, err)
			}
			if !r.HasFrom || !r.HasTo {
				return nil, fmt.Errorf("random-int range %q must have both bounds", args[0].Text)
			}
			return FilterFunc(func(rt Runtime, _ string) (string, error) {
				lo, hi := r.From, r.To
				if lo > hi {
					lo, hi = hi, lo
				}
				span := int64(hi-lo) + 1
				return fmt.Sprintf("%d", int64(lo)+rt.Rand().Int64N(span)), nil
			}), nil
		},
	})

	Register(Spec{
		Name: "random-text", Aliases: []string{"rt"},
		MinArgs: 1, MaxArgs: 2, ArgKinds: []ArgKind{Integer, Text}, Generator: true,
		Build: func(args []RawArg) (Filter, error) {
			length, err := cast.ToIntE(args[0].Text)
			if err != nil || length < 0 {
				return nil, fmt.Errorf("invalid random-text length %q", args[0].Text)
			}
			alphabet := defaultAlphabet
			if len(args) > 1 && args[1].Text != "" {
				alphabet = args[1].Text
			}
			letters := []rune(alphabet)
			return FilterFunc(func(rt Runtime, _ string) (string, error) {
				var b strings.Builder
				b.Grow(length)
				for i := 0; i < length; i++ {
					b.WriteRune(letters[rt.Rand().IntN(len(letters))])
				}
				return b.String(), nil
			}), nil
		},
	})

	Register(Spec{
		Name: "uuid", Aliases: []string{"uu"},
		MinArgs: 0, MaxArgs: 0, Generator: true,
		Build: noArgFilter(func(rt Runtime, _ string) (string, error) {
			// Draw the 16 bytes from the run's PRNG so --seed covers uuid too.
			var u uuid.UUID
			for i := range u {
				u[i] = byte(rt.Rand().IntN(256))
			}
			u[6] = (u[6] & 0x0f) | 0x40 // version 4
			u[8] = (u[8] & 0x3f) | 0x80 // RFC 4122 variant
			return u.String(), nil
		}),
	})
}

// sequenceFilter is the only built-in generator whose output is a fixed,
// precomputed set of values rather than one produced per call; the
// evaluator drives Cartesian expansion over Values directly rather than
// calling Eval repeatedly, but Eval is kept for non-generator-aware callers
// (e.g. a sub-pipeline evaluating this filter in isolation), where it
// yields the first value.
type sequenceFilter struct {
	values []string
}

func (f *sequenceFilter) Eval(_ Runtime, _ string) (string, error) {
	if len(f.values) == 0 {
		return "", nil
	}
	return f.values[0], nil
}

// Values reports every value the sequence produces, in order, for the
// evaluator's Cartesian generator expansion (spec §4.6).
func (f *sequenceFilter) Values() []string { return f.values }
