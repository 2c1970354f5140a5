// Package seq implements the arithmetic sequence shared by the `rew seq`
// subcommand and the `sequence` (rs) generator filter: a FROM value, an
// optional TO bound, and a STEP that defaults to +1 or -1 depending on
// the direction implied by FROM and TO.
package seq

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Sequence is a bounded or unbounded arithmetic progression.
type Sequence struct {
	From  int
	To    int
	HasTo bool
	Step  int
}

// New validates and builds a Sequence. step == 0 asks for the direction
// default: +1 if !hasTo || from <= to, -1 otherwise.
func New(from int, hasTo bool, to, step int) (Sequence, error) {
	if step == 0 {
		if !hasTo || from <= to {
			step = 1
		} else {
			step = -1
		}
	}
	if hasTo {
		if step > 0 && from > to {
			return Sequence{}, fmt.Errorf("step %d cannot reach %d from %d", step, to, from)
		}
		if step < 0 && from < to {
			return Sequence{}, fmt.Errorf("step %d cannot reach %d from %d", step, to, from)
		}
	}
	return Sequence{From: from, To: to, HasTo: hasTo, Step: step}, nil
}

// Infinite reports whether the sequence has no upper bound.
func (s Sequence) Infinite() bool { return !s.HasTo }

// Values materializes every value of a bounded sequence, inclusive of To.
// Calling it on an infinite sequence panics; use Each instead.
func (s Sequence) Values() []string {
	if s.Infinite() {
		panic("seq: Values called on an infinite sequence")
	}
	var out []string
	for v, done := s.From, false; !done; v += s.Step {
		out = append(out, strconv.Itoa(v))
		if s.Step > 0 {
			done = v+s.Step > s.To
		} else {
			done = v+s.Step < s.To
		}
	}
	return out
}

// Each calls fn with every value in order, stopping when fn returns false
// or, for an infinite sequence, never on its own — the caller must arrange
// its own stopping condition (e.g. a line count or signal).
func (s Sequence) Each(fn func(v int) bool) {
	v := s.From
	for {
		if !fn(v) {
			return
		}
		if s.HasTo {
			next := v + s.Step
			if s.Step > 0 && next > s.To {
				return
			}
			if s.Step < 0 && next < s.To {
				return
			}
			v = next
			continue
		}
		v += s.Step
	}
}

// Parse reads the `rs:FROM..TO[:STEP]` filter-argument form: a mandatory
// range bounded on both sides, optionally followed by an explicit step.
func Parse(s string) (Sequence, error) {
	parts := strings.SplitN(s, ":", 2)
	from, hasTo, to, err := parseRange(parts[0])
	if err != nil {
		return Sequence{}, err
	}
	if !hasTo {
		return Sequence{}, fmt.Errorf("sequence range %q must have both bounds", parts[0])
	}
	step := 0
	if len(parts) == 2 {
		step, err = cast.ToIntE(parts[1])
		if err != nil {
			return Sequence{}, fmt.Errorf("invalid step %q: %w", parts[1], err)
		}
		if step == 0 {
			return Sequence{}, fmt.Errorf("step must not be zero")
		}
	}
	return New(from, hasTo, to, step)
}

// ParseCLI reads the `rew seq [FROM..[TO]] [STEP]` subcommand form: range
// and step are already split into separate argv words by the caller.
func ParseCLI(rangeArg string, stepArg string, hasStepArg bool) (Sequence, error) {
	from, hasTo, to, err := parseRange(rangeArg)
	if err != nil {
		return Sequence{}, err
	}
	step := 0
	if hasStepArg {
		step, err = cast.ToIntE(stepArg)
		if err != nil {
			return Sequence{}, fmt.Errorf("invalid step %q: %w", stepArg, err)
		}
		if step == 0 {
			return Sequence{}, fmt.Errorf("step must not be zero")
		}
	}
	return New(from, hasTo, to, step)
}

func parseRange(s string) (from int, hasTo bool, to int, err error) {
	i := strings.Index(s, "..")
	if i < 0 {
		from, err = cast.ToIntE(s)
		return from, false, 0, err
	}
	from, err = cast.ToIntE(s[:i])
	if err != nil {
		return 0, false, 0, fmt.Errorf("invalid sequence start %q: %w", s[:i], err)
	}
	rest := s[i+2:]
	if rest == "" {
		return from, false, 0, nil
	}
	to, err = cast.ToIntE(rest)
	if err != nil {
		return 0, false, 0, fmt.Errorf("invalid sequence end %q: %w", rest, err)
	}
	return from, true, to, nil
}
