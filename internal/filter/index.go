package filter

import (
	"fmt"

	"github.com/spf13/cast"
)

// Index is a parsed 1-based, possibly-negative position, as used by
// filters like `field`.
type Index struct {
	// Value is the raw 1-based/negative index as written (never 0).
	Value int
}

// ParseIndex parses a 1-based index argument. A literal 0 is rejected per
// spec §9 ("negative zero indices... should be a compile-time
// ArgumentError"); here it is surfaced as a plain error for the caller
// (compile time: ArgumentError; runtime, for dynamic sub-pattern
// arguments: EvalError) to wrap with the right diag.Kind.
func ParseIndex(s string) (Index, error) {
	n, err := cast.ToIntE(s)
	if err != nil {
		return Index{}, fmt.Errorf("invalid index %q: %w", s, err)
	}
	if n == 0 {
		return Index{}, fmt.Errorf("invalid index \"0\": 1-based indices cannot be 0")
	}
	return Index{Value: n}, nil
}

// Resolve converts the index into a 0-based position into a sequence of
// the given length. ok is false if the position falls outside [0,length).
func (idx Index) Resolve(length int) (pos int, ok bool) {
	if idx.Value > 0 {
		pos = idx.Value - 1
	} else {
		pos = length + idx.Value
	}
	if pos < 0 || pos >= length {
		return 0, false
	}
	return pos, true
}

// Range is a parsed, inclusive `A..B` / `A..` / `..B` range argument.
type Range struct {
	HasFrom bool
	From    int
	HasTo   bool
	To      int
}

// ParseRange parses "A..B", "A..", "..B", or a bare "A" (meaning A..A).
// Zero endpoints are rejected at the same point ParseIndex rejects them.
func ParseRange(s string) (Range, error) {
	from, to, hasFrom, hasTo, err := splitRange(s)
	if err != nil {
		return Range{}, err
	}
	r := Range{HasFrom: hasFrom, HasTo: hasTo}
	if hasFrom {
		n, err := cast.ToIntE(from)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		if n == 0 {
			return Range{}, fmt.Errorf("invalid range %q: 1-based indices cannot be 0", s)
		}
		r.From = n
	}
	if hasTo {
		n, err := cast.ToIntE(to)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		if n == 0 {
			return Range{}, fmt.Errorf("invalid range %q: 1-based indices cannot be 0", s)
		}
		r.To = n
	}
	if !hasFrom && !hasTo {
		return Range{}, fmt.Errorf("invalid range %q: empty range", s)
	}
	return r, nil
}

func splitRange(s string) (from, to string, hasFrom, hasTo bool, err error) {
	idx := indexOfDotDot(s)
	if idx < 0 {
		// Bare "A" means A..A.
		if s == "" {
			return "", "", false, false, fmt.Errorf("empty range")
		}
		return s, s, true, true, nil
	}
	from = s[:idx]
	to = s[idx+2:]
	return from, to, from != "", to != "", nil
}

func indexOfDotDot(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '.' && s[i+1] == '.' {
			return i
		}
	}
	return -1
}

// Resolve converts the range into 0-based, end-exclusive [start,end)
// bounds against a sequence of the given length, clamping out-of-range
// bounds per spec §4.4 ("out-of-range bounds are clamped").
func (r Range) Resolve(length int) (start, end int) {
	start = 0
	end = length
	if r.HasFrom {
		if r.From > 0 {
			start = r.From - 1
		} else {
			start = length + r.From
		}
	}
	if r.HasTo {
		if r.To > 0 {
			end = r.To
		} else {
			end = length + r.To + 1
		}
	}
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if end < start {
		end = start
	}
	if end > length {
		end = length
	}
	return start, end
}
