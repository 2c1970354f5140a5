package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
)

func init() {
	Register(Spec{
		Name: "substring", Aliases: []string{"n"},
		MinArgs: 1, MaxArgs: 1, ArgKinds: []ArgKind{RangeArg},
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				rangeText, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				r, err := ParseRange(rangeText)
				if err != nil {
					return "", evalErr("substring", in, err)
				}
				runes := []rune(in)
				start, end := r.Resolve(len(runes))
				return string(runes[start:end]), nil
			}), nil
		},
	})

	Register(Spec{
		Name: "substring-bytes", Aliases: []string{"N"},
		MinArgs: 1, MaxArgs: 1, ArgKinds: []ArgKind{RangeArg},
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				rangeText, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				r, err := ParseRange(rangeText)
				if err != nil {
					return "", evalErr("substring-bytes", in, err)
				}
				b := []byte(in)
				start, end := r.Resolve(len(b))
				if (start < len(b) && !utf8.RuneStart(b[start])) || (end < len(b) && !utf8.RuneStart(b[end])) {
					return "", evalErr("substring-bytes", in, fmt.Errorf("byte range %d..%d splits a UTF-8 sequence", start, end))
				}
				return string(b[start:end]), nil
			}), nil
		},
	})

	Register(Spec{
		Name: "prepend", Aliases: []string{"<"},
		MinArgs: 1, MaxArgs: 1,
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				text, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				return text + in, nil
			}), nil
		},
	})

	Register(Spec{
		Name: "append", Aliases: []string{">"},
		MinArgs: 1, MaxArgs: 1,
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				text, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				return in + text, nil
			}), nil
		},
	})

	Register(Spec{
		Name: "pad-left", Aliases: []string{"l"},
		MinArgs: 1, MaxArgs: 2, ArgKinds: []ArgKind{Integer, Text},
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				return pad(rt, in, args, true)
			}), nil
		},
	})

	Register(Spec{
		Name: "pad-right", Aliases: []string{"L"},
		MinArgs: 1, MaxArgs: 2, ArgKinds: []ArgKind{Integer, Text},
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				return pad(rt, in, args, false)
			}), nil
		},
	})

	Register(Spec{Name: "trim", Aliases: []string{"t"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) { return strings.TrimSpace(in), nil })})
	Register(Spec{Name: "trim-start", Aliases: []string{"ts"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) { return strings.TrimLeft(in, " \t\n\r\v\f"), nil })})
	Register(Spec{Name: "trim-end", Aliases: []string{"te"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) { return strings.TrimRight(in, " \t\n\r\v\f"), nil })})
}

func pad(rt Runtime, in string, args []RawArg, left bool) (string, error) {
	widthText, err := resolveArg(rt, in, args[0])
	if err != nil {
		return "", err
	}
	width, err := cast.ToIntE(widthText)
	if err != nil {
		return "", evalErr("pad", in, fmt.Errorf("invalid width %q: %w", widthText, err))
	}
	padChar, err := argOr(rt, in, args, 1, " ")
	if err != nil {
		return "", err
	}
	if padChar == "" {
		padChar = " "
	}
	n := width - utf8.RuneCountInString(in)
	if n <= 0 {
		return in, nil
	}
	fill := strings.Repeat(string([]rune(padChar)[0]), n)
	if left {
		return fill + in, nil
	}
	return in + fill, nil
}

// evalErr wraps err as an EvalError-flavored error carrying the filter
// name and offending input, formatted by internal/diag at the call site.
func evalErr(filterName, input string, err error) error {
	return &filterError{filter: filterName, input: input, err: err}
}

type filterError struct {
	filter string
	input  string
	err    error
}

func (e *filterError) Error() string { return fmt.Sprintf("%s: %v", e.filter, e.err) }
func (e *filterError) Unwrap() error { return e.err }

// FilterName and Input let the rew package recover the structured fields
// for a *diag.Error without filter depending on the diag package.
func (e *filterError) FilterName() string { return e.filter }
func (e *filterError) Input() string      { return e.input }
