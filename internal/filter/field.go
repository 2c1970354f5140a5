package filter

import (
	"fmt"
	"strings"
)

const defaultFieldSep = "\t"

func init() {
	// Canonical alias "1" is carried over literally from the filter
	// catalogue's field entry ("field `1:N[:SEP]`"); unlike jpikl/rew's
	// per-digit field shortcuts, rew keeps exactly this one alias and
	// otherwise spells the filter out as `field:N[:SEP]`.
	Register(Spec{
		Name: "field", Aliases: []string{"1"},
		MinArgs: 1, MaxArgs: 2, ArgKinds: []ArgKind{Integer, Text},
		Build: func(args []RawArg) (Filter, error) {
			if !args[0].IsDynamic() {
				if _, err := ParseIndex(args[0].Text); err != nil {
					return nil, err
				}
			}
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				idxText, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				idx, err := ParseIndex(idxText)
				if err != nil {
					return "", evalErr("field", in, err)
				}
				sep, err := argOr(rt, in, args, 1, defaultFieldSep)
				if err != nil {
					return "", err
				}
				fields := strings.Split(in, sep)
				pos, ok := idx.Resolve(len(fields))
				if !ok {
					return "", evalErr("field", in, errIndexOutOfRange(idx.Value, len(fields)))
				}
				return fields[pos], nil
			}), nil
		},
	})

	Register(Spec{
		Name: "fields", Aliases: nil,
		MinArgs: 1, MaxArgs: 2, ArgKinds: []ArgKind{RangeArg, Text},
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				rangeText, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				sep, err := argOr(rt, in, args, 1, defaultFieldSep)
				if err != nil {
					return "", err
				}
				r, err := ParseRange(rangeText)
				if err != nil {
					return "", evalErr("fields", in, err)
				}
				fields := strings.Split(in, sep)
				start, end := r.Resolve(len(fields))
				return strings.Join(fields[start:end], sep), nil
			}), nil
		},
	})
}

func errIndexOutOfRange(idx, length int) error {
	return &rangeError{idx: idx, length: length}
}

type rangeError struct {
	idx, length int
}

func (e *rangeError) Error() string {
	return fmt.Sprintf("index %d out of range for %d field(s)", e.idx, e.length)
}
