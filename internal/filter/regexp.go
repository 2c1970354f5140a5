package filter

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
	"github.com/spf13/cast"
)

// compiledRegex wraps the two engines rew can evaluate a pattern with.
// rx (dlclark/regexp2) is always present and supports the full syntax
// (backreferences, lookaround); re2 (stdlib regexp, RE2) is additionally
// populated, once, at compile time, when the pattern compiles under RE2's
// stricter grammar — meaning it contains no backtracking-only construct —
// and is preferred at evaluation time because it is provably
// non-backtracking. The choice between the two is made exactly once, when
// the pipeline is built; evaluation never re-decides it per match.
type compiledRegex struct {
	re2 *regexp.Regexp
	rx  *regexp2.Regexp
}

func compileRegex(pattern string) (*compiledRegex, error) {
	rx, err := regexp2.Compile(pattern, regexp2.Unicode)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression %q: %w", pattern, err)
	}
	re2, err2 := regexp.Compile(pattern)
	if err2 != nil {
		re2 = nil
	}
	return &compiledRegex{re2: re2, rx: rx}, nil
}

func (c *compiledRegex) usesRE2() bool { return c.re2 != nil }

// FindSubmatch returns group 0 (whole match) through the highest capture
// group, or found=false if there is no match.
func (c *compiledRegex) FindSubmatch(s string) (groups []string, found bool, err error) {
	if c.usesRE2() {
		m := c.re2.FindStringSubmatch(s)
		if m == nil {
			return nil, false, nil
		}
		return m, true, nil
	}
	m, err := c.rx.FindStringMatch(s)
	if err != nil {
		return nil, false, err
	}
	if m == nil {
		return nil, false, nil
	}
	gs := m.Groups()
	groups = make([]string, len(gs))
	for i, g := range gs {
		groups[i] = g.String()
	}
	return groups, true, nil
}

// Replace substitutes the first match (all == false) or every match
// (all == true) of the pattern in s with repl, honoring $0..$9/${name} backreferences and $$ as
// a literal dollar sign — the native replacement syntax of both engines.
func (c *compiledRegex) Replace(s, repl string, all bool) (string, error) {
	if c.usesRE2() {
		if !all {
			loc := c.re2.FindStringSubmatchIndex(s)
			if loc == nil {
				return s, nil
			}
			var buf []byte
			buf = c.re2.ExpandString(buf, repl, s, loc)
			return s[:loc[0]] + string(buf) + s[loc[1]:], nil
		}
		return c.re2.ReplaceAllString(s, repl), nil
	}
	count := -1
	if !all {
		count = 1
	}
	return c.rx.Replace(s, repl, 0, count)
}

// Split divides s on every match of the pattern, like strings.Split but
// regex-driven.
func (c *compiledRegex) Split(s string) ([]string, error) {
	if c.usesRE2() {
		return c.re2.Split(s, -1), nil
	}
	var parts []string
	last := 0
	m, err := c.rx.FindStringMatch(s)
	for m != nil {
		if err != nil {
			return nil, err
		}
		start, length := m.Index, m.Length
		parts = append(parts, s[last:start])
		last = start + length
		m, err = c.rx.FindNextMatch(m)
	}
	if err != nil {
		return nil, err
	}
	parts = append(parts, s[last:])
	return parts, nil
}

func init() {
	Register(Spec{
		Name: "regex-match", Aliases: []string{"mR"},
		MinArgs: 1, MaxArgs: 2, ArgKinds: []ArgKind{Regex, Integer},
		Build: func(args []RawArg) (Filter, error) {
			re, err := compileRegex(args[0].Text)
			if err != nil {
				return nil, err
			}
			group := 0
			if len(args) > 1 {
				n, err := cast.ToIntE(args[1].Text)
				if err != nil {
					return nil, fmt.Errorf("invalid capture group %q: %w", args[1].Text, err)
				}
				group = n
			}
			return FilterFunc(func(_ Runtime, in string) (string, error) {
				groups, found, err := re.FindSubmatch(in)
				if err != nil {
					return "", evalErr("regex-match", in, err)
				}
				if !found || group >= len(groups) {
					return "", nil
				}
				return groups[group], nil
			}), nil
		},
	})

	Register(Spec{
		Name: "regex-replace", Aliases: []string{"sR"},
		MinArgs: 2, MaxArgs: 2, ArgKinds: []ArgKind{Regex, Text},
		Build: func(args []RawArg) (Filter, error) {
			re, err := compileRegex(args[0].Text)
			if err != nil {
				return nil, err
			}
			repl := args[1].Text
			return FilterFunc(func(_ Runtime, in string) (string, error) {
				out, err := re.Replace(in, repl, false)
				if err != nil {
					return "", evalErr("regex-replace", in, err)
				}
				return out, nil
			}), nil
		},
	})

	Register(Spec{
		Name: "regex-replace-all", Aliases: []string{"SR"},
		MinArgs: 2, MaxArgs: 2, ArgKinds: []ArgKind{Regex, Text},
		Build: func(args []RawArg) (Filter, error) {
			re, err := compileRegex(args[0].Text)
			if err != nil {
				return nil, err
			}
			repl := args[1].Text
			return FilterFunc(func(_ Runtime, in string) (string, error) {
				out, err := re.Replace(in, repl, true)
				if err != nil {
					return "", evalErr("regex-replace-all", in, err)
				}
				return out, nil
			}), nil
		},
	})

	Register(Spec{
		Name: "regex-split", Aliases: []string{"xR"},
		MinArgs: 2, MaxArgs: 2, ArgKinds: []ArgKind{Regex, Integer},
		Build: func(args []RawArg) (Filter, error) {
			re, err := compileRegex(args[0].Text)
			if err != nil {
				return nil, err
			}
			idx, err := ParseIndex(args[1].Text)
			if err != nil {
				return nil, fmt.Errorf("invalid segment index %q: %w", args[1].Text, err)
			}
			return FilterFunc(func(_ Runtime, in string) (string, error) {
				parts, err := re.Split(in)
				if err != nil {
					return "", evalErr("regex-split", in, err)
				}
				pos, ok := idx.Resolve(len(parts))
				if !ok {
					return "", evalErr("regex-split", in, errIndexOutOfRange(idx.Value, len(parts)))
				}
				return parts[pos], nil
			}), nil
		},
	})
}
