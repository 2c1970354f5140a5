package filter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var titleCaser = cases.Title(language.Und)

// asciiTransform decomposes runes to NFD (canonical decomposition, not the
// NFKD compatibility form) and drops the resulting combining marks, turning
// e.g. "café" into "cafe" without folding width/compatibility variants.
var asciiTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

func init() {
	Register(Spec{Name: "upper-case", Aliases: []string{"u"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) { return strings.ToUpper(in), nil })})

	Register(Spec{Name: "lower-case", Aliases: []string{"v"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) { return strings.ToLower(in), nil })})

	Register(Spec{Name: "title-case", Aliases: []string{"y"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) { return titleCaser.String(in), nil })})

	Register(Spec{Name: "ascii", Aliases: []string{"i"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			out, _, err := transform.String(asciiTransform, in)
			if err != nil {
				return "", evalErr("ascii", in, err)
			}
			return out, nil
		})})

	Register(Spec{Name: "reverse", Aliases: []string{"z"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			runes := []rune(in)
			for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
				runes[i], runes[j] = runes[j], runes[i]
			}
			return string(runes), nil
		})})

	Register(Spec{
		Name: "repeat", Aliases: []string{"*"},
		MinArgs: 1, MaxArgs: 1, ArgKinds: []ArgKind{Integer},
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				countText, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				count, err := cast.ToIntE(countText)
				if err != nil {
					return "", evalErr("repeat", in, fmt.Errorf("invalid repeat count %q: %w", countText, err))
				}
				if count < 0 {
					return "", evalErr("repeat", in, fmt.Errorf("repeat count %d must not be negative", count))
				}
				return strings.Repeat(in, count), nil
			}), nil
		},
	})

	Register(Spec{
		Name: "int-format", Aliases: []string{"k"},
		MinArgs: 1, MaxArgs: 2, ArgKinds: []ArgKind{Integer, Text},
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				widthText, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				width, err := cast.ToIntE(widthText)
				if err != nil {
					return "", evalErr("int-format", in, fmt.Errorf("invalid width %q: %w", widthText, err))
				}
				n, err := cast.ToInt64E(strings.TrimSpace(in))
				if err != nil {
					return "", evalErr("int-format", in, fmt.Errorf("not an integer: %w", err))
				}
				pad, err := argOr(rt, in, args, 1, "0")
				if err != nil {
					return "", err
				}
				if pad == "" {
					pad = "0"
				}
				digits := fmt.Sprintf("%d", n)
				neg := strings.HasPrefix(digits, "-")
				if neg {
					digits = digits[1:]
				}
				minDigits := width
				if neg {
					minDigits-- // the sign counts toward the width
				}
				for len(digits) < minDigits {
					digits = string([]rune(pad)[0]) + digits
				}
				if neg {
					digits = "-" + digits
				}
				return digits, nil
			}), nil
		},
	})
}
