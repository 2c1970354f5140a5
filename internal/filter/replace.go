package filter

import "strings"

func init() {
	Register(Spec{
		Name: "replace", Aliases: []string{"r"},
		MinArgs: 1, MaxArgs: 2,
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				from, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				to, err := argOr(rt, in, args, 1, "")
				if err != nil {
					return "", err
				}
				return strings.Replace(in, from, to, 1), nil
			}), nil
		},
	})

	Register(Spec{
		Name: "replace-all", Aliases: []string{"R"},
		MinArgs: 1, MaxArgs: 2,
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				from, err := resolveArg(rt, in, args[0])
				if err != nil {
					return "", err
				}
				to, err := argOr(rt, in, args, 1, "")
				if err != nil {
					return "", err
				}
				return strings.ReplaceAll(in, from, to), nil
			}), nil
		},
	})

	Register(Spec{
		Name: "replace-empty", Aliases: []string{"?"},
		MinArgs: 1, MaxArgs: 1,
		Build: func(args []RawArg) (Filter, error) {
			return FilterFunc(func(rt Runtime, in string) (string, error) {
				if in != "" {
					return in, nil
				}
				return resolveArg(rt, in, args[0])
			}), nil
		},
	})
}
