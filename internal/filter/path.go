package filter

import (
	"os"
	"path/filepath"
	"strings"
)

func init() {
	Register(Spec{Name: "working-directory", Aliases: []string{"w"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, _ string) (string, error) {
			return os.Getwd()
		})})

	Register(Spec{Name: "absolute", Aliases: []string{"a"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			return filepath.Abs(in)
		})})

	Register(Spec{Name: "relative", Aliases: []string{"A"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Rel(wd, in)
		})})

	Register(Spec{Name: "parent", Aliases: []string{"d"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			return filepath.Dir(in), nil
		})})

	Register(Spec{Name: "file-name", Aliases: []string{"f"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			return filepath.Base(in), nil
		})})

	Register(Spec{Name: "last-name", Aliases: []string{"F"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			base := filepath.Base(in)
			return strings.TrimSuffix(base, filepath.Ext(base)), nil
		})})

	Register(Spec{Name: "base-name", Aliases: []string{"b"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			return stripAllExtensions(filepath.Base(in)), nil
		})})

	Register(Spec{Name: "extension", Aliases: []string{"e"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			return strings.TrimPrefix(filepath.Ext(in), "."), nil
		})})

	Register(Spec{Name: "extension-with-dot", Aliases: []string{"E"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			return filepath.Ext(in), nil
		})})

	Register(Spec{Name: "parent-name", Aliases: []string{"D"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			return filepath.Base(filepath.Dir(in)), nil
		})})

	// prefix-parent returns the parent path together with its trailing
	// separator, so callers can prepend it to a new file name directly
	// (e.g. "{P}new-name.txt"); unlike `d`, it yields "" rather than "."
	// when the input has no directory component.
	Register(Spec{Name: "prefix-parent", Aliases: []string{"P"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			if i := strings.LastIndexByte(in, filepath.Separator); i >= 0 {
				return in[:i+1], nil
			}
			return "", nil
		})})

	// without-extension strips every extension from the full path (the
	// full-path analog of base-name).
	Register(Spec{Name: "without-extension", Aliases: []string{"B"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			dir, base := filepath.Split(in)
			return dir + stripAllExtensions(base), nil
		})})

	// without-last-extension strips only the final extension from the
	// full path (the full-path analog of last-name).
	Register(Spec{Name: "without-last-extension", Aliases: []string{"X"}, MinArgs: 0, MaxArgs: 0,
		Build: noArgFilter(func(_ Runtime, in string) (string, error) {
			ext := filepath.Ext(in)
			return strings.TrimSuffix(in, ext), nil
		})})
}

func stripAllExtensions(name string) string {
	for {
		ext := filepath.Ext(name)
		if ext == "" || ext == name {
			return name
		}
		name = strings.TrimSuffix(name, ext)
	}
}

// noArgFilter adapts a zero-argument filter function into a Spec.Build
// constructor, shared by every path filter above.
func noArgFilter(fn func(rt Runtime, in string) (string, error)) func([]RawArg) (Filter, error) {
	return func(args []RawArg) (Filter, error) {
		return FilterFunc(fn), nil
	}
}
