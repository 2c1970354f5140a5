package filter

// resolveArg returns the text value of arg against the current input in:
// the literal text for a static argument, or the rendered result of its
// compiled sub-pipeline for a dynamic one (spec: "a nested Pattern"
// argument, compiled recursively rather than re-parsed at runtime).
func resolveArg(rt Runtime, in string, arg RawArg) (string, error) {
	if !arg.IsDynamic() {
		return arg.Text, nil
	}
	return rt.EvalSubPattern(arg.Sub, in)
}

// argOr returns args[i]'s resolved text, or def if there is no i-th
// argument at all (an omitted optional argument).
func argOr(rt Runtime, in string, args []RawArg, i int, def string) (string, error) {
	if i >= len(args) {
		return def, nil
	}
	return resolveArg(rt, in, args[i])
}
