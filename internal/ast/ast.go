// Package ast defines the pattern abstract syntax tree shared by the
// lexer, parser, and compiler.
package ast

// SourceRange is a byte-offset span into the original pattern source,
// used by the error formatter to render caret diagnostics.
type SourceRange struct {
	Start int
	End   int
}

// Pattern is an ordered sequence of segments.
type Pattern struct {
	Segments []Segment
	Range    SourceRange
}

// Segment is either a literal run of text or a filter expression.
// Exactly one of Literal or Expression is non-nil.
type Segment struct {
	Literal    *string
	Expression *Expression
}

// Quantifier marks an expression as a generator driving repetition of the
// enclosing pattern. It carries no data of its own today; its presence is
// the signal.
type Quantifier struct {
	Range SourceRange
}

// Expression is a `{...}` group: a non-empty filter chain plus an optional
// generator quantifier.
type Expression struct {
	Chain      []FilterInvocation
	Quantifier *Quantifier
	Range      SourceRange

	// ID is assigned by the compiler during AST walk and used as the key
	// for local-counter state and per-expression caches. Zero until
	// compiled.
	ID int
}

// FilterInvocation is one filter call inside a chain: a name plus its
// ordered, unparsed argument list.
type FilterInvocation struct {
	Name  string
	Args  []Arg
	Range SourceRange
}

// Arg is one argument to a filter invocation. Most arguments are plain
// text; filters whose spec permits a sub-pattern argument (e.g. those
// taking a nested format pattern) set Pattern instead.
type Arg struct {
	Text    string
	Pattern *Pattern
	Range   SourceRange
}

// IsPattern reports whether this argument is a nested sub-pattern rather
// than a plain text run.
func (a Arg) IsPattern() bool {
	return a.Pattern != nil
}
