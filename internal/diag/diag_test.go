package diag

import (
	"strings"
	"testing"

	"github.com/tmc/rew/internal/ast"
)

func TestRender_CaretPointsAtRange(t *testing.T) {
	source := "img_{nope}.jpg"
	err := &Error{Kind: BindError, Message: `unknown filter "nope"`, Range: ast.SourceRange{Start: 5, End: 9}}
	out := Render(source, err, Options{})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Render produced %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != `error: unknown filter "nope"` {
		t.Errorf("message line = %q", lines[0])
	}
	if lines[1] != source {
		t.Errorf("source line = %q, want %q", lines[1], source)
	}
	wantCaret := strings.Repeat(" ", 5) + strings.Repeat("^", 4)
	if lines[2] != wantCaret {
		t.Errorf("caret line = %q, want %q", lines[2], wantCaret)
	}
}

func TestRender_EvalErrorHasNoCaret(t *testing.T) {
	err := &Error{Kind: EvalError, Message: "invalid width", FilterName: "pad-left", Input: "x"}
	out := Render("{pad-left:bad}", err, Options{})
	if !strings.Contains(out, "filter: pad-left") {
		t.Errorf("Render = %q, want it to mention the filter name", out)
	}
	if !strings.Contains(out, "input: x") {
		t.Errorf("Render = %q, want it to mention the input", out)
	}
}

func TestKind_FatalClassification(t *testing.T) {
	fatal := []Kind{LexError, ParseError, BindError, ArgumentError}
	for _, k := range fatal {
		if !k.Fatal() {
			t.Errorf("%s.Fatal() = false, want true", k)
		}
	}
	nonFatal := []Kind{EvalError, IoError}
	for _, k := range nonFatal {
		if k.Fatal() {
			t.Errorf("%s.Fatal() = true, want false", k)
		}
	}
}
