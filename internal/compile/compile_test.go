package compile

import (
	"testing"

	"github.com/tmc/rew/internal/eval"
	"github.com/tmc/rew/internal/filter"
	"github.com/tmc/rew/internal/lexer"
)

func TestCompile_LiteralAndIdentity(t *testing.T) {
	p, err := Compile("a{}b", lexer.DefaultConfig, filter.Default)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx := eval.NewContext(nil)
	out, err := p.RunOnce(ctx, "X")
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if out != "aXb" {
		t.Errorf("RunOnce = %q, want %q", out, "aXb")
	}
}

func TestCompile_FilterChain(t *testing.T) {
	p, err := Compile("{u|append:!}", lexer.DefaultConfig, filter.Default)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx := eval.NewContext(nil)
	out, err := p.RunOnce(ctx, "hi")
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if out != "HI!" {
		t.Errorf("RunOnce = %q, want %q", out, "HI!")
	}
}

func TestCompile_UnknownFilterIsBindError(t *testing.T) {
	_, err := Compile("{nope}", lexer.DefaultConfig, filter.Default)
	if err == nil {
		t.Fatal("expected an error for an unknown filter")
	}
}

func TestCompile_WrongArityIsBindError(t *testing.T) {
	_, err := Compile("{field}", lexer.DefaultConfig, filter.Default)
	if err == nil {
		t.Fatal("expected an error for a missing required argument")
	}
}

func TestCompile_StaticIntegerArgValidatedEagerly(t *testing.T) {
	_, err := Compile("{pad-left:notanumber}", lexer.DefaultConfig, filter.Default)
	if err == nil {
		t.Fatal("expected a compile-time error for a non-numeric width")
	}
}

func TestCompile_NestedPatternArgRejectedByNonPatternFilter(t *testing.T) {
	// None of the built-in filters declare ArgKind PatternArg today, so a
	// nested `{...}` argument to any of them is a bind error rather than a
	// dynamic sub-pattern.
	_, err := Compile("{replace:a:{u}}", lexer.DefaultConfig, filter.Default)
	if err == nil {
		t.Fatal("expected a bind error for a nested pattern argument to a filter that doesn't accept one")
	}
}

func TestEmit_SequenceDrivesCartesianExpansion(t *testing.T) {
	p, err := Compile("{rs:1..2}-{c}", lexer.DefaultConfig, filter.Default)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx := eval.NewContext(nil)
	outs, err := p.Emit(ctx, "line")
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := []string{"1-1", "2-2"}
	if len(outs) != len(want) {
		t.Fatalf("Emit = %v, want %v", outs, want)
	}
	for i := range want {
		if outs[i] != want[i] {
			t.Errorf("Emit[%d] = %q, want %q", i, outs[i], want[i])
		}
	}
}
