package rew

import (
	"strings"
	"testing"

	"github.com/tmc/rew/internal/diag"
	"github.com/tmc/rew/internal/frame"
)

func run(t *testing.T, pattern, input string, opts RunOptions) string {
	t.Helper()
	p, err := Compile(pattern, Options{})
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	var buf strings.Builder
	if _, err := p.Run(strings.NewReader(input), &buf, opts); err != nil {
		t.Fatalf("Run(%q, %q): %v", pattern, input, err)
	}
	return buf.String()
}

func TestRun_PathRename(t *testing.T) {
	got := run(t, `img_{C}.{e|v|r:e}`, "photo.JPEG\n", RunOptions{Mode: frame.Standard, Terminator: frame.LF})
	if got != "img_1.jpg\n" {
		t.Errorf("got %q, want %q", got, "img_1.jpg\n")
	}
}

func TestRun_FileNameFilter(t *testing.T) {
	got := run(t, "{f}", "a/b.txt\nc.md\n", RunOptions{Mode: frame.Standard, Terminator: frame.LF})
	if got != "b.txt\nc.md\n" {
		t.Errorf("got %q, want %q", got, "b.txt\nc.md\n")
	}
}

func TestRun_IdentityWithNoPrintEnd(t *testing.T) {
	got := run(t, "{}", "x\ny\nz\n", RunOptions{
		Mode: frame.Standard, Terminator: frame.LF, NoPrintEnd: true,
	})
	if got != "x\ny\nz" {
		t.Errorf("got %q, want %q", got, "x\ny\nz")
	}
}

func TestRun_SequenceExpandsCartesian(t *testing.T) {
	got := run(t, "{}-{rs:1..3}", "file\n", RunOptions{Mode: frame.Standard, Terminator: frame.LF})
	want := "file-1\nfile-2\nfile-3\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRun_DiffMode(t *testing.T) {
	got := run(t, "{B}.jpg", "photo.jpeg\n", RunOptions{Mode: frame.Diff, Terminator: frame.LF})
	if got != "<photo.jpeg\n>photo.jpg\n" {
		t.Errorf("got %q, want %q", got, "<photo.jpeg\n>photo.jpg\n")
	}
}

func TestRun_LowerCase(t *testing.T) {
	got := run(t, "{v}", "HELLO world\n", RunOptions{Mode: frame.Standard, Terminator: frame.LF})
	if got != "hello world\n" {
		t.Errorf("got %q, want %q", got, "hello world\n")
	}
}

func TestRun_FailFastStopsOnFirstEvalError(t *testing.T) {
	p, err := Compile("{field:5}", Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	var buf strings.Builder
	_, err = p.Run(strings.NewReader("a\tb\nc\td\n"), &buf, RunOptions{
		Mode: frame.Standard, Terminator: frame.LF, FailFast: true,
	})
	if err == nil {
		t.Fatal("expected a fatal error with FailFast set")
	}
}

func TestRun_WithoutFailFastSkipsAndContinues(t *testing.T) {
	p, err := Compile("{field:5}", Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	var buf strings.Builder
	var evalErrs int
	result, err := p.Run(strings.NewReader("short\na\tb\tc\td\te\n"), &buf, RunOptions{
		Mode: frame.Standard, Terminator: frame.LF,
		OnEvalError: func(e *diag.Error) { evalErrs++ },
	})
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if !result.SawEvalError {
		t.Error("expected SawEvalError to be true")
	}
	if evalErrs != 1 {
		t.Errorf("evalErrs = %d, want 1", evalErrs)
	}
	if buf.String() != "e\n" {
		t.Errorf("output = %q, want the second line's field to still be emitted: %q", buf.String(), "e\n")
	}
}
