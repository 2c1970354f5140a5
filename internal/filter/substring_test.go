package filter

import "testing"

func TestSubstring(t *testing.T) {
	got, err := evalSpec(t, "substring", []string{"2..3"}, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "el" {
		t.Errorf("substring(2..3, hello) = %q, want %q", got, "el")
	}
}

func TestSubstring_NegativeFrom(t *testing.T) {
	got, err := evalSpec(t, "substring", []string{"-3.."}, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "llo" {
		t.Errorf("substring(-3.., hello) = %q, want %q", got, "llo")
	}
}

func TestPadLeft(t *testing.T) {
	got, err := evalSpec(t, "pad-left", []string{"5", "0"}, "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "00007" {
		t.Errorf("pad-left(5,0)(7) = %q, want %q", got, "00007")
	}
}

func TestPadRight_DefaultSpace(t *testing.T) {
	got, err := evalSpec(t, "pad-right", []string{"4"}, "ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ab  " {
		t.Errorf("pad-right(4)(ab) = %q, want %q", got, "ab  ")
	}
}

func TestPrependAppend(t *testing.T) {
	got, err := evalSpec(t, "prepend", []string{"pre_"}, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "pre_name" {
		t.Errorf("prepend = %q", got)
	}

	got, err = evalSpec(t, "append", []string{"_post"}, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "name_post" {
		t.Errorf("append = %q", got)
	}
}

func TestTrim(t *testing.T) {
	got, err := evalSpec(t, "trim", nil, "  hi  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi" {
		t.Errorf("trim = %q", got)
	}
}
