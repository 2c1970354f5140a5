package filter

import "testing"

func TestUpperLowerTitle(t *testing.T) {
	got, err := evalSpec(t, "upper-case", nil, "HELLO world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "HELLO WORLD" {
		t.Errorf("upper-case = %q", got)
	}

	got, err = evalSpec(t, "lower-case", nil, "HELLO world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("lower-case = %q", got)
	}

	got, err = evalSpec(t, "title-case", nil, "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello World" {
		t.Errorf("title-case = %q", got)
	}
}

func TestAscii_StripsCombiningMarks(t *testing.T) {
	got, err := evalSpec(t, "ascii", nil, "café")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "cafe" {
		t.Errorf("ascii(café) = %q, want %q", got, "cafe")
	}
}

func TestReverse(t *testing.T) {
	got, err := evalSpec(t, "reverse", nil, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "cba" {
		t.Errorf("reverse = %q", got)
	}
}

func TestRepeat(t *testing.T) {
	got, err := evalSpec(t, "repeat", []string{"3"}, "ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ababab" {
		t.Errorf("repeat(3) = %q", got)
	}
}

func TestRepeat_NegativeIsAnError(t *testing.T) {
	_, err := evalSpec(t, "repeat", []string{"-1"}, "ab")
	if err == nil {
		t.Fatal("expected an error for a negative repeat count")
	}
}

func TestIntFormat_DefaultZeroPad(t *testing.T) {
	got, err := evalSpec(t, "int-format", []string{"5"}, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "00042" {
		t.Errorf("int-format(5)(42) = %q, want %q", got, "00042")
	}
}

func TestIntFormat_NegativeKeepsSign(t *testing.T) {
	got, err := evalSpec(t, "int-format", []string{"4"}, "-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "-007" {
		t.Errorf("int-format(4)(-7) = %q, want %q", got, "-007")
	}
}
