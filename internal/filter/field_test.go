package filter

import "testing"

func TestField_DefaultTabSep(t *testing.T) {
	got, err := evalSpec(t, "field", []string{"2"}, "a\tb\tc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "b" {
		t.Errorf("field(2) = %q, want %q", got, "b")
	}
}

func TestField_CustomSeparator(t *testing.T) {
	got, err := evalSpec(t, "field", []string{"-1", ","}, "a,b,c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "c" {
		t.Errorf("field(-1,\",\") = %q, want %q", got, "c")
	}
}

func TestField_OutOfRangeIsAnError(t *testing.T) {
	_, err := evalSpec(t, "field", []string{"5"}, "a\tb")
	if err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

func TestFields_RangeJoin(t *testing.T) {
	got, err := evalSpec(t, "fields", []string{"2..3", ","}, "a,b,c,d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "b,c" {
		t.Errorf("fields(2..3) = %q, want %q", got, "b,c")
	}
}
