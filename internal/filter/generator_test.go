package filter

import "testing"

func TestGlobalCounter_AdvancesPerCall(t *testing.T) {
	spec, ok := Get("global-counter")
	if !ok {
		t.Fatal("global-counter not registered")
	}
	f, err := spec.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	rt := &fakeRuntime{}
	first, err := f.Eval(rt, "")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	second, err := f.Eval(rt, "")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if first != "1" || second != "2" {
		t.Errorf("got %q, %q, want 1, 2", first, second)
	}
}

func TestLocalCounter_AdvancesPerCall(t *testing.T) {
	spec, ok := Get("local-counter")
	if !ok {
		t.Fatal("local-counter not registered")
	}
	f, err := spec.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	rt := &fakeRuntime{}
	first, _ := f.Eval(rt, "")
	second, _ := f.Eval(rt, "")
	if first != "1" || second != "2" {
		t.Errorf("got %q, %q, want 1, 2", first, second)
	}
}

func TestSequence_ValuesAndEval(t *testing.T) {
	spec, ok := Get("sequence")
	if !ok {
		t.Fatal("sequence not registered")
	}
	f, err := spec.Build([]RawArg{{Text: "1..3"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	valuer, ok := f.(Valuer)
	if !ok {
		t.Fatal("sequence filter does not implement Valuer")
	}
	got := valuer.Values()
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	first, err := f.Eval(&fakeRuntime{}, "")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if first != "1" {
		t.Errorf("Eval() = %q, want %q", first, "1")
	}
}

func TestSequence_RejectsUnbounded(t *testing.T) {
	spec, _ := Get("sequence")
	_, err := spec.Build([]RawArg{{Text: "1.."}})
	if err == nil {
		t.Fatal("expected an error for an unbounded sequence inside a pattern")
	}
}

func TestRandomInt_WithinRange(t *testing.T) {
	spec, ok := Get("random-int")
	if !ok {
		t.Fatal("random-int not registered")
	}
	f, err := spec.Build([]RawArg{{Text: "10..20"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := f.Eval(&fakeRuntime{}, "")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != "10" {
		t.Errorf("with a zero PRNG draw, random-int(10..20) = %q, want %q", got, "10")
	}
}

func TestUUID_ReturnsNonEmpty(t *testing.T) {
	spec, _ := Get("uuid")
	f, err := spec.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := f.Eval(&fakeRuntime{}, "")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if len(got) != 36 {
		t.Errorf("uuid = %q, want a 36-character UUID string", got)
	}
}
