package eval

import "testing"

func TestNextGlobalCounter_StartsAtOne(t *testing.T) {
	ctx := NewContext(nil)
	if got := ctx.NextGlobalCounter(); got != 1 {
		t.Errorf("first NextGlobalCounter() = %d, want 1", got)
	}
	if got := ctx.NextGlobalCounter(); got != 2 {
		t.Errorf("second NextGlobalCounter() = %d, want 2", got)
	}
}

func TestLocalCounter_ScopedPerExpression(t *testing.T) {
	ctx := NewContext(nil)
	a := ctx.ForExpression(1)
	b := ctx.ForExpression(2)

	if got := a.NextLocalCounter(); got != 1 {
		t.Errorf("expr 1 first local counter = %d, want 1", got)
	}
	if got := a.NextLocalCounter(); got != 2 {
		t.Errorf("expr 1 second local counter = %d, want 2", got)
	}
	if got := b.NextLocalCounter(); got != 1 {
		t.Errorf("expr 2 first local counter = %d, want 1", got)
	}
}

func TestNextLocalCounter_PanicsOnUnscopedContext(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic calling NextLocalCounter on an unscoped Context")
		}
	}()
	ctx := NewContext(nil)
	ctx.NextLocalCounter()
}

func TestNewContext_SeedIsDeterministic(t *testing.T) {
	var seed uint64 = 42
	a := NewContext(&seed)
	b := NewContext(&seed)

	for i := 0; i < 5; i++ {
		x := a.Rand().Int64N(1000)
		y := b.Rand().Int64N(1000)
		if x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}
