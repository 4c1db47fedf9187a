package trace

import (
	"context"
	"testing"
)

func TestIsolateReturnsNilWithoutAbort(t *testing.T) {
	if err := Isolate(func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsolateRepanicsForeignPanics(t *testing.T) {
	defer func() {
		if rec := recover(); rec != "not ours" {
			t.Fatalf("recovered %v, want the original panic", rec)
		}
	}()
	_ = Isolate(func() { panic("not ours") })
	t.Fatalf("Isolate swallowed a foreign panic")
}

func TestIsolateKeepsPartialTrace(t *testing.T) {
	r, _ := newTestRegistry()
	r.SetMaxDepth("expr", 2)

	var nested Parser[string]
	nested = Wrap(r, "expr", "", "nested", func(input string) Result[string] {
		if input == "" {
			return Ok("", "")
		}
		return nested(input[1:])
	})

	abort := mustAbort(t, func() { nested("abcdef") })
	if abort.Limit != 2 {
		t.Fatalf("limit = %d, want 2", abort.Limit)
	}
	if n := r.GetOrCreate("expr").Len(); n != 2 {
		t.Fatalf("partial trace has %d events, want 2", n)
	}

	r.ClearMaxDepth("expr")
	r.Reset("expr")
	if res := nested("abcdef"); !res.IsOk() {
		t.Fatalf("unexpected result after clearing the limit: %+v", res)
	}
	if lvl := r.LevelOf("expr"); lvl != 0 {
		t.Fatalf("level = %d, want 0", lvl)
	}
}

func TestAbortKindString(t *testing.T) {
	if AbortMaxDepth.String() != "max-depth" || AbortUnbalancedClose.String() != "unbalanced-close" {
		t.Fatalf("unexpected abort kind strings")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Fatalf("empty context must yield nil registry")
	}
	r, _ := newTestRegistry()
	ctx := WithRegistry(context.Background(), r)
	if FromContext(ctx) != r {
		t.Fatalf("registry not propagated")
	}
}
