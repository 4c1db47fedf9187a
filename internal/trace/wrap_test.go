package trace

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestWrapBalancedInvocations(t *testing.T) {
	r, _ := newTestRegistry()
	p := Wrap(r, DefaultTag, "", "ab", pair(literal("a"), literal("b")))

	const n = 7
	for i := 0; i < n; i++ {
		p("ab")
		p("zz")
	}
	tr := r.GetOrCreate(DefaultTag)
	if tr.Len() != 2*2*n {
		t.Fatalf("got %d events, want %d", tr.Len(), 4*n)
	}
	if tr.Level() != 0 {
		t.Fatalf("level = %d, want 0", tr.Level())
	}
}

func TestWrapNestedRendering(t *testing.T) {
	r, _ := newTestRegistry()
	p := Wrap(r, DefaultTag, "", "outer",
		pair(Wrap(r, DefaultTag, "", "inner_a", literal("a")), Wrap(r, DefaultTag, "", "inner_b", literal("b"))))

	res := p("abc")
	if !res.IsOk() || res.Rest != "c" {
		t.Fatalf("unexpected result: %+v", res)
	}

	want := strings.Join([]string{
		`outer("abc")`,
		`| inner_a("abc")`,
		`| inner_a("abc") -> Ok("a")`,
		`| inner_b("bc")`,
		`| inner_b("bc") -> Ok("b")`,
		`outer("abc") -> Ok(["a", "b"])`,
		``,
	}, "\n")
	if got := r.Render(DefaultTag); got != want {
		t.Fatalf("render:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestWrapRecordsOutcomeKinds(t *testing.T) {
	failing := func(input string) Result[string] { return Fatal[string](errors.New("cut")) }
	tests := []struct {
		name  string
		p     Parser[string]
		input string
		kind  Kind
		line  string
	}{
		{"ok", literal("ab"), "abc", KindOk, `-> Ok("ab")`},
		{"error", literal("ab"), "xy", KindError, `-> Error(no match)`},
		{"failure", failing, "xy", KindFailure, `-> Failure(cut)`},
		{"incomplete", literal("abc"), "a", KindIncomplete, `-> Incomplete(Size(2))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegistry()
			res := Wrap(r, "k", "", tt.name, tt.p)(tt.input)
			if res.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", res.Kind, tt.kind)
			}
			events := r.GetOrCreate("k").Events()
			if events[1].Kind != tt.kind {
				t.Fatalf("close kind = %s, want %s", events[1].Kind, tt.kind)
			}
			if !strings.Contains(r.Render("k"), tt.line) {
				t.Fatalf("render %q does not contain %q", r.Render("k"), tt.line)
			}
		})
	}
}

func TestWrapTagsAreIndependent(t *testing.T) {
	r, _ := newTestRegistry()
	user := Wrap(r, "user_parser", "", "user", pair(
		Wrap(r, "name_parser", "Parsing name", "name", literal("john")),
		Wrap(r, "id_parser", "", "id", literal("-123")),
	))
	user("john-123")

	for tag, want := range map[string]int{"user_parser": 2, "name_parser": 2, "id_parser": 2, DefaultTag: 0} {
		if n := r.GetOrCreate(tag).Len(); n != want {
			t.Errorf("%s: %d events, want %d", tag, n, want)
		}
	}
	// depth is per tag, so the nested parsers start at zero on their own channel
	if ev := r.GetOrCreate("name_parser").Events()[0]; ev.Depth != 0 {
		t.Fatalf("name_parser open depth = %d, want 0", ev.Depth)
	}
}

func TestWrapNilRegistryPassesThrough(t *testing.T) {
	var r *Registry
	res := Wrap(r, DefaultTag, "ctx", "lit", literal("a"))("abc")
	if !res.IsOk() || res.Value != "a" {
		t.Fatalf("unexpected result: %+v", res)
	}
	res = Silence(r, DefaultTag, "ctx", "lit", literal("a"))("x")
	if res.Kind != KindError || !errors.Is(res.Err, errNoMatch) {
		t.Fatalf("nil registry must not enrich: %+v", res)
	}
}

func TestSilenceHidesSubtree(t *testing.T) {
	item := func(r *Registry) Parser[string] {
		return Wrap(r, DefaultTag, "", "item_name", literal("apple"))
	}
	list := func(r *Registry, silenced bool) Parser[[]string] {
		var first Parser[string]
		if silenced {
			first = Silence(r, DefaultTag, "", "list_item", item(r))
		} else {
			first = Wrap(r, DefaultTag, "", "list_item", item(r))
		}
		return Wrap(r, DefaultTag, "", "list", pair(first, Wrap(r, DefaultTag, "", "separator", literal(","))))
	}

	plain, _ := newTestRegistry()
	want := list(plain, false)("apple,banana")

	r, _ := newTestRegistry()
	got := list(r, true)("apple,banana")

	if !reflect.DeepEqual(want, got) {
		t.Fatalf("silencing changed the result: %+v vs %+v", want, got)
	}

	rendered := r.Render(DefaultTag)
	for _, hidden := range []string{"list_item", "item_name"} {
		if strings.Contains(rendered, hidden) {
			t.Errorf("%s leaked into the trace:\n%s", hidden, rendered)
		}
	}
	for _, shown := range []string{"list(", "separator("} {
		if !strings.Contains(rendered, shown) {
			t.Errorf("%s missing from the trace:\n%s", shown, rendered)
		}
	}
	if lvl := r.LevelOf(DefaultTag); lvl != 0 {
		t.Fatalf("level = %d, want 0", lvl)
	}
	if r.Silencing() {
		t.Fatalf("silence stack not empty after the region ended")
	}

	silent := r.Silenced().Events()
	if len(silent) != 4 {
		t.Fatalf("silent buffer has %d events, want 4", len(silent))
	}
	// the region is aligned with the depth it would have had under "list"
	wantDepths := []int{1, 2, 2, 1}
	for i, ev := range silent {
		if ev.Depth != wantDepths[i] {
			t.Errorf("silent event %d depth = %d, want %d", i, ev.Depth, wantDepths[i])
		}
	}
	if !strings.Contains(r.RenderSilenced(), "| | item_name(") {
		t.Fatalf("silent rendering not indented:\n%s", r.RenderSilenced())
	}
}

func TestSilenceRedirectsEveryTag(t *testing.T) {
	r, _ := newTestRegistry()
	inner := Wrap(r, "other", "", "other_inner", literal("x"))
	Silence(r, DefaultTag, "", "quiet", inner)("xyz")

	if n := r.GetOrCreate("other").Len(); n != 0 {
		t.Fatalf("tag other recorded %d events inside a silenced region", n)
	}
	if n := r.Silenced().Len(); n != 4 {
		t.Fatalf("silent buffer has %d events, want 4", n)
	}
}

func TestSilenceNested(t *testing.T) {
	r, _ := newTestRegistry()
	deep := Silence(r, DefaultTag, "", "deep", literal("a"))
	mid := Silence(r, DefaultTag, "", "mid", Wrap(r, DefaultTag, "", "wrapped", deep))
	Wrap(r, DefaultTag, "", "top", mid)("abc")

	if got := r.GetOrCreate(DefaultTag).Len(); got != 2 {
		t.Fatalf("top-level trace has %d events, want 2", got)
	}
	silent := r.Silenced().Events()
	wantLocs := []string{"mid", "wrapped", "deep", "deep", "wrapped", "mid"}
	wantDepths := []int{1, 2, 3, 3, 2, 1}
	if len(silent) != len(wantLocs) {
		t.Fatalf("silent buffer has %d events, want %d", len(silent), len(wantLocs))
	}
	for i, ev := range silent {
		if ev.Location != wantLocs[i] || ev.Depth != wantDepths[i] {
			t.Errorf("silent event %d = %s@%d, want %s@%d", i, ev.Location, ev.Depth, wantLocs[i], wantDepths[i])
		}
	}
}

func TestSilenceIgnoresPrintImmediate(t *testing.T) {
	r, out := newTestRegistry()
	r.SetPrintImmediate(DefaultTag, true)
	Silence(r, DefaultTag, "", "hidden", Wrap(r, DefaultTag, "", "also_hidden", literal("a")))("a")
	if out.Len() != 0 {
		t.Fatalf("silenced region printed live output: %q", out.String())
	}
}

func TestSilenceStackUnwindsOnAbort(t *testing.T) {
	r, _ := newTestRegistry()
	boom := func(string) Result[string] {
		r.Close("empty", "", "", "boom", KindOk, "")
		return Ok("", "")
	}
	mustAbort(t, func() { Silence(r, DefaultTag, "", "guarded", boom)("x") })
	if r.Silencing() {
		t.Fatalf("silence stack left non-empty after abort")
	}
}

func TestWrapEnrichesErrorsWithContext(t *testing.T) {
	r, _ := newTestRegistry(WithEnricher(Breadcrumbs))
	res := Wrap(r, DefaultTag, "ctx", "loc", literal("a"))("zzz")

	if res.Kind != KindError {
		t.Fatalf("kind = %s, want Error", res.Kind)
	}
	if !errors.Is(res.Err, errNoMatch) {
		t.Fatalf("original error lost: %v", res.Err)
	}
	crumbs := Trail(res.Err)
	if len(crumbs) != 1 || crumbs[0].Location != "loc" || crumbs[0].Context != "ctx" || crumbs[0].Input != "zzz" {
		t.Fatalf("unexpected trail: %+v", crumbs)
	}
}

func TestWrapEnrichmentSkips(t *testing.T) {
	fatal := func(string) Result[string] { return Fatal[string](errNoMatch) }
	tests := []struct {
		name     string
		opts     []Option
		context  string
		p        Parser[string]
		input    string
		enriched bool
	}{
		{"no enricher", nil, "ctx", literal("a"), "z", false},
		{"no context", []Option{WithEnricher(Breadcrumbs)}, "", literal("a"), "z", false},
		{"success", []Option{WithEnricher(Breadcrumbs)}, "ctx", literal("a"), "a", false},
		{"incomplete", []Option{WithEnricher(Breadcrumbs)}, "ctx", literal("abc"), "ab", false},
		{"failure", []Option{WithEnricher(Breadcrumbs)}, "ctx", fatal, "z", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegistry(tt.opts...)
			plain := tt.p(tt.input)
			res := Wrap(r, DefaultTag, tt.context, "loc", tt.p)(tt.input)
			if res.Kind != plain.Kind || res.Rest != plain.Rest || res.Value != plain.Value || res.Needed != plain.Needed {
				t.Fatalf("wrapper changed the result: %+v vs %+v", res, plain)
			}
			if got := len(Trail(res.Err)) > 0; got != tt.enriched {
				t.Fatalf("enriched = %v, want %v", got, tt.enriched)
			}
		})
	}
}

type crumbError struct {
	crumbs []string
}

func (e *crumbError) Error() string { return strings.Join(e.crumbs, " <- ") }

func (e *crumbError) AddContext(input, location, context string) error {
	return &crumbError{crumbs: append(append([]string(nil), e.crumbs...), location+":"+context)}
}

func TestBreadcrumbsUsesContextAdder(t *testing.T) {
	r, _ := newTestRegistry(WithEnricher(Breadcrumbs))
	failing := func(string) Result[string] { return Fail[string](&crumbError{crumbs: []string{"tag"}}) }
	p := Wrap(r, DefaultTag, "outer ctx", "outer", Wrap(r, DefaultTag, "inner ctx", "inner", failing))

	res := p("x")
	if got, want := res.Err.Error(), "tag <- inner:inner ctx <- outer:outer ctx"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestSilenceEnriches(t *testing.T) {
	r, _ := newTestRegistry(WithEnricher(Breadcrumbs))
	res := Silence(r, DefaultTag, "quiet ctx", "quiet", literal("a"))("b")
	crumbs := Trail(res.Err)
	if len(crumbs) != 1 || crumbs[0].Context != "quiet ctx" {
		t.Fatalf("unexpected trail: %+v", crumbs)
	}
}
