package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"parsetrace/internal/batch"
	"parsetrace/internal/trace"
)

func newTestModel(inputs ...string) (*progressModel, chan batch.Event) {
	ch := make(chan batch.Event, 16)
	return NewProgressModel("expr", inputs, ch).(*progressModel), ch
}

func TestProgressAppliesEvents(t *testing.T) {
	m, _ := newTestModel("1(2)", "1(2(3(4)))")

	m.Update(eventMsg{Index: 0, Status: batch.StatusWorking})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}
	m.Update(eventMsg{Index: 0, Status: batch.StatusDone, Elapsed: time.Millisecond})
	m.Update(eventMsg{Index: 1, Status: batch.StatusError, Err: &trace.AbortError{Kind: trace.AbortMaxDepth}})
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v, want 1", got)
	}
	if m.finished() != 2 || m.aborts != 1 {
		t.Fatalf("finished=%d aborts=%d", m.finished(), m.aborts)
	}

	view := m.View()
	for _, want := range []string{"expr (2/2), 1 aborted", "done", "aborted", `"1(2(3(4)))"`} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressIgnoresUnknownIndex(t *testing.T) {
	m, _ := newTestModel("a")
	if cmd := m.applyEvent(batch.Event{Index: 5, Status: batch.StatusDone}); cmd != nil {
		t.Fatal("expected no command for out-of-range index")
	}
	if m.finished() != 0 {
		t.Fatal("unknown index changed state")
	}
}

func TestProgressQuitsWhenEventsClose(t *testing.T) {
	m, ch := newTestModel("a")
	close(ch)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("msg = %T, want doneMsg", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done {
		t.Fatal("model not marked done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "done: ") {
		t.Errorf("done view missing prefix:\n%s", m.View())
	}
}

func TestProgressEmptyView(t *testing.T) {
	m, _ := newTestModel()
	if m.View() != "" {
		t.Fatal("expected empty view without inputs")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
