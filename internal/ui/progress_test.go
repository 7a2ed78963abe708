package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bignum/internal/bignum"
	"bignum/internal/primesearch"
)

func TestSearchModelAppliesEvents(t *testing.T) {
	events := make(chan primesearch.Event)
	m := NewSearchModel("prime gen", 2, events).(*searchModel)

	m.Update(eventMsg{Job: 0, Status: primesearch.StatusSearching, Attempts: 32})
	m.Update(eventMsg{Job: 0, Status: primesearch.StatusDone, Attempts: 40, Prime: bignum.IntFromInt64(0xfb)})
	m.Update(eventMsg{Job: 1, Status: primesearch.StatusError, Attempts: 5, Err: errors.New("gave up")})
	m.Update(eventMsg{Job: 7, Status: primesearch.StatusDone})

	if m.jobs[0].attempts != 40 || m.jobs[0].prime != "fb" {
		t.Fatalf("job 0 = %+v", m.jobs[0])
	}
	if m.jobs[1].err != "gave up" {
		t.Fatalf("job 1 = %+v", m.jobs[1])
	}
	if m.finished() != 2 {
		t.Fatalf("finished = %d, want 2", m.finished())
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.done {
		t.Fatal("doneMsg must quit")
	}
	view := m.View()
	for _, want := range []string{"done: prime gen (2/2)", "fb", "gave up"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSearchModelResize(t *testing.T) {
	m := NewSearchModel("x", 1, nil).(*searchModel)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.prog.Width != 116 {
		t.Fatalf("width = %d, prog = %d", m.width, m.prog.Width)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdef", 10, "abcdef"},
		{"abcdef", 5, "ab..."},
		{"abcdef", 2, "ab"},
		{"１２３４", 5, "１..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
