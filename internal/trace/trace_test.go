package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "Phase", "DETAIL", "debug"} {
		l, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if !strings.EqualFold(l.String(), name) {
			t.Fatalf("ParseLevel(%q).String() = %q", name, l)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelError, ScopeCommand, false},
		{LevelPhase, ScopeBatch, true},
		{LevelPhase, ScopeJob, false},
		{LevelDetail, ScopeJob, true},
		{LevelDetail, ScopeCandidate, false},
		{LevelDebug, ScopeCandidate, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	root := Begin(tr, ScopeBatch, "prime gen", 0)
	job := Begin(tr, ScopeJob, "job:0", root.ID())
	Point(tr, ScopeCandidate, "candidate", job.ID(), "dropped at detail")
	job.WithExtra("bits", "64").WithExtra("attempts", "12").End("found")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ prime gen") || !strings.Contains(lines[1], "  → job:0") {
		t.Fatalf("unexpected begin lines:\n%s", out)
	}
	if !strings.Contains(lines[2], "← job:0 (found) {attempts=12, bits=64}") {
		t.Fatalf("extras not sorted or missing: %q", lines[2])
	}
	if strings.Contains(out, "candidate") {
		t.Fatal("candidate event leaked through LevelDetail")
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeCandidate, "candidate", 7, "composite")
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid NDJSON %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "candidate" || got["detail"] != "composite" {
		t.Fatalf("unexpected event: %v", got)
	}
	if got["parent_id"] != float64(7) {
		t.Fatalf("parent_id = %v, want 7", got["parent_id"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeCommand, name, 0, "")
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("Dump wrote:\n%s", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	off, err := New(Config{Level: LevelOff})
	if err != nil || off.Enabled() {
		t.Fatalf("LevelOff: %v, enabled=%v", err, off.Enabled())
	}
	var buf bytes.Buffer
	both, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(both, ScopeCommand, "calc", 0).End("")
	multi, ok := both.(*MultiTracer)
	if !ok {
		t.Fatalf("ModeBoth returned %T", both)
	}
	if n := len(multi.Ring().Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events, want 2", n)
	}
	if strings.Count(buf.String(), "calc") != 2 {
		t.Fatalf("stream output:\n%s", buf.String())
	}
	if err := both.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	r := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx, outer := Start(ctx, ScopeBatch, "outer")
	_, inner := Start(ctx, ScopeJob, "inner")
	inner.End("")
	outer.End("")
	snap := r.Snapshot()
	if snap[1].Name != "inner" || snap[1].ParentID != outer.ID() {
		t.Fatalf("inner span parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
	if ParentSpan(context.Background()) != 0 {
		t.Fatal("ParentSpan on empty context must be 0")
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	s := Begin(Nop, ScopeCommand, "x", 0)
	if s.ID() != 0 || s.WithExtra("k", "v").End("") != 0 {
		t.Fatal("disabled span recorded something")
	}
	var nilSpan *Span
	if nilSpan.ID() != 0 || nilSpan.End("") != 0 {
		t.Fatal("nil span recorded something")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(64, LevelError)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat {
		t.Fatalf("no heartbeat recorded: %v", snap)
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat started on a disabled tracer")
	}
}
