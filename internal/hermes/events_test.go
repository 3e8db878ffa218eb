package hermes

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type recorder struct {
	subjects []string
	payloads []any
	err      error
}

func (r *recorder) Publish(subject string, data any) error {
	r.subjects = append(r.subjects, subject)
	r.payloads = append(r.payloads, data)
	return r.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmit_Completed(t *testing.T) {
	rec := &recorder{}
	ev := NewEvent("id-1", "analyze", time.Now().Add(-150*time.Millisecond))
	ev.DetectedMood = "sadness"

	Emit(rec, discardLogger(), ev)

	if len(rec.subjects) != 1 || rec.subjects[0] != SubjectAnalysisCompleted {
		t.Fatalf("expected one completed event, got %v", rec.subjects)
	}
	got := rec.payloads[0].(AnalysisEvent)
	if got.DurationMS < 150 {
		t.Errorf("expected duration >= 150ms, got %d", got.DurationMS)
	}
}

func TestEmit_Failed(t *testing.T) {
	rec := &recorder{}
	ev := NewEvent("id-2", "daily_plan", time.Now())
	ev.Error = "daily plan: parse error"
	ev.ErrorKind = "parse"

	Emit(rec, discardLogger(), ev)

	if rec.subjects[0] != SubjectAnalysisFailed {
		t.Errorf("expected failed subject, got %s", rec.subjects[0])
	}
}

func TestEmit_PublishErrorIsSwallowed(t *testing.T) {
	rec := &recorder{err: errors.New("nats: connection closed")}
	Emit(rec, discardLogger(), NewEvent("id-3", "media", time.Now()))
	Emit(nil, discardLogger(), NewEvent("id-4", "media", time.Now()))
	if len(rec.subjects) != 1 {
		t.Errorf("expected one publish attempt, got %d", len(rec.subjects))
	}
}

func TestAnalysisEvent_JSON(t *testing.T) {
	ev := AnalysisEvent{
		AnalysisID: "abc",
		Kind:       "unified",
		DurationMS: 42,
		Timestamp:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"analysis_id":"abc"`, `"kind":"unified"`, `"duration_ms":42`, `"timestamp":"2025-01-02T03:04:05Z"`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
	if strings.Contains(s, "error") || strings.Contains(s, "detected_mood") {
		t.Errorf("expected empty optional fields omitted: %s", s)
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(SubjectAnalysisCompleted, nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
