package grief

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

const validReply = `{
  "emotional_validation": "Losing a companion hurts deeply.",
  "mood_analysis": {"detected_mood": "sadness", "mood_intensity": 8, "grief_stage": "depression"},
  "coping_strategies": ["1. Rest", "2. Talk to a friend", "3. Journal", "4. Walk", "5. Make a memory box"]
}`

func TestAnalyze_Success(t *testing.T) {
	llm := &fakeLLM{reply: "Here you go:\n```json\n" + validReply + "\n```"}
	svc := New(llm, discardLogger())

	resp, err := svc.Analyze(context.Background(), "I lost my dog yesterday", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.EmotionalValidation != "Losing a companion hurts deeply." {
		t.Errorf("unexpected validation %q", resp.EmotionalValidation)
	}
	if resp.DetectedMood() != "sadness" {
		t.Errorf("expected sadness, got %q", resp.DetectedMood())
	}
	if resp.MoodAnalysis.MoodIntensity != 8 {
		t.Errorf("expected intensity 8, got %d", resp.MoodAnalysis.MoodIntensity)
	}
	if len(resp.CopingStrategies) != 5 || !strings.HasPrefix(resp.CopingStrategies[4], "5. ") {
		t.Errorf("unexpected strategies %v", resp.CopingStrategies)
	}
	if len(llm.prompts) != 1 || !strings.Contains(llm.prompts[0], "I lost my dog yesterday") {
		t.Errorf("expected one prompt embedding the message, got %d", len(llm.prompts))
	}
}

func TestAnalyze_MoodAnalysisOptional(t *testing.T) {
	llm := &fakeLLM{reply: `{"emotional_validation":"ok","coping_strategies":["1. Breathe"]}`}
	svc := New(llm, discardLogger())

	resp, err := svc.Analyze(context.Background(), "meh", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.MoodAnalysis != nil {
		t.Errorf("expected nil mood analysis, got %+v", resp.MoodAnalysis)
	}
	if resp.DetectedMood() != "" {
		t.Errorf("expected empty mood")
	}

	out, _ := json.Marshal(resp)
	if strings.Contains(string(out), "mood_analysis") {
		t.Errorf("expected mood_analysis omitted, got %s", out)
	}
}

func TestAnalyze_PassesMoodContext(t *testing.T) {
	llm := &fakeLLM{reply: validReply}
	svc := New(llm, discardLogger())

	if _, err := svc.Analyze(context.Background(), "hi", "numb"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(llm.prompts[0], `"numb"`) {
		t.Error("expected mood context in prompt")
	}
}

func TestAnalyze_UpstreamErrorPropagates(t *testing.T) {
	upstream := apperr.Upstream("gemini", errors.New("status 500"))
	svc := New(&fakeLLM{err: upstream}, discardLogger())

	_, err := svc.Analyze(context.Background(), "hello", "")
	if !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error to propagate, got %v", err)
	}
}

func TestAnalyze_ParseError(t *testing.T) {
	svc := New(&fakeLLM{reply: "I'm so sorry for your loss."}, discardLogger())

	_, err := svc.Analyze(context.Background(), "hello", "")
	var pe *apperr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if pe.Raw != "I'm so sorry for your loss." {
		t.Errorf("expected raw text attached, got %q", pe.Raw)
	}
}

func TestAnalyze_EmptyMessage(t *testing.T) {
	llm := &fakeLLM{reply: validReply}
	svc := New(llm, discardLogger())

	_, err := svc.Analyze(context.Background(), "   ", "")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(llm.prompts) != 0 {
		t.Error("expected no model call for empty message")
	}
}

func TestIntensity_Unmarshal(t *testing.T) {
	cases := map[string]Intensity{
		`7`:      7,
		`7.6`:    8,
		`"6"`:    6,
		`"9/10"`: 9,
		`0`:      1,
		`15`:     10,
	}
	for in, want := range cases {
		var got Intensity
		if err := json.Unmarshal([]byte(in), &got); err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("%s: expected %d, got %d", in, want, got)
		}
	}

	var bad Intensity
	if err := json.Unmarshal([]byte(`"very"`), &bad); err == nil {
		t.Error("expected error for non-numeric intensity")
	}
}

func TestAnalyze_MissingIntensityIsParseError(t *testing.T) {
	replies := []string{
		`{"emotional_validation":"ok","mood_analysis":{"detected_mood":"sad"},"coping_strategies":[]}`,
		`{"emotional_validation":"ok","mood_analysis":{"detected_mood":"sad","mood_intensity":null},"coping_strategies":[]}`,
	}
	for _, reply := range replies {
		svc := New(&fakeLLM{reply: reply}, discardLogger())

		resp, err := svc.Analyze(context.Background(), "hello", "")
		var pe *apperr.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%s: expected parse error, got resp=%+v err=%v", reply, resp, err)
		}
		if pe.Raw != reply {
			t.Errorf("expected raw reply attached, got %q", pe.Raw)
		}
	}
}

func TestAnalyze_IntensityClampedIntoRange(t *testing.T) {
	reply := `{"emotional_validation":"ok","mood_analysis":{"detected_mood":"sad","mood_intensity":0},"coping_strategies":[]}`
	svc := New(&fakeLLM{reply: reply}, discardLogger())

	resp, err := svc.Analyze(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.MoodAnalysis.MoodIntensity != MinIntensity {
		t.Errorf("expected intensity %d, got %d", MinIntensity, resp.MoodAnalysis.MoodIntensity)
	}
}
