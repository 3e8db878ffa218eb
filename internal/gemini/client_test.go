package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
)

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "test-model:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if _, ok := body["contents"]; !ok {
			t.Errorf("expected contents in request body")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]any{{"text": `{"ok":`}, {"text": ` true}`}},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL + "/")

	out, err := c.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"ok": true}` {
		t.Errorf("expected concatenated parts, got %q", out)
	}
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 503, "message": "overloaded", "status": "UNAVAILABLE"},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL + "/")

	_, err := c.Generate(context.Background(), "hello")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGenerate_MissingKey(t *testing.T) {
	c := NewClient("  ", "test-model")

	_, err := c.Generate(context.Background(), "hello")
	if !apperr.Is(err, apperr.KindConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestFirstCandidateText(t *testing.T) {
	if _, err := firstCandidateText(nil); err == nil {
		t.Error("expected error for nil response")
	}

	blocked := &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
	}
	if _, err := firstCandidateText(blocked); err == nil || !strings.Contains(err.Error(), "blocked") {
		t.Errorf("expected blocked error, got %v", err)
	}

	noText := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{}}}}},
	}
	if _, err := firstCandidateText(noText); err == nil {
		t.Error("expected error for candidate without text")
	}
}

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig()
	if cfg.Temperature == nil || *cfg.Temperature != 0.4 {
		t.Errorf("expected temperature 0.4")
	}
	if cfg.MaxOutputTokens != 8192 {
		t.Errorf("expected 8192 max tokens, got %d", cfg.MaxOutputTokens)
	}
	if len(cfg.SafetySettings) != 4 {
		t.Errorf("expected 4 safety settings, got %d", len(cfg.SafetySettings))
	}
}
