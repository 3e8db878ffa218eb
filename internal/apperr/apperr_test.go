package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf_WrappedErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"configuration", Configuration("tavily", "TAVILY_API_KEY is not set"), KindConfiguration},
		{"upstream", Upstream("gemini", errors.New("status 503")), KindUpstream},
		{"validation", Validation("media", "unsupported media type %q", "comedy"), KindValidation},
		{"parse", &ParseError{Raw: "nope", Err: errors.New("no object")}, KindParse},
		{"wrapped parse", fmt.Errorf("grief: %w", &ParseError{Raw: "x", Err: errors.New("bad")}), KindParse},
		{"wrapped upstream", fmt.Errorf("media search: %w", Upstream("tavily", errors.New("500"))), KindUpstream},
		{"plain", errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestKindOf_Nil(t *testing.T) {
	if got := KindOf(nil); got != "" {
		t.Errorf("expected empty kind for nil, got %q", got)
	}
	if Is(nil, KindInternal) {
		t.Error("nil error must not match any kind")
	}
}

func TestParseError_TruncatesRaw(t *testing.T) {
	err := &ParseError{Raw: strings.Repeat("a", 500), Err: errors.New("no object")}
	msg := err.Error()
	if len(msg) > 300 {
		t.Errorf("expected truncated message, got %d chars", len(msg))
	}
	if len(err.Raw) != 500 {
		t.Errorf("raw text must be kept in full, got %d", len(err.Raw))
	}
}

func TestError_MessageIncludesOp(t *testing.T) {
	err := Configuration("gemini", "GEMINI_API_KEY is not set")
	if !strings.Contains(err.Error(), "gemini") || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
