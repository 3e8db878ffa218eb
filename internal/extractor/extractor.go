// Package extractor recovers a JSON object from free-form model output.
//
// Models are told to answer with strict JSON but routinely wrap it in prose or
// markdown fences. Extract tries progressively looser strategies and returns
// the first one that yields a valid JSON object:
//
//  1. the whole reply;
//  2. the first fenced block (``` or ```json);
//  3. balanced-brace substrings nested at most three levels, longest first;
//  4. the span from the first '{' to the last '}'.
package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
	"github.com/MikeSquared-Agency/solace/internal/metrics"
)

type Strategy string

const (
	StrategyDirect   Strategy = "direct"
	StrategyFenced   Strategy = "fenced"
	StrategyBalanced Strategy = "balanced"
	StrategySpan     Strategy = "span"
)

// Result is a recovered JSON object and the strategy that found it.
type Result struct {
	JSON     json.RawMessage
	Strategy Strategy
}

var (
	fencePattern = regexp.MustCompile("(?s)```[A-Za-z]*[ \t]*\\r?\\n?(.*?)```")

	// RE2 has no recursion, so nesting is unrolled to three levels.
	balancedPattern = regexp.MustCompile(`\{(?:[^{}]|\{(?:[^{}]|\{[^{}]*\})*\})*\}`)
)

// Extract returns the first JSON object recoverable from raw. On failure the
// error is an *apperr.ParseError holding raw.
func Extract(raw string) (Result, error) {
	res, err := extract(raw)
	if err != nil {
		metrics.Extractions.WithLabelValues("failed").Inc()
		return Result{}, err
	}
	metrics.Extractions.WithLabelValues(string(res.Strategy)).Inc()
	return res, nil
}

// Decode extracts a JSON object from raw and unmarshals it into v.
func Decode(raw string, v any) (Strategy, error) {
	res, err := Extract(raw)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(res.JSON, v); err != nil {
		return res.Strategy, &apperr.ParseError{Raw: raw, Err: fmt.Errorf("decode %s object: %w", res.Strategy, err)}
	}
	return res.Strategy, nil
}

func extract(raw string) (Result, error) {
	if obj, ok := asObject(raw); ok {
		return Result{JSON: obj, Strategy: StrategyDirect}, nil
	}

	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		if obj, ok := asObject(m[1]); ok {
			return Result{JSON: obj, Strategy: StrategyFenced}, nil
		}
	}

	candidates := balancedPattern.FindAllString(raw, -1)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	for _, c := range candidates {
		if obj, ok := asObject(c); ok {
			return Result{JSON: obj, Strategy: StrategyBalanced}, nil
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Result{}, &apperr.ParseError{Raw: raw, Err: errors.New("no JSON object delimiters in response")}
	}
	if obj, ok := asObject(raw[start : end+1]); ok {
		return Result{JSON: obj, Strategy: StrategySpan}, nil
	}

	return Result{}, &apperr.ParseError{Raw: raw, Err: errors.New("no parseable JSON object in response")}
}

// asObject reports whether s is exactly one valid JSON object.
func asObject(s string) (json.RawMessage, bool) {
	b := bytes.TrimSpace([]byte(s))
	if len(b) == 0 || b[0] != '{' {
		return nil, false
	}
	if !json.Valid(b) {
		return nil, false
	}
	return json.RawMessage(b), true
}
