// Package gemini adapts the Gemini API to the llm.Generator contract.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
)

const op = "gemini"

type Client struct {
	apiKey  string
	model   string
	baseURL string

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
	}
}

// SetTestTransport points the client at a test server. It must be called
// before the first Generate.
func (c *Client) SetTestTransport(url string) {
	c.baseURL = url
}

// generationConfig matches the sampling and safety settings the analysis
// prompts were tuned against.
func generationConfig() *genai.GenerateContentConfig {
	threshold := genai.HarmBlockThresholdBlockMediumAndAbove
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.4),
		TopP:            genai.Ptr[float32](0.8),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 8192,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: threshold},
			{Category: genai.HarmCategoryHateSpeech, Threshold: threshold},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: threshold},
			{Category: genai.HarmCategoryDangerousContent, Threshold: threshold},
		},
	}
}

func (c *Client) init(ctx context.Context) error {
	c.once.Do(func() {
		cfg := &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		}
		if c.baseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
		}
		c.client, c.initErr = genai.NewClient(ctx, cfg)
	})
	return c.initErr
}

// Generate sends prompt as a single user turn and returns the concatenated
// text parts of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Configuration(op, "GEMINI_API_KEY is not set")
	}
	if err := c.init(ctx); err != nil {
		return "", apperr.Configuration(op, "create genai client: %v", err)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), generationConfig())
	if err != nil {
		return "", apperr.Upstream(op, fmt.Errorf("generate content: %w", err))
	}

	text, err := firstCandidateText(resp)
	if err != nil {
		return "", apperr.Upstream(op, err)
	}
	return text, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("response has no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("candidate has no content (finish reason %s)", resp.Candidates[0].FinishReason)
	}

	var sb strings.Builder
	found := false
	for _, part := range content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		found = true
		sb.WriteString(part.Text)
	}
	if !found {
		return "", errors.New("candidate has no text parts")
	}
	return sb.String(), nil
}
