// Package openai adapts any OpenAI-compatible chat completions endpoint to
// the llm.Generator contract.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
)

const (
	op             = "openai"
	defaultBaseURL = "https://api.openai.com/v1"
)

type Client struct {
	apiKey  string
	model   string
	baseURL string
	sdk     openaigo.Client
}

func NewClient(apiKey, model, baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiKey = strings.TrimSpace(apiKey)
	return &Client{
		apiKey:  apiKey,
		model:   strings.TrimSpace(model),
		baseURL: baseURL,
		sdk: openaigo.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(apiKey),
			option.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
			// Retries belong to the caller; the service performs none.
			option.WithMaxRetries(0),
		),
	}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Configuration(op, "OPENAI_API_KEY is not set")
	}

	resp, err := c.sdk.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(c.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage("You are a helpful AI assistant responding with raw content."),
			openaigo.UserMessage(prompt),
		},
		Temperature: openaigo.Float(0.4),
		TopP:        openaigo.Float(0.8),
	})
	if err != nil {
		return "", apperr.Upstream(op, fmt.Errorf("chat completion: %w", err))
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", apperr.Upstream(op, errors.New("response has no choices"))
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", apperr.Upstream(op, errors.New("response has no text content"))
	}
	return content, nil
}
