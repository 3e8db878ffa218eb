// Package tavily searches YouTube through the Tavily search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
	"github.com/MikeSquared-Agency/solace/internal/media"
	"github.com/MikeSquared-Agency/solace/internal/metrics"
)

const (
	defaultAPIURL = "https://api.tavily.com/search"
	querySuffix   = " youtube music therapy videos"
	op            = "tavily"
	snippetLen    = 300
)

type Client struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(url string) {
	c.apiURL = url
}

type request struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	IncludeDomains []string `json:"include_domains"`
	MaxResults     int      `json:"max_results"`
}

type response struct {
	Results []struct {
		Title    string  `json:"title"`
		URL      string  `json:"url"`
		Content  string  `json:"content"`
		ImageURL *string `json:"image_url"`
	} `json:"results"`
}

// Search returns up to maxResults YouTube videos for query.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (results []media.Result, err error) {
	if c.apiKey == "" {
		return nil, apperr.Configuration(op, "TAVILY_API_KEY is not set")
	}

	started := time.Now()
	defer func() { metrics.ObserveUpstream("search", op, started, err) }()

	body, err := json.Marshal(request{
		Query:          query + querySuffix,
		SearchDepth:    "advanced",
		IncludeDomains: []string{"youtube.com"},
		MaxResults:     maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Upstream(op, fmt.Errorf("api call: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Upstream(op, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(respBody)
		if len(snippet) > snippetLen {
			snippet = snippet[:snippetLen]
		}
		return nil, apperr.Upstream(op, fmt.Errorf("api error %d: %s", resp.StatusCode, snippet))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, apperr.Upstream(op, fmt.Errorf("unmarshal response: %w", err))
	}

	results = make([]media.Result, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		thumb := ""
		if r.ImageURL != nil {
			thumb = *r.ImageURL
		}
		results = append(results, media.Result{
			Title:        r.Title,
			Description:  r.Content,
			ThumbnailURL: thumb,
			VideoURL:     r.URL,
			VideoID:      VideoID(r.URL),
		})
	}
	return results, nil
}

// VideoID returns the YouTube video id in rawURL: the v query parameter,
// or the path of a youtu.be short link. It returns "" when there is none.
func VideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if strings.TrimPrefix(u.Hostname(), "www.") == "youtu.be" {
		id, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		return id
	}
	return ""
}
