package media

import "context"

const (
	TypeMusic = "music"

	DefaultMaxResults = 5
	MaxMaxResults     = 20
)

// QueryMode selects how the search query is derived from the mood.
type QueryMode string

const (
	// QueryLLM asks the model for a search query.
	QueryLLM QueryMode = "llm"
	// QueryDirect searches for "<mood> music" without a model call.
	QueryDirect QueryMode = "direct"
)

// Request is the body of POST /media-recommendations.
type Request struct {
	UserMessage string `json:"user_message"`
	MediaType   string `json:"media_type,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// Result is one recommended video.
type Result struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	ThumbnailURL         string `json:"thumbnail_url"`
	VideoURL             string `json:"video_url"`
	VideoID              string `json:"video_id"`
	RelevanceExplanation string `json:"relevance_explanation,omitempty"`
}

type Response struct {
	DetectedMood    string   `json:"detected_mood"`
	SearchQueryUsed string   `json:"search_query_used"`
	MediaType       string   `json:"media_type"`
	Recommendations []Result `json:"recommendations"`
}

// Searcher finds videos for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Options describes one recommendation request. A non-empty Mood skips
// mood detection.
type Options struct {
	Message    string
	MediaType  string
	MaxResults int
	Mood       string
}
