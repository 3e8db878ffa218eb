package grief

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request is the body of POST /analyze.
type Request struct {
	UserMessage string `json:"user_message"`
}

// Response is the emotional-support analysis returned to the caller.
type Response struct {
	EmotionalValidation string        `json:"emotional_validation"`
	MoodAnalysis        *MoodAnalysis `json:"mood_analysis,omitempty"`
	CopingStrategies    []string      `json:"coping_strategies"`
}

type MoodAnalysis struct {
	DetectedMood  string    `json:"detected_mood"`
	MoodIntensity Intensity `json:"mood_intensity"`
	GriefStage    string    `json:"grief_stage,omitempty"`
}

// DetectedMood returns the detected mood, or "" when the model gave none.
func (r *Response) DetectedMood() string {
	if r == nil || r.MoodAnalysis == nil {
		return ""
	}
	return strings.TrimSpace(r.MoodAnalysis.DetectedMood)
}

// Intensity is a mood intensity on a 1-10 scale. Models sometimes answer
// with floats or quoted numbers; both are accepted, rounded and clamped.
// Zero means the value was null or absent.
type Intensity int

const (
	MinIntensity Intensity = 1
	MaxIntensity Intensity = 10
)

func (i *Intensity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*i = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if slash := strings.Index(s, "/"); slash > 0 {
		// "7/10"
		s = strings.TrimSpace(s[:slash])
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("mood_intensity %s is not a number", string(b))
	}
	*i = ClampIntensity(int(math.Round(f)))
	return nil
}

func (i Intensity) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(i))
}

// ClampIntensity bounds v to [MinIntensity, MaxIntensity].
func ClampIntensity(v int) Intensity {
	switch {
	case v < int(MinIntensity):
		return MinIntensity
	case v > int(MaxIntensity):
		return MaxIntensity
	default:
		return Intensity(v)
	}
}
