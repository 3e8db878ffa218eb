package hermes

import (
	"log/slog"
	"time"
)

const (
	SubjectAnalysisCompleted = "solace.analysis.completed"
	SubjectAnalysisFailed    = "solace.analysis.failed"
)

// AnalysisEvent describes one finished analysis request. It never carries
// the user's message.
type AnalysisEvent struct {
	AnalysisID   string    `json:"analysis_id"`
	Kind         string    `json:"kind"`
	DetectedMood string    `json:"detected_mood,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
	Error        string    `json:"error,omitempty"`
	ErrorKind    string    `json:"error_kind,omitempty"`
}

func NewEvent(analysisID, kind string, started time.Time) AnalysisEvent {
	now := time.Now().UTC()
	return AnalysisEvent{
		AnalysisID: analysisID,
		Kind:       kind,
		DurationMS: now.Sub(started).Milliseconds(),
		Timestamp:  now,
	}
}

func (e AnalysisEvent) Subject() string {
	if e.Error != "" || e.ErrorKind != "" {
		return SubjectAnalysisFailed
	}
	return SubjectAnalysisCompleted
}

// Emit publishes ev. Failures are logged and otherwise ignored.
func Emit(p Publisher, logger *slog.Logger, ev AnalysisEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ev.Subject(), ev); err != nil {
		logger.Warn("failed to publish analysis event",
			"analysis_id", ev.AnalysisID,
			"subject", ev.Subject(),
			"error", err,
		)
	}
}
