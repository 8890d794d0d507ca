package engine

import (
	"context"
	"errors"
)

// Upstream failure categories. Transcript sources tag their errors with these
// so the Retriever never depends on a specific upstream library.
var (
	ErrNoTranscriptFound   = errors.New("no transcript found for requested languages")
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrVideoUnavailable    = errors.New("video is unavailable")
)

// Segment is one timed caption unit.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Metadata is the subset of a video snippet the tool returns.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TranscriptSource fetches ordered caption segments for a video.
// An empty languages slice means any available language.
type TranscriptSource interface {
	FetchTranscript(ctx context.Context, videoID string, languages []string) ([]Segment, error)
}

// MetadataSource looks up video snippets by ID. A zero-length result means
// the video does not exist (or is not visible with the given key).
type MetadataSource interface {
	VideoSnippets(ctx context.Context, videoID, apiKey string) ([]Metadata, error)
}

// isUpstreamMiss reports whether err is one of the tagged upstream categories.
func isUpstreamMiss(err error) bool {
	return errors.Is(err, ErrNoTranscriptFound) ||
		errors.Is(err, ErrTranscriptsDisabled) ||
		errors.Is(err, ErrVideoUnavailable)
}
