package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidateVideoID rejects anything that is not an 11-character YouTube ID.
func ValidateVideoID(id string) error {
	if strings.TrimSpace(id) == "" {
		return newKindError(ErrInvalidInput, nil, "video ID must be a non-empty string")
	}
	if !videoIDRE.MatchString(id) {
		return newKindError(ErrInvalidInput, nil, "invalid YouTube video ID format: %q", id)
	}
	return nil
}

// Retriever fetches metadata and transcripts for one video per call.
type Retriever struct {
	cfg         Config
	metadata    MetadataSource
	transcripts TranscriptSource
	policy      TranscriptPolicy
}

// NewRetriever wires the upstream sources with the given configuration.
func NewRetriever(cfg Config, metadata MetadataSource, transcripts TranscriptSource) *Retriever {
	return &Retriever{
		cfg:         cfg,
		metadata:    metadata,
		transcripts: transcripts,
		policy:      DefaultTranscriptPolicy(cfg.TranscriptLangs),
	}
}

// FetchTranscript returns the video's transcript as one space-joined string.
func (r *Retriever) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	if err := ValidateVideoID(videoID); err != nil {
		return "", err
	}
	metrics.TranscriptRequests.Add(1)

	var segs []Segment
	err := TrackOperation(ctx, "transcript", func(ctx context.Context) error {
		var err error
		segs, err = r.policy.Run(ctx, r.transcripts, videoID, func(TranscriptAttempt, error) {
			metrics.TranscriptFallbacks.Add(1)
		})
		return err
	})
	if err != nil {
		metrics.TranscriptErrors.Add(1)
		if isUpstreamMiss(err) {
			return "", newKindError(ErrNoTranscript, err, "no transcript available for this video")
		}
		return "", newKindError(ErrTranscriptFetch, err, "failed to get transcript: %s", err.Error())
	}

	text := JoinSegments(segs)
	if text == "" {
		metrics.TranscriptErrors.Add(1)
		return "", newKindError(ErrNoTranscript, nil, "no transcript available for this video")
	}
	slog.Debug("transcript: fetched",
		slog.String("id", videoID),
		slog.Int("segments", len(segs)),
		slog.Int("chars", len(text)))
	return text, nil
}

// FetchMetadata returns the video's sanitized title and raw description.
func (r *Retriever) FetchMetadata(ctx context.Context, videoID string) (Metadata, error) {
	if !r.cfg.HasCredential() {
		return Metadata{}, errMissingKey()
	}
	if err := ValidateVideoID(videoID); err != nil {
		return Metadata{}, err
	}
	metrics.MetadataRequests.Add(1)

	var items []Metadata
	err := TrackOperation(ctx, "metadata", func(ctx context.Context) error {
		var err error
		items, err = r.metadata.VideoSnippets(ctx, videoID, r.cfg.YouTubeAPIKey)
		return err
	})
	if err != nil {
		metrics.MetadataErrors.Add(1)
		return Metadata{}, newKindError(ErrMetadataFetch, err, "failed to get metadata: %s", err.Error())
	}
	if len(items) == 0 {
		metrics.MetadataErrors.Add(1)
		return Metadata{}, newKindError(ErrVideoNotFound, nil, "video not found: %s", videoID)
	}

	first := items[0]
	md := Metadata{
		Title:       SanitizeTitle(first.Title),
		Description: first.Description,
	}
	slog.Debug("metadata: fetched",
		slog.String("id", videoID),
		slog.String("raw_title", first.Title),
		slog.String("title", md.Title))
	return md, nil
}

// Execute is the tool entry point: metadata, then transcript, merged into
// one record. Every failure comes back wrapped in ErrToolFailure.
func (r *Retriever) Execute(ctx context.Context, videoID string) (VideoRecord, error) {
	metrics.ToolCalls.Add(1)
	rec, err := r.execute(ctx, videoID)
	if err != nil {
		metrics.ToolErrors.Add(1)
		slog.Debug("youtube_transcript failed",
			slog.String("id", videoID),
			slog.String("kind", KindOf(err)),
			slog.Any("error", err))
		return VideoRecord{}, toolFailure(err)
	}
	return rec, nil
}

func (r *Retriever) execute(ctx context.Context, videoID string) (VideoRecord, error) {
	if !r.cfg.HasCredential() {
		return VideoRecord{}, errMissingKey()
	}
	if videoID == "" {
		return VideoRecord{}, newKindError(ErrInvalidInput, nil, "video_id argument is required")
	}

	md, err := r.FetchMetadata(ctx, videoID)
	if err != nil {
		return VideoRecord{}, err
	}
	transcript, err := r.FetchTranscript(ctx, videoID)
	if err != nil {
		return VideoRecord{}, err
	}
	return VideoRecord{
		VideoID:     videoID,
		Title:       md.Title,
		Transcript:  transcript,
		Description: md.Description,
	}, nil
}

// ExecuteJSON runs Execute and serializes the record.
func (r *Retriever) ExecuteJSON(ctx context.Context, videoID string) ([]byte, error) {
	rec, err := r.Execute(ctx, videoID)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, toolFailure(fmt.Errorf("json marshal: %w", err))
	}
	return data, nil
}

func errMissingKey() error {
	return newKindError(ErrMissingCredential, nil, "YOUTUBE_API_KEY environment variable not set")
}
