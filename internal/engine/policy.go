package engine

import (
	"context"
	"errors"
	"log/slog"
)

// TranscriptAttempt is one step of a transcript retrieval policy.
type TranscriptAttempt struct {
	Name      string
	Languages []string // nil = any language
	// FallThrough reports whether a failure of this attempt lets the next
	// attempt run. nil means never.
	FallThrough func(error) bool
}

// TranscriptPolicy is an ordered list of attempts. The first success wins;
// the last attempt's error is returned as-is.
type TranscriptPolicy []TranscriptAttempt

// DefaultTranscriptPolicy tries the preferred languages, then falls back once
// to any language when the preferred ones are missing or disabled.
func DefaultTranscriptPolicy(preferred []string) TranscriptPolicy {
	if len(preferred) == 0 {
		return TranscriptPolicy{{Name: "any"}}
	}
	return TranscriptPolicy{
		{Name: "preferred", Languages: preferred, FallThrough: IsLanguageMiss},
		{Name: "any"},
	}
}

// IsLanguageMiss reports whether err means "nothing in these languages",
// which is the only condition that permits an unrestricted retry.
func IsLanguageMiss(err error) bool {
	return errors.Is(err, ErrNoTranscriptFound) || errors.Is(err, ErrTranscriptsDisabled)
}

var errEmptyPolicy = errors.New("transcript policy has no attempts")

// Run executes the policy against src. onFallback, if set, is called each
// time a failed attempt hands over to the next one.
func (p TranscriptPolicy) Run(ctx context.Context, src TranscriptSource, videoID string, onFallback func(TranscriptAttempt, error)) ([]Segment, error) {
	if len(p) == 0 {
		return nil, errEmptyPolicy
	}
	for i, a := range p {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		segs, err := src.FetchTranscript(ctx, videoID, a.Languages)
		if err == nil {
			return segs, nil
		}
		last := i == len(p)-1
		if last || a.FallThrough == nil || !a.FallThrough(err) {
			return nil, err
		}
		slog.Debug("transcript: attempt failed, falling through",
			slog.String("id", videoID),
			slog.String("attempt", a.Name),
			slog.String("next", p[i+1].Name),
			slog.Any("error", err))
		if onFallback != nil {
			onFallback(a, err)
		}
	}
	return nil, errEmptyPolicy // unreachable
}
