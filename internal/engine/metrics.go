package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ToolCalls           atomic.Int64
	ToolErrors          atomic.Int64
	MetadataRequests    atomic.Int64
	MetadataErrors      atomic.Int64
	TranscriptRequests  atomic.Int64
	TranscriptErrors    atomic.Int64
	TranscriptFallbacks atomic.Int64
	Sanitizations       atomic.Int64
}

var metricKeys = []string{
	"tool_calls", "tool_errors",
	"metadata_requests", "metadata_errors",
	"transcript_requests", "transcript_errors", "transcript_fallbacks",
	"sanitizations",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"tool_calls":           metrics.ToolCalls.Load(),
		"tool_errors":          metrics.ToolErrors.Load(),
		"metadata_requests":    metrics.MetadataRequests.Load(),
		"metadata_errors":      metrics.MetadataErrors.Load(),
		"transcript_requests":  metrics.TranscriptRequests.Load(),
		"transcript_errors":    metrics.TranscriptErrors.Load(),
		"transcript_fallbacks": metrics.TranscriptFallbacks.Load(),
		"sanitizations":        metrics.Sanitizations.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// IncrSanitizations counts sanitize_title tool calls.
func IncrSanitizations() { metrics.Sanitizations.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
