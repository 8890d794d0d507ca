package engine

import (
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
)

// DefaultTranscriptLangs is the preferred transcript language order.
var DefaultTranscriptLangs = []string{"en", "en-US", "en-GB", "en-AU"}

// Config holds all engine configuration, built once in main and injected
// into the Retriever.
type Config struct {
	YouTubeAPIKey      string
	YouTubeAPIEndpoint string   // empty = Data API default
	TranscriptLangs    []string // preferred order for the first transcript attempt
	Debug              bool     // diagnostic logging only
	HTTPTimeout        time.Duration
	HTTPClient         *http.Client
	MCPPort            string
}

// LoadConfig reads configuration from the process environment.
func LoadConfig() Config {
	c := Config{
		YouTubeAPIKey:      env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIEndpoint: env.Str("YOUTUBE_API_ENDPOINT", ""),
		TranscriptLangs:    parseLangs(env.List("YOUTUBE_TRANSCRIPT_LANGS", strings.Join(DefaultTranscriptLangs, ","))),
		Debug:              IsDebugValue(env.Str("DEBUG", "")),
		HTTPTimeout:        env.Duration("HTTP_TIMEOUT", 15*time.Second),
		MCPPort:            env.Str("MCP_PORT", "8892"),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     60 * time.Second,
		},
	}
	return c
}

// IsDebugValue reports whether a DEBUG env value turns on debug logging.
func IsDebugValue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yt-processor", "1", "true", "yes":
		return true
	}
	return false
}

func parseLangs(raw []string) []string {
	langs := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

// HasCredential reports whether a Data API key is configured.
func (c Config) HasCredential() bool {
	return c.YouTubeAPIKey != ""
}
