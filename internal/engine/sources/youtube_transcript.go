package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go_ytprocessor/internal/engine"
)

// YouTube transcript fetching.
// Primary:  scrape watch page ytInitialPlayerResponse → caption XML (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks (works from non-blocked IPs)

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// InnertubeTranscripts implements engine.TranscriptSource against YouTube's
// public watch page and Innertube player endpoint.
type InnertubeTranscripts struct {
	client  *http.Client
	baseURL string
}

// NewInnertubeTranscripts creates a transcript source. An empty baseURL
// means https://www.youtube.com.
func NewInnertubeTranscripts(client *http.Client, baseURL string) *InnertubeTranscripts {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = ytBaseURL
	}
	return &InnertubeTranscripts{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

var _ engine.TranscriptSource = (*InnertubeTranscripts)(nil)

// FetchTranscript returns caption segments for videoID, restricted to
// languages when non-empty. Tagged failures from the watch page are final;
// anything else falls back to the ANDROID player.
func (s *InnertubeTranscripts) FetchTranscript(ctx context.Context, videoID string, languages []string) ([]engine.Segment, error) {
	segs, err := s.fetchViaPageScrape(ctx, videoID, languages)
	if err == nil || isTagged(err) {
		return segs, err
	}
	slog.Debug("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))

	segs, playerErr := s.fetchViaPlayer(ctx, videoID, languages)
	if playerErr != nil {
		if isTagged(playerErr) {
			return nil, playerErr
		}
		return nil, fmt.Errorf("watch page: %v; player: %w", err, playerErr)
	}
	return segs, nil
}

func isTagged(err error) bool {
	return errors.Is(err, engine.ErrNoTranscriptFound) ||
		errors.Is(err, engine.ErrTranscriptsDisabled) ||
		errors.Is(err, engine.ErrVideoUnavailable)
}

// fetchViaPageScrape scrapes the watch page HTML and reads the caption
// tracks from ytInitialPlayerResponse.
func (s *InnertubeTranscripts) fetchViaPageScrape(ctx context.Context, videoID string, languages []string) ([]engine.Segment, error) {
	watchURL := s.baseURL + "/watch?v=" + videoID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", stealth.RandomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return s.segmentsFromPlayer(ctx, playerResp, languages)
}

// fetchViaPlayer uses the ANDROID Innertube /player endpoint.
func (s *InnertubeTranscripts) fetchViaPlayer(ctx context.Context, videoID string, languages []string) ([]engine.Segment, error) {
	playerResp, err := s.postPlayer(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return s.segmentsFromPlayer(ctx, playerResp, languages)
}

func (s *InnertubeTranscripts) segmentsFromPlayer(ctx context.Context, pr innertubePlayerResp, languages []string) ([]engine.Segment, error) {
	tracks, err := captionTracks(pr)
	if err != nil {
		return nil, err
	}
	track, err := pickTrack(tracks, languages)
	if err != nil {
		return nil, err
	}
	return s.fetchTimedText(ctx, track.BaseURL)
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack selects a caption track. With languages set, only those
// languages qualify (manual tracks before auto-generated, in the given
// order); otherwise the first manual track wins, then the first track.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, error) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, errors.New("all caption tracks require PoToken")
	}

	if len(languages) == 0 {
		for _, t := range usable {
			if t.Kind != "asr" {
				return t, nil
			}
		}
		return usable[0], nil
	}

	// 1. Manual track in preferred language
	for _, lang := range languages {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, nil
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range languages {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, nil
			}
		}
	}

	available := make([]string, 0, len(usable))
	for _, t := range usable {
		available = append(available, t.LanguageCode)
	}
	return captionTrack{}, fmt.Errorf("%w: requested %v, available %v",
		engine.ErrNoTranscriptFound, languages, available)
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (s *InnertubeTranscripts) fetchTimedText(ctx context.Context, baseURL string) ([]engine.Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.UserAgentBot)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

func parseTimedText(body []byte) ([]engine.Segment, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]engine.Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CleanCaptionText(line.Text)
		if text == "" {
			continue
		}
		segs = append(segs, engine.Segment{Text: text, Start: line.Start, Duration: line.Dur})
	}
	return segs, nil
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
