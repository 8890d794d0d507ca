package engine

// --- Tool input types ---

type YouTubeTranscriptInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID, 11 characters (e.g. dQw4w9WgXcQ)"`
}

type SanitizeTitleInput struct {
	Title     string `json:"title" jsonschema:"Raw video title to sanitize"`
	Extension string `json:"extension,omitempty" jsonschema:"Filename extension (default: .md)"`
}

// --- Output types (JSON responses) ---

// VideoRecord is the result of one youtube_transcript invocation.
type VideoRecord struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Transcript  string `json:"transcript"`
	Description string `json:"description"`
}
