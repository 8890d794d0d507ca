// Package sources holds the upstream YouTube clients behind the engine's
// MetadataSource and TranscriptSource interfaces.
//
// The YouTube code is split across three files by responsibility:
//
//	youtube_metadata.go    Data API v3 videos.list (title, description)
//	youtube_innertube.go   Innertube player types, constants and the /player POST
//	youtube_transcript.go  transcript fetching (watch page scrape + ANDROID player fallback)
package sources
