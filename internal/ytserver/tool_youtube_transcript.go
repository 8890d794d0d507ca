package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_ytprocessor/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerYouTubeTranscript(server *mcp.Server, r *engine.Retriever) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch a YouTube video's title, description and full transcript by video ID. The title is sanitized for use as a filename. Prefers English captions (en, en-US, en-GB, en-AU) and falls back to any available language. Requires YOUTUBE_API_KEY on the server.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.YouTubeTranscriptInput) (*mcp.CallToolResult, engine.VideoRecord, error) {
		rec, err := r.Execute(ctx, input.VideoID)
		if err != nil {
			return nil, engine.VideoRecord{}, err
		}
		return nil, rec, nil
	})
}
