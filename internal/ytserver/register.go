package ytserver

import (
	"github.com/anatolykoptev/go_ytprocessor/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 2

// RegisterTools registers the YouTube tools on the given MCP server:
// youtube_transcript, sanitize_title.
func RegisterTools(server *mcp.Server, r *engine.Retriever) {
	registerYouTubeTranscript(server, r)
	registerSanitizeTitle(server)
}
