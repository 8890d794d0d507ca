package ytserver

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_ytprocessor/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSanitizeTitle(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "sanitize_title",
		Description: "Sanitize a video title for filesystem use: strips brackets, illegal filename characters, control characters and emoji, collapses whitespace, caps at 100 characters. Returns the sanitized title, a safe filename and whether it is safe as-is.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input engine.SanitizeTitleInput) (*mcp.CallToolResult, engine.SanitizeReport, error) {
		if input.Title == "" {
			return nil, engine.SanitizeReport{}, errors.New("title is required")
		}
		engine.IncrSanitizations()
		return nil, engine.BuildSanitizeReport(input.Title, input.Extension), nil
	})
}
