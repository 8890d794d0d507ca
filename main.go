// go_ytprocessor is a YouTube transcript & metadata MCP server.
//
// Exposes two MCP tools: youtube_transcript, sanitize_title.
// Runs as HTTP MCP server (default) or as a one-shot CLI:
//
//	go_ytprocessor transcript <video_id>   # prints the video record as JSON
//	go_ytprocessor sanitize <title>        # prints a sanitization report
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytprocessor/internal/engine"
	"github.com/anatolykoptev/go_ytprocessor/internal/engine/sources"
	"github.com/anatolykoptev/go_ytprocessor/internal/ytserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var version = "dev"

func main() {
	// A missing .env is the normal case in production.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "go_ytprocessor",
		Usage:   "Fetch YouTube metadata and transcripts for agents",
		Version: version,
		Action:  runServe,
		Flags:   serveFlags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the MCP server (default)",
				Flags:  serveFlags(),
				Action: runServe,
			},
			{
				Name:      "transcript",
				Usage:     "Print title, description and transcript of a video as JSON",
				ArgsUsage: "<video_id>",
				Action:    runTranscript,
			},
			{
				Name:      "sanitize",
				Usage:     "Print a sanitization report for a title",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "ext",
						Value: engine.DefaultExtension,
						Usage: "extension for the generated filename",
					},
				},
				Action: runSanitize,
			},
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Usage: "MCP HTTP port (overrides MCP_PORT)",
		},
	}
}

// setupLogging sends slog to w; debug only changes verbosity.
func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func newRetriever(cfg engine.Config) *engine.Retriever {
	return engine.NewRetriever(cfg,
		sources.NewDataAPIMetadata(cfg.HTTPClient, cfg.YouTubeAPIEndpoint),
		sources.NewInnertubeTranscripts(cfg.HTTPClient, ""),
	)
}

func runServe(c *cli.Context) error {
	cfg := engine.LoadConfig()
	setupLogging(os.Stderr, cfg.Debug)
	if p := c.String("port"); p != "" {
		cfg.MCPPort = p
	}
	if !cfg.HasCredential() {
		slog.Warn("YOUTUBE_API_KEY not set, youtube_transcript calls will fail")
	}

	slog.Info("starting go_ytprocessor",
		slog.String("port", cfg.MCPPort),
		slog.Bool("debug", cfg.Debug),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytprocessor",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server, newRetriever(cfg))
	slog.Info("tools registered", slog.Int("count", ytserver.ToolCount))

	return mcpserver.Run(server, mcpserver.Config{
		Name:         "go_ytprocessor",
		Version:      version,
		Port:         cfg.MCPPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	})
}

func runTranscript(c *cli.Context) error {
	cfg := engine.LoadConfig()
	setupLogging(c.App.ErrWriter, cfg.Debug)

	out, err := newRetriever(cfg).ExecuteJSON(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

func runSanitize(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("title argument is required")
	}
	report := engine.BuildSanitizeReport(c.Args().First(), c.String("ext"))
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	_, err = c.App.Writer.Write(data)
	return err
}
