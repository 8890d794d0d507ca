package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anatolykoptev/go_ytprocessor/internal/engine"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// DataAPIMetadata implements engine.MetadataSource with YouTube Data API v3
// videos.list?part=snippet.
type DataAPIMetadata struct {
	client   *http.Client
	endpoint string
}

// NewDataAPIMetadata creates a metadata source. An empty endpoint means the
// Data API default.
func NewDataAPIMetadata(client *http.Client, endpoint string) *DataAPIMetadata {
	if client == nil {
		client = http.DefaultClient
	}
	return &DataAPIMetadata{client: client, endpoint: endpoint}
}

var _ engine.MetadataSource = (*DataAPIMetadata)(nil)

// VideoSnippets returns the title and description of every item the API
// returns for videoID. apiKey travels as the "key" query parameter.
func (m *DataAPIMetadata) VideoSnippets(ctx context.Context, videoID, apiKey string) ([]engine.Metadata, error) {
	svc, err := m.service(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube data API: %w", err)
	}

	items := make([]engine.Metadata, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Snippet == nil {
			continue
		}
		items = append(items, engine.Metadata{
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		})
	}
	return items, nil
}

func (m *DataAPIMetadata) service(ctx context.Context, apiKey string) (*youtube.Service, error) {
	base := m.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc := &http.Client{
		Timeout:   m.client.Timeout,
		Transport: &transport.APIKey{Key: apiKey, Transport: base},
	}

	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if m.endpoint != "" {
		opts = append(opts, option.WithEndpoint(m.endpoint))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	return svc, nil
}
