package directory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpclient "github.com/route66/trip-service/internal/http"
	"github.com/route66/trip-service/internal/itinerary"
)

// RemoteDirectory loads a JSON stop list over HTTP on every call. Put it
// behind CachedDirectory.
type RemoteDirectory struct {
	client *httpclient.Client
	url    string
	logger zerolog.Logger
}

// NewRemoteDirectory creates a directory that fetches stops from url.
func NewRemoteDirectory(client *httpclient.Client, url string) *RemoteDirectory {
	return &RemoteDirectory{
		client: client,
		url:    url,
		logger: log.With().Str("component", "remote_directory").Logger(),
	}
}

// ListStops implements itinerary.StopDirectory.
func (d *RemoteDirectory) ListStops(ctx context.Context) ([]itinerary.Stop, error) {
	data, err := d.client.GetBytes(ctx, d.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stops: %w", err)
	}
	static, err := parseStatic(data, d.url)
	if err != nil {
		return nil, err
	}
	d.logger.Debug().Str("url", d.url).Int("count", len(static.stops)).Msg("Fetched stops")
	return static.stops, nil
}
