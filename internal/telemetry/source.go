package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// Source performs a single telemetry fetch.
type Source interface {
	Fetch(ctx context.Context, url string) ([]Metric, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, url string) ([]Metric, error)

// Fetch calls f(ctx, url).
func (f SourceFunc) Fetch(ctx context.Context, url string) ([]Metric, error) {
	return f(ctx, url)
}

// DefaultFetchTimeout bounds a single request when no timeout is configured.
const DefaultFetchTimeout = 10 * time.Second

// HTTPSource fetches readings with a plain GET and decodes the JSON array.
type HTTPSource struct {
	client *http.Client
}

// NewHTTPSource creates a source with the given per-request timeout.
// A zero timeout uses DefaultFetchTimeout.
func NewHTTPSource(timeout time.Duration) *HTTPSource {
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
	}
}

// Close releases idle connections.
func (s *HTTPSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// Fetch requests url and decodes the reading list. Transport errors, non-200
// responses, empty bodies, malformed JSON and a JSON null all fail with
// ErrFetch. A request that cannot even be built fails with ErrEndpoint.
func (s *HTTPSource) Fetch(ctx context.Context, url string) ([]Metric, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrEndpoint,
			"Cannot create telemetry request",
			"Check the server address")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Telemetry server unreachable",
			"Make sure the server is running and reachable from this machine")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrFetch,
			fmt.Sprintf("Telemetry server returned %d", resp.StatusCode), "")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch, "Failed to read telemetry response", "")
	}

	return DecodeReadings(body)
}

// DecodeReadings parses a /api/data response body.
func DecodeReadings(body []byte) ([]Metric, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New(errors.ErrFetch, "Telemetry response was empty", "")
	}

	var readings []Metric
	if err := json.Unmarshal(body, &readings); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch, "Telemetry response is not a reading list", "")
	}
	if readings == nil {
		return nil, errors.New(errors.ErrFetch, "Telemetry response was null", "")
	}
	return readings, nil
}
