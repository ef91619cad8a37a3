package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// The aggregator sites this pipeline reads block empty or bot-like
// clients, so requests carry a realistic browser identity.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	acceptLanguage = "es-ES,es;q=0.9,en;q=0.8"

	maxBodyBytes = 4 << 20
)

type SourceClient struct {
	http *http.Client
	url  string
}

func NewSourceClient(httpClient *http.Client, url string) *SourceClient {
	return &SourceClient{http: httpClient, url: url}
}

// Fetch retrieves the raw document. Any transport failure or non-2xx
// status wraps domain.ErrUpstreamUnavailable; callers must not attempt
// extraction after a failed fetch.
func (c *SourceClient) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %q: %w", c.url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request to %q failed: %v", domain.ErrUpstreamUnavailable, c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %s from %q", domain.ErrUpstreamUnavailable, resp.Status, c.url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response from %q: %v", domain.ErrUpstreamUnavailable, c.url, err)
	}
	return string(body), nil
}
