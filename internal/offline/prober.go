package offline

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober issues a single liveness check and reports the round trip
// time on success.
type Prober interface {
	Probe(ctx context.Context) (time.Duration, error)
}

// HTTPProber probes a lightweight HTTP endpoint.
type HTTPProber struct {
	url    string
	client *http.Client
}

// NewHTTPProber creates a prober against url with the given timeout.
func NewHTTPProber(url string, timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Probe issues a GET and treats any non-2xx response as failure.
func (p *HTTPProber) Probe(ctx context.Context) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build probe request: %w", err)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probe request failed: %w", err)
	}
	defer resp.Body.Close()

	rtt := time.Since(start)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return rtt, fmt.Errorf("probe returned status %d", resp.StatusCode)
	}

	return rtt, nil
}
