package discovery

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"macremote/logging"
)

const (
	// DefaultProbeTimeout bounds a single probe, including reading the body
	DefaultProbeTimeout = time.Second

	// AuthHeader carries the control API token
	AuthHeader = "X-Auth-Token"

	statusPath    = "/status/"
	statusOK      = "ok"
	maxStatusBody = 64 << 10
)

// HTTPProber checks a candidate by requesting its status resource
type HTTPProber struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *logging.Logger
}

// NewHTTPProber creates a prober with the given per-probe timeout
func NewHTTPProber(timeout time.Duration, logger *logging.Logger) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		// Hundreds of one-shot requests to different hosts; nothing to reuse.
		DisableKeepAlives:     true,
		ResponseHeaderTimeout: timeout,
	}

	client := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Don't follow redirects
			return http.ErrUseLastResponse
		},
	}

	return &HTTPProber{
		httpClient: client,
		timeout:    timeout,
		logger:     logger,
	}
}

// Timeout returns the per-probe timeout
func (p *HTTPProber) Timeout() time.Duration {
	return p.timeout
}

// Probe issues GET {address}/status/ with the auth token. The candidate is
// Reachable only for a 2xx response whose JSON body has status "ok"; every
// failure, including the timeout, yields Unreachable.
func (p *HTTPProber) Probe(ctx context.Context, c Candidate, token string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Address+statusPath, nil)
	if err != nil {
		p.logger.Debug("Probe %s: bad request: %v", c.Address, err)
		return Unreachable
	}
	req.Header.Set(AuthHeader, token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "macremote/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Debug("Probe %s: unreachable (%v)", c.Address, err)
		return Unreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Debug("Probe %s: non-success status %d", c.Address, resp.StatusCode)
		return Unreachable
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxStatusBody)).Decode(&body); err != nil {
		p.logger.Debug("Probe %s: malformed status body: %v", c.Address, err)
		return Unreachable
	}
	if body.Status != statusOK {
		p.logger.Debug("Probe %s: status field is %q", c.Address, body.Status)
		return Unreachable
	}

	p.logger.Debug("Probe %s: reachable", c.Address)
	return Reachable
}
