package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"macremote/logging"
	"macremote/settings"
)

var (
	// ErrNotConfigured is returned when the API URL or token is missing
	ErrNotConfigured = errors.New("API not configured, set the URL and token first")
	// ErrUnauthorized is returned when the control host rejects the token
	ErrUnauthorized = errors.New("invalid authentication token")
	// ErrUnreachable wraps transport failures
	ErrUnreachable = errors.New("cannot connect to the control host, make sure it is on and the server is running")
)

const (
	authHeader = "X-Auth-Token"
	userAgent  = "macremote/1.0"

	maxJSONBody  = 1 << 20
	maxPhotoBody = 32 << 20
)

// Client talks to the control host's HTTP API. The base URL and token are
// read from the settings on every request.
type Client struct {
	httpClient *http.Client
	settings   *settings.Settings
	logger     *logging.Logger
}

// NewClient creates a new control API client
func NewClient(s *settings.Settings, timeout time.Duration, logger *logging.Logger) *Client {
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Don't follow redirects
			return http.ErrUseLastResponse
		},
	}

	return &Client{
		httpClient: client,
		settings:   s,
		logger:     logger,
	}
}

// Status retrieves the JSON status document
func (c *Client) Status(ctx context.Context) (*SystemStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, "/status/", "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, "failed to get system status")
	}

	var status SystemStatus
	if err := decodeJSON(resp.Body, &status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &status, nil
}

// StatusPage retrieves the HTML status page and extracts the same fields as Status
func (c *Client) StatusPage(ctx context.Context) (*SystemStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, "/status/", "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, "failed to get status page")
	}

	status, err := ParseStatusPage(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return nil, fmt.Errorf("failed to parse status page: %w", err)
	}
	return status, nil
}

// ListCameras lists the cameras the control host can see
func (c *Client) ListCameras(ctx context.Context) ([]Camera, error) {
	resp, err := c.do(ctx, http.MethodGet, "/camera/list", "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, "failed to list cameras")
	}

	var list CameraList
	if err := decodeJSON(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode camera list: %w", err)
	}
	return list.Cameras, nil
}

// CapturePhoto captures one frame from the given camera
func (c *Client) CapturePhoto(ctx context.Context, cameraID int) (*Photo, error) {
	resp, err := c.do(ctx, http.MethodGet, "/camera/?camera="+strconv.Itoa(cameraID), "image/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, "failed to capture photo")
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unexpected content type for photo: %q", contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	c.logger.Debug("Captured %d bytes from camera %d (%s)", len(data), cameraID, contentType)

	return &Photo{CameraID: cameraID, ContentType: contentType, Data: data}, nil
}

// Lock locks the control host's screen
func (c *Client) Lock(ctx context.Context) (*ActionResult, error) {
	return c.action(ctx, "/actions/lock", "failed to lock screen")
}

// Restart asks the control host to restart
func (c *Client) Restart(ctx context.Context) (*ActionResult, error) {
	return c.action(ctx, "/actions/restart", "failed to restart")
}

// TestConnection succeeds if the status endpoint answers with the stored settings
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Status(ctx)
	return err
}

func (c *Client) action(ctx context.Context, path, fallback string) (*ActionResult, error) {
	resp, err := c.do(ctx, http.MethodPost, path, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, fallback)
	}

	var result ActionResult
	if err := decodeJSON(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode action result: %w", err)
	}
	if result.Error != "" {
		return nil, errors.New(result.Error)
	}
	return &result, nil
}

// do builds and sends an authenticated request. A 401 is turned into
// ErrUnauthorized; other statuses are left to the caller.
func (c *Client) do(ctx context.Context, method, path, accept string) (*http.Response, error) {
	baseURL, err := c.settings.APIURL()
	if err != nil {
		return nil, fmt.Errorf("failed to read API URL: %w", err)
	}
	token, err := c.settings.AuthToken()
	if err != nil {
		return nil, fmt.Errorf("failed to read auth token: %w", err)
	}
	if baseURL == "" || token == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(authHeader, token)
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("%s %s", method, req.URL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Request to %s failed: %v", req.URL, err)
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, ErrUnauthorized
	}
	return resp, nil
}

func decodeJSON(r io.Reader, v interface{}) error {
	return json.NewDecoder(io.LimitReader(r, maxJSONBody)).Decode(v)
}

// responseError prefers the control host's own error message over fallback
func responseError(resp *http.Response, fallback string) error {
	var body errorBody
	if err := decodeJSON(resp.Body, &body); err == nil {
		if body.Error != "" {
			return fmt.Errorf("%s (HTTP %d)", body.Error, resp.StatusCode)
		}
		if body.Message != "" {
			return fmt.Errorf("%s (HTTP %d)", body.Message, resp.StatusCode)
		}
	}
	return fmt.Errorf("%s (HTTP %d)", fallback, resp.StatusCode)
}
