package settings

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// KeyAPIURL holds the control host base URL, e.g. http://192.168.1.20:8080
	KeyAPIURL = "api_url"
	// KeyAuthToken holds the X-Auth-Token value
	KeyAuthToken = "auth_token"
)

// Settings is a typed view over a Store for the client's two settings
type Settings struct {
	store Store
}

// New wraps a store
func New(store Store) *Settings {
	return &Settings{store: store}
}

// APIURL returns the stored base URL, or "" when unset
func (s *Settings) APIURL() (string, error) {
	v, _, err := s.store.Get(KeyAPIURL)
	return v, err
}

// SetAPIURL validates and stores the base URL without a trailing slash
func (s *Settings) SetAPIURL(raw string) error {
	normalized, err := NormalizeAPIURL(raw)
	if err != nil {
		return err
	}
	return s.store.Set(KeyAPIURL, normalized)
}

// AuthToken returns the stored token, or "" when unset
func (s *Settings) AuthToken() (string, error) {
	v, _, err := s.store.Get(KeyAuthToken)
	return v, err
}

// SetAuthToken stores a non-empty token
func (s *Settings) SetAuthToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("auth token: %w", ErrEmptyValue)
	}
	return s.store.Set(KeyAuthToken, token)
}

// IsConfigured reports whether both the URL and the token are present
func (s *Settings) IsConfigured() (bool, error) {
	apiURL, err := s.APIURL()
	if err != nil {
		return false, err
	}
	token, err := s.AuthToken()
	if err != nil {
		return false, err
	}
	return apiURL != "" && token != "", nil
}

// ClearAll removes both settings
func (s *Settings) ClearAll() error {
	if err := s.store.Clear(KeyAPIURL); err != nil {
		return err
	}
	return s.store.Clear(KeyAuthToken)
}

// NormalizeAPIURL trims whitespace and one trailing slash, and checks the
// result is an absolute http or https URL with a host.
func NormalizeAPIURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("api url: %w", ErrEmptyValue)
	}
	raw = strings.TrimSuffix(raw, "/")

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %s (example: http://192.168.1.100:8080)", ErrInvalidURL, raw)
	}
	return raw, nil
}
