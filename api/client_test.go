package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macremote/logging"
	"macremote/settings"
)

const testToken = "tok"

func fakeControlHost(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/status/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") == "text/html" {
			fmt.Fprint(w, sampleStatusPage)
			return
		}
		json.NewEncoder(w).Encode(SystemStatus{
			Status:   "ok",
			Hostname: "studio",
			Memory:   Memory{Total: "16.0 GB", Used: "9.1 GB", Available: "6.9 GB"},
			Battery:  Battery{Percent: "Plugged In", Status: "AC Power"},
		})
	})
	mux.HandleFunc("/camera/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cameras": [{"id": 0, "status": "available", "resolution": "640x480"}, {"id": 1, "status": "detected but failed to capture"}]}`)
	})
	mux.HandleFunc("/camera/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("camera") == "3" {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error": "camera 3 not available"}`)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
	})
	mux.HandleFunc("/actions/lock", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, `{"result": "locking screen"}`)
	})
	mux.HandleFunc("/actions/restart", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "Failed to restart: denied"}`)
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") != testToken {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": "Unauthorized"}`)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func configuredClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	s := settings.New(settings.NewMemoryStore())
	require.NoError(t, s.SetAPIURL(baseURL))
	require.NoError(t, s.SetAuthToken(token))
	return NewClient(s, 2*time.Second, logging.NewNopLogger())
}

func TestClientStatus(t *testing.T) {
	srv := fakeControlHost(t)
	c := configuredClient(t, srv.URL+"/", testToken)

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "studio", status.Hostname)
	assert.Equal(t, "16.0 GB", status.Memory.Total)

	assert.NoError(t, c.TestConnection(context.Background()))
}

func TestClientStatusPage(t *testing.T) {
	srv := fakeControlHost(t)
	c := configuredClient(t, srv.URL, testToken)

	status, err := c.StatusPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Studio Mac", status.Hostname)
	assert.Equal(t, "45%", status.Storage.PercentUsed)
}

func TestClientCameras(t *testing.T) {
	srv := fakeControlHost(t)
	c := configuredClient(t, srv.URL, testToken)

	cameras, err := c.ListCameras(context.Background())
	require.NoError(t, err)
	require.Len(t, cameras, 2)
	assert.Equal(t, "640x480", cameras[0].Resolution)
	assert.Equal(t, 1, cameras[1].ID)

	photo, err := c.CapturePhoto(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", photo.ContentType)
	assert.Len(t, photo.Data, 4)

	_, err = c.CapturePhoto(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera 3 not available")
}

func TestClientActions(t *testing.T) {
	srv := fakeControlHost(t)
	c := configuredClient(t, srv.URL, testToken)

	result, err := c.Lock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "locking screen", result.Result)

	_, err = c.Restart(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to restart: denied")
}

func TestClientErrors(t *testing.T) {
	srv := fakeControlHost(t)

	_, err := configuredClient(t, srv.URL, "wrong").Status(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	unconfigured := NewClient(settings.New(settings.NewMemoryStore()), time.Second, logging.NewNopLogger())
	_, err = unconfigured.Status(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()
	_, err = configuredClient(t, downURL, testToken).Lock(context.Background())
	assert.ErrorIs(t, err, ErrUnreachable)
}
