package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatusPage = `<!DOCTYPE html>
<html>
<head><title>Mac System Status</title></head>
<body>
    <div class="container">
        <h1>🖥️ Studio Mac</h1>
        <div class="card">
            <h3>💾 Memory Usage</h3>
            <div class="stat-row"><span class="stat-label">Total Memory:</span><span class="stat-value">16.0 GB</span></div>
            <div class="stat-row"><span class="stat-label">Used Memory:</span><span class="stat-value">9.1 GB</span></div>
            <div class="stat-row"><span class="stat-label">Available Memory:</span><span class="stat-value">6.9 GB</span></div>
        </div>
        <div class="card">
            <h3>💽 Storage Usage</h3>
            <div class="stat-row"><span class="stat-label">Total Storage:</span><span class="stat-value">460Gi</span></div>
            <div class="stat-row"><span class="stat-label">Used Storage:</span><span class="stat-value">200Gi</span></div>
            <div class="stat-row"><span class="stat-label">Available Storage:</span><span class="stat-value">250Gi</span></div>
            <div class="stat-row"><span class="stat-label">Usage:</span><span class="stat-value">45%</span></div>
        </div>
        <div class="card">
            <h3>🔋 Battery Status</h3>
            <div class="stat-row"><span class="stat-label">Battery Level:</span><span class="stat-value">87%</span></div>
            <div class="stat-row"><span class="stat-label">Status:</span><span class="stat-value">discharging</span></div>
        </div>
        <div class="card">
            <h3>🚀 Running Applications</h3>
            <div class="apps-grid"><div class="app-item">Finder</div><div class="app-item">Safari</div></div>
        </div>
    </div>
</body>
</html>`

func TestParseStatusPage(t *testing.T) {
	status, err := ParseStatusPage(strings.NewReader(sampleStatusPage))
	require.NoError(t, err)

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "Studio Mac", status.Hostname)
	assert.Equal(t, Memory{Total: "16.0 GB", Used: "9.1 GB", Available: "6.9 GB"}, status.Memory)
	assert.Equal(t, Storage{Total: "460Gi", Used: "200Gi", Available: "250Gi", PercentUsed: "45%"}, status.Storage)
	assert.Equal(t, Battery{Percent: "87%", Status: "discharging"}, status.Battery)
	assert.Equal(t, []string{"Finder", "Safari"}, status.RunningApps)
}

func TestParseStatusPageErrorPage(t *testing.T) {
	_, err := ParseStatusPage(strings.NewReader(`<html><body><h1>Error</h1><p>pmset failed</p></body></html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pmset failed")
}

func TestParseStatusPageWithoutFields(t *testing.T) {
	_, err := ParseStatusPage(strings.NewReader(`<html><body><h1>Hello</h1></body></html>`))
	assert.Error(t, err)
}
