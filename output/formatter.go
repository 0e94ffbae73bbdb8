package output

import (
	"fmt"
	"strings"
	"time"

	"macremote/api"
	"macremote/discovery"
)

// FormatTimestamp formats a time for display in outputs
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// FormatDiscoverySummary creates a summary of a discovery search
func FormatDiscoverySummary(result discovery.Result, totalCandidates int, startTime, endTime time.Time) string {
	duration := endTime.Sub(startTime)

	summary := strings.Builder{}
	summary.WriteString("=== Discovery Summary ===\n")
	summary.WriteString(fmt.Sprintf("Search ID: %s\n", result.SearchID))
	summary.WriteString(fmt.Sprintf("Start time: %s\n", FormatTimestamp(startTime)))
	summary.WriteString(fmt.Sprintf("End time: %s\n", FormatTimestamp(endTime)))
	summary.WriteString(fmt.Sprintf("Duration: %s\n", duration.Round(100*time.Millisecond)))
	summary.WriteString(fmt.Sprintf("Addresses probed: %d of %d\n", result.Probed, totalCandidates))
	summary.WriteString(fmt.Sprintf("Result: %s\n", result.Status))
	if result.Found() {
		summary.WriteString(fmt.Sprintf("Control host: %s\n", result.Address))
	}
	summary.WriteString("=========================\n")

	return summary.String()
}

// FormatStatus renders a status document for the terminal
func FormatStatus(status *api.SystemStatus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Host: %s\n", valueOrUnknown(status.Hostname))
	b.WriteString("\nMemory\n")
	fmt.Fprintf(&b, "  Total:     %s\n", valueOrUnknown(status.Memory.Total))
	fmt.Fprintf(&b, "  Used:      %s\n", valueOrUnknown(status.Memory.Used))
	fmt.Fprintf(&b, "  Available: %s\n", valueOrUnknown(status.Memory.Available))
	b.WriteString("\nStorage\n")
	fmt.Fprintf(&b, "  Total:     %s\n", valueOrUnknown(status.Storage.Total))
	fmt.Fprintf(&b, "  Used:      %s (%s)\n", valueOrUnknown(status.Storage.Used), valueOrUnknown(status.Storage.PercentUsed))
	fmt.Fprintf(&b, "  Available: %s\n", valueOrUnknown(status.Storage.Available))
	b.WriteString("\nBattery\n")
	fmt.Fprintf(&b, "  Level:     %s\n", valueOrUnknown(status.Battery.Percent))
	fmt.Fprintf(&b, "  Status:    %s\n", valueOrUnknown(status.Battery.Status))

	b.WriteString("\nRunning applications\n")
	if len(status.RunningApps) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, app := range status.RunningApps {
		fmt.Fprintf(&b, "  - %s\n", app)
	}

	return b.String()
}

// FormatCameras renders the camera list
func FormatCameras(cameras []api.Camera) string {
	if len(cameras) == 0 {
		return "No cameras found\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d camera(s):\n", len(cameras))
	for _, cam := range cameras {
		line := fmt.Sprintf("  Camera %d: %s", cam.ID, cam.Status)
		if cam.Resolution != "" {
			line += fmt.Sprintf(" (%s)", cam.Resolution)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func valueOrUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
