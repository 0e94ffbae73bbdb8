package api

// SystemStatus is the control host's status document
type SystemStatus struct {
	Status      string   `json:"status"`
	Hostname    string   `json:"hostname"`
	Memory      Memory   `json:"memory"`
	Storage     Storage  `json:"storage"`
	Battery     Battery  `json:"battery"`
	RunningApps []string `json:"running_apps"`
}

// Memory contains memory usage as human-readable strings (e.g. "16.0 GB")
type Memory struct {
	Total     string `json:"total"`
	Used      string `json:"used"`
	Available string `json:"available"`
}

// Storage contains root volume usage
type Storage struct {
	Total       string `json:"total"`
	Used        string `json:"used"`
	Available   string `json:"available"`
	PercentUsed string `json:"percent_used"`
}

// Battery contains charge level and power source
type Battery struct {
	Percent string `json:"percent"`
	Status  string `json:"status"`
}

// Camera describes one camera reported by the control host
type Camera struct {
	ID         int    `json:"id"`
	Status     string `json:"status"`
	Resolution string `json:"resolution,omitempty"`
}

// CameraList is the body of the camera list endpoint
type CameraList struct {
	Cameras []Camera `json:"cameras"`
}

// Photo is a captured camera frame
type Photo struct {
	CameraID    int
	ContentType string
	Data        []byte
}

// ActionResult is the body returned by lock and restart
type ActionResult struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// errorBody is the JSON shape of control host errors
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
