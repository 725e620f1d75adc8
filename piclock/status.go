package piclock

// StatusPath is where the status server publishes the current status.
const StatusPath = "/api/status"

// StatusResponse is the body of GET /api/status. It is also what the
// reporter PUTs to the status server's socket.
type StatusResponse struct {
	Response string  `json:"response"`
	Error    string  `json:"error,omitempty"`
	Alarms   []Alarm `json:"alarms,omitempty"`
}

// Alarm describes an upcoming alarm known to the clock.
type Alarm struct {
	Name    string `json:"name"`
	Time    string `json:"time"` // RFC 3339
	Enabled bool   `json:"enabled"`
}
