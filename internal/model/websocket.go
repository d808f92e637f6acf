package model

// WebSocket message types
const (
	WSMessageTypeProgress = "progress"
	WSMessageTypeComplete = "complete"
	WSMessageTypeError    = "error"
	WSMessageTypePing     = "ping"
	WSMessageTypePong     = "pong"
)

// WSMessage represents a generic WebSocket message
type WSMessage struct {
	Type string `json:"type"`
}

// WSProgressMessage represents a progress update for a song generation
type WSProgressMessage struct {
	Type        string    `json:"type"`
	SongID      string    `json:"songId"`
	Progress    int       `json:"progress"`
	Status      JobStatus `json:"status"`
	CurrentStep string    `json:"currentStep,omitempty"`
}

// WSCompleteMessage represents generation completion
type WSCompleteMessage struct {
	Type   string      `json:"type"`
	SongID string      `json:"songId"`
	Result interface{} `json:"result"`
}

// WSErrorMessage represents a generation error
type WSErrorMessage struct {
	Type   string  `json:"type"`
	SongID string  `json:"songId"`
	Error  WSError `json:"error"`
}

// WSError represents error details
type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
