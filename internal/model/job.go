package model

// GenerationJobPayload contains the data for a queued generation job.
type GenerationJobPayload struct {
	SongID string           `json:"songId"`
	UserID string           `json:"userId"`
	Params CreateSongParams `json:"params"`
}

// GenerationResultMessage is the payload sent to websocket subscribers
// when a generation job finishes.
type GenerationResultMessage struct {
	SongID   string     `json:"songId"`
	Status   SongStatus `json:"status"`
	AudioURL string     `json:"audioUrl,omitempty"`
}
