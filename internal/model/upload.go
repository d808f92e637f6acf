package model

import "time"

// UploadAudioResponse represents the response for an audio reference upload.
type UploadAudioResponse struct {
	ID        string    `json:"id"`
	FileURL   string    `json:"fileUrl"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}
