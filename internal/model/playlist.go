package model

import "time"

// Playlist is a user-owned ordered collection of songs.
type Playlist struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SongIDs     []string  `json:"songIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistCreateRequest is the request body for playlist creation.
type PlaylistCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// PlaylistAddSongRequest adds an existing library song to a playlist.
type PlaylistAddSongRequest struct {
	SongID string `json:"songId" validate:"required"`
}

// PlaylistListResponse wraps the user's playlists.
type PlaylistListResponse struct {
	Playlists []Playlist `json:"playlists"`
}
