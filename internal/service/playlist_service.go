package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/soundforge/api/internal/model"
)

// PlaylistService manages user playlists.
type PlaylistService struct {
	redis *redis.Client
}

func NewPlaylistService(redisClient *redis.Client) *PlaylistService {
	return &PlaylistService{redis: redisClient}
}

// CreatePlaylist creates an empty playlist for the user.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, userID string, req *model.PlaylistCreateRequest) (*model.Playlist, error) {
	now := time.Now()
	playlist := &model.Playlist{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		SongIDs:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.savePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to save playlist: %w", err)
	}
	if err := s.redis.SAdd(ctx, userPlaylistsKey(userID), playlist.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index playlist: %w", err)
	}

	return playlist, nil
}

// GetPlaylist returns one playlist owned by the user.
func (s *PlaylistService) GetPlaylist(ctx context.Context, userID, playlistID string) (*model.Playlist, error) {
	playlist, err := s.loadPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.UserID != userID {
		return nil, fmt.Errorf("playlist not found")
	}
	return playlist, nil
}

// ListPlaylists returns the user's playlists, newest first.
func (s *PlaylistService) ListPlaylists(ctx context.Context, userID string) (*model.PlaylistListResponse, error) {
	ids, err := s.redis.SMembers(ctx, userPlaylistsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	playlists := make([]model.Playlist, 0, len(ids))
	for _, id := range ids {
		playlist, err := s.loadPlaylist(ctx, id)
		if err != nil {
			continue
		}
		playlists = append(playlists, *playlist)
	}

	sort.Slice(playlists, func(i, j int) bool {
		return playlists[i].CreatedAt.After(playlists[j].CreatedAt)
	})

	return &model.PlaylistListResponse{Playlists: playlists}, nil
}

// DeletePlaylist removes a playlist; songs stay in the library.
func (s *PlaylistService) DeletePlaylist(ctx context.Context, userID, playlistID string) error {
	if _, err := s.GetPlaylist(ctx, userID, playlistID); err != nil {
		return err
	}
	if err := s.redis.Del(ctx, playlistKey(playlistID)).Err(); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return s.redis.SRem(ctx, userPlaylistsKey(userID), playlistID).Err()
}

// AddSong appends a library song to the playlist, ignoring duplicates.
func (s *PlaylistService) AddSong(ctx context.Context, userID, playlistID, songID string) (*model.Playlist, error) {
	playlist, err := s.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	exists, err := s.redis.Exists(ctx, songKey(songID)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("song not found")
	}

	for _, id := range playlist.SongIDs {
		if id == songID {
			return playlist, nil
		}
	}

	playlist.SongIDs = append(playlist.SongIDs, songID)
	playlist.UpdatedAt = time.Now()

	if err := s.savePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to save playlist: %w", err)
	}
	return playlist, nil
}

// RemoveSong removes a song from the playlist, keeping order.
func (s *PlaylistService) RemoveSong(ctx context.Context, userID, playlistID, songID string) (*model.Playlist, error) {
	playlist, err := s.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	kept := playlist.SongIDs[:0]
	for _, id := range playlist.SongIDs {
		if id != songID {
			kept = append(kept, id)
		}
	}
	playlist.SongIDs = kept
	playlist.UpdatedAt = time.Now()

	if err := s.savePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to save playlist: %w", err)
	}
	return playlist, nil
}

func (s *PlaylistService) savePlaylist(ctx context.Context, playlist *model.Playlist) error {
	data, err := json.Marshal(playlist)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, playlistKey(playlist.ID), data, 0).Err()
}

func (s *PlaylistService) loadPlaylist(ctx context.Context, playlistID string) (*model.Playlist, error) {
	data, err := s.redis.Get(ctx, playlistKey(playlistID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("playlist not found")
		}
		return nil, err
	}

	var playlist model.Playlist
	if err := json.Unmarshal(data, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func playlistKey(playlistID string) string {
	return fmt.Sprintf("playlist:%s", playlistID)
}

func userPlaylistsKey(userID string) string {
	return fmt.Sprintf("user:%s:playlists", userID)
}
