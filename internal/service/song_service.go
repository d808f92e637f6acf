package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/soundforge/api/internal/client"
	"github.com/soundforge/api/internal/model"
	"github.com/soundforge/api/internal/prompt"
)

const (
	TaskTypeGenerate = "song:generate"

	songRetention = 30 * 24 * time.Hour
)

// SongService manages the song library and queues generation jobs.
type SongService struct {
	redis       *redis.Client
	asynqClient *asynq.Client
	r2Client    client.StorageClient
}

func NewSongService(redisClient *redis.Client, asynqClient *asynq.Client, r2Client client.StorageClient) *SongService {
	return &SongService{
		redis:       redisClient,
		asynqClient: asynqClient,
		r2Client:    r2Client,
	}
}

// CreateSong persists a queued song record and enqueues its generation job.
// The compiled prompt is stored on the record so the library shows exactly
// what was sent to the backend.
func (s *SongService) CreateSong(ctx context.Context, userID string, params *model.CreateSongParams, advisory string) (*model.SongCreateResponse, error) {
	compiled := prompt.Compile(params)

	songID := uuid.New().String()
	now := time.Now()

	song := &model.Song{
		ID:          songID,
		UserID:      userID,
		Title:       params.CustomTitle,
		Status:      model.SongStatusQueued,
		Prompt:      compiled,
		Params:      *params,
		Advisory:    advisory,
		WorkspaceID: params.WorkspaceID,
		CreatedAt:   now,
	}

	if err := s.saveSong(ctx, song); err != nil {
		return nil, fmt.Errorf("failed to save song: %w", err)
	}
	if err := s.redis.SAdd(ctx, userSongsKey(userID), songID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index song: %w", err)
	}

	payload := &model.GenerationJobPayload{
		SongID: songID,
		UserID: userID,
		Params: *params,
	}
	task, err := newGenerateTask(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	_, err = s.asynqClient.Enqueue(task,
		asynq.Queue("generate"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	duration := params.DurationSeconds
	if duration <= 0 {
		duration = DefaultDurationSeconds
	}

	return &model.SongCreateResponse{
		SongID:           songID,
		Status:           model.SongStatusQueued,
		EstimatedSeconds: EstimateSeconds(duration),
		Advisory:         advisory,
		CreatedAt:        now,
	}, nil
}

// GetSong returns one song from the user's library.
func (s *SongService) GetSong(ctx context.Context, userID, songID string) (*model.Song, error) {
	song, err := s.loadSong(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song.UserID != userID {
		return nil, fmt.Errorf("song not found")
	}
	return song, nil
}

// ListSongs returns the user's library, newest first.
func (s *SongService) ListSongs(ctx context.Context, userID string) (*model.SongListResponse, error) {
	ids, err := s.redis.SMembers(ctx, userSongsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	songs := make([]model.Song, 0, len(ids))
	for _, id := range ids {
		song, err := s.loadSong(ctx, id)
		if err != nil {
			continue // expired records drop out of the index lazily
		}
		songs = append(songs, *song)
	}

	sort.Slice(songs, func(i, j int) bool {
		return songs[i].CreatedAt.After(songs[j].CreatedAt)
	})

	return &model.SongListResponse{Songs: songs}, nil
}

// DeleteSong removes a song record, its index entry, and its stored audio.
func (s *SongService) DeleteSong(ctx context.Context, userID, songID string) error {
	song, err := s.GetSong(ctx, userID, songID)
	if err != nil {
		return err
	}

	if err := s.redis.Del(ctx, songKey(songID)).Err(); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if err := s.redis.SRem(ctx, userSongsKey(userID), songID).Err(); err != nil {
		return fmt.Errorf("failed to unindex song: %w", err)
	}

	if s.r2Client != nil && song.AudioURL != "" {
		if err := s.r2Client.Delete(ctx, fmt.Sprintf("songs/%s.mp3", songID)); err != nil {
			// Blob cleanup is best effort; the record is already gone.
			return nil
		}
	}

	return nil
}

// MarkGenerating flips the record to generating (called by the worker).
func (s *SongService) MarkGenerating(ctx context.Context, songID string) error {
	song, err := s.loadSong(ctx, songID)
	if err != nil {
		return err
	}
	song.Status = model.SongStatusGenerating
	return s.saveSong(ctx, song)
}

// CompleteSong records the generated audio URL (called by the worker).
func (s *SongService) CompleteSong(ctx context.Context, songID, audioURL string) error {
	song, err := s.loadSong(ctx, songID)
	if err != nil {
		return err
	}
	song.Status = model.SongStatusReady
	song.AudioURL = audioURL
	now := time.Now()
	song.CompletedAt = &now
	return s.saveSong(ctx, song)
}

// FailSong records a generation failure (called by the worker).
func (s *SongService) FailSong(ctx context.Context, songID, errMsg string) error {
	song, err := s.loadSong(ctx, songID)
	if err != nil {
		return err
	}
	song.Status = model.SongStatusFailed
	song.Error = &errMsg
	now := time.Now()
	song.CompletedAt = &now
	return s.saveSong(ctx, song)
}

// Helper methods

func (s *SongService) saveSong(ctx context.Context, song *model.Song) error {
	data, err := json.Marshal(song)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, songKey(song.ID), data, songRetention).Err()
}

func (s *SongService) loadSong(ctx context.Context, songID string) (*model.Song, error) {
	data, err := s.redis.Get(ctx, songKey(songID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("song not found")
		}
		return nil, err
	}

	var song model.Song
	if err := json.Unmarshal(data, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func songKey(songID string) string {
	return fmt.Sprintf("song:%s", songID)
}

func userSongsKey(userID string) string {
	return fmt.Sprintf("user:%s:songs", userID)
}

func newGenerateTask(payload *model.GenerationJobPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeGenerate, data), nil
}
