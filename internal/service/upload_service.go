package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/soundforge/api/internal/client"
	"github.com/soundforge/api/internal/model"
)

// UploadService handles user audio uploads to R2 storage.
type UploadService struct {
	r2Client client.StorageClient
}

// NewUploadService creates a new upload service with R2 client
func NewUploadService(r2Client client.StorageClient) *UploadService {
	return &UploadService{
		r2Client: r2Client,
	}
}

// UploadAudio stores a user-provided audio reference.
func (s *UploadService) UploadAudio(ctx context.Context, userID string, file io.Reader, fileSize int64) (*model.UploadAudioResponse, error) {
	uploadID := uuid.New().String()
	key := fmt.Sprintf("uploads/%s/%s.mp3", userID, uploadID)

	// Use mock response if client is not configured
	if s.r2Client == nil {
		return s.uploadMock(uploadID, userID, fileSize)
	}

	fileURL, err := s.r2Client.Upload(ctx, key, file, "audio/mpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio: %w", err)
	}

	return &model.UploadAudioResponse{
		ID:        uploadID,
		FileURL:   fileURL,
		Size:      fileSize,
		CreatedAt: time.Now(),
	}, nil
}

// DeleteAudio removes an uploaded audio reference.
func (s *UploadService) DeleteAudio(ctx context.Context, userID, uploadID string) error {
	if s.r2Client == nil {
		return nil // Mock: no-op
	}

	key := fmt.Sprintf("uploads/%s/%s.mp3", userID, uploadID)
	return s.r2Client.Delete(ctx, key)
}

// Mock implementation for development/testing
func (s *UploadService) uploadMock(uploadID, userID string, fileSize int64) (*model.UploadAudioResponse, error) {
	return &model.UploadAudioResponse{
		ID:        uploadID,
		FileURL:   fmt.Sprintf("https://cdn.soundforge.dev/uploads/%s/%s.mp3", userID, uploadID),
		Size:      fileSize,
		CreatedAt: time.Now(),
	}, nil
}
