package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/soundforge/api/internal/client"
	"github.com/soundforge/api/internal/model"
	"github.com/soundforge/api/internal/service"
	"github.com/soundforge/api/internal/websocket"
)

// GenerationWorker processes queued song generation jobs
type GenerationWorker struct {
	songService       *service.SongService
	generationService *service.GenerationService
	museClient        client.MusicGenerator
	r2Client          client.StorageClient
	hub               *websocket.Hub
}

// NewGenerationWorker creates a new generation worker
func NewGenerationWorker(songService *service.SongService, generationService *service.GenerationService, museClient client.MusicGenerator, r2Client client.StorageClient, hub *websocket.Hub) *GenerationWorker {
	return &GenerationWorker{
		songService:       songService,
		generationService: generationService,
		museClient:        museClient,
		r2Client:          r2Client,
		hub:               hub,
	}
}

// ProcessTask handles one generation task
func (w *GenerationWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.GenerationJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	songID := payload.SongID
	log.Printf("Starting generation job for song %s", songID)

	if err := w.songService.MarkGenerating(ctx, songID); err != nil {
		log.Printf("Failed to mark song %s generating: %v", songID, err)
	}

	if w.museClient == nil || !w.museClient.IsConfigured() {
		return w.processWithMock(ctx, songID)
	}

	return w.processWithMuse(ctx, songID, &payload)
}

// processWithMuse runs the real generation pipeline
func (w *GenerationWorker) processWithMuse(ctx context.Context, songID string, payload *model.GenerationJobPayload) error {
	w.updateProgress(songID, 10, "Compiling prompt...")

	w.updateProgress(songID, 25, "Generating audio...")
	result, err := w.generationService.Generate(ctx, &payload.Params)
	if err != nil {
		w.failJob(ctx, songID, fmt.Sprintf("Music generation failed: %v", err))
		return err
	}

	w.updateProgress(songID, 80, "Storing audio...")
	audioURL, err := w.storeAudio(ctx, songID, result.Audio)
	if err != nil {
		w.failJob(ctx, songID, fmt.Sprintf("Audio upload failed: %v", err))
		return err
	}

	return w.complete(ctx, songID, audioURL)
}

// processWithMock simulates generation for development without credentials
func (w *GenerationWorker) processWithMock(ctx context.Context, songID string) error {
	steps := []struct {
		progress int
		step     string
		duration time.Duration
	}{
		{10, "Compiling prompt...", 1 * time.Second},
		{30, "Generating melody...", 3 * time.Second},
		{55, "Generating arrangement...", 3 * time.Second},
		{80, "Rendering audio...", 3 * time.Second},
		{95, "Finalizing...", 1 * time.Second},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			log.Printf("Generation job for song %s cancelled", songID)
			return ctx.Err()
		default:
		}

		w.updateProgress(songID, step.progress, step.step)
		time.Sleep(step.duration)
	}

	audioURL := fmt.Sprintf("https://cdn.soundforge.dev/songs/%s.mp3", songID)
	return w.complete(ctx, songID, audioURL)
}

// storeAudio uploads the generated audio, falling back to a mock URL when
// storage is not configured.
func (w *GenerationWorker) storeAudio(ctx context.Context, songID string, audio []byte) (string, error) {
	if w.r2Client == nil {
		return fmt.Sprintf("https://cdn.soundforge.dev/songs/%s.mp3", songID), nil
	}
	return w.r2Client.UploadAudio(ctx, songID, audio)
}

func (w *GenerationWorker) complete(ctx context.Context, songID, audioURL string) error {
	if err := w.songService.CompleteSong(ctx, songID, audioURL); err != nil {
		w.failJob(ctx, songID, "Failed to save result")
		return err
	}

	w.hub.BroadcastComplete(songID, &model.GenerationResultMessage{
		SongID:   songID,
		Status:   model.SongStatusReady,
		AudioURL: audioURL,
	})
	log.Printf("Generation job for song %s completed", songID)
	return nil
}

func (w *GenerationWorker) updateProgress(songID string, progress int, step string) {
	w.hub.BroadcastProgress(songID, progress, model.JobStatusRunning, step)
}

func (w *GenerationWorker) failJob(ctx context.Context, songID, errMsg string) {
	if err := w.songService.FailSong(ctx, songID, errMsg); err != nil {
		log.Printf("Failed to mark song %s as failed: %v", songID, err)
	}
	w.hub.BroadcastError(songID, "GENERATION_FAILED", errMsg)
}
