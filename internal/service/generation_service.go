package service

import (
	"context"
	"errors"
	"strings"

	"github.com/soundforge/api/internal/client"
	"github.com/soundforge/api/internal/model"
	"github.com/soundforge/api/internal/prompt"
)

// ErrEmptyPrompt is returned when the compiled instruction carries nothing
// worth sending; no network call is made in that case.
var ErrEmptyPrompt = errors.New("compiled prompt is empty")

// DefaultDurationSeconds applies when the caller does not request a length.
const DefaultDurationSeconds = 60

// GenerationResult carries the raw audio and the instruction that produced it.
type GenerationResult struct {
	Audio  []byte
	Prompt string
}

// GenerationService orchestrates one generation request: compile the
// structured parameters, submit once, and surface typed failures.
type GenerationService struct {
	museClient client.MusicGenerator
}

// NewGenerationService creates a new generation service with a Muse client
func NewGenerationService(museClient client.MusicGenerator) *GenerationService {
	return &GenerationService{
		museClient: museClient,
	}
}

// Generate compiles the parameters and submits the result to the backend.
func (s *GenerationService) Generate(ctx context.Context, params *model.CreateSongParams) (*GenerationResult, error) {
	compiled := prompt.Compile(params)
	return s.Submit(ctx, compiled, params.DurationSeconds, params.IsInstrumental)
}

// Submit sends an already-compiled instruction. Exactly one outbound call is
// issued; an empty or whitespace instruction fails before any network I/O.
func (s *GenerationService) Submit(ctx context.Context, compiled string, durationSeconds int, instrumental bool) (*GenerationResult, error) {
	if strings.TrimSpace(compiled) == "" {
		return nil, ErrEmptyPrompt
	}

	if durationSeconds <= 0 {
		durationSeconds = DefaultDurationSeconds
	}

	audio, err := s.museClient.Generate(ctx, &client.GenerateRequest{
		Prompt:          compiled,
		DurationSeconds: durationSeconds,
		Instrumental:    instrumental,
		OutputFormat:    client.OutputFormatMP3,
	})
	if err != nil {
		return nil, err
	}

	return &GenerationResult{Audio: audio, Prompt: compiled}, nil
}

// EstimateSeconds predicts how long a generation of the given song length
// takes. Display-only pacing; not a correctness guarantee.
func EstimateSeconds(durationSeconds int) int {
	return (durationSeconds*3+1)/2 + 10
}
