package service

import (
	"context"
	"errors"
	"testing"

	"github.com/soundforge/api/internal/client"
	"github.com/soundforge/api/internal/model"
)

// stubGenerator records the last request and returns canned results.
type stubGenerator struct {
	lastReq *client.GenerateRequest
	calls   int
	audio   []byte
	err     error
}

func (s *stubGenerator) Generate(ctx context.Context, req *client.GenerateRequest) ([]byte, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

func (s *stubGenerator) IsConfigured() bool { return true }

func TestSubmit_EmptyPromptNoNetworkCall(t *testing.T) {
	stub := &stubGenerator{audio: []byte("audio")}
	svc := NewGenerationService(stub)

	for _, compiled := range []string{"", "   ", "\n\t"} {
		_, err := svc.Submit(context.Background(), compiled, 60, false)
		if !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("Submit(%q): expected ErrEmptyPrompt, got %v", compiled, err)
		}
	}
	if stub.calls != 0 {
		t.Errorf("expected no backend calls for empty prompts, got %d", stub.calls)
	}
}

func TestSubmit_DefaultsDuration(t *testing.T) {
	stub := &stubGenerator{audio: []byte("audio")}
	svc := NewGenerationService(stub)

	result, err := svc.Submit(context.Background(), "mellow jazz", 0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.lastReq.DurationSeconds != DefaultDurationSeconds {
		t.Errorf("expected default duration %d, got %d", DefaultDurationSeconds, stub.lastReq.DurationSeconds)
	}
	if stub.lastReq.OutputFormat != client.OutputFormatMP3 {
		t.Errorf("expected fixed output format, got %q", stub.lastReq.OutputFormat)
	}
	if !stub.lastReq.Instrumental {
		t.Error("expected instrumental flag carried through")
	}
	if string(result.Audio) != "audio" {
		t.Errorf("unexpected audio payload: %q", result.Audio)
	}
	if result.Prompt != "mellow jazz" {
		t.Errorf("unexpected prompt in result: %q", result.Prompt)
	}
}

func TestGenerate_CompilesAndSubmitsOnce(t *testing.T) {
	stub := &stubGenerator{audio: []byte("audio")}
	svc := NewGenerationService(stub)

	params := &model.CreateSongParams{
		CustomStyle:     "synthwave",
		IsInstrumental:  true,
		DurationSeconds: 90,
	}

	result, err := svc.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.calls != 1 {
		t.Errorf("expected exactly one backend call, got %d", stub.calls)
	}
	if stub.lastReq.Prompt != result.Prompt {
		t.Errorf("submitted prompt %q differs from result prompt %q", stub.lastReq.Prompt, result.Prompt)
	}
	if stub.lastReq.DurationSeconds != 90 {
		t.Errorf("expected duration 90, got %d", stub.lastReq.DurationSeconds)
	}
}

func TestGenerate_BackendErrorPassedThrough(t *testing.T) {
	backendErr := &client.GenerationError{
		Kind:    client.ErrKindBackendUnavailable,
		Message: "upstream down",
	}
	stub := &stubGenerator{err: backendErr}
	svc := NewGenerationService(stub)

	_, err := svc.Generate(context.Background(), &model.CreateSongParams{CustomStyle: "jazz", IsInstrumental: true})

	var genErr *client.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Kind != client.ErrKindBackendUnavailable {
		t.Errorf("error kind rewritten: %s", genErr.Kind)
	}
}

func TestEstimateSeconds(t *testing.T) {
	tests := []struct {
		duration int
		want     int
	}{
		{60, 100},
		{30, 55},
		{61, 102},
		{1, 12},
	}

	for _, tt := range tests {
		if got := EstimateSeconds(tt.duration); got != tt.want {
			t.Errorf("EstimateSeconds(%d) = %d, want %d", tt.duration, got, tt.want)
		}
	}
}
