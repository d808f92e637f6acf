package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/soundforge/api/internal/auth"
	"github.com/soundforge/api/internal/client"
	"github.com/soundforge/api/internal/middleware"
	"github.com/soundforge/api/internal/model"
	"github.com/soundforge/api/internal/service"
	"github.com/soundforge/api/pkg/response"
)

const testSecret = "test-secret"

type stubGenerator struct {
	audio []byte
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, req *client.GenerateRequest) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

func (s *stubGenerator) IsConfigured() bool { return true }

func newTestApp(gen client.MusicGenerator) *fiber.App {
	app := fiber.New()
	v := validator.New()

	authMW := middleware.NewHMACAuthMiddleware(testSecret)
	promptHandler := NewPromptHandler(v)
	songHandler := NewSongHandler(nil, service.NewGenerationService(gen), v)

	api := app.Group("/api", authMW.Authenticate())
	api.Post("/prompt/validate", promptHandler.Validate)
	api.Post("/prompt/feedback", promptHandler.Feedback)
	api.Post("/songs/generate", songHandler.Generate)

	return app
}

func authedRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	token, err := auth.IssueToken("user-1", "user@example.com", testSecret, 1)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeError(t *testing.T, resp *http.Response) response.ErrorResponse {
	t.Helper()
	var envelope response.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return envelope
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/prompt/validate", bytes.NewReader([]byte(`{"text":"hi"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestValidatePrompt(t *testing.T) {
	app := newTestApp(&stubGenerator{})

	req := authedRequest(t, http.MethodPost, "/api/prompt/validate", model.ValidatePromptRequest{
		Text: "upbeat jazz with saxophone",
	})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result model.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if !result.IsValid {
		t.Errorf("expected clean prompt to be valid, got error %q", result.Error)
	}
}

func TestGenerateBlockedPrompt(t *testing.T) {
	app := newTestApp(&stubGenerator{audio: []byte("mp3")})

	req := authedRequest(t, http.MethodPost, "/api/songs/generate", model.CreateSongParams{
		Prompt: "sing the lyrics to that famous hit",
	})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for blocked prompt, got %d", resp.StatusCode)
	}

	envelope := decodeError(t, resp)
	if envelope.Error.Code != response.CodePromptBlocked {
		t.Errorf("expected code %s, got %s", response.CodePromptBlocked, envelope.Error.Code)
	}
}

func TestGenerateReturnsAudio(t *testing.T) {
	audio := []byte{0xFF, 0xFB, 0x01, 0x02}
	app := newTestApp(&stubGenerator{audio: audio})

	req := authedRequest(t, http.MethodPost, "/api/songs/generate", model.CreateSongParams{
		Prompt: "dreamy ambient soundscape",
	})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("expected audio/mpeg content type, got %q", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !bytes.Equal(body, audio) {
		t.Errorf("audio bytes altered in transit")
	}
}

func TestGenerateBackendRejection(t *testing.T) {
	app := newTestApp(&stubGenerator{err: &client.GenerationError{
		Kind:       client.ErrKindPromptRejected,
		Message:    "prompt rejected by moderation",
		Suggestion: "try describing a genre instead",
		StatusCode: 422,
	}})

	req := authedRequest(t, http.MethodPost, "/api/songs/generate", model.CreateSongParams{
		Prompt: "dreamy ambient soundscape",
	})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for rejected prompt, got %d", resp.StatusCode)
	}

	envelope := decodeError(t, resp)
	if envelope.Error.Code != response.CodeGenerationError {
		t.Errorf("expected code %s, got %s", response.CodeGenerationError, envelope.Error.Code)
	}
	details, ok := envelope.Error.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("expected details map, got %T", envelope.Error.Details)
	}
	if details["suggestion"] != "try describing a genre instead" {
		t.Errorf("suggestion not propagated: %v", details["suggestion"])
	}
}

func TestGenerateBackendUnavailable(t *testing.T) {
	app := newTestApp(&stubGenerator{err: &client.GenerationError{
		Kind:    client.ErrKindConnectivity,
		Message: "request failed",
		Hint:    "check MUSE_BASE_URL and network connectivity",
	}})

	req := authedRequest(t, http.MethodPost, "/api/songs/generate", model.CreateSongParams{
		Prompt: "dreamy ambient soundscape",
	})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for connectivity failure, got %d", resp.StatusCode)
	}
}

func TestPromptFeedback(t *testing.T) {
	app := newTestApp(&stubGenerator{})

	req := authedRequest(t, http.MethodPost, "/api/prompt/feedback", model.ValidatePromptRequest{
		Text: "fuck this song",
	})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var feedback model.PromptFeedback
	if err := json.NewDecoder(resp.Body).Decode(&feedback); err != nil {
		t.Fatalf("failed to decode feedback: %v", err)
	}
	if feedback.Status != model.FeedbackError {
		t.Errorf("expected error status, got %s", feedback.Status)
	}
}
