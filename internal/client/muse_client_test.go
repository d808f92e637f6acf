package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soundforge/api/internal/config"
)

func newTestClient(url string) *MuseClient {
	return NewMuseClient(&config.MuseConfig{BaseURL: url, APIKey: "test-key"})
}

func TestGenerate_Success(t *testing.T) {
	audio := []byte{0x49, 0x44, 0x33, 0x04, 0x00} // ID3 header bytes

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/music/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %s", got)
		}

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Prompt != "mellow jazz" {
			t.Errorf("unexpected prompt: %q", req.Prompt)
		}
		if req.DurationSeconds != 60 {
			t.Errorf("unexpected duration: %d", req.DurationSeconds)
		}
		if req.OutputFormat != OutputFormatMP3 {
			t.Errorf("unexpected output format: %q", req.OutputFormat)
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got, err := c.Generate(context.Background(), &GenerateRequest{
		Prompt:          "mellow jazz",
		DurationSeconds: 60,
		OutputFormat:    OutputFormatMP3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, audio) {
		t.Errorf("audio payload modified in transit: %v", got)
	}
}

func TestGenerate_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use: connection refused

	c := newTestClient(server.URL)
	_, err := c.Generate(context.Background(), &GenerateRequest{Prompt: "anything"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Kind != ErrKindConnectivity {
		t.Errorf("expected connectivity kind, got %s", genErr.Kind)
	}
	if genErr.Hint == "" {
		t.Error("expected a remediation hint")
	}
}

func TestGenerate_CredentialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "invalid api key",
			"code":  "INVALID_API_KEY",
			"hint":  "rotate your key in the dashboard",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Generate(context.Background(), &GenerateRequest{Prompt: "anything"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Kind != ErrKindCredential {
		t.Errorf("expected credential kind, got %s", genErr.Kind)
	}
	if genErr.Hint != "rotate your key in the dashboard" {
		t.Errorf("server hint not propagated verbatim: %q", genErr.Hint)
	}
	if genErr.Message != "invalid api key" {
		t.Errorf("server message not preserved: %q", genErr.Message)
	}
}

func TestGenerate_MissingKeyDefaultHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "no api key supplied",
			"code":  "MISSING_API_KEY",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Generate(context.Background(), &GenerateRequest{Prompt: "anything"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Kind != ErrKindCredential {
		t.Errorf("expected credential kind, got %s", genErr.Kind)
	}
	if genErr.Hint == "" {
		t.Error("expected a default remediation hint when server sends none")
	}
}

func TestGenerate_BackendUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "upstream model connection failed",
			"code":  "CONNECTION_ERROR",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Generate(context.Background(), &GenerateRequest{Prompt: "anything"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Kind != ErrKindBackendUnavailable {
		t.Errorf("expected backend-unavailable kind, got %s", genErr.Kind)
	}
}

func TestGenerate_PromptRejectedBySuggestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":      "prompt rejected by content filter",
			"code":       "PROMPT_FLAGGED",
			"suggestion": "try describing the mood instead",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Generate(context.Background(), &GenerateRequest{Prompt: "anything"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	// Any body carrying a suggestion is a prompt rejection, whatever the code.
	if genErr.Kind != ErrKindPromptRejected {
		t.Errorf("expected prompt-rejected kind, got %s", genErr.Kind)
	}
	if genErr.Suggestion != "try describing the mood instead" {
		t.Errorf("suggestion not carried through: %q", genErr.Suggestion)
	}
}

func TestGenerate_GenericFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "internal renderer crash",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Generate(context.Background(), &GenerateRequest{Prompt: "anything"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Kind != ErrKindGeneric {
		t.Errorf("expected generic kind, got %s", genErr.Kind)
	}
	if genErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status code preserved, got %d", genErr.StatusCode)
	}
	if genErr.Message != "internal renderer crash" {
		t.Errorf("server message not preserved: %q", genErr.Message)
	}
}

func TestIsConfigured(t *testing.T) {
	if NewMuseClient(&config.MuseConfig{BaseURL: "http://localhost"}).IsConfigured() {
		t.Error("client without API key should not be configured")
	}
	if !newTestClient("http://localhost").IsConfigured() {
		t.Error("client with API key should be configured")
	}
}
