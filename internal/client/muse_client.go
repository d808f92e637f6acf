package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/soundforge/api/internal/config"
)

// OutputFormatMP3 is the only output format the service requests.
const OutputFormatMP3 = "mp3"

// Recognized backend error codes
const (
	codeInvalidAPIKey   = "INVALID_API_KEY"
	codeMissingAPIKey   = "MISSING_API_KEY"
	codeConnectionError = "CONNECTION_ERROR"
)

// GenerationErrorKind classifies a failed generation attempt.
type GenerationErrorKind string

const (
	ErrKindConnectivity       GenerationErrorKind = "connectivity"
	ErrKindCredential         GenerationErrorKind = "credential"
	ErrKindBackendUnavailable GenerationErrorKind = "backend_unavailable"
	ErrKindPromptRejected     GenerationErrorKind = "prompt_rejected"
	ErrKindGeneric            GenerationErrorKind = "generic"
)

// GenerationError is the typed failure returned by the Muse client. The
// original backend message is never swallowed; hint and suggestion are
// carried through verbatim when the server supplies them.
type GenerationError struct {
	Kind       GenerationErrorKind
	Message    string
	Hint       string
	Suggestion string
	StatusCode int
}

func (e *GenerationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Hint)
	}
	return e.Message
}

// MusicGenerator defines the interface for the text-to-music backend.
type MusicGenerator interface {
	Generate(ctx context.Context, req *GenerateRequest) ([]byte, error)
	IsConfigured() bool
}

// GenerateRequest is the wire request for one generation call.
type GenerateRequest struct {
	Prompt          string `json:"prompt"`
	DurationSeconds int    `json:"duration_seconds"`
	Instrumental    bool   `json:"instrumental"`
	OutputFormat    string `json:"output_format"`
}

// errorBody is the structured failure payload the backend may return.
type errorBody struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	Hint       string `json:"hint"`
	Suggestion string `json:"suggestion"`
}

// MuseClient implements MusicGenerator for the Muse API
type MuseClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewMuseClient creates a new Muse API client
func NewMuseClient(cfg *config.MuseConfig) *MuseClient {
	return &MuseClient{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// Generate submits one compiled prompt and returns the raw audio payload.
// No decoding is performed here; the bytes are handed back unmodified.
// Exactly one outbound request is issued, with no retry.
func (c *MuseClient) Generate(ctx context.Context, genReq *GenerateRequest) ([]byte, error) {
	bodyBytes, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/music/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Printf("[Muse API] → POST %s (duration=%ds instrumental=%v)", req.URL.String(), genReq.DurationSeconds, genReq.Instrumental)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Muse API] ✗ request failed: %v", err)
		return nil, &GenerationError{
			Kind:    ErrKindConnectivity,
			Message: fmt.Sprintf("generation backend unreachable: %v", err),
			Hint:    "check MUSE_BASE_URL and network connectivity",
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[Muse API] ✗ failed to read response: %v", err)
		return nil, &GenerationError{
			Kind:    ErrKindConnectivity,
			Message: fmt.Sprintf("failed to read backend response: %v", err),
			Hint:    "check MUSE_BASE_URL and network connectivity",
		}
	}

	log.Printf("[Muse API] ← %d POST %s (%d bytes)", resp.StatusCode, req.URL.String(), len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyFailure(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// classifyFailure maps a structured backend error body onto the typed
// failure taxonomy. Credential signals win, then the backend's own
// connection-failure code, then any prompt-rejection suggestion.
func classifyFailure(status int, body []byte) *GenerationError {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Error
	if message == "" {
		message = fmt.Sprintf("generation failed with status %d: %s", status, string(body))
	}

	switch {
	case parsed.Code == codeInvalidAPIKey, parsed.Code == codeMissingAPIKey, status == http.StatusUnauthorized:
		hint := parsed.Hint
		if hint == "" {
			hint = "set the MUSE_API_KEY environment variable to a valid key"
		}
		return &GenerationError{
			Kind:       ErrKindCredential,
			Message:    message,
			Hint:       hint,
			StatusCode: status,
		}
	case parsed.Code == codeConnectionError:
		return &GenerationError{
			Kind:       ErrKindBackendUnavailable,
			Message:    message,
			Hint:       parsed.Hint,
			StatusCode: status,
		}
	case parsed.Suggestion != "":
		return &GenerationError{
			Kind:       ErrKindPromptRejected,
			Message:    message,
			Suggestion: parsed.Suggestion,
			StatusCode: status,
		}
	default:
		return &GenerationError{
			Kind:       ErrKindGeneric,
			Message:    message,
			Hint:       parsed.Hint,
			StatusCode: status,
		}
	}
}

// IsConfigured returns true if the client has valid configuration
func (c *MuseClient) IsConfigured() bool {
	return c.apiKey != ""
}
