package model

import "time"

// StructureSection is one entry in the instrumental arrangement.
type StructureSection struct {
	Type StructureType `json:"type" validate:"required,oneof=intro verse buildup drop breakdown bridge loop outro"`
}

// CreateSongParams carries everything the prompt compiler needs to build
// a single generation instruction.
type CreateSongParams struct {
	Prompt             string             `json:"prompt" validate:"omitempty,max=2000"`
	CustomStyle        string             `json:"customStyle" validate:"omitempty,max=500"`
	CustomTitle        string             `json:"customTitle" validate:"omitempty,max=120"`
	CustomLyrics       string             `json:"customLyrics" validate:"omitempty,max=5000"`
	IsInstrumental     bool               `json:"isInstrumental"`
	VocalStyle         VocalStyle         `json:"vocalStyle" validate:"omitempty,oneof=auto male female duet choir"`
	Creativity         int                `json:"creativity" validate:"min=0,max=100"`
	Energy             int                `json:"energy" validate:"min=0,max=100"`
	BPM                int                `json:"bpm" validate:"omitempty,min=40,max=300"`
	KeySignature       string             `json:"keySignature" validate:"omitempty,max=20"`
	InstrumentalPreset InstrumentalPreset `json:"instrumentalPreset" validate:"omitempty,oneof=cinematic lofi ambient jazz electronic acoustic"`
	Instruments        []string           `json:"instruments" validate:"omitempty,max=12,dive,min=1"`
	StructureSections  []StructureSection `json:"structureSections" validate:"omitempty,max=16,dive"`
	ExcludeStyles      string             `json:"excludeStyles" validate:"omitempty,max=500"`
	DurationSeconds    int                `json:"durationSeconds" validate:"omitempty,min=1,max=600"`
	WorkspaceID        string             `json:"workspaceId" validate:"omitempty,uuid4"`
}

// ValidationResult is the outcome of the content policy gate.
// Produced fresh per call, never persisted.
type ValidationResult struct {
	IsValid      bool         `json:"isValid"`
	Error        string       `json:"error,omitempty"`
	Suggestion   string       `json:"suggestion,omitempty"`
	WarningLevel WarningLevel `json:"warningLevel"`
}

// PromptFeedback is the user-facing summary derived from a ValidationResult.
type PromptFeedback struct {
	Status  FeedbackStatus `json:"status"`
	Message string         `json:"message,omitempty"`
}

// ValidatePromptRequest is the request body for prompt validation endpoints.
// The size cap lives here at the boundary; classification itself is unbounded.
type ValidatePromptRequest struct {
	Text string `json:"text" validate:"max=10000"`
}

// Song is the persisted record of a generation request and its result.
type Song struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Title       string           `json:"title,omitempty"`
	Status      SongStatus       `json:"status"`
	Prompt      string           `json:"prompt"` // compiled instruction sent to the backend
	Params      CreateSongParams `json:"params"`
	Advisory    string           `json:"advisory,omitempty"`
	AudioURL    string           `json:"audioUrl,omitempty"`
	Error       *string          `json:"error,omitempty"`
	WorkspaceID string           `json:"workspaceId,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}

// SongCreateResponse is returned when a generation job is queued.
type SongCreateResponse struct {
	SongID           string     `json:"songId"`
	Status           SongStatus `json:"status"`
	EstimatedSeconds int        `json:"estimatedSeconds"`
	Advisory         string     `json:"advisory,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// SongListResponse wraps the user's library listing.
type SongListResponse struct {
	Songs []Song `json:"songs"`
}
