package policy

import (
	"strings"
	"testing"

	"github.com/soundforge/api/internal/model"
)

func TestClassify_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  "} {
		result := Classify(text)
		if !result.IsValid {
			t.Errorf("Classify(%q): expected valid", text)
		}
		if result.WarningLevel != model.WarningNone {
			t.Errorf("Classify(%q): expected warning level none, got %s", text, result.WarningLevel)
		}
	}
}

func TestClassify_ExplicitLanguage(t *testing.T) {
	result := Classify("fuck this")

	if result.IsValid {
		t.Fatal("expected prompt to be blocked")
	}
	if result.WarningLevel != model.WarningError {
		t.Errorf("expected warning level error, got %s", result.WarningLevel)
	}
	if !strings.Contains(strings.ToLower(result.Error), "explicit") {
		t.Errorf("expected error message to reference explicit language, got %q", result.Error)
	}
	if result.Suggestion == "" {
		t.Error("expected a rewrite suggestion")
	}
}

func TestClassify_CopyrightRequest(t *testing.T) {
	result := Classify("give me the lyrics to that famous love ballad")

	if result.IsValid {
		t.Fatal("expected prompt to be blocked")
	}
	if result.Error != copyrightMessage {
		t.Errorf("expected copyright message, got %q", result.Error)
	}
	if result.WarningLevel != model.WarningError {
		t.Errorf("expected warning level error, got %s", result.WarningLevel)
	}
}

func TestClassify_PastedLyricsBlock(t *testing.T) {
	// 12 consecutive non-blank lines trips the anti-paste heuristic.
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "walking down a road i have never seen before"
	}
	result := Classify(strings.Join(lines, "\n"))

	if result.IsValid {
		t.Fatal("expected pasted block to be rejected")
	}
	if result.Error != copyrightMessage {
		t.Errorf("expected copyright message, got %q", result.Error)
	}
	if result.Suggestion == "" {
		t.Error("expected a rewrite suggestion")
	}
}

func TestClassify_ClassicalAllowList(t *testing.T) {
	result := Classify("Pachelbel's Canon in D")
	if !result.IsValid || result.WarningLevel != model.WarningNone {
		t.Errorf("expected classical reference to be allowed, got %+v", result)
	}

	// The allow-list applies regardless of length.
	long := "An interpretation of the moonlight sonata reimagined for a rainy evening, " +
		strings.Repeat("slow, deliberate, and full of space, ", 8) + "\nclosing quietly."
	result = Classify(long)
	if !result.IsValid || result.WarningLevel != model.WarningNone {
		t.Errorf("expected long classical reference to be allowed, got %+v", result)
	}
}

func TestClassify_MusicalTerminologyRatio(t *testing.T) {
	// Over 500 characters, so without the terminology ratio this would fall
	// through to the long-text warning.
	text := strings.Repeat("dreamy lofi piano with ambient reverb mellow drums warm bass chill groove atmospheric pads melodic synth ", 5)
	if len(text) <= 500 {
		t.Fatalf("test text too short: %d", len(text))
	}

	result := Classify(text)
	if !result.IsValid {
		t.Fatalf("expected valid, got %+v", result)
	}
	if result.WarningLevel != model.WarningNone {
		t.Errorf("expected terminology-dense text to pass without warning, got %s", result.WarningLevel)
	}
}

func TestClassify_NameShapes(t *testing.T) {
	for _, text := range []string{"The Storm", "Midnight Rain", "Golden Hour Drive", "Ocean's Heart"} {
		result := Classify(text)
		if !result.IsValid || result.WarningLevel != model.WarningNone {
			t.Errorf("Classify(%q): expected valid name shape, got %+v", text, result)
		}
	}
}

func TestClassify_ShortSingleLine(t *testing.T) {
	result := Classify("a gentle tune for a quiet afternoon in a small town")
	if !result.IsValid || result.WarningLevel != model.WarningNone {
		t.Errorf("expected short single-line prompt to be valid, got %+v", result)
	}
}

func TestClassify_LongProseWarns(t *testing.T) {
	sentence := "I want something that feels like a quiet walk across a wide field at first light, slowly gathering warmth and turning into a bright celebration by the end. "
	text := strings.Repeat(sentence, 4)
	if len(text) <= 500 || strings.Contains(text, "\n") {
		t.Fatalf("bad test text: len=%d", len(text))
	}

	result := Classify(text)
	if !result.IsValid {
		t.Fatalf("expected long prose to remain valid, got %+v", result)
	}
	if result.WarningLevel != model.WarningWarning {
		t.Errorf("expected warning level warning, got %s", result.WarningLevel)
	}
	if result.Suggestion == "" {
		t.Error("expected an advisory suggestion")
	}
}

func TestGenerateSuggestion(t *testing.T) {
	manyLines := strings.Repeat("line of text\n", 6)
	if got := GenerateSuggestion(manyLines); !strings.Contains(got, "pasting lyrics") {
		t.Errorf("expected anti-paste suggestion, got %q", got)
	}

	if got := GenerateSuggestion("make me a hit song"); !strings.Contains(got, "mood and style") {
		t.Errorf("expected mood/style template suggestion, got %q", got)
	}

	if got := GenerateSuggestion("something nice"); !strings.Contains(got, "genre, mood, and instruments") {
		t.Errorf("expected generic suggestion, got %q", got)
	}
}

func TestFeedback(t *testing.T) {
	fb := Feedback("fuck this")
	if fb.Status != model.FeedbackError {
		t.Errorf("expected error status, got %s", fb.Status)
	}
	if fb.Message == "" {
		t.Error("expected a message for blocked prompt")
	}

	sentence := "I want something that feels like a quiet walk across a wide field at first light, slowly gathering warmth and turning into a bright celebration by the end. "
	fb = Feedback(strings.Repeat(sentence, 4))
	if fb.Status != model.FeedbackWarning {
		t.Errorf("expected warning status, got %s", fb.Status)
	}
	if fb.Message == "" {
		t.Error("expected advisory message for warning")
	}

	fb = Feedback("upbeat pop")
	if fb.Status != model.FeedbackValid {
		t.Errorf("expected valid status, got %s", fb.Status)
	}
	if fb.Message != "" {
		t.Errorf("expected no message for valid prompt, got %q", fb.Message)
	}
}
