package prompt

import (
	"strings"
	"testing"

	"github.com/soundforge/api/internal/model"
)

func TestCompile_InstrumentalPreset(t *testing.T) {
	params := &model.CreateSongParams{
		IsInstrumental:     true,
		InstrumentalPreset: model.PresetLofi,
		Instruments:        []string{"piano", "drums"},
		StructureSections: []model.StructureSection{
			{Type: model.StructureIntro},
			{Type: model.StructureDrop},
		},
	}

	result := Compile(params)

	for _, want := range []string{
		"lo-fi hip hop beats",
		"featuring piano, drums",
		"structure: atmospheric intro, then powerful drop with energy release",
		"instrumental only, no vocals",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("compiled prompt missing %q:\n%s", want, result)
		}
	}
}

func TestCompile_VocalFallback(t *testing.T) {
	params := &model.CreateSongParams{
		IsInstrumental: false,
		VocalStyle:     model.VocalStyleAuto,
		CustomStyle:    "pop",
	}

	result := Compile(params)

	if got := strings.Count(result, "with vocals"); got != 1 {
		t.Errorf("expected exactly one 'with vocals' clause, got %d:\n%s", got, result)
	}
	for _, unwanted := range []string{"male", "female", "duet", "choir"} {
		if strings.Contains(result, unwanted) {
			t.Errorf("unexpected vocal-style phrase %q in:\n%s", unwanted, result)
		}
	}
}

func TestCompile_VocalDescriptor(t *testing.T) {
	params := &model.CreateSongParams{
		VocalStyle:  model.VocalStyleFemale,
		CustomStyle: "soul",
	}

	result := Compile(params)

	if !strings.Contains(result, "with female vocals") {
		t.Errorf("expected female vocal descriptor:\n%s", result)
	}
}

func TestCompile_StyleFallsBackToPrompt(t *testing.T) {
	params := &model.CreateSongParams{
		Prompt:         "gentle morning music",
		IsInstrumental: true,
	}

	result := Compile(params)
	if !strings.HasPrefix(result, "gentle morning music") {
		t.Errorf("expected prompt used as style segment:\n%s", result)
	}

	params.CustomStyle = "chamber folk"
	result = Compile(params)
	if !strings.HasPrefix(result, "chamber folk") {
		t.Errorf("expected custom style to win over prompt:\n%s", result)
	}
	if strings.Contains(result, "gentle morning music") {
		t.Errorf("prompt should be omitted when custom style is set:\n%s", result)
	}
}

func TestCompile_TitlePrependedExclusionLast(t *testing.T) {
	params := &model.CreateSongParams{
		CustomStyle:    "synthwave",
		CustomTitle:    "Neon Tide",
		ExcludeStyles:  "country, heavy metal",
		IsInstrumental: true,
	}

	result := Compile(params)

	if !strings.HasPrefix(result, `Song: "Neon Tide"`) {
		t.Errorf("expected title prepended:\n%s", result)
	}
	if !strings.HasSuffix(result, "avoid: country, heavy metal") {
		t.Errorf("expected exclusion appended last:\n%s", result)
	}
}

func TestCompile_TempoAndKey(t *testing.T) {
	params := &model.CreateSongParams{
		CustomStyle:    "house",
		IsInstrumental: true,
		BPM:            124,
		KeySignature:   "F minor",
	}

	result := Compile(params)

	if !strings.Contains(result, "124 BPM") {
		t.Errorf("expected tempo clause:\n%s", result)
	}
	if !strings.Contains(result, "in F minor") {
		t.Errorf("expected key clause:\n%s", result)
	}
}

func TestCompile_SliderBands(t *testing.T) {
	tests := []struct {
		creativity int
		energy     int
		contains   []string
		omits      []string
	}{
		{creativity: 10, energy: 10, contains: []string{"conventional", "calm"}},
		{creativity: 50, energy: 50, omits: []string{"conventional", "accessible", "creative", "experimental", "calm", "laid-back", "energetic", "intense"}},
		{creativity: 70, energy: 70, contains: []string{"creative", "energetic"}},
		{creativity: 95, energy: 95, contains: []string{"experimental", "intense"}},
	}

	for _, tt := range tests {
		params := &model.CreateSongParams{
			CustomStyle:    "jazz",
			IsInstrumental: true,
			Creativity:     tt.creativity,
			Energy:         tt.energy,
		}
		result := Compile(params)

		for _, want := range tt.contains {
			if !strings.Contains(result, want) {
				t.Errorf("creativity=%d energy=%d: missing %q:\n%s", tt.creativity, tt.energy, want, result)
			}
		}
		for _, unwanted := range tt.omits {
			if strings.Contains(result, unwanted) {
				t.Errorf("creativity=%d energy=%d: unexpected %q:\n%s", tt.creativity, tt.energy, unwanted, result)
			}
		}
	}
}

func TestCompile_LyricsBlockJoinedWithNewline(t *testing.T) {
	params := &model.CreateSongParams{
		CustomStyle:  "indie",
		CustomLyrics: "first line\nsecond line",
	}

	result := Compile(params)

	// The lyrics block starts on its own line with no dangling comma.
	if strings.Contains(result, ", \n") {
		t.Errorf("joining comma not collapsed before lyrics block:\n%s", result)
	}
	if !strings.Contains(result, "\n[Verse]\nfirst line\nsecond line") {
		t.Errorf("expected wrapped verse block:\n%s", result)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	params := &model.CreateSongParams{
		Prompt:        "sunset drive",
		CustomTitle:   "Afterglow",
		VocalStyle:    model.VocalStyleDuet,
		Creativity:    85,
		Energy:        30,
		BPM:           98,
		KeySignature:  "A major",
		ExcludeStyles: "screamo",
	}

	first := Compile(params)
	for i := 0; i < 10; i++ {
		if got := Compile(params); got != first {
			t.Fatalf("compile not deterministic:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestFormatLyrics_TaggedPassThrough(t *testing.T) {
	lyrics := "[Verse 1]\nhello there\n[Chorus]\nsing it loud"
	if got := FormatLyrics(lyrics); got != lyrics {
		t.Errorf("tagged lyrics should pass through unchanged, got:\n%s", got)
	}

	lyrics = "[pre-chorus]\nalmost there"
	if got := FormatLyrics(lyrics); got != lyrics {
		t.Errorf("tag matching should be case-insensitive, got:\n%s", got)
	}
}

func TestFormatLyrics_ShortWrappedAsVerse(t *testing.T) {
	got := FormatLyrics("one\ntwo\n\nthree")
	want := "[Verse]\none\ntwo\nthree"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatLyrics_EightLinesSplit(t *testing.T) {
	lines := []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8"}
	got := FormatLyrics(strings.Join(lines, "\n"))

	want := "[Verse 1]\nl1\nl2\nl3\nl4\n\n[Chorus]\nl5\nl6\nl7\nl8"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatLyrics_OddSplitFloorsMidpoint(t *testing.T) {
	got := FormatLyrics("a\nb\nc\nd\ne")

	if !strings.HasPrefix(got, "[Verse 1]\na\nb\n") {
		t.Errorf("expected first half of 2 lines, got %q", got)
	}
	if !strings.Contains(got, "[Chorus]\nc\nd\ne") {
		t.Errorf("expected second half of 3 lines, got %q", got)
	}
}
