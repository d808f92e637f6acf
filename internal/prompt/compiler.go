package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/soundforge/api/internal/model"
)

// Descriptor tables. Every enum value has an entry; an empty phrase means
// the backend decides. The segment order in Compile is a contract — the
// generation backend weights earlier cues more heavily.

// creativityPhrase maps the creativity slider to five bands over [0,100).
// The middle band is neutral and emits nothing.
func creativityPhrase(value int) string {
	switch {
	case value < 20:
		return "conventional and familiar style"
	case value < 40:
		return "accessible with subtle creative touches"
	case value < 60:
		return ""
	case value < 80:
		return "creative and adventurous arrangement"
	default:
		return "experimental and unconventional approach"
	}
}

// energyPhrase mirrors the creativity bands with its own vocabulary.
func energyPhrase(value int) string {
	switch {
	case value < 20:
		return "calm and relaxed energy"
	case value < 40:
		return "laid-back groove"
	case value < 60:
		return ""
	case value < 80:
		return "energetic and driving"
	default:
		return "intense high-energy performance"
	}
}

var vocalDescriptors = map[model.VocalStyle]string{
	model.VocalStyleAuto:   "",
	model.VocalStyleMale:   "with male vocals",
	model.VocalStyleFemale: "with female vocals",
	model.VocalStyleDuet:   "with a male and female duet",
	model.VocalStyleChoir:  "with layered choir vocals",
}

var presetPhrases = map[model.InstrumentalPreset]string{
	model.PresetCinematic:  "cinematic orchestral production",
	model.PresetLofi:       "lo-fi hip hop beats",
	model.PresetAmbient:    "ambient atmospheric textures",
	model.PresetJazz:       "smooth jazz instrumentation",
	model.PresetElectronic: "modern electronic production",
	model.PresetAcoustic:   "warm acoustic instrumentation",
}

var structurePhrases = map[model.StructureType]string{
	model.StructureIntro:     "atmospheric intro",
	model.StructureVerse:     "melodic verse",
	model.StructureBuildup:   "rising buildup with tension",
	model.StructureDrop:      "powerful drop with energy release",
	model.StructureBreakdown: "stripped-back breakdown",
	model.StructureBridge:    "contrasting bridge",
	model.StructureLoop:      "seamless loop section",
	model.StructureOutro:     "fading outro",
}

// sectionTagRe recognizes lyrics that already carry structure tags.
var sectionTagRe = regexp.MustCompile(`(?i)\[(Verse|Chorus|Bridge|Intro|Outro|Pre-Chorus|Hook)(\s*\d+)?\]`)

// Compile assembles the generation instruction from structured parameters.
// It is pure and deterministic; an all-empty result is valid output and the
// caller decides whether it is worth sending.
func Compile(p *model.CreateSongParams) string {
	var segments []string

	// Style comes first; a custom style wins over the free-text prompt.
	if p.CustomStyle != "" {
		segments = append(segments, p.CustomStyle)
	} else if p.Prompt != "" {
		segments = append(segments, p.Prompt)
	}

	if phrase := creativityPhrase(p.Creativity); phrase != "" {
		segments = append(segments, phrase)
	}
	if phrase := energyPhrase(p.Energy); phrase != "" {
		segments = append(segments, phrase)
	}

	// A non-instrumental request is never emitted without a vocal cue.
	if !p.IsInstrumental {
		vocal := vocalDescriptors[p.VocalStyle]
		if vocal == "" {
			vocal = "with vocals"
		}
		segments = append(segments, vocal)
	}

	if p.BPM > 0 {
		segments = append(segments, fmt.Sprintf("%d BPM", p.BPM))
	}
	if p.KeySignature != "" {
		segments = append(segments, "in "+p.KeySignature)
	}

	if p.IsInstrumental {
		segments = append(segments, "instrumental only, no vocals")
		if detail := instrumentalDetail(p); detail != "" {
			segments = append(segments, detail)
		}
	} else if p.CustomLyrics != "" {
		segments = append(segments, "\n"+FormatLyrics(p.CustomLyrics))
	}

	// Title is prepended so the backend reads it before everything else.
	if p.CustomTitle != "" {
		segments = append([]string{fmt.Sprintf("Song: %q", p.CustomTitle)}, segments...)
	}

	// Exclusions always close the instruction.
	if p.ExcludeStyles != "" {
		segments = append(segments, "avoid: "+p.ExcludeStyles)
	}

	result := strings.Join(segments, ", ")

	// A segment starting with a newline should not keep the joining comma.
	return strings.ReplaceAll(result, ", \n", "\n")
}

// instrumentalDetail composes the preset, instrument list, and structure
// walkthrough into one clause.
func instrumentalDetail(p *model.CreateSongParams) string {
	var parts []string

	if phrase, ok := presetPhrases[p.InstrumentalPreset]; ok && phrase != "" {
		parts = append(parts, phrase)
	}

	if len(p.Instruments) > 0 {
		parts = append(parts, "featuring "+strings.Join(p.Instruments, ", "))
	}

	if len(p.StructureSections) > 0 {
		phrases := make([]string, 0, len(p.StructureSections))
		for _, section := range p.StructureSections {
			if phrase, ok := structurePhrases[section.Type]; ok && phrase != "" {
				phrases = append(phrases, phrase)
			}
		}
		if len(phrases) > 0 {
			parts = append(parts, "structure: "+strings.Join(phrases, ", then "))
		}
	}

	return strings.Join(parts, ", ")
}

// FormatLyrics normalizes user lyrics into tagged blocks. Lyrics that
// already carry section tags pass through unchanged. Untagged lyrics become
// a single [Verse], or a [Verse 1]/[Chorus] pair split at the midpoint.
func FormatLyrics(lyrics string) string {
	if sectionTagRe.MatchString(lyrics) {
		return lyrics
	}

	var lines []string
	for _, line := range strings.Split(lyrics, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	if len(lines) == 0 {
		return lyrics
	}

	if len(lines) <= 4 {
		return "[Verse]\n" + strings.Join(lines, "\n")
	}

	mid := len(lines) / 2
	return "[Verse 1]\n" + strings.Join(lines[:mid], "\n") +
		"\n\n[Chorus]\n" + strings.Join(lines[mid:], "\n")
}
