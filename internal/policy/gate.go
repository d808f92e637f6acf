package policy

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/soundforge/api/internal/model"
)

// Rule categories for blocked patterns
const (
	CategoryExplicit  = "explicit"
	CategoryCopyright = "copyright"
)

const (
	explicitMessage  = "Prompt contains explicit language that is not allowed"
	copyrightMessage = "Prompt appears to request copyrighted lyrics or an existing song"

	longPromptAdvisory = "Long prompts can dilute the result. Try focusing on two or three genres, a mood, and the key instruments."
)

// blockedRule pairs a predicate with its category. Evaluation order matters:
// blocked rules always run before any allow-list.
type blockedRule struct {
	category string
	match    func(text string) bool
}

func regexRule(category, pattern string) blockedRule {
	re := regexp.MustCompile(pattern)
	return blockedRule{category: category, match: re.MatchString}
}

var blockedRules = []blockedRule{
	regexRule(CategoryExplicit, `(?i)\b(fuck(ing|ed)?|shit(ty)?|bitch(es)?|cunt|asshole|motherfucker|dickhead)\b`),
	regexRule(CategoryExplicit, `(?i)\b(porn|pornographic|hardcore sex)\b`),
	regexRule(CategoryCopyright, `(?i)\b(the\s+)?lyrics\s+(to|of|from)\b`),
	regexRule(CategoryCopyright, `(?i)\b(full|exact|complete)\s+(song\s+)?lyrics\b`),
	regexRule(CategoryCopyright, `(?i)\bword[-\s]for[-\s]word\b`),
	regexRule(CategoryCopyright, `(?i)\b(sound|sounds|sounding)\s+exactly\s+like\b`),
	regexRule(CategoryCopyright, `(?i)\bcover\s+(of|version)\b`),
	// Anti-paste heuristic: a long run of consecutive lines almost always
	// means pasted song lyrics rather than a description.
	{category: CategoryCopyright, match: func(text string) bool {
		return maxConsecutiveLines(text) > 10
	}},
}

// classicalWorks is a lower-cased vocabulary of public-domain composers and
// well-known works. Substring containment on purpose; short entries can match
// inside unrelated words and that trade-off is accepted.
var classicalWorks = []string{
	"pachelbel", "canon in d", "beethoven", "mozart", "bach", "vivaldi",
	"chopin", "debussy", "tchaikovsky", "brahms", "handel", "haydn",
	"schubert", "liszt", "rachmaninoff", "satie", "dvorak", "grieg",
	"fur elise", "für elise", "moonlight sonata", "four seasons",
	"clair de lune", "ode to joy", "swan lake", "nutcracker",
	"symphony no", "nocturne", "ave maria", "greensleeves",
	"blue danube", "bolero", "eine kleine nachtmusik", "gymnopedie",
	"william tell overture", "flight of the bumblebee",
}

// musicalTerms is the curated genre/instrument/mood vocabulary used by the
// terminology-ratio heuristic. Matching is bidirectional substring.
var musicalTerms = []string{
	// genres
	"rock", "pop", "jazz", "blues", "funk", "soul", "metal", "punk",
	"techno", "house", "trance", "dubstep", "trap", "hip hop", "hiphop",
	"rap", "reggae", "ska", "country", "folk", "indie", "disco",
	"ambient", "lofi", "lo-fi", "orchestral", "classical", "cinematic",
	"synthwave", "electro", "edm", "drill", "grime", "bossa", "salsa",
	// instruments
	"piano", "guitar", "drums", "bass", "synth", "violin", "cello",
	"strings", "brass", "trumpet", "saxophone", "flute", "organ",
	"percussion", "pads", "arpeggio", "harmonica", "banjo", "ukulele",
	// moods and production terms
	"chill", "upbeat", "mellow", "dreamy", "melancholic", "euphoric",
	"energetic", "groovy", "atmospheric", "melodic", "harmony", "rhythm",
	"tempo", "reverb", "acoustic", "electronic", "instrumental", "vocal",
	"chorus", "verse", "beat", "riff", "hook", "groove",
}

// nameShapes are anchored regexes describing common song-name shapes.
var nameShapes = []*regexp.Regexp{
	// article + word ("The Storm", "La Luna")
	regexp.MustCompile(`(?i)^(the|a|an|la|le|el|der|die|das)\s+[a-z]+$`),
	// color/element/time-of-day + one or two words ("Midnight Rain", "Golden Hour Drive")
	regexp.MustCompile(`(?i)^(red|blue|green|golden|silver|black|white|crimson|violet|neon|electric|velvet|crystal|midnight|morning|evening|twilight|dawn|dusk|summer|winter|autumn|spring)\s+[a-z]+(\s+[a-z]+)?$`),
	// possessive or plain word + evocative noun ("Ocean's Heart", "Winter Song")
	regexp.MustCompile(`(?i)^[a-z]+('s)?\s+(dream|dreams|song|dance|heart|sky|city|lights|rain|fire|road|night|day)$`),
}

// Classify runs the ordered content-policy rule chain over a free-text
// prompt. It is pure and never fails; every outcome is returned as a value.
// Blocked-pattern evaluation always precedes the allow-lists.
func Classify(text string) model.ValidationResult {
	trimmed := strings.TrimSpace(text)

	// 1. Nothing to check.
	if trimmed == "" {
		return valid()
	}

	// 2. Blocked patterns, first hit wins.
	for _, rule := range blockedRules {
		if rule.match(text) {
			msg := copyrightMessage
			if rule.category == CategoryExplicit {
				msg = explicitMessage
			}
			return model.ValidationResult{
				IsValid:      false,
				Error:        msg,
				Suggestion:   GenerateSuggestion(text),
				WarningLevel: model.WarningError,
			}
		}
	}

	lower := strings.ToLower(text)

	// 3. Classical allow-list.
	for _, work := range classicalWorks {
		if strings.Contains(lower, work) {
			return valid()
		}
	}

	// 4. Musical-terminology ratio.
	if musicalTermRatio(lower) > 0.3 {
		return valid()
	}

	// 5. Generic name shapes.
	for _, re := range nameShapes {
		if re.MatchString(trimmed) {
			return valid()
		}
	}

	// 6. Short single-line text is a prompt, not pasted content.
	if utf8.RuneCountInString(trimmed) < 200 && !strings.Contains(trimmed, "\n") {
		return valid()
	}

	// 7. Very long text passes, with an advisory.
	if utf8.RuneCountInString(trimmed) > 500 {
		return model.ValidationResult{
			IsValid:      true,
			Suggestion:   longPromptAdvisory,
			WarningLevel: model.WarningWarning,
		}
	}

	// 8. Default allow.
	return valid()
}

// GenerateSuggestion picks a canned rewrite suggestion for a rejected or
// questionable prompt. First match wins.
func GenerateSuggestion(text string) string {
	if lineCount(text) > 5 {
		return "Instead of pasting lyrics, describe the song you want — its mood, genre, and story — and let the generator write original words."
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "song") || strings.Contains(lower, "track") || strings.Contains(lower, "single") {
		return `Try a mood and style description, for example: "an upbeat synth-pop track about summer nights".`
	}

	return `Describe the genre, mood, and instruments you want, for example: "dreamy lo-fi with soft piano and rain sounds".`
}

// Feedback derives the user-facing status/message pair from Classify.
func Feedback(text string) model.PromptFeedback {
	result := Classify(text)

	switch {
	case !result.IsValid:
		return model.PromptFeedback{Status: model.FeedbackError, Message: result.Error}
	case result.WarningLevel == model.WarningWarning:
		return model.PromptFeedback{Status: model.FeedbackWarning, Message: result.Suggestion}
	default:
		return model.PromptFeedback{Status: model.FeedbackValid}
	}
}

func valid() model.ValidationResult {
	return model.ValidationResult{IsValid: true, WarningLevel: model.WarningNone}
}

// musicalTermRatio returns the fraction of tokens (longer than two runes)
// that match the musical vocabulary by bidirectional substring containment.
func musicalTermRatio(lower string) float64 {
	tokens := strings.Fields(lower)

	total := 0
	matched := 0
	for _, token := range tokens {
		token = strings.Trim(token, ".,!?;:\"'()-")
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		total++
		for _, term := range musicalTerms {
			if strings.Contains(token, term) || strings.Contains(term, token) {
				matched++
				break
			}
		}
	}

	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

func lineCount(text string) int {
	return len(strings.Split(text, "\n"))
}

// maxConsecutiveLines returns the longest run of non-blank lines.
func maxConsecutiveLines(text string) int {
	run := 0
	best := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}
