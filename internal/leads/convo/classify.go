package convo

import "strings"

// IntentClassifier maps free text onto the two closed intents the state
// machine needs. Implementations must be deterministic for the same input.
// The lexicon classifier below is the baseline; the interface exists so a
// stronger classifier can be swapped in without touching the machine.
type IntentClassifier interface {
	// IsUnknown reports whether an interview answer means "I can't say".
	IsUnknown(text string) bool
	// IsAffirmative reports whether a scheduling-offer response is a yes.
	IsAffirmative(text string) bool
}

// unknownLexicon are the phrases that turn an interview answer into the
// Unknown sentinel. Matching is case-insensitive substring containment.
var unknownLexicon = []string{
	"not sure",
	"don't know",
	"dont know",
	"unknown",
	"idk",
	"not certain",
	"no idea",
	"dunno",
}

// affirmativeLexicon are the phrases accepted as a yes to the scheduling
// offer. Substring containment, no stemming.
var affirmativeLexicon = []string{
	"yes",
	"yeah",
	"yep",
	"sure",
	"ok",
	"okay",
	"sounds good",
	"perfect",
	"great",
	"awesome",
	"bet",
	"definitely",
	"absolutely",
	"let's do it",
	"lets do it",
	"schedule",
	"call",
	"meeting",
	"please",
	"ready",
}

// negativeLexicon short-circuits the affirmative check. Containment matching
// cannot handle general negation ("no thanks" would otherwise never match
// anything affirmative today, but "no, call me never" would); checking these
// first keeps clearly negative replies negative.
var negativeLexicon = []string{
	"no thanks",
	"no thank",
	"not now",
	"not yet",
	"nope",
	"no,",
	"stop",
}

// LexiconClassifier is the deterministic keyword-containment classifier.
type LexiconClassifier struct{}

// NewLexiconClassifier returns the baseline classifier.
func NewLexiconClassifier() LexiconClassifier {
	return LexiconClassifier{}
}

// IsUnknown reports whether the trimmed, lowercased text contains any
// don't-know phrase.
func (LexiconClassifier) IsUnknown(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return false
	}
	for _, phrase := range unknownLexicon {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// IsAffirmative reports whether the text reads as accepting the scheduling
// offer. Empty input is never affirmative. Negative phrases win over
// affirmative ones.
func (LexiconClassifier) IsAffirmative(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return false
	}
	if lowered == "no" || strings.HasPrefix(lowered, "no ") {
		return false
	}
	for _, phrase := range negativeLexicon {
		if strings.Contains(lowered, phrase) {
			return false
		}
	}
	for _, phrase := range affirmativeLexicon {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

var _ IntentClassifier = LexiconClassifier{}
