package assistant

import "strings"

type Intent int

const (
	IntentUnknown Intent = iota
	IntentConfirm
	IntentReject
	IntentFarewell
)

func (i Intent) String() string {
	switch i {
	case IntentConfirm:
		return "confirm"
	case IntentReject:
		return "reject"
	case IntentFarewell:
		return "farewell"
	default:
		return "unknown"
	}
}

var farewellTriggers = []string{
	"goodbye", "bye", "thank you", "call later", "busy now", "stop calling",
}

var rejectTriggers = []string{
	"not interested", "don't want", "no", "not now", "stop", "leave me", "not today",
}

var confirmTriggers = []string{
	"yes", "sure", "go ahead", "i'm ready", "interested", "please do", "okay", "ok",
}

// DetectIntent classifies one utterance by trigger phrase. Farewell and
// reject are checked before confirm so that "not interested" never
// reads as interest. Single-word triggers match whole words only;
// otherwise "no" would fire on "now" or "know".
func DetectIntent(utterance string) Intent {
	u := strings.ToLower(utterance)
	words := wordSet(u)

	for _, t := range farewellTriggers {
		if triggered(u, words, t) {
			return IntentFarewell
		}
	}
	for _, t := range rejectTriggers {
		if triggered(u, words, t) {
			return IntentReject
		}
	}
	for _, t := range confirmTriggers {
		if triggered(u, words, t) {
			return IntentConfirm
		}
	}
	return IntentUnknown
}

func triggered(utterance string, words map[string]bool, trigger string) bool {
	if strings.Contains(trigger, " ") {
		return strings.Contains(utterance, trigger)
	}
	return words[trigger]
}

func wordSet(utterance string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.FieldsFunc(utterance, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	}) {
		set[w] = true
	}
	return set
}
