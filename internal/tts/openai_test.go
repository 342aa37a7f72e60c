package tts

import "testing"

func TestCleanForSpeechExpandsAbbreviations(t *testing.T) {
	got := CleanForSpeech("The ROI on AED 100 is solid")
	want := "The return on investment on Dirhams 100 is solid"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanForSpeechCollapsesWhitespace(t *testing.T) {
	got := CleanForSpeech("  hello\n\tthere   caller ")
	if got != "hello there caller" {
		t.Errorf("got %q", got)
	}
}

func TestCleanForSpeechSpellsOutAI(t *testing.T) {
	got := CleanForSpeech("Your AI assistant")
	if got != "Your A I assistant" {
		t.Errorf("got %q", got)
	}
}
