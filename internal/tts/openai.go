// Package tts turns reply text into audible speech via the speech
// synthesis endpoint of the same API client the completions use.
package tts

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"

	"reva/internal/audio"
)

type Synthesizer struct {
	client openai.Client
	voice  string
}

func NewSynthesizer(client openai.Client, voice string) *Synthesizer {
	if voice == "" {
		voice = "nova"
	}
	return &Synthesizer{client: client, voice: voice}
}

// Speak synthesizes the text and blocks until playback completes.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	text = CleanForSpeech(text)
	if len(text) < 5 {
		text = "I apologize, let me rephrase that."
	}

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return fmt.Errorf("synthesize speech: %w", err)
	}
	defer resp.Body.Close()

	return audio.PlayMP3(resp.Body)
}

// speechReplacer expands abbreviations the voice would otherwise
// mangle.
var speechReplacer = strings.NewReplacer(
	"AED", "Dirhams",
	"ROI", "return on investment",
	"AI", "A I",
)

// CleanForSpeech prepares reply text for natural synthesis: expand
// abbreviations and collapse whitespace.
func CleanForSpeech(text string) string {
	return strings.Join(strings.Fields(speechReplacer.Replace(text)), " ")
}
