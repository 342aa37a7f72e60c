package main

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	log "log/slog"

	"reva/internal/assistant"
	"reva/internal/audio"
	"reva/internal/knowledge"
	"reva/internal/tts"
	"reva/pkg/audioconv"
	"reva/pkg/stt"
)

// call owns one simulated phone conversation: mic in, transcription,
// completion, speech out, turn by turn until an exit utterance.
type call struct {
	rec       *audio.Recorder
	whisper   *stt.Transcriber
	retriever *knowledge.Retriever
	assist    *assistant.Assistant
	synth     *tts.Synthesizer

	inCall atomic.Bool
	hangup atomic.Bool
}

// Run drives the voice loop until the caller ends the conversation or
// a hangup command arrives.
func (c *call) Run() {
	if !c.inCall.CompareAndSwap(false, true) {
		log.Warn("Call already in progress")
		return
	}
	defer c.inCall.Store(false)

	c.hangup.Store(false)

	ctx := context.Background()

	log.Info("Starting call")
	c.speak(ctx, assistant.Greeting(c.assist.Client()))

	var confirms, rejects int

	for !c.hangup.Load() {
		pcm, err := c.rec.RecordUtterance()
		if errors.Is(err, audio.ErrNoSpeech) {
			c.speak(ctx, "Sorry, could you repeat that?")
			continue
		}
		if err != nil {
			log.Error("Failed to record", "err", err)
			return
		}

		log.Debug("Recorded", "samples", len(pcm))

		text := c.transcribe(ctx, pcm)
		if text == "" {
			c.speak(ctx, "Sorry, could you repeat that?")
			continue
		}

		log.Info("Caller said", "text", text)

		if c.turn(ctx, text, &confirms, &rejects) {
			return
		}
	}

	c.speak(ctx, assistant.Farewell())
}

// TurnFromFile runs one conversation turn against a prerecorded
// utterance instead of the microphone.
func (c *call) TurnFromFile(path string) {
	if path == "" {
		log.Warn("No audio file given")
		return
	}

	// Mic turns and file turns share the speaker; one at a time.
	if !c.inCall.CompareAndSwap(false, true) {
		log.Warn("Call already in progress")
		return
	}
	defer c.inCall.Store(false)

	pcm, err := audioconv.DecodeFile(path)
	if err != nil {
		log.Error("Failed to decode audio file", "path", path, "err", err)
		return
	}

	ctx := context.Background()

	text := c.transcribe(ctx, pcm)
	if text == "" {
		c.speak(ctx, "Sorry, could you repeat that?")
		return
	}

	log.Info("Caller said", "path", path, "text", text)

	var confirms, rejects int
	c.turn(ctx, text, &confirms, &rejects)
}

// Hangup ends the running call after the current turn.
func (c *call) Hangup() {
	c.hangup.Store(true)
}

// turn handles one utterance and reports whether the call is over.
func (c *call) turn(ctx context.Context, text string, confirms, rejects *int) bool {
	switch assistant.DetectIntent(text) {
	case assistant.IntentFarewell:
		c.speak(ctx, assistant.Farewell())
		return true

	case assistant.IntentConfirm:
		*confirms++
		if *confirms >= 2 {
			c.speak(ctx, assistant.AdvisorHandoff())
			return true
		}
		c.speak(ctx, "Great! Let's explore what works best for your situation.")
		return false

	case assistant.IntentReject:
		*rejects++
		if *rejects >= 2 {
			c.speak(ctx, assistant.PoliteClose())
			return true
		}
		c.speak(ctx, "I understand. Let me share one strategy that might change your perspective.")
		return false
	}

	reply := c.assist.Reply(ctx, c.retriever.Context(text), text)
	c.speak(ctx, reply)
	return false
}

func (c *call) transcribe(ctx context.Context, pcm []float32) string {
	tctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	res, err := c.whisper.Transcribe(tctx, pcm, stt.Options{Language: "en"})
	if err != nil {
		log.Error("Failed to transcribe", "err", err)
		return ""
	}

	return strings.TrimSpace(res.Text)
}

func (c *call) speak(ctx context.Context, text string) {
	log.Info("Assistant", "text", text)
	if err := c.synth.Speak(ctx, text); err != nil {
		log.Error("Failed to voice out", "err", err)
	}
}
