package main

import (
	"path/filepath"
	"testing"
)

func TestTurnFromFileRejectedDuringCall(t *testing.T) {
	c := &call{}
	c.inCall.Store(true)

	// A live call owns the speaker. The file turn must bail out before
	// touching the decoder or synthesizer, which are nil here.
	c.TurnFromFile("clip.wav")

	if !c.inCall.Load() {
		t.Error("rejected file turn must not release the call slot")
	}
}

func TestTurnFromFileReleasesSlotOnDecodeFailure(t *testing.T) {
	c := &call{}

	c.TurnFromFile(filepath.Join(t.TempDir(), "absent.wav"))

	if c.inCall.Load() {
		t.Error("call slot still held after a failed file turn")
	}
}

func TestTurnFromFileEmptyPath(t *testing.T) {
	c := &call{}

	c.TurnFromFile("")

	if c.inCall.Load() {
		t.Error("empty path must not claim the call slot")
	}
}

func TestHangupFlagsRunningCall(t *testing.T) {
	c := &call{}

	c.Hangup()

	if !c.hangup.Load() {
		t.Error("hangup flag not set")
	}
}
