package assistant

import "testing"

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		utterance string
		want      Intent
	}{
		{"yes, let's go ahead", IntentConfirm},
		{"okay sounds good", IntentConfirm},
		{"i'm ready to proceed", IntentConfirm},
		{"no, not today", IntentReject},
		{"I am not interested at all", IntentReject},
		{"please don't want this", IntentReject},
		{"goodbye now", IntentFarewell},
		{"thank you, bye", IntentFarewell},
		{"I'm busy now, call later", IntentFarewell},
		{"what would my flat sell for?", IntentUnknown},
		{"tell me about rental yields", IntentUnknown},
	}

	for _, tc := range cases {
		if got := DetectIntent(tc.utterance); got != tc.want {
			t.Errorf("DetectIntent(%q) = %s, want %s", tc.utterance, got, tc.want)
		}
	}
}

func TestDetectIntentWholeWordsOnly(t *testing.T) {
	// "now" and "know" must not trip the "no" trigger.
	for _, u := range []string{"is now a good time", "I know the area well"} {
		if got := DetectIntent(u); got != IntentUnknown {
			t.Errorf("DetectIntent(%q) = %s, want unknown", u, got)
		}
	}
}

func TestNegatedInterestIsNotConfirmation(t *testing.T) {
	if got := DetectIntent("I'm not interested"); got != IntentReject {
		t.Errorf("DetectIntent = %s, want reject", got)
	}
}
