package telephony

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"reva/internal/assistant"
	"reva/internal/knowledge"
)

type stubCompleter struct {
	reply string
	err   error

	calls      int
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, _, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.reply, s.err
}

func newTestHandler(t *testing.T, stub *stubCompleter) *Handler {
	t.Helper()

	store := knowledge.NewStore([]knowledge.Snippet{
		{Source: "listings.txt", Text: "2BHK flat available in Sector 5 for 45 lakhs"},
	}, "RealEstateCo was founded in 2012.")

	// The production webhook always wires the ranked index next to the
	// literal lookup; the handler tests run against the same shape.
	ix, err := knowledge.NewIndex(store.Snippets())
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	t.Cleanup(func() { ix.Close() })

	assist := assistant.New(stub, assistant.DemoClient())
	return NewHandler(assist, knowledge.NewRetriever(store, ix, 2), nil)
}

func postForm(t *testing.T, handler echo.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestVoiceGreetsAndGathers(t *testing.T) {
	stub := &stubCompleter{}
	h := newTestHandler(t, stub)

	rec := postForm(t, h.voice, "/voice", url.Values{"CallSid": {"CA123"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<Gather input="speech" action="/process"`) {
		t.Error("greeting response missing Gather")
	}
	if !strings.Contains(body, "Can we discuss your property") {
		t.Errorf("greeting text missing: %s", body)
	}
	if stub.calls != 0 {
		t.Errorf("greeting must not call the completion service, got %d calls", stub.calls)
	}
}

func TestProcessEmptySpeechReprompts(t *testing.T) {
	stub := &stubCompleter{reply: "should not be used"}
	h := newTestHandler(t, stub)

	rec := postForm(t, h.process, "/process", url.Values{"SpeechResult": {""}})

	body := rec.Body.String()
	if !strings.Contains(body, "could you repeat that") {
		t.Errorf("expected re-prompt branch, got: %s", body)
	}
	if strings.Contains(body, "<Hangup") {
		t.Error("empty speech must not hang up")
	}
	if stub.calls != 0 {
		t.Errorf("empty speech must not trigger a completion call, got %d", stub.calls)
	}
}

func TestProcessConfirmHandsOffToAdvisor(t *testing.T) {
	stub := &stubCompleter{}
	h := newTestHandler(t, stub)

	rec := postForm(t, h.process, "/process", url.Values{"SpeechResult": {"yes please"}})

	body := rec.Body.String()
	if !strings.Contains(body, "senior advisors will contact you") {
		t.Errorf("expected advisor hand-off, got: %s", body)
	}
	if !strings.Contains(body, "<Hangup") {
		t.Error("confirm must close the call")
	}
	if stub.calls != 0 {
		t.Errorf("intent branch must not call the completion service, got %d", stub.calls)
	}
}

func TestProcessRejectClosesPolitely(t *testing.T) {
	stub := &stubCompleter{}
	h := newTestHandler(t, stub)

	rec := postForm(t, h.process, "/process", url.Values{"SpeechResult": {"no, not interested"}})

	body := rec.Body.String()
	if !strings.Contains(body, "Thanks for your time") {
		t.Errorf("expected polite close, got: %s", body)
	}
	if !strings.Contains(body, "<Hangup") {
		t.Error("reject must close the call")
	}
}

func TestProcessUnknownRunsCompletion(t *testing.T) {
	stub := &stubCompleter{reply: "Prices in Sector 5 are strong right now."}
	h := newTestHandler(t, stub)

	rec := postForm(t, h.process, "/process", url.Values{"SpeechResult": {"what is my 2BHK in Sector 5 worth"}})

	body := rec.Body.String()
	if stub.calls != 1 {
		t.Fatalf("expected 1 completion call, got %d", stub.calls)
	}
	if !strings.Contains(body, "Prices in Sector 5 are strong right now.") {
		t.Errorf("reply missing from response: %s", body)
	}
	if !strings.Contains(body, `<Gather input="speech" action="/process"`) {
		t.Error("conversation must re-open the microphone")
	}
	if !strings.Contains(stub.lastPrompt, "2BHK flat available in Sector 5 for 45 lakhs") {
		t.Errorf("knowledge context missing from prompt: %q", stub.lastPrompt)
	}
}

func TestProcessCompletionFailureSpeaksFallback(t *testing.T) {
	stub := &stubCompleter{err: context.DeadlineExceeded}
	h := newTestHandler(t, stub)

	rec := postForm(t, h.process, "/process", url.Values{"SpeechResult": {"tell me about the market"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), assistant.Fallback) {
		t.Errorf("expected fallback phrase, got: %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, &stubCompleter{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	if err := h.health(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
