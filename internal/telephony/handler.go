package telephony

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"reva/internal/assistant"
	"reva/internal/knowledge"
)

// Handler answers the platform's call webhooks. Stateless across
// requests: every decision is made from the posted form alone, no
// session or call-id tracking.
type Handler struct {
	assist    *assistant.Assistant
	retriever *knowledge.Retriever
	feed      *Feed
}

func NewHandler(assist *assistant.Assistant, retriever *knowledge.Retriever, feed *Feed) *Handler {
	return &Handler{assist: assist, retriever: retriever, feed: feed}
}

func (h *Handler) Register(e *echo.Echo) {
	e.POST("/voice", h.voice)
	e.POST("/process", h.process)
	e.GET("/health", h.health)
	if h.feed != nil {
		e.GET("/monitor", h.feed.Serve)
	}
}

// voice is the entry point when a call is received.
func (h *Handler) voice(c echo.Context) error {
	slog.Info("inbound call", "sid", c.FormValue("CallSid"))

	resp := NewResponse().
		GatherSpeech("/process", assistant.Greeting(h.assist.Client())).
		Say("Sorry, I didn't catch that. Goodbye!").
		Hangup()

	return h.reply(c, resp)
}

// process handles each speech-result callback.
func (h *Handler) process(c echo.Context) error {
	speech := strings.TrimSpace(c.FormValue("SpeechResult"))
	slog.Info("caller said", "sid", c.FormValue("CallSid"), "speech", speech)

	// Absent speech re-opens the microphone; no completion call is made.
	if speech == "" {
		resp := NewResponse().GatherSpeech("/process", "Sorry, could you repeat that?")
		return h.reply(c, resp)
	}

	resp := NewResponse()

	switch assistant.DetectIntent(speech) {
	case assistant.IntentConfirm:
		resp.Say(assistant.AdvisorHandoff()).Hangup()
		h.broadcast(speech, assistant.AdvisorHandoff())

	case assistant.IntentReject, assistant.IntentFarewell:
		resp.Say(assistant.PoliteClose()).Hangup()
		h.broadcast(speech, assistant.PoliteClose())

	default:
		ctx := c.Request().Context()
		answer := h.assist.Reply(ctx, h.retriever.Context(speech), speech)
		resp.Say(answer).GatherSpeech("/process", "What do you think about this option?")
		h.broadcast(speech, answer)
	}

	return h.reply(c, resp)
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) reply(c echo.Context, resp *Response) error {
	body, err := resp.Render()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/xml", body)
}

func (h *Handler) broadcast(caller, answer string) {
	if h.feed == nil {
		return
	}
	h.feed.Broadcast(assistant.Turn{Caller: caller, Assistant: answer, At: time.Now()})
}
