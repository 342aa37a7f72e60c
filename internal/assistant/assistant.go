// Package assistant holds the conversational core: the persona, the
// prompt builder and the completion call.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Fallback is spoken whenever the completion service is unavailable.
// The conversation keeps going; the error never reaches the caller.
const Fallback = "I understand. Let me connect you with a senior advisor who can provide detailed information."

// ClientData are the property facts the persona is built around.
type ClientData struct {
	Name         string
	Location     string
	Bedrooms     int
	BoughtPrice  int
	CurrentPrice int
	PurchaseYear int
}

// DemoClient is the sample lead used when no CRM is wired in.
func DemoClient() ClientData {
	return ClientData{
		Name:         "Demo Client",
		Location:     "Sample City",
		Bedrooms:     2,
		BoughtPrice:  1_200_000,
		CurrentPrice: 3_300_000,
		PurchaseYear: 2020,
	}
}

// Turn is one (caller, assistant) exchange. Ephemeral; history lives
// only for the duration of a call.
type Turn struct {
	Caller    string    `json:"caller"`
	Assistant string    `json:"assistant"`
	At        time.Time `json:"at"`
}

// Completer submits one prompt to the completion service and returns
// the completion text verbatim.
type Completer interface {
	Complete(ctx context.Context, persona, prompt string) (string, error)
}

type Assistant struct {
	completer Completer
	client    ClientData
	persona   string
}

func New(completer Completer, client ClientData) *Assistant {
	return &Assistant{
		completer: completer,
		client:    client,
		persona:   Persona(client),
	}
}

func (a *Assistant) Client() ClientData { return a.client }

// Persona renders the fixed role instruction for the given lead.
func Persona(c ClientData) string {
	var b strings.Builder
	b.WriteString("You are an AI property consultant at RealEstateCo.\n\n")
	fmt.Fprintf(&b,
		"Client: %s owns a %d-bedroom property in %s, purchased in %d for %d Dirhams. It is now worth %d Dirhams.\n",
		c.Name, c.Bedrooms, c.Location, c.PurchaseYear, c.BoughtPrice, c.CurrentPrice)
	return b.String()
}

// BuildPrompt concatenates the optional context and the latest
// utterance into the user prompt. The persona travels separately as
// the system message. Same inputs, same prompt.
func BuildPrompt(context, utterance string) string {
	var b strings.Builder
	if context != "" {
		b.WriteString("Use this market context:\n")
		b.WriteString(context)
		b.WriteString("\n\n")
	}
	b.WriteString("User just said: \"")
	b.WriteString(utterance)
	b.WriteString("\"\n\nGuidelines:\n")
	b.WriteString("- Respond naturally, in 2-4 sentences\n")
	b.WriteString("- Be professional, friendly, and informative\n")
	b.WriteString("- If the caller declines or ends, respond politely\n")
	return b.String()
}

// Reply builds the prompt for one turn and runs the completion call.
// Any completion failure collapses into the fixed fallback phrase.
func (a *Assistant) Reply(ctx context.Context, knowledge, utterance string) string {
	prompt := BuildPrompt(knowledge, utterance)

	out, err := a.completer.Complete(ctx, a.persona, prompt)
	if err != nil {
		slog.Error("completion failed", "err", err)
		return Fallback
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return Fallback
	}
	return out
}

// Greeting opens the call.
func Greeting(c ClientData) string {
	return fmt.Sprintf(
		"Good day, %s. This is your AI assistant from RealEstateCo. Can we discuss your property in %s?",
		c.Name, c.Location)
}

// Farewell closes it.
func Farewell() string {
	return "Thank you for your time. Have a great day!"
}

// AdvisorHandoff is spoken once the caller has confirmed interest.
func AdvisorHandoff() string {
	return "Perfect. One of our senior advisors will contact you shortly. Thank you for your time!"
}

// PoliteClose is spoken once the caller has firmly declined.
func PoliteClose() string {
	return "No problem. Thanks for your time. If anything changes, feel free to contact RealEstateCo anytime."
}
