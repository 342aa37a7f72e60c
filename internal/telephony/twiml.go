// Package telephony serves the webhook the telephony platform calls on
// inbound-call events and renders its markup responses.
package telephony

import (
	"encoding/xml"
	"fmt"
)

// DefaultVoice is the platform voice used for every <Say>.
const DefaultVoice = "alice"

// Say speaks text to the caller.
type Say struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

// Gather speaks a prompt and re-opens the microphone; the platform
// posts the transcription to Action.
type Gather struct {
	XMLName xml.Name `xml:"Gather"`
	Input   string   `xml:"input,attr"`
	Action  string   `xml:"action,attr"`
	Timeout int      `xml:"timeout,attr"`
	Say     *Say
}

// Hangup ends the call.
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// Response is the markup document returned to the platform. Verbs are
// rendered in the order they were appended.
type Response struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any
}

func NewResponse() *Response { return &Response{} }

func (r *Response) Say(text string) *Response {
	r.Verbs = append(r.Verbs, Say{Voice: DefaultVoice, Text: text})
	return r
}

// GatherSpeech appends a speech gather that says prompt and posts the
// result to action.
func (r *Response) GatherSpeech(action, prompt string) *Response {
	r.Verbs = append(r.Verbs, Gather{
		Input:   "speech",
		Action:  action,
		Timeout: 6,
		Say:     &Say{Voice: DefaultVoice, Text: prompt},
	})
	return r
}

func (r *Response) Hangup() *Response {
	r.Verbs = append(r.Verbs, Hangup{})
	return r
}

// Render serializes the response with the XML prolog the platform
// expects.
func (r *Response) Render() ([]byte, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("render response: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
