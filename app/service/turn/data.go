package turn

import (
	"strings"

	"github.com/sashabaranov/go-openai"
)

const noResponsePlaceholder = "No response."

// Result is the outcome of one chat turn as it should be rendered.
type Result struct {
	// Reply is the assistant text, including the degraded placeholder or a
	// synthetic "Error: ..." message.
	Reply string `json:"reply"`
	// Failed marks a transport or parsing failure.
	Failed bool `json:"failed"`
	// Empty marks a whitespace-only submission that mutated nothing.
	Empty bool `json:"-"`
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeDegraded
	outcomeFailed
)

type completionResult struct {
	outcome outcome
	text    string
	reason  string
}

// normalize collapses a provider response and transport error into a single
// variant so callers never poke at choice shapes themselves. A reply missing
// from an otherwise successful response degrades to a fixed placeholder.
func normalize(resp openai.ChatCompletionResponse, err error) completionResult {
	if err != nil {
		return completionResult{outcome: outcomeFailed, reason: err.Error()}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return completionResult{outcome: outcomeDegraded, text: noResponsePlaceholder}
	}

	return completionResult{outcome: outcomeOK, text: resp.Choices[0].Message.Content}
}
