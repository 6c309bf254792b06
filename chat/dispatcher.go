// Package chat provides the completion dispatcher: it resolves context text
// for a key, assembles the scoped prompt and relays it to the completion
// service.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/sitechat"
)

// PlaceholderContext is substituted when a context key has no stored entry.
// An unknown or expired key degrades to this rather than failing the chat.
const PlaceholderContext = "No context available for this API key."

// DefaultUpstreamTimeout bounds the completion-service call so a slow
// upstream cannot leave requests pending indefinitely.
const DefaultUpstreamTimeout = 30 * time.Second

// systemPromptPrefix is the pinned system-instruction template. The response
// policy is fixed, not user-configurable, to keep behavior reproducible and
// bound cost.
const systemPromptPrefix = "You are a helpful AI assistant trained on the following website content: "

const systemPromptPolicy = `

Instructions for providing responses:
1. Start with a brief, direct answer to the user's question.
2. If applicable, provide 2-3 key points or examples to support your answer.
3. Use bullet points or numbered lists for clarity when appropriate.
4. If the question is unclear, politely ask for clarification.
5. Keep your total response under 150 words unless more detail is explicitly requested.
6. End with a follow-up question or suggestion if relevant.`

// Ensure Dispatcher implements sitechat.Responder at compile time.
var _ sitechat.Responder = (*Dispatcher)(nil)

// Dispatcher implements sitechat.Responder. It reads context text from the
// store outside of any lock held across the upstream call, so a slow
// completion service never stalls unrelated key lookups.
type Dispatcher struct {
	Contexts  sitechat.ContextStore
	Completer sitechat.Completer

	// Timeout bounds each upstream call. Zero means DefaultUpstreamTimeout.
	Timeout time.Duration
}

// NewDispatcher creates a Dispatcher with the default upstream timeout.
func NewDispatcher(contexts sitechat.ContextStore, completer sitechat.Completer) *Dispatcher {
	return &Dispatcher{
		Contexts:  contexts,
		Completer: completer,
		Timeout:   DefaultUpstreamTimeout,
	}
}

// Respond answers input scoped to the context stored under key.
func (d *Dispatcher) Respond(ctx context.Context, key, input string) (string, error) {
	if input == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "input required")
	}
	if key == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "API key required")
	}

	text, ok := d.Contexts.Get(key)
	if !ok {
		text = PlaceholderContext
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultUpstreamTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := d.Completer.Complete(ctx, BuildPrompt(text, input))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "completion service timed out")
		}
		return "", err
	}

	return out, nil
}

// BuildPrompt assembles the two-message exchange sent to the completion
// service: the pinned system instruction embedding contextText, and the
// user's input verbatim.
func BuildPrompt(contextText, input string) sitechat.Prompt {
	return sitechat.Prompt{
		System: systemPromptPrefix + contextText + systemPromptPolicy,
		User:   input,
	}
}
