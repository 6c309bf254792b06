package sitechat

import "context"

// Prompt is a structured two-message exchange sent to the completion
// service: a system instruction embedding the resolved context and the
// user's message.
type Prompt struct {
	System string
	User   string
}

// Completer is the external completion service that turns a prompt into
// generated text. Implementations pin their own generation parameters so
// that behavior stays reproducible.
type Completer interface {
	// Complete generates a response for the prompt.
	// Returns EUNAVAILABLE if the service cannot be reached.
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Responder answers chat messages scoped to a context key.
type Responder interface {
	// Respond resolves the context for key, builds a prompt around input
	// and relays it to the completion service. An unknown key is not an
	// error: the response is generated against placeholder context.
	Respond(ctx context.Context, key, input string) (string, error)
}
