package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse reports a reply that lacks message.content.
var ErrMalformedResponse = errors.New("unexpected response format from the model")

// Client is a minimal interface to the local model service.
type Client interface {
	// Chat sends the messages to the model and blocks until it replies.
	Chat(ctx context.Context, req ChatRequest) (Response, error)
	// Models lists the model names the service can serve.
	Models(ctx context.Context) ([]string, error)
}

// ChatRequest is a single chat-style call.
type ChatRequest struct {
	Model    string
	Messages []ChatMessage
}

// ChatMessage is one outgoing message.
type ChatMessage struct {
	Role    string
	Content string
}

// UserRequest builds a request carrying prompt as the only user message.
func UserRequest(model, prompt string) ChatRequest {
	return ChatRequest{
		Model:    model,
		Messages: []ChatMessage{{Role: "user", Content: prompt}},
	}
}

// Message is the reply container. Content is nil when the service omitted it.
type Message struct {
	Role    string
	Content *string
}

// Response is the structured reply from the service.
type Response struct {
	Model   string
	Message *Message
}

// Content returns message.content or ErrMalformedResponse when it is absent.
func (r Response) Content() (string, error) {
	if r.Message == nil || r.Message.Content == nil {
		return "", ErrMalformedResponse
	}
	return *r.Message.Content, nil
}

// ServiceError wraps a failed call to the service.
type ServiceError struct {
	Model      string
	StatusCode int // zero when the request never got an HTTP response
	Err        error
}

func (e *ServiceError) Error() string {
	msg := e.Err.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("status %d: %s", e.StatusCode, msg)
	}
	if e.Model != "" {
		msg = fmt.Sprintf("model %q: %s", e.Model, msg)
	}
	return msg
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Retryable reports whether the failure looks transient: transport errors,
// rate limiting and server-side errors. Nothing in this module retries.
func (e *ServiceError) Retryable() bool {
	switch {
	case e.StatusCode == 0:
		return !errors.Is(e.Err, context.Canceled)
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	default:
		return e.StatusCode >= http.StatusInternalServerError
	}
}
