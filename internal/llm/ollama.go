package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Ollama ignores the bearer token, but the SDK refuses to send requests without one.
const ollamaAPIKey = "ollama"

// OllamaClient talks to Ollama through its OpenAI-compatible API.
type OllamaClient struct {
	baseURL string
	client  *openai.Client
}

// NewOllamaClient builds a client for the Ollama server at host. The SDK's
// automatic retries are disabled: a failed call is reported, never repeated.
func NewOllamaClient(host string, opts ...option.RequestOption) (*OllamaClient, error) {
	baseURL, err := BaseURL(host)
	if err != nil {
		return nil, err
	}
	opts = append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(ollamaAPIKey),
		option.WithMaxRetries(0),
	}, opts...)
	cli := openai.NewClient(opts...)
	return &OllamaClient{
		baseURL: baseURL,
		client:  &cli,
	}, nil
}

// BaseURL turns an OLLAMA_HOST value into the OpenAI-compatible API root.
// A bare host:port is treated as plain http, the way the ollama CLI reads it.
func BaseURL(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("ollama host required")
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("parse ollama host: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("ollama host %q has no host part", host)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/"
	return u.String(), nil
}

func (c *OllamaClient) Chat(ctx context.Context, req ChatRequest) (Response, error) {
	if c == nil || c.client == nil {
		return Response{}, fmt.Errorf("nil ollama client")
	}
	messages, err := buildMessages(req.Messages)
	if err != nil {
		return Response{}, err
	}
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	})
	if err != nil {
		return Response{}, serviceError(req.Model, err)
	}
	return toResponse(resp), nil
}

func (c *OllamaClient) Models(ctx context.Context) ([]string, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("nil ollama client")
	}
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, serviceError("", err)
	}
	names := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		names = append(names, m.ID)
	}
	return names, nil
}

func buildMessages(msgs []ChatMessage) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case "user":
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case "system":
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case "assistant":
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			return nil, fmt.Errorf("unsupported message role %q", m.Role)
		}
	}
	return out, nil
}

// toResponse keeps the first choice. A missing choice leaves Message nil and a
// missing or null content leaves Content nil.
func toResponse(resp *openai.ChatCompletion) Response {
	out := Response{Model: resp.Model}
	if len(resp.Choices) == 0 {
		return out
	}
	msg := resp.Choices[0].Message
	out.Message = &Message{Role: string(msg.Role)}
	if msg.JSON.Content.Valid() {
		content := msg.Content
		out.Message.Content = &content
	}
	return out
}

func serviceError(model string, err error) error {
	se := &ServiceError{Model: model, Err: err}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		se.StatusCode = apiErr.StatusCode
	}
	return se
}
