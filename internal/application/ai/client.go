package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"donorcrm-backend/internal/pkg/apperrors"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the subset of the OpenAI API the service uses.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// OpenAIClient talks to an OpenAI-compatible endpoint. Requests are never retried.
type OpenAIClient struct {
	http            *resty.Client
	model           string
	transcribeModel string
}

// NewOpenAIClient creates a client for baseURL (…/v1).
func NewOpenAIClient(baseURL, apiKey, model, transcribeModel string) *OpenAIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60*time.Second).
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json")

	return &OpenAIClient{
		http:            client,
		model:           model,
		transcribeModel: transcribeModel,
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a chat completion and returns the first choice's text.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	var out chatResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{Model: c.model, Messages: messages}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", transportError(err)
	}
	if resp.IsError() {
		return "", statusError(resp.StatusCode(), apiErr.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", &apperrors.UpstreamError{Service: "openai", StatusCode: resp.StatusCode(), Message: "OpenAI returned no choices"}
	}
	log.Debug().Str("model", c.model).Int("messages", len(messages)).Msg("chat completion")
	return out.Choices[0].Message.Content, nil
}

// Transcribe uploads audio to /audio/transcriptions and returns the text.
func (c *OpenAIClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var out transcriptionResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, audio).
		SetFormData(map[string]string{"model": c.transcribeModel}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/audio/transcriptions")
	if err != nil {
		return "", transportError(err)
	}
	if resp.IsError() {
		return "", statusError(resp.StatusCode(), apiErr.Error.Message)
	}
	return out.Text, nil
}

func transportError(err error) error {
	return &apperrors.UpstreamError{Service: "openai", Message: "OpenAI request failed: " + err.Error(), Err: err}
}

func statusError(code int, upstreamMsg string) error {
	e := &apperrors.UpstreamError{Service: "openai", StatusCode: code}
	switch code {
	case http.StatusUnauthorized:
		e.Message = "OpenAI authentication failed"
	case http.StatusTooManyRequests:
		e.Message = "OpenAI rate limit exceeded"
	default:
		if upstreamMsg == "" {
			upstreamMsg = http.StatusText(code)
		}
		e.Message = fmt.Sprintf("OpenAI request failed: %s", upstreamMsg)
	}
	return e
}
