package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/iamvkosarev/perplexity-chat/config"
	"github.com/iamvkosarev/perplexity-chat/internal/model"
	openai_tools "github.com/iamvkosarev/perplexity-chat/pkg/openai-tools"
	"github.com/sashabaranov/go-openai"
)

type ChatCompletionUsecase struct {
	cfg         config.Perplexity
	client      *openai.Client
	countTokens openai_tools.Counter
}

func NewChatCompletionUsecase(cfg config.Perplexity) *ChatCompletionUsecase {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Transport: &acceptJSONTransport{base: http.DefaultTransport},
		Timeout:   cfg.RequestTimeout,
	}
	return &ChatCompletionUsecase{
		cfg:         cfg,
		client:      openai.NewClientWithConfig(clientConfig),
		countTokens: openai_tools.CountToken,
	}
}

// Complete sends messages to aiModel and returns the content of the first
// choice. The caller owns the conversation and appends the answer itself.
func (c *ChatCompletionUsecase) Complete(ctx context.Context, aiModel string, messages []model.Message) (string, error) {
	if aiModel == "" {
		return "", model.ErrEmptyModel
	}
	if len(messages) == 0 {
		return "", model.ErrEmptyMessages
	}

	history := toOpenAIMessages(messages)
	if c.cfg.MaxContextTokens > 0 {
		var trimmed bool
		history, trimmed = openai_tools.TrimHistory(history, aiModel, c.cfg.MaxContextTokens, c.countTokens)
		if trimmed {
			log.Printf("history trimmed to %d messages due to token limit", len(history))
		}
	}

	resp, err := c.client.CreateChatCompletion(
		ctx, openai.ChatCompletionRequest{
			Model:    aiModel,
			Messages: history,
		},
	)
	if err != nil {
		return "", classifyCompletionError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", model.ErrMalformedResponse)
	}
	answer := resp.Choices[0].Message
	if answer.Role == "" && answer.Content == "" {
		return "", fmt.Errorf("%w: first choice has no message", model.ErrMalformedResponse)
	}
	return answer.Content, nil
}

func classifyCompletionError(err error) error {
	var (
		apiErr    *openai.APIError
		reqErr    *openai.RequestError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &apiErr), errors.As(err, &reqErr):
		return fmt.Errorf("%w: %w", model.ErrRequestFailure, err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return fmt.Errorf("%w: %w", model.ErrMalformedResponse, err)
	default:
		return fmt.Errorf("%w: %w", model.ErrRequestFailure, err)
	}
}

func toOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		out = append(
			out, openai.ChatCompletionMessage{
				Role:    string(message.Role),
				Content: message.Content,
			},
		)
	}
	return out
}

type acceptJSONTransport struct {
	base http.RoundTripper
}

func (t *acceptJSONTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(req)
}
