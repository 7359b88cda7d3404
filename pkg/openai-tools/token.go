package openai_tools

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

const fallbackEncoding = "cl100k_base"

// Counter returns the number of prompt tokens messages take for model.
type Counter func(messages []openai.ChatCompletionMessage, model string) (int, error)

// CountToken estimates prompt tokens the way the OpenAI cookbook does. Models
// unknown to tiktoken are counted with the cl100k_base encoding.
func CountToken(messages []openai.ChatCompletionMessage, model string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return 0, fmt.Errorf("failed to get encoding: %w", err)
		}
	}

	const (
		tokensPerMessage = 3
		tokensPerName    = 1
		replyPriming     = 3
	)
	numTokens := 0
	for _, message := range messages {
		numTokens += tokensPerMessage
		numTokens += len(tkm.Encode(message.Content, nil, nil))
		numTokens += len(tkm.Encode(message.Role, nil, nil))
		if message.Name != "" {
			numTokens += len(tkm.Encode(message.Name, nil, nil))
			numTokens += tokensPerName
		}
	}
	return numTokens + replyPriming, nil
}

// TrimHistory drops the oldest messages until count fits into limit. A
// leading system message and the latest message are always kept. When count
// fails trimming stops and the messages are returned as they are.
func TrimHistory(
	messages []openai.ChatCompletionMessage,
	model string,
	limit int,
	count Counter,
) ([]openai.ChatCompletionMessage, bool) {
	if limit <= 0 || len(messages) == 0 {
		return messages, false
	}

	var head []openai.ChatCompletionMessage
	tail := messages
	if messages[0].Role == openai.ChatMessageRoleSystem {
		head, tail = messages[:1], messages[1:]
	}

	join := func() []openai.ChatCompletionMessage {
		out := make([]openai.ChatCompletionMessage, 0, len(head)+len(tail))
		out = append(out, head...)
		return append(out, tail...)
	}

	trimmed := false
	for len(tail) > 1 {
		tokenCount, err := count(join(), model)
		if err != nil || tokenCount <= limit {
			break
		}
		tail = tail[1:]
		trimmed = true
	}
	return join(), trimmed
}
