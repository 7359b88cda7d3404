package in_memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iamvkosarev/perplexity-chat/internal/model"
)

var (
	ErrContextDoesNotExist = errors.New("context does not exist")
)

// ContextStorage lives only as long as the process.
type ContextStorage struct {
	mu       sync.Mutex
	contexts map[string][]model.Message
}

func NewContextStorage() *ContextStorage {
	return &ContextStorage{
		contexts: make(map[string][]model.Message),
	}
}

func (c *ContextStorage) Load(_ context.Context, name string) (*model.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages, ok := c.contexts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrLoadFailure, name, ErrContextDoesNotExist)
	}
	return model.NewContext(messages...), nil
}

func (c *ContextStorage) Save(_ context.Context, name string, conv *model.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contexts[name] = conv.Messages()
	return nil
}

func (c *ContextStorage) List(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.contexts))
	for name := range c.contexts {
		names = append(names, name)
	}
	return names, nil
}
