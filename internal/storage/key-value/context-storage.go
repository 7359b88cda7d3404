package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamvkosarev/perplexity-chat/internal/model"
	"github.com/redis/go-redis/v9"
)

var (
	ErrContextDoesNotExist = errors.New("context does not exist")
)

// ContextStorage keeps each conversation under one redis key as the same
// JSON array the file storage writes.
type ContextStorage struct {
	rdb       *redis.Client
	keyPrefix string
}

func NewContextStorage(rdb *redis.Client, keyPrefix string) *ContextStorage {
	return &ContextStorage{
		rdb:       rdb,
		keyPrefix: keyPrefix,
	}
}

func (c *ContextStorage) Load(ctx context.Context, name string) (*model.Context, error) {
	key := c.key(name)
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s: %w", model.ErrLoadFailure, key, ErrContextDoesNotExist)
		}
		return nil, fmt.Errorf("%w: failed to get %s: %w", model.ErrLoadFailure, key, err)
	}
	conv := model.NewContext()
	if err = json.Unmarshal([]byte(raw), conv); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal %s: %w", model.ErrLoadFailure, key, err)
	}
	return conv, nil
}

func (c *ContextStorage) Save(ctx context.Context, name string, conv *model.Context) error {
	key := c.key(name)
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal context: %w", model.ErrSaveFailure, err)
	}
	if err = c.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: failed to save %s: %w", model.ErrSaveFailure, key, err)
	}
	return nil
}

func (c *ContextStorage) key(name string) string {
	return fmt.Sprintf("%s%s", c.keyPrefix, name)
}
