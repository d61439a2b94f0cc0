package catalog

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	redisclient "github.com/homesteadhq/homestead-api/internal/redis"
)

const (
	itemKeyPrefix = "item:"

	errItemNil     = "item cannot be nil"
	errItemIDEmpty = "item ID cannot be empty"
)

type redisClient struct {
	client redisclient.Client
}

// NewRedisClient creates a Redis-backed catalog client
func NewRedisClient(client redisclient.Client) Client {
	return &redisClient{
		client: client,
	}
}

func itemKey(id string) string {
	return itemKeyPrefix + id
}

func (c *redisClient) GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	result, err := c.client.Get(ctx, itemKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("item %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get item %s", input.ID)
	}

	var item homestead.Item
	if err := json.Unmarshal([]byte(result), &item); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal item %s", input.ID)
	}

	return &GetItemOutput{Item: &item}, nil
}

func (c *redisClient) PutItem(ctx context.Context, input *PutItemInput) (*PutItemOutput, error) {
	if input == nil || input.Item == nil {
		return nil, errors.InvalidArgument(errItemNil)
	}
	if input.Item.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}
	if input.Item.Price < 0 {
		return nil, errors.InvalidArgument("item price cannot be negative")
	}

	data, err := json.Marshal(input.Item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item %s", input.Item.ID)
	}

	if err := c.client.Set(ctx, itemKey(input.Item.ID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store item %s", input.Item.ID)
	}

	return &PutItemOutput{Item: input.Item}, nil
}
