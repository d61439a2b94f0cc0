package gamemap

import (
	"context"
	"encoding/json"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	redisclient "github.com/homesteadhq/homestead-api/internal/redis"
	"github.com/homesteadhq/homestead-api/internal/repositories/account"
)

const (
	mapKeyPrefix = "map:"

	// Optimistic retries when the WATCH detects concurrent mutation
	expandMaxRetries = 3

	// Error messages
	errMapNil     = "map cannot be nil"
	errMapIDEmpty = "map ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed map repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

func mapKey(id string) string {
	return mapKeyPrefix + id
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Map == nil {
		return nil, errors.InvalidArgument(errMapNil)
	}
	if input.Map.ID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}
	if input.Map.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID cannot be empty")
	}
	if input.Map.Width < 1 || input.Map.Height < 1 {
		return nil, errors.InvalidArgumentf("map dimensions must be at least 1x1, got %dx%d", input.Map.Width, input.Map.Height)
	}

	data, err := json.Marshal(input.Map)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal map")
	}

	set, err := r.client.SetNX(ctx, mapKey(input.Map.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create map")
	}
	if !set {
		return nil, errors.AlreadyExistsf("map %s already exists", input.Map.ID)
	}

	return &CreateOutput{Map: input.Map}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	result, err := r.client.Get(ctx, mapKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("map %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get map")
	}

	var m homestead.GameMap
	if err := json.Unmarshal([]byte(result), &m); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal map")
	}

	return &GetOutput{Map: &m}, nil
}

// Expand runs an optimistic transaction over the map and account keys:
// WATCH both, verify the balance covers the cost, then queue the size
// bump, the debit, and the experience grant in one MULTI/EXEC. If either
// key changes before EXEC the transaction aborts and is retried.
func (r *redisRepository) Expand(ctx context.Context, input ExpandInput) (*ExpandOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID cannot be empty")
	}
	if input.Cost < 0 {
		return nil, errors.InvalidArgument("cost cannot be negative")
	}

	mKey := mapKey(input.MapID)
	acctKey := account.Key(input.AccountID)

	var output *ExpandOutput
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, mKey).Result()
		if err == redis.Nil {
			return errors.NotFoundf("map %s not found", input.MapID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to load map %s", input.MapID)
		}

		var m homestead.GameMap
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return errors.Wrapf(err, "failed to unmarshal map %s", input.MapID)
		}

		balRaw, err := tx.HGet(ctx, acctKey, account.FieldChron).Result()
		if err == redis.Nil {
			return errors.NotFoundf("account %s has no detail record", input.AccountID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to load balance for account %s", input.AccountID)
		}

		balance, err := strconv.ParseInt(balRaw, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "corrupt chron balance for account %s", input.AccountID)
		}
		if balance < input.Cost {
			return errors.FailedPreconditionf("insufficient chron balance on account %s", input.AccountID)
		}

		m.Width++
		m.Height++
		data, err := json.Marshal(&m)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal map %s", input.MapID)
		}

		var balCmd, expCmd *redis.IntCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, mKey, data, 0)
			balCmd = pipe.HIncrBy(ctx, acctKey, account.FieldChron, -input.Cost)
			expCmd = pipe.HIncrBy(ctx, acctKey, account.FieldExperience, input.Cost)
			return nil
		})
		if err != nil {
			return err
		}

		output = &ExpandOutput{
			Map:        &m,
			Balance:    balCmd.Val(),
			Experience: expCmd.Val(),
		}
		return nil
	}

	for i := 0; i < expandMaxRetries; i++ {
		err := r.client.Watch(ctx, txf, mKey, acctKey)
		if err == nil {
			return output, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		var coded *errors.Error
		if errors.As(err, &coded) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to expand map %s", input.MapID)
	}

	return nil, errors.Abortedf("map %s expansion lost the transaction race, retry", input.MapID)
}
