package account

import (
	"context"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	redisclient "github.com/homesteadhq/homestead-api/internal/redis"
)

const (
	accountKeyPrefix = "account:"

	// Hash fields within an account detail record. Exported alongside Key
	// so cross-entity transactions (map expansion) can touch the balance
	// inside their own WATCH scope.
	FieldChron      = "chron"
	FieldExperience = "experience"

	// Error messages
	errAccountNil     = "account detail cannot be nil"
	errAccountIDEmpty = "account ID cannot be empty"
	errAmountNegative = "amount cannot be negative"
)

// debit return sentinels from the Lua script
const (
	debitMissingAccount = -2
	debitInsufficient   = -1
)

// debitScript rejects a debit that would push the balance negative. The
// check and the decrement run inside one script, so concurrent debits on
// the same account cannot interleave between them.
var debitScript = redis.NewScript(`
local bal = redis.call('HGET', KEYS[1], 'chron')
if not bal then
	return -2
end
if tonumber(bal) < tonumber(ARGV[1]) then
	return -1
end
return redis.call('HINCRBY', KEYS[1], 'chron', -tonumber(ARGV[1]))
`)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed account detail repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

// Key returns the storage key for an account's detail record
func Key(accountID string) string {
	return accountKeyPrefix + accountID
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Detail == nil {
		return nil, errors.InvalidArgument(errAccountNil)
	}
	if input.Detail.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if input.Detail.Chron < 0 {
		return nil, errors.InvalidArgument("chron balance cannot be negative")
	}

	key := Key(input.Detail.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check account existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("account %s already has a detail record", input.Detail.ID)
	}

	err = r.client.HSet(ctx, key,
		FieldChron, input.Detail.Chron,
		FieldExperience, input.Detail.Experience,
	).Err()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create account detail")
	}

	return &CreateOutput{Detail: input.Detail}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	fields, err := r.client.HGetAll(ctx, Key(input.AccountID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account detail")
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("account %s has no detail record", input.AccountID)
	}

	detail := &homestead.AccountDetail{ID: input.AccountID}
	detail.Chron, err = parseCounter(fields[FieldChron])
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt chron balance for account %s", input.AccountID)
	}
	detail.Experience, err = parseCounter(fields[FieldExperience])
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt experience counter for account %s", input.AccountID)
	}

	return &GetOutput{Detail: detail}, nil
}

func (r *redisRepository) Credit(ctx context.Context, input CreditInput) (*CreditOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument(errAmountNegative)
	}

	balance, err := r.client.HIncrBy(ctx, Key(input.AccountID), FieldChron, input.Amount).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to credit account %s", input.AccountID)
	}

	return &CreditOutput{Balance: balance}, nil
}

func (r *redisRepository) Debit(ctx context.Context, input DebitInput) (*DebitOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument(errAmountNegative)
	}

	result, err := debitScript.Run(ctx, r.client, []string{Key(input.AccountID)}, input.Amount).Int64()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to debit account %s", input.AccountID)
	}

	switch result {
	case debitMissingAccount:
		return nil, errors.NotFoundf("account %s has no detail record", input.AccountID)
	case debitInsufficient:
		return nil, errors.FailedPreconditionf("insufficient chron balance on account %s", input.AccountID)
	default:
		return &DebitOutput{Balance: result}, nil
	}
}

func parseCounter(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (r *redisRepository) AddExperience(ctx context.Context, input AddExperienceInput) (*AddExperienceOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument(errAmountNegative)
	}

	experience, err := r.client.HIncrBy(ctx, Key(input.AccountID), FieldExperience, input.Amount).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to grant experience to account %s", input.AccountID)
	}

	return &AddExperienceOutput{Experience: experience}, nil
}
