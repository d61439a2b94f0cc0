package placement

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	redisclient "github.com/homesteadhq/homestead-api/internal/redis"
)

const (
	placementKeyPrefix = "placements:"

	// Error messages
	errPlacementNil   = "placement cannot be nil"
	errPlacementEmpty = "placement ID cannot be empty"
	errMapIDEmpty     = "map ID cannot be empty"
)

// batchInsertScript atomically inserts a set of hash fields, or none of
// them. Redis runs scripts atomically, which gives multi-tile placement
// its all-or-none guarantee. ARGV is field/value pairs; the script returns
// the first occupied field, or an empty string on success.
var batchInsertScript = redis.NewScript(`
for i = 1, #ARGV, 2 do
	if redis.call('HEXISTS', KEYS[1], ARGV[i]) == 1 then
		return ARGV[i]
	end
end
for i = 1, #ARGV, 2 do
	redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
return ''
`)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed placement repository.
// Placements for a map live in one hash keyed placements:{mapID}, with
// one field per tile ("x:y"). HSETNX enforces the one-item-per-tile
// uniqueness at the storage layer rather than by check-then-act.
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

func mapKey(mapID string) string {
	return placementKeyPrefix + mapID
}

func tileField(x, y int32) string {
	return fmt.Sprintf("%d:%d", x, y)
}

func (r *redisRepository) Insert(ctx context.Context, input InsertInput) (*InsertOutput, error) {
	if input.Placement == nil {
		return nil, errors.InvalidArgument(errPlacementNil)
	}
	if input.Placement.ID == "" {
		return nil, errors.InvalidArgument(errPlacementEmpty)
	}
	if input.Placement.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	data, err := json.Marshal(input.Placement)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal placement")
	}

	key := mapKey(input.Placement.MapID)
	field := tileField(input.Placement.X, input.Placement.Y)

	set, err := r.client.HSetNX(ctx, key, field, data).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert placement at %s", field)
	}
	if !set {
		return nil, errors.AlreadyExistsf("tile %s on map %s is occupied", field, input.Placement.MapID)
	}

	return &InsertOutput{Placement: input.Placement}, nil
}

func (r *redisRepository) InsertBatch(ctx context.Context, input InsertBatchInput) (*InsertBatchOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}
	if len(input.Placements) == 0 {
		return nil, errors.InvalidArgument("placements cannot be empty")
	}

	args := make([]interface{}, 0, len(input.Placements)*2)
	for _, p := range input.Placements {
		if p == nil {
			return nil, errors.InvalidArgument(errPlacementNil)
		}
		if p.MapID != input.MapID {
			return nil, errors.InvalidArgumentf("placement %s targets map %s, batch is for map %s", p.ID, p.MapID, input.MapID)
		}

		data, err := json.Marshal(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal placement %s", p.ID)
		}
		args = append(args, tileField(p.X, p.Y), string(data))
	}

	occupied, err := batchInsertScript.Run(ctx, r.client, []string{mapKey(input.MapID)}, args...).Text()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to batch insert placements")
	}
	if occupied != "" {
		return nil, errors.AlreadyExistsf("tile %s on map %s is occupied", occupied, input.MapID)
	}

	return &InsertBatchOutput{Placements: input.Placements}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	removed, err := r.client.HDel(ctx, mapKey(input.MapID), tileField(input.X, input.Y)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete placement")
	}

	return &DeleteOutput{Removed: removed > 0}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	field := tileField(input.X, input.Y)
	result, err := r.client.HGet(ctx, mapKey(input.MapID), field).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no placement at tile %s on map %s", field, input.MapID)
		}
		return nil, errors.Wrapf(err, "failed to get placement")
	}

	var p homestead.Placement
	if err := json.Unmarshal([]byte(result), &p); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal placement")
	}

	return &GetOutput{Placement: &p}, nil
}

func (r *redisRepository) ListByMap(ctx context.Context, input ListByMapInput) (*ListByMapOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	// HGETALL is a single command, so the listing reflects one consistent
	// view of the map with no torn reads.
	entries, err := r.client.HGetAll(ctx, mapKey(input.MapID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list placements")
	}

	placements := make([]*homestead.Placement, 0, len(entries))
	for field, raw := range entries {
		var p homestead.Placement
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal placement at %s", field)
		}
		placements = append(placements, &p)
	}

	return &ListByMapOutput{Placements: placements}, nil
}
