package placement_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	"github.com/homesteadhq/homestead-api/internal/repositories/placement"
	"github.com/homesteadhq/homestead-api/internal/testutils"
)

const testMapID = "map_123"

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    placement.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.repo = placement.NewRedisRepository(client)
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) newPlacement(id string, x, y int32) *homestead.Placement {
	return &homestead.Placement{
		ID:       id,
		GroupID:  id,
		MapID:    testMapID,
		X:        x,
		Y:        y,
		ItemID:   "item_1",
		PlacedBy: "acct_1",
		PlacedAt: 1700000000,
	}
}

func (s *RedisRepositoryTestSuite) TestInsert() {
	s.Run("successful insert", func() {
		output, err := s.repo.Insert(s.ctx, placement.InsertInput{Placement: s.newPlacement("plc_1", 0, 0)})

		s.NoError(err)
		s.NotNil(output)
		s.Equal("plc_1", output.Placement.ID)
	})

	s.Run("occupied tile fails with AlreadyExists", func() {
		_, err := s.repo.Insert(s.ctx, placement.InsertInput{Placement: s.newPlacement("plc_2", 1, 1)})
		s.NoError(err)

		_, err = s.repo.Insert(s.ctx, placement.InsertInput{Placement: s.newPlacement("plc_3", 1, 1)})
		s.Error(err)
		s.True(errors.IsAlreadyExists(err))

		// the original record survives
		got, err := s.repo.Get(s.ctx, placement.GetInput{MapID: testMapID, X: 1, Y: 1})
		s.NoError(err)
		s.Equal("plc_2", got.Placement.ID)
	})

	s.Run("same coordinate on another map is independent", func() {
		p := s.newPlacement("plc_4", 2, 2)
		_, err := s.repo.Insert(s.ctx, placement.InsertInput{Placement: p})
		s.NoError(err)

		other := s.newPlacement("plc_5", 2, 2)
		other.MapID = "map_other"
		_, err = s.repo.Insert(s.ctx, placement.InsertInput{Placement: other})
		s.NoError(err)
	})

	s.Run("error when placement is nil", func() {
		_, err := s.repo.Insert(s.ctx, placement.InsertInput{})
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("error when map ID is empty", func() {
		p := s.newPlacement("plc_6", 3, 3)
		p.MapID = ""
		_, err := s.repo.Insert(s.ctx, placement.InsertInput{Placement: p})
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestInsertConcurrentSameTile() {
	// N concurrent attempts on one tile: exactly one wins, the rest fail
	// with AlreadyExists.
	const attempts = 32

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p := s.newPlacement(fmt.Sprintf("plc_race_%d", n), 4, 4)
			_, err := s.repo.Insert(s.ctx, placement.InsertInput{Placement: p})
			results[n] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			s.True(errors.IsAlreadyExists(err))
		}
	}
	s.Equal(1, winners)
}

func (s *RedisRepositoryTestSuite) TestInsertBatch() {
	s.Run("successful batch insert", func() {
		batch := []*homestead.Placement{
			s.newPlacement("plc_b1", 0, 0),
			s.newPlacement("plc_b2", 1, 0),
			s.newPlacement("plc_b3", 0, 1),
			s.newPlacement("plc_b4", 1, 1),
		}

		output, err := s.repo.InsertBatch(s.ctx, placement.InsertBatchInput{MapID: testMapID, Placements: batch})

		s.NoError(err)
		s.Len(output.Placements, 4)

		list, err := s.repo.ListByMap(s.ctx, placement.ListByMapInput{MapID: testMapID})
		s.NoError(err)
		s.Len(list.Placements, 4)
	})

	s.Run("one occupied tile leaves store unchanged", func() {
		_, err := s.repo.Insert(s.ctx, placement.InsertInput{Placement: s.newPlacement("plc_block", 3, 3)})
		s.NoError(err)

		before, err := s.repo.ListByMap(s.ctx, placement.ListByMapInput{MapID: testMapID})
		s.NoError(err)

		batch := []*homestead.Placement{
			s.newPlacement("plc_b5", 2, 2),
			s.newPlacement("plc_b6", 3, 2),
			s.newPlacement("plc_b7", 2, 3),
			s.newPlacement("plc_b8", 3, 3), // collides
		}

		_, err = s.repo.InsertBatch(s.ctx, placement.InsertBatchInput{MapID: testMapID, Placements: batch})
		s.Error(err)
		s.True(errors.IsAlreadyExists(err))

		after, err := s.repo.ListByMap(s.ctx, placement.ListByMapInput{MapID: testMapID})
		s.NoError(err)
		s.Len(after.Placements, len(before.Placements), "failed batch must not leave partial inserts")
	})

	s.Run("error on empty batch", func() {
		_, err := s.repo.InsertBatch(s.ctx, placement.InsertBatchInput{MapID: testMapID})
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("error on cross-map placement", func() {
		stray := s.newPlacement("plc_b9", 4, 0)
		stray.MapID = "map_other"
		_, err := s.repo.InsertBatch(s.ctx, placement.InsertBatchInput{
			MapID:      testMapID,
			Placements: []*homestead.Placement{stray},
		})
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.Run("delete removes the placement", func() {
		_, err := s.repo.Insert(s.ctx, placement.InsertInput{Placement: s.newPlacement("plc_d1", 0, 2)})
		s.NoError(err)

		output, err := s.repo.Delete(s.ctx, placement.DeleteInput{MapID: testMapID, X: 0, Y: 2})
		s.NoError(err)
		s.True(output.Removed)

		_, err = s.repo.Get(s.ctx, placement.GetInput{MapID: testMapID, X: 0, Y: 2})
		s.True(errors.IsNotFound(err))
	})

	s.Run("delete of empty tile is a no-op", func() {
		output, err := s.repo.Delete(s.ctx, placement.DeleteInput{MapID: testMapID, X: 4, Y: 4})
		s.NoError(err)
		s.False(output.Removed)
	})
}

func (s *RedisRepositoryTestSuite) TestGet() {
	s.Run("successful get", func() {
		want := s.newPlacement("plc_g1", 2, 0)
		_, err := s.repo.Insert(s.ctx, placement.InsertInput{Placement: want})
		s.NoError(err)

		output, err := s.repo.Get(s.ctx, placement.GetInput{MapID: testMapID, X: 2, Y: 0})
		s.NoError(err)
		s.Equal(want.ID, output.Placement.ID)
		s.Equal(want.ItemID, output.Placement.ItemID)
		s.Equal(want.PlacedBy, output.Placement.PlacedBy)
	})

	s.Run("empty tile returns NotFound", func() {
		_, err := s.repo.Get(s.ctx, placement.GetInput{MapID: testMapID, X: 4, Y: 1})
		s.Error(err)
		s.True(errors.IsNotFound(err))
	})
}

func (s *RedisRepositoryTestSuite) TestListByMap() {
	s.Run("empty map lists nothing", func() {
		output, err := s.repo.ListByMap(s.ctx, placement.ListByMapInput{MapID: "map_empty"})
		s.NoError(err)
		s.Empty(output.Placements)
	})

	s.Run("lists all placements", func() {
		for i, c := range []struct{ x, y int32 }{{0, 0}, {1, 2}, {3, 4}} {
			_, err := s.repo.Insert(s.ctx, placement.InsertInput{
				Placement: s.newPlacement("plc_l"+string(rune('0'+i)), c.x, c.y),
			})
			s.NoError(err)
		}

		output, err := s.repo.ListByMap(s.ctx, placement.ListByMapInput{MapID: testMapID})
		s.NoError(err)
		s.Len(output.Placements, 3)
	})
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
