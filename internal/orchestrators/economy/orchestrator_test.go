package economy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/homesteadhq/homestead-api/internal/clients/catalog"
	catalogmock "github.com/homesteadhq/homestead-api/internal/clients/catalog/mock"
	"github.com/homesteadhq/homestead-api/internal/engine/grid"
	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	"github.com/homesteadhq/homestead-api/internal/orchestrators/economy"
	"github.com/homesteadhq/homestead-api/internal/orchestrators/placement"
	enginemock "github.com/homesteadhq/homestead-api/internal/orchestrators/placement/mock"
	"github.com/homesteadhq/homestead-api/internal/repositories/account"
	accountmock "github.com/homesteadhq/homestead-api/internal/repositories/account/mock"
	"github.com/homesteadhq/homestead-api/internal/repositories/gamemap"
	gamemapmock "github.com/homesteadhq/homestead-api/internal/repositories/gamemap/mock"
	placementrepo "github.com/homesteadhq/homestead-api/internal/repositories/placement"
	placementrepomock "github.com/homesteadhq/homestead-api/internal/repositories/placement/mock"
)

const (
	testAccountID = "acct_1"
	testMapID     = "map_1"
	testItemID    = "item_chair"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockEngine    *enginemock.MockService
	mockCatalog   *catalogmock.MockClient
	mockAccounts  *accountmock.MockRepository
	mockMaps      *gamemapmock.MockRepository
	mockPlacement *placementrepomock.MockRepository
	service       economy.Service
	ctx           context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockService(s.ctrl)
	s.mockCatalog = catalogmock.NewMockClient(s.ctrl)
	s.mockAccounts = accountmock.NewMockRepository(s.ctrl)
	s.mockMaps = gamemapmock.NewMockRepository(s.ctrl)
	s.mockPlacement = placementrepomock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	svc, err := economy.NewOrchestrator(&economy.Config{
		Engine:        s.mockEngine,
		Catalog:       s.mockCatalog,
		AccountRepo:   s.mockAccounts,
		MapRepo:       s.mockMaps,
		PlacementRepo: s.mockPlacement,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) chair(price float64) *homestead.Item {
	return &homestead.Item{
		ID:     testItemID,
		Name:   "Wooden Chair",
		Price:  price,
		SizeX:  1,
		SizeY:  1,
		Active: true,
	}
}

func (s *OrchestratorTestSuite) expectItem(item *homestead.Item) {
	s.mockCatalog.EXPECT().
		GetItem(s.ctx, &catalog.GetItemInput{ID: item.ID}).
		Return(&catalog.GetItemOutput{Item: item}, nil)
}

func (s *OrchestratorTestSuite) expectBalance(balance int64) {
	s.mockAccounts.EXPECT().
		Get(s.ctx, account.GetInput{AccountID: testAccountID}).
		Return(&account.GetOutput{Detail: &homestead.AccountDetail{
			ID:    testAccountID,
			Chron: balance,
		}}, nil)
}

func (s *OrchestratorTestSuite) buyInput() *economy.BuyInput {
	return &economy.BuyInput{
		AccountID: testAccountID,
		MapID:     testMapID,
		X:         2,
		Y:         2,
		ItemID:    testItemID,
	}
}

func (s *OrchestratorTestSuite) TestBuy() {
	s.Run("places then charges", func() {
		s.expectItem(s.chair(100))
		s.expectBalance(150)

		placeCall := s.mockEngine.EXPECT().
			PlaceSingleTile(s.ctx, &placement.PlaceSingleTileInput{
				MapID:    testMapID,
				X:        2,
				Y:        2,
				ItemID:   testItemID,
				PlacedBy: testAccountID,
			}).
			Return(&placement.PlaceSingleTileOutput{Placement: &homestead.Placement{
				ID:     "plc_1",
				MapID:  testMapID,
				X:      2,
				Y:      2,
				ItemID: testItemID,
			}}, nil)
		debitCall := s.mockAccounts.EXPECT().
			Debit(s.ctx, account.DebitInput{AccountID: testAccountID, Amount: 100}).
			Return(&account.DebitOutput{Balance: 50}, nil)
		gomock.InOrder(placeCall, debitCall)

		output, err := s.service.Buy(s.ctx, s.buyInput())

		s.NoError(err)
		s.Equal(int64(50), output.Balance)
		s.Len(output.Placements, 1)
		s.Equal(testItemID, output.Item.ID)
	})

	s.Run("fractional price is truncated", func() {
		s.expectItem(s.chair(99.9))
		s.expectBalance(99)

		s.mockEngine.EXPECT().
			PlaceSingleTile(s.ctx, gomock.Any()).
			Return(&placement.PlaceSingleTileOutput{Placement: &homestead.Placement{ID: "plc_1"}}, nil)
		s.mockAccounts.EXPECT().
			Debit(s.ctx, account.DebitInput{AccountID: testAccountID, Amount: 99}).
			Return(&account.DebitOutput{Balance: 0}, nil)

		_, err := s.service.Buy(s.ctx, s.buyInput())
		s.NoError(err)
	})

	s.Run("unknown item", func() {
		s.mockCatalog.EXPECT().
			GetItem(s.ctx, &catalog.GetItemInput{ID: testItemID}).
			Return(nil, errors.NotFoundf("item %s not found", testItemID))

		_, err := s.service.Buy(s.ctx, s.buyInput())
		s.Error(err)
		s.True(errors.IsNotFound(err))
	})

	s.Run("inactive item blocks before any effect", func() {
		item := s.chair(100)
		item.Active = false
		s.expectItem(item)

		_, err := s.service.Buy(s.ctx, s.buyInput())
		s.Error(err)
		s.True(errors.IsFailedPrecondition(err))
	})

	s.Run("insufficient funds blocks before placement", func() {
		s.expectItem(s.chair(100))
		s.expectBalance(10)
		// no engine expectation: the tile must never be touched

		_, err := s.service.Buy(s.ctx, s.buyInput())
		s.Error(err)
		s.True(errors.IsFailedPrecondition(err))
	})

	s.Run("occupied tile leaves balance untouched", func() {
		s.expectItem(s.chair(100))
		s.expectBalance(150)
		s.mockEngine.EXPECT().
			PlaceSingleTile(s.ctx, gomock.Any()).
			Return(nil, errors.AlreadyExists("tile 2:2 on map map_1 is occupied"))
		// no Debit expectation: failed placement never charges

		_, err := s.service.Buy(s.ctx, s.buyInput())
		s.Error(err)
		s.True(errors.IsAlreadyExists(err))
	})

	s.Run("multi-tile item places its footprint", func() {
		item := s.chair(200)
		item.SizeX = 2
		item.SizeY = 2
		s.expectItem(item)
		s.expectBalance(500)

		s.mockEngine.EXPECT().
			PlaceMultiTile(s.ctx, &placement.PlaceMultiTileInput{
				MapID:    testMapID,
				Coords:   grid.Footprint(2, 2, 2, 2),
				ItemID:   testItemID,
				PlacedBy: testAccountID,
			}).
			Return(&placement.PlaceMultiTileOutput{Placements: []*homestead.Placement{
				{ID: "plc_1"}, {ID: "plc_2"}, {ID: "plc_3"}, {ID: "plc_4"},
			}}, nil)
		s.mockAccounts.EXPECT().
			Debit(s.ctx, account.DebitInput{AccountID: testAccountID, Amount: 200}).
			Return(&account.DebitOutput{Balance: 300}, nil)

		output, err := s.service.Buy(s.ctx, s.buyInput())
		s.NoError(err)
		s.Len(output.Placements, 4)
	})

	s.Run("failed charge rolls the placement back", func() {
		s.expectItem(s.chair(100))
		s.expectBalance(150)
		s.mockEngine.EXPECT().
			PlaceSingleTile(s.ctx, gomock.Any()).
			Return(&placement.PlaceSingleTileOutput{Placement: &homestead.Placement{
				ID:    "plc_1",
				MapID: testMapID,
				X:     2,
				Y:     2,
			}}, nil)
		debitErr := errors.FailedPrecondition("insufficient chron")
		s.mockAccounts.EXPECT().
			Debit(s.ctx, account.DebitInput{AccountID: testAccountID, Amount: 100}).
			Return(nil, debitErr)
		s.mockEngine.EXPECT().
			RemoveItem(s.ctx, &placement.RemoveItemInput{MapID: testMapID, X: 2, Y: 2}).
			Return(&placement.RemoveItemOutput{Removed: true}, nil)

		_, err := s.service.Buy(s.ctx, s.buyInput())
		s.Error(err)
		s.True(errors.IsFailedPrecondition(err))
	})

	s.Run("failed charge and failed rollback is data loss", func() {
		s.expectItem(s.chair(100))
		s.expectBalance(150)
		s.mockEngine.EXPECT().
			PlaceSingleTile(s.ctx, gomock.Any()).
			Return(&placement.PlaceSingleTileOutput{Placement: &homestead.Placement{
				ID:    "plc_1",
				MapID: testMapID,
				X:     2,
				Y:     2,
			}}, nil)
		s.mockAccounts.EXPECT().
			Debit(s.ctx, gomock.Any()).
			Return(nil, errors.Internal("connection lost"))
		s.mockEngine.EXPECT().
			RemoveItem(s.ctx, gomock.Any()).
			Return(nil, errors.Internal("connection lost"))

		_, err := s.service.Buy(s.ctx, s.buyInput())
		s.Error(err)
		s.Equal(errors.CodeDataLoss, errors.GetCode(err))
	})
}

func (s *OrchestratorTestSuite) TestSell() {
	placed := &homestead.Placement{
		ID:       "plc_1",
		GroupID:  "plc_1",
		MapID:    testMapID,
		X:        2,
		Y:        2,
		ItemID:   testItemID,
		PlacedBy: testAccountID,
	}

	sellInput := &economy.SellInput{
		AccountID: testAccountID,
		MapID:     testMapID,
		X:         2,
		Y:         2,
	}

	expectGroup := func(placements ...*homestead.Placement) {
		s.mockPlacement.EXPECT().
			ListByMap(s.ctx, placementrepo.ListByMapInput{MapID: testMapID}).
			Return(&placementrepo.ListByMapOutput{Placements: placements}, nil)
	}

	s.Run("removes then credits half the price", func() {
		s.mockPlacement.EXPECT().
			Get(s.ctx, placementrepo.GetInput{MapID: testMapID, X: 2, Y: 2}).
			Return(&placementrepo.GetOutput{Placement: placed}, nil)
		s.expectItem(s.chair(100))
		expectGroup(placed)

		removeCall := s.mockEngine.EXPECT().
			RemoveItem(s.ctx, &placement.RemoveItemInput{MapID: testMapID, X: 2, Y: 2}).
			Return(&placement.RemoveItemOutput{Removed: true}, nil)
		creditCall := s.mockAccounts.EXPECT().
			Credit(s.ctx, account.CreditInput{AccountID: testAccountID, Amount: 50}).
			Return(&account.CreditOutput{Balance: 100}, nil)
		gomock.InOrder(removeCall, creditCall)

		output, err := s.service.Sell(s.ctx, sellInput)

		s.NoError(err)
		s.Equal(int64(50), output.Refund)
		s.Equal("plc_1", output.PlacementID)
		s.Equal(testItemID, output.ItemID)
		s.Equal(1, output.TilesRemoved)
		s.Equal(int64(100), output.Balance)
	})

	s.Run("refund truncates, never rounds", func() {
		s.mockPlacement.EXPECT().
			Get(s.ctx, gomock.Any()).
			Return(&placementrepo.GetOutput{Placement: placed}, nil)
		s.expectItem(s.chair(99))
		expectGroup(placed)

		s.mockEngine.EXPECT().
			RemoveItem(s.ctx, gomock.Any()).
			Return(&placement.RemoveItemOutput{Removed: true}, nil)
		// floor(99 * 0.5) = 49
		s.mockAccounts.EXPECT().
			Credit(s.ctx, account.CreditInput{AccountID: testAccountID, Amount: 49}).
			Return(&account.CreditOutput{Balance: 49}, nil)

		output, err := s.service.Sell(s.ctx, sellInput)
		s.NoError(err)
		s.Equal(int64(49), output.Refund)
	})

	s.Run("multi-tile item sells as one unit and refunds once", func() {
		table := s.chair(200)
		table.ID = "item_table"
		table.SizeX = 2
		table.SizeY = 2

		group := []*homestead.Placement{
			{ID: "plc_a", GroupID: "plc_a", MapID: testMapID, X: 2, Y: 2, ItemID: table.ID, PlacedBy: testAccountID},
			{ID: "plc_b", GroupID: "plc_a", MapID: testMapID, X: 3, Y: 2, ItemID: table.ID, PlacedBy: testAccountID},
			{ID: "plc_c", GroupID: "plc_a", MapID: testMapID, X: 2, Y: 3, ItemID: table.ID, PlacedBy: testAccountID},
			{ID: "plc_d", GroupID: "plc_a", MapID: testMapID, X: 3, Y: 3, ItemID: table.ID, PlacedBy: testAccountID},
		}
		unrelated := &homestead.Placement{ID: "plc_z", GroupID: "plc_z", MapID: testMapID, X: 0, Y: 0, ItemID: testItemID, PlacedBy: testAccountID}

		s.mockPlacement.EXPECT().
			Get(s.ctx, placementrepo.GetInput{MapID: testMapID, X: 2, Y: 2}).
			Return(&placementrepo.GetOutput{Placement: group[0]}, nil)
		s.expectItem(table)
		expectGroup(group[0], group[1], group[2], group[3], unrelated)

		for _, p := range group {
			s.mockEngine.EXPECT().
				RemoveItem(s.ctx, &placement.RemoveItemInput{MapID: testMapID, X: p.X, Y: p.Y}).
				Return(&placement.RemoveItemOutput{Removed: true}, nil)
		}
		// One credit of floor(200 * 0.5) for the whole group, never per cell.
		s.mockAccounts.EXPECT().
			Credit(s.ctx, account.CreditInput{AccountID: testAccountID, Amount: 100}).
			Return(&account.CreditOutput{Balance: 100}, nil)

		output, err := s.service.Sell(s.ctx, sellInput)

		s.NoError(err)
		s.Equal(int64(100), output.Refund)
		s.Equal(4, output.TilesRemoved)
	})

	s.Run("sibling removal failure is data loss", func() {
		group := []*homestead.Placement{
			{ID: "plc_a", GroupID: "plc_a", MapID: testMapID, X: 2, Y: 2, ItemID: testItemID, PlacedBy: testAccountID},
			{ID: "plc_b", GroupID: "plc_a", MapID: testMapID, X: 3, Y: 2, ItemID: testItemID, PlacedBy: testAccountID},
		}

		s.mockPlacement.EXPECT().
			Get(s.ctx, gomock.Any()).
			Return(&placementrepo.GetOutput{Placement: group[0]}, nil)
		s.expectItem(s.chair(100))
		expectGroup(group[0], group[1])

		s.mockEngine.EXPECT().
			RemoveItem(s.ctx, &placement.RemoveItemInput{MapID: testMapID, X: 2, Y: 2}).
			Return(&placement.RemoveItemOutput{Removed: true}, nil)
		s.mockEngine.EXPECT().
			RemoveItem(s.ctx, &placement.RemoveItemInput{MapID: testMapID, X: 3, Y: 2}).
			Return(nil, errors.Internal("connection lost"))
		// no Credit expectation

		_, err := s.service.Sell(s.ctx, sellInput)
		s.Error(err)
		s.Equal(errors.CodeDataLoss, errors.GetCode(err))
	})

	s.Run("empty tile", func() {
		s.mockPlacement.EXPECT().
			Get(s.ctx, gomock.Any()).
			Return(nil, errors.NotFound("no placement at tile 2:2 on map map_1"))

		_, err := s.service.Sell(s.ctx, sellInput)
		s.Error(err)
		s.True(errors.IsNotFound(err))
	})

	s.Run("only the placer may sell", func() {
		intruder := *placed
		intruder.PlacedBy = "acct_other"
		s.mockPlacement.EXPECT().
			Get(s.ctx, gomock.Any()).
			Return(&placementrepo.GetOutput{Placement: &intruder}, nil)
		// no removal, no credit

		_, err := s.service.Sell(s.ctx, sellInput)
		s.Error(err)
		s.True(errors.IsPermissionDenied(err))
	})

	s.Run("losing a concurrent sell race grants no refund", func() {
		s.mockPlacement.EXPECT().
			Get(s.ctx, gomock.Any()).
			Return(&placementrepo.GetOutput{Placement: placed}, nil)
		s.expectItem(s.chair(100))
		expectGroup(placed)
		s.mockEngine.EXPECT().
			RemoveItem(s.ctx, gomock.Any()).
			Return(&placement.RemoveItemOutput{Removed: false}, nil)
		// no Credit expectation

		_, err := s.service.Sell(s.ctx, sellInput)
		s.Error(err)
		s.True(errors.IsNotFound(err))
	})

	s.Run("removal committed but credit failed is data loss", func() {
		s.mockPlacement.EXPECT().
			Get(s.ctx, gomock.Any()).
			Return(&placementrepo.GetOutput{Placement: placed}, nil)
		s.expectItem(s.chair(100))
		expectGroup(placed)
		s.mockEngine.EXPECT().
			RemoveItem(s.ctx, gomock.Any()).
			Return(&placement.RemoveItemOutput{Removed: true}, nil)
		s.mockAccounts.EXPECT().
			Credit(s.ctx, gomock.Any()).
			Return(nil, errors.Internal("connection lost"))

		_, err := s.service.Sell(s.ctx, sellInput)
		s.Error(err)
		s.Equal(errors.CodeDataLoss, errors.GetCode(err))
	})
}

func (s *OrchestratorTestSuite) TestExpandMap() {
	expandInput := &economy.ExpandMapInput{
		MapID:     testMapID,
		AccountID: testAccountID,
		Cost:      250,
	}

	s.Run("delegates to the atomic repository expand", func() {
		s.mockMaps.EXPECT().
			Expand(s.ctx, gamemap.ExpandInput{MapID: testMapID, AccountID: testAccountID, Cost: 250}).
			Return(&gamemap.ExpandOutput{
				Map:        &homestead.GameMap{ID: testMapID, Width: 6, Height: 6},
				Balance:    750,
				Experience: 250,
			}, nil)

		output, err := s.service.ExpandMap(s.ctx, expandInput)

		s.NoError(err)
		s.Equal(int32(6), output.Map.Width)
		s.Equal(int64(750), output.Balance)
		s.Equal(int64(250), output.Experience)
	})

	s.Run("negative cost rejected", func() {
		_, err := s.service.ExpandMap(s.ctx, &economy.ExpandMapInput{
			MapID:     testMapID,
			AccountID: testAccountID,
			Cost:      -1,
		})
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("insufficient funds passes through", func() {
		s.mockMaps.EXPECT().
			Expand(s.ctx, gomock.Any()).
			Return(nil, errors.FailedPrecondition("insufficient chron"))

		_, err := s.service.ExpandMap(s.ctx, expandInput)
		s.Error(err)
		s.True(errors.IsFailedPrecondition(err))
	})
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
