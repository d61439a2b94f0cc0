// Package economy implements the buy/sell/expand flows that tie placement
// outcomes to the chron balance. Ordering is the load-bearing part: buy
// places first and charges only after the placement committed, sell removes
// first and credits only after the removal committed. A failed placement
// must never cost chron, and a failed removal must never grant it.
package economy

//go:generate mockgen -destination=mock/mock_service.go -package=economymock github.com/homesteadhq/homestead-api/internal/orchestrators/economy Service

import (
	"context"
	"log/slog"
	"math"

	"github.com/homesteadhq/homestead-api/internal/clients/catalog"
	"github.com/homesteadhq/homestead-api/internal/engine/grid"
	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	"github.com/homesteadhq/homestead-api/internal/orchestrators/placement"
	"github.com/homesteadhq/homestead-api/internal/repositories/account"
	"github.com/homesteadhq/homestead-api/internal/repositories/gamemap"
	placementrepo "github.com/homesteadhq/homestead-api/internal/repositories/placement"
)

// SellRefundRate is the fraction of the purchase price returned on sell.
// The refund is truncated toward zero, never rounded.
const SellRefundRate = 0.5

// Service defines the interface for economy operations
type Service interface {
	// Buy purchases a catalog item and places it at (x, y); multi-tile
	// items occupy their full footprint anchored there. The balance is
	// only debited after the placement committed.
	// Returns errors.NotFound if the item or map is missing
	// Returns errors.FailedPrecondition if the item is inactive or the
	// balance cannot cover the price
	// Returns errors.OutOfRange or errors.AlreadyExists from placement,
	// with the balance untouched
	Buy(ctx context.Context, input *BuyInput) (*BuyOutput, error)

	// Sell removes the item placed at (x, y) and credits half its catalog
	// price, truncated. A multi-tile item is one purchase: selling any of
	// its cells removes the whole placement group and refunds exactly
	// once. Only the placing account may sell.
	// Returns errors.NotFound if nothing is placed there (including losing
	// a concurrent sell race, in which case no refund is granted)
	// Returns errors.PermissionDenied if the caller did not place the item
	Sell(ctx context.Context, input *SellInput) (*SellOutput, error)

	// ExpandMap grows the map by one in each dimension, debiting Cost and
	// granting the same amount of experience, atomically.
	ExpandMap(ctx context.Context, input *ExpandMapInput) (*ExpandMapOutput, error)
}

// Config holds the dependencies for the economy orchestrator
type Config struct {
	Engine        placement.Service
	Catalog       catalog.Client
	AccountRepo   account.Repository
	MapRepo       gamemap.Repository
	PlacementRepo placementrepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.AccountRepo == nil {
		vb.RequiredField("AccountRepo")
	}
	if c.MapRepo == nil {
		vb.RequiredField("MapRepo")
	}
	if c.PlacementRepo == nil {
		vb.RequiredField("PlacementRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	engine        placement.Service
	catalog       catalog.Client
	accountRepo   account.Repository
	mapRepo       gamemap.Repository
	placementRepo placementrepo.Repository
}

// NewOrchestrator creates a new economy orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:        cfg.Engine,
		catalog:       cfg.Catalog,
		accountRepo:   cfg.AccountRepo,
		mapRepo:       cfg.MapRepo,
		placementRepo: cfg.PlacementRepo,
	}, nil
}

// priceInChron truncates a catalog price to whole chron. Truncation, not
// rounding: 99.9 costs 99 and refunds floor(99.9 * 0.5) = 49.
func priceInChron(price float64) int64 {
	return int64(math.Floor(price))
}

func (o *orchestrator) Buy(ctx context.Context, input *BuyInput) (*BuyOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	itemOutput, err := o.catalog.GetItem(ctx, &catalog.GetItemInput{ID: input.ItemID})
	if err != nil {
		return nil, err
	}
	item := itemOutput.Item

	if !item.Active {
		return nil, errors.FailedPreconditionf("item %s is not available for purchase", item.ID)
	}

	price := priceInChron(item.Price)
	if price < 0 {
		return nil, errors.Internalf("item %s has negative price %f", item.ID, item.Price)
	}

	// Pre-check the balance so an unaffordable buy never reaches the
	// placement store. The debit after placement re-checks atomically;
	// this read is advisory, not the enforcement point.
	acctOutput, err := o.accountRepo.Get(ctx, account.GetInput{AccountID: input.AccountID})
	if err != nil {
		return nil, err
	}
	if acctOutput.Detail.Chron < price {
		return nil, errors.FailedPreconditionf("insufficient chron: balance %d, item %s costs %d",
			acctOutput.Detail.Chron, item.ID, price)
	}

	placements, err := o.place(ctx, input, item)
	if err != nil {
		// Placement failures (occupied, out of bounds, missing map) cost
		// nothing: the balance has not been touched.
		return nil, err
	}

	debitOutput, err := o.accountRepo.Debit(ctx, account.DebitInput{
		AccountID: input.AccountID,
		Amount:    price,
	})
	if err != nil {
		return nil, o.rollbackBuy(ctx, input, placements, err)
	}

	slog.Info("Item purchased",
		"account_id", input.AccountID,
		"map_id", input.MapID,
		"item_id", item.ID,
		"price", price,
		"tiles", len(placements),
		"balance", debitOutput.Balance,
	)

	return &BuyOutput{
		Item:       item,
		Placements: placements,
		Balance:    debitOutput.Balance,
	}, nil
}

func (o *orchestrator) place(ctx context.Context, input *BuyInput, item *homestead.Item) ([]*homestead.Placement, error) {
	if item.MultiTile() {
		multiOutput, err := o.engine.PlaceMultiTile(ctx, &placement.PlaceMultiTileInput{
			MapID:    input.MapID,
			Coords:   grid.Footprint(input.X, input.Y, item.SizeX, item.SizeY),
			ItemID:   item.ID,
			PlacedBy: input.AccountID,
		})
		if err != nil {
			return nil, err
		}
		return multiOutput.Placements, nil
	}

	singleOutput, err := o.engine.PlaceSingleTile(ctx, &placement.PlaceSingleTileInput{
		MapID:    input.MapID,
		X:        input.X,
		Y:        input.Y,
		ItemID:   item.ID,
		PlacedBy: input.AccountID,
	})
	if err != nil {
		return nil, err
	}
	return []*homestead.Placement{singleOutput.Placement}, nil
}

// rollbackBuy compensates a placed-but-not-charged buy by removing what was
// just placed. If the compensation itself fails, the stores disagree and
// the error escalates to data loss for reconciliation.
func (o *orchestrator) rollbackBuy(ctx context.Context, input *BuyInput, placements []*homestead.Placement, debitErr error) error {
	for _, p := range placements {
		if _, err := o.engine.RemoveItem(ctx, &placement.RemoveItemInput{
			MapID: p.MapID,
			X:     p.X,
			Y:     p.Y,
		}); err != nil {
			slog.Error("Buy charge failed and compensating removal failed, placement and ledger disagree",
				"account_id", input.AccountID,
				"map_id", p.MapID,
				"x", p.X,
				"y", p.Y,
				"placement_id", p.ID,
				"debit_error", debitErr,
				"rollback_error", err,
			)
			return errors.WrapWithCode(debitErr, errors.CodeDataLoss,
				"charge failed after placement and rollback failed, reconciliation required")
		}
	}

	slog.Info("Buy charge failed, placement rolled back",
		"account_id", input.AccountID,
		"map_id", input.MapID,
		"item_id", input.ItemID,
		"error", debitErr,
	)
	return debitErr
}

func (o *orchestrator) Sell(ctx context.Context, input *SellInput) (*SellOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}

	getOutput, err := o.placementRepo.Get(ctx, placementrepo.GetInput{
		MapID: input.MapID,
		X:     input.X,
		Y:     input.Y,
	})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("nothing to sell at tile (%d,%d) on map %s",
				input.X, input.Y, input.MapID)
		}
		return nil, err
	}
	placed := getOutput.Placement

	if placed.PlacedBy != input.AccountID {
		return nil, errors.PermissionDeniedf("account %s did not place item at tile (%d,%d)",
			input.AccountID, input.X, input.Y)
	}

	itemOutput, err := o.catalog.GetItem(ctx, &catalog.GetItemInput{ID: placed.ItemID})
	if err != nil {
		return nil, errors.Wrapf(err, "resolving price for placed item %s", placed.ItemID)
	}

	refund := int64(math.Floor(itemOutput.Item.Price * SellRefundRate))

	// A multi-tile item is one purchase spread across several records
	// sharing a group ID. Selling any cell sells the whole group, and the
	// refund is credited once for the group, never per cell.
	siblings, err := o.groupSiblings(ctx, input, placed)
	if err != nil {
		return nil, err
	}

	// Remove first, credit second. The requested tile goes first; if a
	// concurrent sell already removed it, Removed is false and no refund
	// is granted.
	removeOutput, err := o.engine.RemoveItem(ctx, &placement.RemoveItemInput{
		MapID: input.MapID,
		X:     input.X,
		Y:     input.Y,
	})
	if err != nil {
		return nil, err
	}
	if !removeOutput.Removed {
		return nil, errors.NotFoundf("nothing to sell at tile (%d,%d) on map %s",
			input.X, input.Y, input.MapID)
	}
	tilesRemoved := 1

	for _, p := range siblings {
		siblingOutput, err := o.engine.RemoveItem(ctx, &placement.RemoveItemInput{
			MapID: input.MapID,
			X:     p.X,
			Y:     p.Y,
		})
		if err != nil {
			// Part of the group is gone and the refund never landed.
			slog.Error("Sell removed part of a placement group then failed, placement and ledger disagree",
				"account_id", input.AccountID,
				"map_id", input.MapID,
				"group_id", placed.GroupID,
				"x", p.X,
				"y", p.Y,
				"error", err,
			)
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss,
				"placement group partially removed, reconciliation required")
		}
		if siblingOutput.Removed {
			tilesRemoved++
		}
	}

	creditOutput, err := o.accountRepo.Credit(ctx, account.CreditInput{
		AccountID: input.AccountID,
		Amount:    refund,
	})
	if err != nil {
		// The placement is gone but the refund never landed.
		slog.Error("Sell removed placement but refund credit failed, placement and ledger disagree",
			"account_id", input.AccountID,
			"map_id", input.MapID,
			"x", input.X,
			"y", input.Y,
			"placement_id", placed.ID,
			"refund", refund,
			"error", err,
		)
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss,
			"refund credit failed after removal, reconciliation required")
	}

	slog.Info("Item sold",
		"account_id", input.AccountID,
		"map_id", input.MapID,
		"x", input.X,
		"y", input.Y,
		"item_id", placed.ItemID,
		"tiles", tilesRemoved,
		"refund", refund,
		"balance", creditOutput.Balance,
	)

	return &SellOutput{
		Refund:       refund,
		PlacementID:  placed.ID,
		ItemID:       placed.ItemID,
		TilesRemoved: tilesRemoved,
		Balance:      creditOutput.Balance,
	}, nil
}

// groupSiblings returns the other records of the sold placement's group,
// excluding the requested tile itself. Records with no group ID predate
// group tracking and sell as single tiles.
func (o *orchestrator) groupSiblings(ctx context.Context, input *SellInput, placed *homestead.Placement) ([]*homestead.Placement, error) {
	if placed.GroupID == "" {
		return nil, nil
	}

	listOutput, err := o.placementRepo.ListByMap(ctx, placementrepo.ListByMapInput{MapID: input.MapID})
	if err != nil {
		return nil, err
	}

	var siblings []*homestead.Placement
	for _, p := range listOutput.Placements {
		if p.GroupID != placed.GroupID {
			continue
		}
		if p.X == input.X && p.Y == input.Y {
			continue
		}
		siblings = append(siblings, p)
	}
	return siblings, nil
}

func (o *orchestrator) ExpandMap(ctx context.Context, input *ExpandMapInput) (*ExpandMapOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}
	if input.Cost < 0 {
		return nil, errors.InvalidArgument("expansion cost cannot be negative")
	}

	expandOutput, err := o.mapRepo.Expand(ctx, gamemap.ExpandInput{
		MapID:     input.MapID,
		AccountID: input.AccountID,
		Cost:      input.Cost,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Map expanded",
		"map_id", input.MapID,
		"account_id", input.AccountID,
		"cost", input.Cost,
		"width", expandOutput.Map.Width,
		"height", expandOutput.Map.Height,
		"balance", expandOutput.Balance,
	)

	return &ExpandMapOutput{
		Map:        expandOutput.Map,
		Balance:    expandOutput.Balance,
		Experience: expandOutput.Experience,
	}, nil
}
