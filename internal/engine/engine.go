package engine

import (
	"sync"
	"time"

	"github.com/gallerynet/settlement-engine/internal/access"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/fees"
	"github.com/gallerynet/settlement-engine/internal/ledger"
	"github.com/gallerynet/settlement-engine/internal/payment"
	"github.com/gallerynet/settlement-engine/internal/registry"
	"github.com/gallerynet/settlement-engine/internal/royalty"
	"github.com/gallerynet/settlement-engine/pkg/settle"
)

// TradeEngine orchestrates direct sales and timed auctions. Every call runs
// to completion under a single mutex, so no two settlements can interleave
// and no payout can observe state mid-settlement.
type TradeEngine interface {
	ListForSale(seller, assetId string, price uint64) error
	CancelListing(seller, assetId string) error
	Buy(buyer, assetId string, pay uint64) error

	StartAuction(seller, assetId string, minPrice uint64, duration time.Duration) (uint64, error)
	PlaceBid(bidder string, auctionId, pay uint64) error
	EndAuction(caller string, auctionId uint64) error

	GetListing(assetId string) (entity.Listing, bool)
	GetAuction(auctionId uint64) (entity.Auction, bool)
}

type tradeEngine struct {
	mu sync.Mutex

	listings     map[string]entity.Listing
	auctions     map[uint64]*entity.Auction
	openAuctions map[string]uint64
	nextAuction  uint64

	access    access.Controller
	bank      payment.Bank
	fees      fees.Schedule
	royalties royalty.Registry
	ownership ledger.Ledger
	artworks  registry.Registry

	principal         string
	escrowAccount     string
	requireRegistered bool

	now func() time.Time
}

func NewTradeEngine(
	accessCtrl access.Controller,
	bank payment.Bank,
	feeSchedule fees.Schedule,
	royalties royalty.Registry,
	ownership ledger.Ledger,
	artworks registry.Registry,
	principal string,
	escrowAccount string,
	requireRegistered bool,
) TradeEngine {
	return &tradeEngine{
		listings:          map[string]entity.Listing{},
		auctions:          map[uint64]*entity.Auction{},
		openAuctions:      map[string]uint64{},
		nextAuction:       1,
		access:            accessCtrl,
		bank:              bank,
		fees:              feeSchedule,
		royalties:         royalties,
		ownership:         ownership,
		artworks:          artworks,
		principal:         principal,
		escrowAccount:     escrowAccount,
		requireRegistered: requireRegistered,
		now:               time.Now,
	}
}

func (e *tradeEngine) GetListing(assetId string) (entity.Listing, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, ok := e.listings[assetId]
	return listing, ok
}

func (e *tradeEngine) GetAuction(auctionId uint64) (entity.Auction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	auction, ok := e.auctions[auctionId]
	if !ok {
		return entity.Auction{}, false
	}

	return *auction, true
}

// canControl reports whether principal is recognised as the asset's
// owner/controller: the current ledger owner once a history exists,
// otherwise any principal holding the lister role (primary listings).
func (e *tradeEngine) canControl(principal, assetId string) bool {
	if owner, ok := e.ownership.GetCurrentOwner(assetId); ok {
		return owner == principal
	}

	return e.access.HasRole(access.RoleLister, principal)
}

func (e *tradeEngine) checkRegistered(assetId string) error {
	if !e.requireRegistered {
		return nil
	}

	registered, err := e.artworks.IsRegistered(assetId)
	if err != nil {
		return err
	}
	if !registered {
		return settle.ErrInvalidParameter
	}

	return nil
}
