package engine

import (
	"time"

	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/event"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"go.uber.org/zap"
)

// StartAuction opens a timed auction and returns its identifier. Identifiers
// are assigned from an owned counter and strictly increase. One open auction
// per asset at a time.
func (e *tradeEngine) StartAuction(seller, assetId string, minPrice uint64, duration time.Duration) (uint64, error) {
	if assetId == "" || minPrice == 0 || duration <= 0 {
		return 0, settle.ErrInvalidParameter
	}
	if err := e.checkRegistered(assetId); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.canControl(seller, assetId) {
		return 0, settle.ErrUnauthorized
	}

	if openId, ok := e.openAuctions[assetId]; ok {
		if auction := e.auctions[openId]; auction != nil && !auction.Ended {
			return 0, settle.ErrInvalidParameter
		}
	}

	now := e.now()
	auction := &entity.Auction{
		Id:        e.nextAuction,
		AssetId:   assetId,
		Seller:    seller,
		MinPrice:  minPrice,
		StartTime: now,
		EndTime:   now.Add(duration),
	}
	e.nextAuction++
	e.auctions[auction.Id] = auction
	e.openAuctions[assetId] = auction.Id

	zap.L().With(
		zap.Uint64("auctionId", auction.Id),
		zap.String("assetId", assetId),
		zap.String("seller", seller),
		zap.Uint64("minPrice", minPrice),
	).Info("TradeEngine: Auction started")

	ev := entity.NewAuditEvent(string(event.AuctionStartedEvent), assetId).
		WithPrincipal("seller", seller).
		WithAmount("minPrice", minPrice)
	ev.AuctionId = auction.Id
	snapshot := *auction
	ev.Auction = &snapshot
	event.EmitEvent(event.AuctionStartedEvent, ev)

	return auction.Id, nil
}

// PlaceBid escrows the bid and refunds the previous highest bidder into
// their withdrawable balance. Ties are rejected: only a strictly greater
// bid stands, first-to-bid at a price wins.
func (e *tradeEngine) PlaceBid(bidder string, auctionId, pay uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	auction, ok := e.auctions[auctionId]
	if !ok {
		return settle.ErrInvalidParameter
	}
	if auction.Ended || !e.now().Before(auction.EndTime) {
		return settle.ErrAuctionClosed
	}
	if pay <= auction.HighestBid || pay < auction.MinPrice {
		return settle.ErrBidTooLow
	}

	if err := e.bank.Debit(bidder, pay); err != nil {
		return err
	}
	e.bank.Credit(e.escrowAccount, pay)

	if auction.HasBids() {
		// Refund lands in the previous bidder's withdrawable balance, so a
		// refusing recipient can never block the new bid.
		if err := e.bank.Transfer(e.escrowAccount, auction.HighestBidder, auction.HighestBid); err != nil {
			e.bank.Debit(e.escrowAccount, pay)
			e.bank.Credit(bidder, pay)
			return settle.ErrInvariantViolation
		}
	}

	auction.HighestBid = pay
	auction.HighestBidder = bidder

	zap.L().With(
		zap.Uint64("auctionId", auctionId),
		zap.String("bidder", bidder),
		zap.Uint64("bid", pay),
	).Info("TradeEngine: Bid placed")

	ev := entity.NewAuditEvent(string(event.BidPlacedEvent), auction.AssetId).
		WithPrincipal("bidder", bidder).
		WithAmount("bid", pay)
	ev.AuctionId = auctionId
	snapshot := *auction
	ev.Auction = &snapshot
	event.EmitEvent(event.BidPlacedEvent, ev)

	return nil
}

// voidOpenAuction ends the asset's open auction without a sale and refunds
// the escrowed highest bid. Called when ownership moves out from under the
// auction seller, a direct purchase being the usual cause. An auction opened
// by the former owner must not settle afterwards. Requires e.mu held.
func (e *tradeEngine) voidOpenAuction(assetId string) {
	openId, ok := e.openAuctions[assetId]
	if !ok {
		return
	}
	auction := e.auctions[openId]
	if auction == nil || auction.Ended {
		return
	}

	auction.Ended = true
	delete(e.openAuctions, assetId)

	if auction.HasBids() {
		if err := e.bank.Transfer(e.escrowAccount, auction.HighestBidder, auction.HighestBid); err != nil {
			zap.L().With(
				zap.Uint64("auctionId", auction.Id),
				zap.String("bidder", auction.HighestBidder),
				zap.Uint64("bid", auction.HighestBid),
				zap.Error(err),
			).Error("TradeEngine: Failed to refund escrowed bid")
		}
	}

	zap.L().With(
		zap.Uint64("auctionId", auction.Id),
		zap.String("assetId", assetId),
	).Info("TradeEngine: Auction voided, seller no longer owns asset")

	ev := entity.NewAuditEvent(string(event.AuctionEndedEvent), assetId).
		WithPrincipal("seller", auction.Seller)
	ev.AuctionId = auction.Id
	snapshot := *auction
	ev.Auction = &snapshot
	event.EmitEvent(event.AuctionEndedEvent, ev)
}

// EndAuction closes an auction: anyone may end it once the window has
// elapsed, and the seller may end it early once at least one bid stands.
// With no bids the auction ends without a sale; otherwise the highest bid
// settles exactly like a direct purchase.
func (e *tradeEngine) EndAuction(caller string, auctionId uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	auction, ok := e.auctions[auctionId]
	if !ok {
		return settle.ErrInvalidParameter
	}
	if auction.Ended {
		return settle.ErrAlreadyEnded
	}

	now := e.now()
	timedOut := !now.Before(auction.EndTime)
	sellerEarlyEnd := caller == auction.Seller && auction.HasBids()
	if !timedOut && !sellerEarlyEnd {
		return settle.ErrAuctionNotReady
	}

	if !auction.HasBids() {
		auction.Ended = true
		delete(e.openAuctions, auction.AssetId)

		zap.L().With(
			zap.Uint64("auctionId", auctionId),
			zap.String("assetId", auction.AssetId),
		).Info("TradeEngine: Auction ended without bids")

		ev := entity.NewAuditEvent(string(event.AuctionEndedEvent), auction.AssetId).
			WithPrincipal("seller", auction.Seller)
		ev.AuctionId = auctionId
		snapshot := *auction
		ev.Auction = &snapshot
		event.EmitEvent(event.AuctionEndedEvent, ev)

		return nil
	}

	// The seller must still own the asset. If ownership moved since the
	// auction opened the auction is void: refund the bid, no sale.
	if owner, hasOwner := e.ownership.GetCurrentOwner(auction.AssetId); hasOwner && owner != auction.Seller {
		e.voidOpenAuction(auction.AssetId)
		return nil
	}

	s, err := e.computeShares(auction.AssetId, auction.Seller, auction.HighestBidder, auction.HighestBid)
	if err != nil {
		return err
	}

	// The winning bid is already escrowed.
	if err := e.bank.Debit(e.escrowAccount, auction.HighestBid); err != nil {
		return settle.ErrInvariantViolation
	}

	if err := e.ownership.RecordTransfer(e.principal, auction.AssetId, auction.HighestBidder, now); err != nil {
		e.bank.Credit(e.escrowAccount, auction.HighestBid)
		return err
	}

	auction.Ended = true
	delete(e.openAuctions, auction.AssetId)

	// A listing left behind by the previous owner is stale once ownership
	// moves.
	staleListing, hadListing := e.listings[auction.AssetId]
	delete(e.listings, auction.AssetId)

	e.payout(s)

	zap.L().With(
		zap.Uint64("auctionId", auctionId),
		zap.String("assetId", auction.AssetId),
		zap.String("winner", auction.HighestBidder),
		zap.Uint64("amount", auction.HighestBid),
		zap.Uint64("fee", s.fee),
		zap.Uint64("royalty", s.royalty),
	).Info("TradeEngine: Auction settled")

	ev := entity.NewAuditEvent(string(event.AuctionEndedEvent), auction.AssetId).
		WithPrincipal("seller", auction.Seller).
		WithPrincipal("winner", auction.HighestBidder).
		WithAmount("amount", auction.HighestBid).
		WithAmount("fee", s.fee).
		WithAmount("royalty", s.royalty).
		WithAmount("sellerShare", s.sellerShare)
	ev.AuctionId = auctionId
	snapshot := *auction
	ev.Auction = &snapshot
	if hadListing {
		staleListing.Active = false
		ev.Listing = &staleListing
	}
	event.EmitEvent(event.AuctionEndedEvent, ev)

	return nil
}
