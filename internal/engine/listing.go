package engine

import (
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/event"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"go.uber.org/zap"
)

// ListForSale puts an asset up for direct purchase. Re-listing an already
// listed asset overwrites the prior listing (last writer wins).
func (e *tradeEngine) ListForSale(seller, assetId string, price uint64) error {
	if assetId == "" || price == 0 {
		return settle.ErrInvalidParameter
	}
	if err := e.checkRegistered(assetId); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.canControl(seller, assetId) {
		return settle.ErrUnauthorized
	}

	listing := entity.Listing{
		AssetId:  assetId,
		Seller:   seller,
		Price:    price,
		Active:   true,
		ListedAt: e.now(),
	}
	e.listings[assetId] = listing

	zap.L().With(
		zap.String("assetId", assetId),
		zap.String("seller", seller),
		zap.Uint64("price", price),
	).Info("TradeEngine: Listing created")

	ev := entity.NewAuditEvent(string(event.ListingCreatedEvent), assetId).
		WithPrincipal("seller", seller).
		WithAmount("price", price)
	ev.Listing = &listing
	event.EmitEvent(event.ListingCreatedEvent, ev)

	return nil
}

func (e *tradeEngine) CancelListing(seller, assetId string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, ok := e.listings[assetId]
	if !ok || !listing.Active {
		return settle.ErrNotForSale
	}
	if listing.Seller != seller {
		return settle.ErrUnauthorized
	}

	delete(e.listings, assetId)

	zap.L().With(
		zap.String("assetId", assetId),
		zap.String("seller", seller),
	).Info("TradeEngine: Listing cancelled")

	listing.Active = false
	ev := entity.NewAuditEvent(string(event.ListingCancelledEvent), assetId).
		WithPrincipal("seller", seller)
	ev.Listing = &listing
	event.EmitEvent(event.ListingCancelledEvent, ev)

	return nil
}

// Buy settles a direct purchase as a single atomic unit: compute the split,
// take the buyer's funds, record ownership, clear the listing, then credit
// every party. Any failure before the listing is cleared leaves no state
// change behind.
func (e *tradeEngine) Buy(buyer, assetId string, pay uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, ok := e.listings[assetId]
	if !ok || !listing.Active {
		return settle.ErrNotForSale
	}
	if pay < listing.Price {
		return settle.ErrInsufficientPayment
	}

	s, err := e.computeShares(assetId, listing.Seller, buyer, listing.Price)
	if err != nil {
		return err
	}

	if err := e.bank.Debit(buyer, pay); err != nil {
		return err
	}

	if err := e.ownership.RecordTransfer(e.principal, assetId, buyer, e.now()); err != nil {
		e.bank.Credit(buyer, pay)
		return err
	}

	delete(e.listings, assetId)
	e.voidOpenAuction(assetId)

	if pay > listing.Price {
		e.bank.Credit(buyer, pay-listing.Price)
	}
	e.payout(s)

	zap.L().With(
		zap.String("assetId", assetId),
		zap.String("seller", listing.Seller),
		zap.String("buyer", buyer),
		zap.Uint64("price", listing.Price),
		zap.Uint64("fee", s.fee),
		zap.Uint64("royalty", s.royalty),
	).Info("TradeEngine: Purchase completed")

	listing.Active = false
	ev := entity.NewAuditEvent(string(event.PurchaseCompletedEvent), assetId).
		WithPrincipal("seller", listing.Seller).
		WithPrincipal("buyer", buyer).
		WithAmount("price", listing.Price).
		WithAmount("fee", s.fee).
		WithAmount("royalty", s.royalty).
		WithAmount("sellerShare", s.sellerShare)
	ev.Listing = &listing
	event.EmitEvent(event.PurchaseCompletedEvent, ev)

	return nil
}
