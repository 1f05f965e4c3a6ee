package engine

import (
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/event"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"go.uber.org/zap"
)

// settlement is the computed split of a single sale. The shares always sum
// to exactly the sale price; the integer-division residue stays with the
// seller.
type settlement struct {
	assetId          string
	seller           string
	buyer            string
	price            uint64
	fee              uint64
	royalty          uint64
	royaltyRecipient string
	sellerShare      uint64
}

func (e *tradeEngine) computeShares(assetId, seller, buyer string, price uint64) (*settlement, error) {
	royaltyAmount, err := e.royalties.ComputeRoyalty(assetId, price)
	if err != nil {
		return nil, err
	}

	fee := e.fees.ComputeFee(price)
	if royaltyAmount > price || fee > price-royaltyAmount {
		zap.L().With(
			zap.String("assetId", assetId),
			zap.Uint64("price", price),
			zap.Uint64("fee", fee),
			zap.Uint64("royalty", royaltyAmount),
		).Error("TradeEngine: Fee and royalty exceed sale amount")
		return nil, settle.ErrInvariantViolation
	}

	s := &settlement{
		assetId:     assetId,
		seller:      seller,
		buyer:       buyer,
		price:       price,
		fee:         fee,
		royalty:     royaltyAmount,
		sellerShare: price - fee - royaltyAmount,
	}

	if rule, ok := e.royalties.GetRule(assetId); ok {
		s.royaltyRecipient = rule.Recipient
	}

	return s, nil
}

// payout credits every party's withdrawable balance. Credits cannot fail and
// cannot call back into the engine, so this runs strictly after the listing
// or auction state has been cleared.
func (e *tradeEngine) payout(s *settlement) {
	e.bank.Credit(s.seller, s.sellerShare)
	e.bank.Credit(e.fees.Beneficiary(), s.fee)
	if s.royalty > 0 {
		e.bank.Credit(s.royaltyRecipient, s.royalty)
	}

	event.EmitEvent(event.FeeCollectedEvent, entity.NewAuditEvent(string(event.FeeCollectedEvent), s.assetId).
		WithPrincipal("payer", s.buyer).
		WithPrincipal("beneficiary", e.fees.Beneficiary()).
		WithAmount("amount", s.price).
		WithAmount("fee", s.fee))

	if s.royalty > 0 {
		event.EmitEvent(event.RoyaltyDistributedEvent, entity.NewAuditEvent(string(event.RoyaltyDistributedEvent), s.assetId).
			WithPrincipal("payer", s.buyer).
			WithPrincipal("recipient", s.royaltyRecipient).
			WithAmount("saleAmount", s.price).
			WithAmount("royalty", s.royalty))
	}
}
