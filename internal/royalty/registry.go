package royalty

import (
	"sync"

	"github.com/gallerynet/settlement-engine/internal/access"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/event"
	"github.com/gallerynet/settlement-engine/internal/payment"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"go.uber.org/zap"
)

// Registry holds at most one royalty rule per asset. Absence of a rule means
// zero royalty.
type Registry interface {
	SetRule(caller, assetId, recipient string, rateBps uint64) error
	GetRule(assetId string) (entity.RoyaltyRule, bool)
	ComputeRoyalty(assetId string, saleAmount uint64) (uint64, error)
	Distribute(caller, assetId string, saleAmount, pay uint64) error
}

type registry struct {
	mu     sync.RWMutex
	rules  map[string]entity.RoyaltyRule
	access access.Controller
	bank   payment.Bank
}

func NewRegistry(accessCtrl access.Controller, bank payment.Bank) Registry {
	return &registry{rules: map[string]entity.RoyaltyRule{}, access: accessCtrl, bank: bank}
}

// SetRule overwrites any existing rule for the asset.
func (r *registry) SetRule(caller, assetId, recipient string, rateBps uint64) error {
	if err := r.access.RequireRole(access.RoleAdmin, caller); err != nil {
		return err
	}
	if !settle.ValidBps(rateBps) || recipient == "" || assetId == "" {
		return settle.ErrInvalidParameter
	}

	rule := entity.RoyaltyRule{AssetId: assetId, Recipient: recipient, RateBps: rateBps}

	r.mu.Lock()
	r.rules[assetId] = rule
	r.mu.Unlock()

	zap.L().With(
		zap.String("assetId", assetId),
		zap.String("recipient", recipient),
		zap.Uint64("rateBps", rateBps),
	).Info("RoyaltyRegistry: Rule set")

	ev := entity.NewAuditEvent(string(event.RoyaltySetEvent), assetId).
		WithPrincipal("acting", caller).
		WithPrincipal("recipient", recipient).
		WithAmount("rateBps", rateBps)
	ev.Royalty = &rule
	event.EmitEvent(event.RoyaltySetEvent, ev)

	return nil
}

func (r *registry) GetRule(assetId string) (entity.RoyaltyRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[assetId]
	return rule, ok
}

// ComputeRoyalty is pure. It returns 0 for assets without a rule and guards
// against a corrupted rate producing a royalty above the sale amount.
func (r *registry) ComputeRoyalty(assetId string, saleAmount uint64) (uint64, error) {
	rule, ok := r.GetRule(assetId)
	if !ok {
		return 0, nil
	}

	royalty := settle.Share(saleAmount, rule.RateBps)
	if royalty > saleAmount {
		zap.L().With(
			zap.String("assetId", assetId),
			zap.Uint64("saleAmount", saleAmount),
			zap.Uint64("royalty", royalty),
		).Error("RoyaltyRegistry: Computed royalty exceeds sale amount")
		return 0, settle.ErrInvariantViolation
	}

	return royalty, nil
}

// Distribute pays the asset's royalty out of pay and refunds the remainder
// to the caller. Callers wanting zero-royalty assets must check rule
// existence first and skip the call.
func (r *registry) Distribute(caller, assetId string, saleAmount, pay uint64) error {
	rule, ok := r.GetRule(assetId)
	if !ok {
		return settle.ErrRoyaltyNotConfigured
	}
	if pay != saleAmount {
		return settle.ErrInsufficientPayment
	}

	royalty, err := r.ComputeRoyalty(assetId, saleAmount)
	if err != nil {
		return err
	}

	if err := r.bank.Debit(caller, pay); err != nil {
		return err
	}
	r.bank.Credit(rule.Recipient, royalty)
	r.bank.Credit(caller, pay-royalty)

	event.EmitEvent(event.RoyaltyDistributedEvent, entity.NewAuditEvent(string(event.RoyaltyDistributedEvent), assetId).
		WithPrincipal("payer", caller).
		WithPrincipal("recipient", rule.Recipient).
		WithAmount("saleAmount", saleAmount).
		WithAmount("royalty", royalty))

	return nil
}
