package fees

import (
	"sync"

	"github.com/gallerynet/settlement-engine/internal/access"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/event"
	"github.com/gallerynet/settlement-engine/internal/payment"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"go.uber.org/zap"
)

// Schedule holds the marketplace's single fee rate in basis points and
// collects the marketplace cut of a sale.
type Schedule interface {
	SetFeeRate(caller string, rateBps uint64) error
	FeeRate() uint64
	Beneficiary() string
	ComputeFee(amount uint64) uint64
	CollectFee(caller string, amount, pay uint64) error
}

type schedule struct {
	mu          sync.RWMutex
	rateBps     uint64
	beneficiary string
	access      access.Controller
	bank        payment.Bank
}

func NewSchedule(accessCtrl access.Controller, bank payment.Bank, beneficiary string, rateBps uint64) (Schedule, error) {
	if !settle.ValidBps(rateBps) || beneficiary == "" {
		return nil, settle.ErrInvalidParameter
	}

	return &schedule{rateBps: rateBps, beneficiary: beneficiary, access: accessCtrl, bank: bank}, nil
}

func (s *schedule) SetFeeRate(caller string, rateBps uint64) error {
	if err := s.access.RequireRole(access.RoleAdmin, caller); err != nil {
		return err
	}
	if !settle.ValidBps(rateBps) {
		return settle.ErrInvalidParameter
	}

	s.mu.Lock()
	previous := s.rateBps
	s.rateBps = rateBps
	s.mu.Unlock()

	zap.L().With(
		zap.Uint64("previous", previous),
		zap.Uint64("rateBps", rateBps),
	).Info("FeeSchedule: Rate changed")

	event.EmitEvent(event.FeeRateChangedEvent, entity.NewAuditEvent(string(event.FeeRateChangedEvent), "").
		WithPrincipal("acting", caller).
		WithAmount("previousBps", previous).
		WithAmount("rateBps", rateBps))

	return nil
}

func (s *schedule) FeeRate() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rateBps
}

func (s *schedule) Beneficiary() string {
	return s.beneficiary
}

func (s *schedule) ComputeFee(amount uint64) uint64 {
	return settle.Share(amount, s.FeeRate())
}

// CollectFee takes the fee on amount out of pay, credits it to the
// beneficiary and refunds the remainder to the caller.
func (s *schedule) CollectFee(caller string, amount, pay uint64) error {
	fee := s.ComputeFee(amount)
	if pay < fee {
		return settle.ErrInsufficientPayment
	}

	if err := s.bank.Debit(caller, pay); err != nil {
		return err
	}
	s.bank.Credit(s.beneficiary, fee)
	s.bank.Credit(caller, pay-fee)

	event.EmitEvent(event.FeeCollectedEvent, entity.NewAuditEvent(string(event.FeeCollectedEvent), "").
		WithPrincipal("payer", caller).
		WithPrincipal("beneficiary", s.beneficiary).
		WithAmount("amount", amount).
		WithAmount("fee", fee))

	return nil
}
