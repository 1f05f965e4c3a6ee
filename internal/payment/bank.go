package payment

import (
	"sync"

	"github.com/gallerynet/settlement-engine/pkg/settle"
	"go.uber.org/zap"
)

// Bank holds a withdrawable balance per principal. Settlement never pushes
// value directly to a recipient; it credits a balance here and the recipient
// pulls the funds out via Withdraw. A failed outbound transfer therefore
// cannot block a settlement or a bid refund.
type Bank interface {
	Deposit(principal string, amount uint64)
	Credit(principal string, amount uint64)
	Debit(principal string, amount uint64) error
	Transfer(from, to string, amount uint64) error
	BalanceOf(principal string) uint64
	Withdraw(principal string, amount uint64) error
}

type bank struct {
	mu       sync.Mutex
	balances map[string]uint64
	gateway  Gateway
}

func NewBank(gateway Gateway) Bank {
	return &bank{balances: map[string]uint64{}, gateway: gateway}
}

func (b *bank) Deposit(principal string, amount uint64) {
	b.Credit(principal, amount)

	zap.L().With(
		zap.String("principal", principal),
		zap.Uint64("amount", amount),
	).Debug("Bank: Deposit")
}

func (b *bank) Credit(principal string, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.balances[principal] += amount
}

func (b *bank) Debit(principal string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.debit(principal, amount)
}

func (b *bank) Transfer(from, to string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.debit(from, amount); err != nil {
		return err
	}
	b.balances[to] += amount

	return nil
}

func (b *bank) BalanceOf(principal string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.balances[principal]
}

func (b *bank) Withdraw(principal string, amount uint64) error {
	if err := b.Debit(principal, amount); err != nil {
		return err
	}

	if err := b.gateway.Transfer(principal, amount); err != nil {
		b.Credit(principal, amount)
		zap.L().With(
			zap.String("principal", principal),
			zap.Uint64("amount", amount),
			zap.Error(err),
		).Error("Bank: Withdrawal transfer failed")
		return err
	}

	return nil
}

// debit requires b.mu to be held.
func (b *bank) debit(principal string, amount uint64) error {
	if b.balances[principal] < amount {
		return settle.ErrInsufficientFunds
	}
	b.balances[principal] -= amount

	return nil
}
