package royalty

import (
	"testing"

	"github.com/gallerynet/settlement-engine/internal/access"
	"github.com/gallerynet/settlement-engine/internal/payment"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) (Registry, payment.Bank) {
	t.Helper()

	bank := payment.NewBank(payment.NewLogGateway())
	return NewRegistry(access.NewController("admin"), bank), bank
}

func TestSetRule(t *testing.T) {
	r, _ := newRegistry(t)

	require.NoError(t, r.SetRule("admin", "asset-1", "creator", 1000))

	rule, ok := r.GetRule("asset-1")
	require.True(t, ok)
	assert.Equal(t, "creator", rule.Recipient)
	assert.Equal(t, uint64(1000), rule.RateBps)
}

func TestSetRuleOverwrites(t *testing.T) {
	r, _ := newRegistry(t)
	require.NoError(t, r.SetRule("admin", "asset-1", "creator", 1000))

	require.NoError(t, r.SetRule("admin", "asset-1", "estate", 500))

	rule, _ := r.GetRule("asset-1")
	assert.Equal(t, "estate", rule.Recipient)
	assert.Equal(t, uint64(500), rule.RateBps)
}

func TestSetRuleValidation(t *testing.T) {
	r, _ := newRegistry(t)

	assert.ErrorIs(t, r.SetRule("mallory", "asset-1", "creator", 1000), settle.ErrUnauthorized)
	assert.ErrorIs(t, r.SetRule("admin", "asset-1", "creator", 10001), settle.ErrInvalidParameter)
	assert.ErrorIs(t, r.SetRule("admin", "asset-1", "", 1000), settle.ErrInvalidParameter)
	assert.ErrorIs(t, r.SetRule("admin", "", "creator", 1000), settle.ErrInvalidParameter)
}

func TestComputeRoyaltyWithoutRule(t *testing.T) {
	r, _ := newRegistry(t)

	royalty, err := r.ComputeRoyalty("asset-1", 10000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), royalty)
}

func TestComputeRoyalty(t *testing.T) {
	r, _ := newRegistry(t)
	require.NoError(t, r.SetRule("admin", "asset-1", "creator", 1000))

	royalty, err := r.ComputeRoyalty("asset-1", 10000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), royalty)

	// pure and idempotent
	again, err := r.ComputeRoyalty("asset-1", 10000)
	require.NoError(t, err)
	assert.Equal(t, royalty, again)
}

func TestDistribute(t *testing.T) {
	r, bank := newRegistry(t)
	require.NoError(t, r.SetRule("admin", "asset-1", "creator", 1000))
	bank.Deposit("payer", 10000)

	require.NoError(t, r.Distribute("payer", "asset-1", 10000, 10000))
	assert.Equal(t, uint64(1000), bank.BalanceOf("creator"))
	assert.Equal(t, uint64(9000), bank.BalanceOf("payer"))
}

func TestDistributeWithoutRule(t *testing.T) {
	r, bank := newRegistry(t)
	bank.Deposit("payer", 10000)

	assert.ErrorIs(t, r.Distribute("payer", "asset-1", 10000, 10000), settle.ErrRoyaltyNotConfigured)
	assert.Equal(t, uint64(10000), bank.BalanceOf("payer"))
}

func TestDistributeRequiresExactPayment(t *testing.T) {
	r, bank := newRegistry(t)
	require.NoError(t, r.SetRule("admin", "asset-1", "creator", 1000))
	bank.Deposit("payer", 10000)

	assert.ErrorIs(t, r.Distribute("payer", "asset-1", 10000, 9999), settle.ErrInsufficientPayment)
	assert.Equal(t, uint64(0), bank.BalanceOf("creator"))
}
