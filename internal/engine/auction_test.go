package engine

import (
	"testing"
	"time"

	"github.com/gallerynet/settlement-engine/internal/access"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAuction(t *testing.T) {
	f := newFixture(t, 250, false)

	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	auction, ok := f.engine.GetAuction(id)
	require.True(t, ok)
	assert.Equal(t, "seller", auction.Seller)
	assert.Equal(t, uint64(100), auction.MinPrice)
	assert.Equal(t, uint64(0), auction.HighestBid)
	assert.False(t, auction.HasBids())
	assert.Equal(t, f.clock.Add(time.Hour), auction.EndTime)
}

func TestStartAuctionValidation(t *testing.T) {
	f := newFixture(t, 250, false)

	_, err := f.engine.StartAuction("seller", "asset-1", 0, time.Hour)
	assert.ErrorIs(t, err, settle.ErrInvalidParameter)

	_, err = f.engine.StartAuction("seller", "asset-1", 100, 0)
	assert.ErrorIs(t, err, settle.ErrInvalidParameter)

	_, err = f.engine.StartAuction("stranger", "asset-1", 100, time.Hour)
	assert.ErrorIs(t, err, settle.ErrUnauthorized)
}

func TestStartAuctionIdsAreMonotonic(t *testing.T) {
	f := newFixture(t, 250, false)

	first, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)
	second, err := f.engine.StartAuction("seller", "asset-2", 100, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, first+1, second)
}

func TestStartAuctionRejectsSecondOpenAuctionForAsset(t *testing.T) {
	f := newFixture(t, 250, false)
	_, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	_, err = f.engine.StartAuction("seller", "asset-1", 200, time.Hour)
	assert.ErrorIs(t, err, settle.ErrInvalidParameter)
}

// Scenario C: bids 100, 150, 150 against minPrice 100.
func TestBidSequence(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	f.bank.Deposit("bidder-a", 100)
	f.bank.Deposit("bidder-b", 150)
	f.bank.Deposit("bidder-c", 150)

	require.NoError(t, f.engine.PlaceBid("bidder-a", id, 100))
	require.NoError(t, f.engine.PlaceBid("bidder-b", id, 150))
	assert.ErrorIs(t, f.engine.PlaceBid("bidder-c", id, 150), settle.ErrBidTooLow)

	auction, _ := f.engine.GetAuction(id)
	assert.Equal(t, uint64(150), auction.HighestBid)
	assert.Equal(t, "bidder-b", auction.HighestBidder)

	// outbid refund landed in bidder-a's withdrawable balance
	assert.Equal(t, uint64(100), f.bank.BalanceOf("bidder-a"))
	assert.Equal(t, uint64(0), f.bank.BalanceOf("bidder-b"))
	assert.Equal(t, uint64(150), f.bank.BalanceOf("auction-escrow"))
}

func TestBidBelowMinPrice(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)
	f.bank.Deposit("bidder", 99)

	assert.ErrorIs(t, f.engine.PlaceBid("bidder", id, 99), settle.ErrBidTooLow)
}

func TestBidAfterEndTime(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)
	f.bank.Deposit("bidder", 200)

	f.advance(time.Hour)

	assert.ErrorIs(t, f.engine.PlaceBid("bidder", id, 200), settle.ErrAuctionClosed)
	assert.Equal(t, uint64(200), f.bank.BalanceOf("bidder"))
}

func TestBidOnUnknownAuction(t *testing.T) {
	f := newFixture(t, 250, false)
	f.bank.Deposit("bidder", 200)

	assert.ErrorIs(t, f.engine.PlaceBid("bidder", 42, 200), settle.ErrInvalidParameter)
}

func TestBidInsufficientFunds(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)
	f.bank.Deposit("bidder", 50)

	assert.ErrorIs(t, f.engine.PlaceBid("bidder", id, 150), settle.ErrInsufficientFunds)
}

func TestEndAuctionSettlesHighestBid(t *testing.T) {
	f := newFixture(t, 250, false)
	require.NoError(t, f.royalties.SetRule("admin", "asset-1", "creator", 1000))
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	f.bank.Deposit("bidder", 10000)
	require.NoError(t, f.engine.PlaceBid("bidder", id, 10000))

	f.advance(2 * time.Hour)
	require.NoError(t, f.engine.EndAuction("anyone", id))

	assert.Equal(t, uint64(8750), f.bank.BalanceOf("seller"))
	assert.Equal(t, uint64(250), f.bank.BalanceOf("treasury"))
	assert.Equal(t, uint64(1000), f.bank.BalanceOf("creator"))
	assert.Equal(t, uint64(0), f.bank.BalanceOf("auction-escrow"))

	owner, _ := f.ownership.GetCurrentOwner("asset-1")
	assert.Equal(t, "bidder", owner)

	auction, _ := f.engine.GetAuction(id)
	assert.True(t, auction.Ended)
}

func TestEndAuctionEarlyBySeller(t *testing.T) {
	f := newFixture(t, 0, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	f.bank.Deposit("bidder", 500)
	require.NoError(t, f.engine.PlaceBid("bidder", id, 500))

	// well before endTime
	require.NoError(t, f.engine.EndAuction("seller", id))

	owner, _ := f.ownership.GetCurrentOwner("asset-1")
	assert.Equal(t, "bidder", owner)
}

func TestEndAuctionNotReady(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	// no bids: not even the seller can end early
	assert.ErrorIs(t, f.engine.EndAuction("seller", id), settle.ErrAuctionNotReady)
	assert.ErrorIs(t, f.engine.EndAuction("anyone", id), settle.ErrAuctionNotReady)
}

func TestEndAuctionWithoutBids(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	f.advance(time.Hour)
	require.NoError(t, f.engine.EndAuction("anyone", id))

	auction, _ := f.engine.GetAuction(id)
	assert.True(t, auction.Ended)
	assert.Empty(t, f.ownership.GetHistory("asset-1"))
}

func TestEndAuctionTwice(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	f.bank.Deposit("bidder", 500)
	require.NoError(t, f.engine.PlaceBid("bidder", id, 500))
	f.advance(2 * time.Hour)

	require.NoError(t, f.engine.EndAuction("anyone", id))
	assert.ErrorIs(t, f.engine.EndAuction("anyone", id), settle.ErrAlreadyEnded)

	// no duplicate settlement or ownership record
	assert.Len(t, f.ownership.GetHistory("asset-1"), 1)
}

func TestAuctionRemainsOpenPastEndTimeUntilEnded(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	f.advance(24 * time.Hour)

	auction, _ := f.engine.GetAuction(id)
	assert.False(t, auction.Ended)

	require.NoError(t, f.engine.EndAuction("anyone", id))
}

func TestBuyVoidsOpenAuction(t *testing.T) {
	f := newFixture(t, 250, false)
	require.NoError(t, f.engine.ListForSale("seller", "asset-1", 1000))
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	f.bank.Deposit("bidder", 500)
	require.NoError(t, f.engine.PlaceBid("bidder", id, 500))

	f.bank.Deposit("buyer", 1000)
	require.NoError(t, f.engine.Buy("buyer", "asset-1", 1000))

	// the auction died with the listing: no second settlement
	f.advance(2 * time.Hour)
	assert.ErrorIs(t, f.engine.EndAuction("anyone", id), settle.ErrAlreadyEnded)

	owner, _ := f.ownership.GetCurrentOwner("asset-1")
	assert.Equal(t, "buyer", owner)
	assert.Len(t, f.ownership.GetHistory("asset-1"), 1)

	// bidder made whole from escrow, seller paid once
	assert.Equal(t, uint64(500), f.bank.BalanceOf("bidder"))
	assert.Equal(t, uint64(0), f.bank.BalanceOf("auction-escrow"))
	assert.Equal(t, uint64(975), f.bank.BalanceOf("seller"))
	assert.Equal(t, uint64(25), f.bank.BalanceOf("treasury"))

	auction, _ := f.engine.GetAuction(id)
	assert.True(t, auction.Ended)
}

func TestEndAuctionVoidsWhenSellerNoLongerOwns(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	f.bank.Deposit("bidder", 500)
	require.NoError(t, f.engine.PlaceBid("bidder", id, 500))

	// ownership moves outside the engine while the auction is open
	require.NoError(t, f.access.GrantRole("admin", access.RoleTransferAuthority, "custodian"))
	require.NoError(t, f.ownership.RecordTransfer("custodian", "asset-1", "collector", f.clock))

	f.advance(2 * time.Hour)
	require.NoError(t, f.engine.EndAuction("anyone", id))

	// voided: refund instead of settlement
	owner, _ := f.ownership.GetCurrentOwner("asset-1")
	assert.Equal(t, "collector", owner)
	assert.Len(t, f.ownership.GetHistory("asset-1"), 1)
	assert.Equal(t, uint64(500), f.bank.BalanceOf("bidder"))
	assert.Equal(t, uint64(0), f.bank.BalanceOf("auction-escrow"))
	assert.Equal(t, uint64(0), f.bank.BalanceOf("seller"))

	auction, _ := f.engine.GetAuction(id)
	assert.True(t, auction.Ended)
	assert.ErrorIs(t, f.engine.EndAuction("anyone", id), settle.ErrAlreadyEnded)
}

func TestHighestBidIsNonDecreasing(t *testing.T) {
	f := newFixture(t, 250, false)
	id, err := f.engine.StartAuction("seller", "asset-1", 100, time.Hour)
	require.NoError(t, err)

	bids := []uint64{100, 90, 150, 150, 149, 151}
	accepted := []bool{true, false, true, false, false, true}

	previous := uint64(0)
	for i, bid := range bids {
		bidder := "bidder"
		f.bank.Deposit(bidder, bid)

		err := f.engine.PlaceBid(bidder, id, bid)
		if accepted[i] {
			require.NoError(t, err, "bid %d", bid)
		} else {
			require.ErrorIs(t, err, settle.ErrBidTooLow, "bid %d", bid)
		}

		auction, _ := f.engine.GetAuction(id)
		assert.GreaterOrEqual(t, auction.HighestBid, previous)
		previous = auction.HighestBid
	}
}
