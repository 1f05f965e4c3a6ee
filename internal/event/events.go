package event

type Type string

const (
	ListingCreatedEvent       Type = "ListingCreatedEvent"
	ListingCancelledEvent     Type = "ListingCancelledEvent"
	PurchaseCompletedEvent    Type = "PurchaseCompletedEvent"
	AuctionStartedEvent       Type = "AuctionStartedEvent"
	BidPlacedEvent            Type = "BidPlacedEvent"
	AuctionEndedEvent         Type = "AuctionEndedEvent"
	FeeRateChangedEvent       Type = "FeeRateChangedEvent"
	FeeCollectedEvent         Type = "FeeCollectedEvent"
	RoyaltySetEvent           Type = "RoyaltySetEvent"
	RoyaltyDistributedEvent   Type = "RoyaltyDistributedEvent"
	OwnershipTransferredEvent Type = "OwnershipTransferredEvent"
	RoleGrantedEvent          Type = "RoleGrantedEvent"
	RoleRevokedEvent          Type = "RoleRevokedEvent"
)

// All lists every event type the engine emits.
func All() []Type {
	return []Type{
		ListingCreatedEvent,
		ListingCancelledEvent,
		PurchaseCompletedEvent,
		AuctionStartedEvent,
		BidPlacedEvent,
		AuctionEndedEvent,
		FeeRateChangedEvent,
		FeeCollectedEvent,
		RoyaltySetEvent,
		RoyaltyDistributedEvent,
		OwnershipTransferredEvent,
		RoleGrantedEvent,
		RoleRevokedEvent,
	}
}
