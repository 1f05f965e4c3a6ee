package elastic_search

import (
	"fmt"

	"github.com/gallerynet/settlement-engine/internal/config"
)

type Indices string

var (
	ListingIndex   Indices = "listing"
	AuctionIndex   Indices = "auction"
	OwnershipIndex Indices = "ownership"
	RoyaltyIndex   Indices = "royalty"
	AuditIndex     Indices = "audit"
)

// Sets the network and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
