package entity

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

type Auction struct {
	Id            uint64    `json:"id"`
	AssetId       string    `json:"assetId"`
	Seller        string    `json:"seller"`
	MinPrice      uint64    `json:"minPrice"`
	HighestBid    uint64    `json:"highestBid"`
	HighestBidder string    `json:"highestBidder"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Ended         bool      `json:"ended"`
}

// HasBids reports whether at least one bid has been accepted.
func (a Auction) HasBids() bool {
	return a.HighestBidder != ""
}

func (a Auction) Slug() string {
	return CreateAuctionSlug(a.Id)
}

func CreateAuctionSlug(auctionId uint64) string {
	return slug.Make(fmt.Sprintf("auction-%d", auctionId))
}
