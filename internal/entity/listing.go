package entity

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

type Listing struct {
	AssetId  string    `json:"assetId"`
	Seller   string    `json:"seller"`
	Price    uint64    `json:"price"`
	Active   bool      `json:"active"`
	ListedAt time.Time `json:"listedAt"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.AssetId)
}

func CreateListingSlug(assetId string) string {
	return slug.Make(fmt.Sprintf("listing-%s", assetId))
}
