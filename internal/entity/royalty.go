package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

type RoyaltyRule struct {
	AssetId   string `json:"assetId"`
	Recipient string `json:"recipient"`
	RateBps   uint64 `json:"rateBps"`
}

func (r RoyaltyRule) Slug() string {
	return CreateRoyaltySlug(r.AssetId)
}

func CreateRoyaltySlug(assetId string) string {
	return slug.Make(fmt.Sprintf("royalty-%s", assetId))
}
