package entity

import (
	"crypto/md5"
	"fmt"
	"time"
)

// UnassignedOwner is reported as the previous owner for an asset with an
// empty ownership history.
const UnassignedOwner = "unassigned"

type OwnershipRecord struct {
	AssetId   string    `json:"assetId"`
	Owner     string    `json:"owner"`
	Seq       int       `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
}

func (o OwnershipRecord) Slug() string {
	return CreateOwnershipSlug(o.AssetId, o.Seq)
}

func CreateOwnershipSlug(assetId string, seq int) string {
	data := []byte(fmt.Sprintf("ownership-%s-%d", assetId, seq))
	return fmt.Sprintf("%x", md5.Sum(data))
}
