package entity

import (
	"time"

	"github.com/nu7hatch/gouuid"
)

// AuditEvent is the durable record of a single settlement-engine event. The
// audit index is the canonical log for off-system reconciliation, so every
// event carries the identifiers, principals and amounts involved.
type AuditEvent struct {
	Id         string            `json:"id"`
	Time       time.Time         `json:"time"`
	Type       string            `json:"type"`
	AssetId    string            `json:"assetId,omitempty"`
	AuctionId  uint64            `json:"auctionId,omitempty"`
	Principals map[string]string `json:"principals,omitempty"`
	Amounts    map[string]uint64 `json:"amounts,omitempty"`

	// Snapshots for the domain indices. Not part of the audit row itself.
	Listing   *Listing         `json:"-"`
	Auction   *Auction         `json:"-"`
	Ownership *OwnershipRecord `json:"-"`
	Royalty   *RoyaltyRule     `json:"-"`
}

func (e AuditEvent) Slug() string {
	return e.Id
}

func NewAuditEvent(eventType, assetId string) AuditEvent {
	u, _ := uuid.NewV4()

	return AuditEvent{
		Id:         u.String(),
		Time:       time.Now(),
		Type:       eventType,
		AssetId:    assetId,
		Principals: map[string]string{},
		Amounts:    map[string]uint64{},
	}
}

func (e AuditEvent) WithPrincipal(name, principal string) AuditEvent {
	e.Principals[name] = principal
	return e
}

func (e AuditEvent) WithAmount(name string, amount uint64) AuditEvent {
	e.Amounts[name] = amount
	return e
}
