package auditor

import (
	"encoding/json"

	"github.com/gallerynet/settlement-engine/internal/elastic_search"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/event"
	"github.com/gallerynet/settlement-engine/internal/messenger"
	"go.uber.org/zap"
)

// Auditor turns emitted events into the durable audit log: every event is
// indexed into the audit index and published on the audit exchange, and the
// snapshots it carries keep the listing/auction/ownership/royalty indices
// current.
type Auditor interface {
	Subscribe()
	Handle(msg interface{})
}

type auditor struct {
	elastic   elastic_search.Index
	messenger messenger.MessageService
}

// NewAuditor creates an auditor. messengerService may be nil when no AMQP
// broker is configured.
func NewAuditor(elastic elastic_search.Index, messengerService messenger.MessageService) Auditor {
	return auditor{elastic, messengerService}
}

func (a auditor) Subscribe() {
	for _, eventType := range event.All() {
		event.AddEventListener(eventType, a.Handle)
	}
}

func (a auditor) Handle(msg interface{}) {
	ev, ok := msg.(entity.AuditEvent)
	if !ok {
		zap.L().Warn("Auditor: Unexpected event payload")
		return
	}

	a.elastic.AddIndexRequest(elastic_search.AuditIndex.Get(), ev, elastic_search.AuditCreate)

	if ev.Listing != nil {
		a.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), *ev.Listing, elastic_search.ListingCreate)
	}
	if ev.Auction != nil {
		a.elastic.AddIndexRequest(elastic_search.AuctionIndex.Get(), *ev.Auction, elastic_search.AuctionUpdate)
	}
	if ev.Ownership != nil {
		a.elastic.AddIndexRequest(elastic_search.OwnershipIndex.Get(), *ev.Ownership, elastic_search.OwnershipCreate)
	}
	if ev.Royalty != nil {
		a.elastic.AddIndexRequest(elastic_search.RoyaltyIndex.Get(), *ev.Royalty, elastic_search.RoyaltyCreate)
	}

	a.publish(ev)
	a.elastic.BatchPersist()
}

func (a auditor) publish(ev entity.AuditEvent) {
	if a.messenger == nil {
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Auditor: Failed to marshal audit event")
		return
	}

	if err := a.messenger.SendMessage(messenger.AuditTrail, body, false); err != nil {
		zap.L().With(zap.Error(err), zap.String("event", ev.Id)).Error("Auditor: Failed to publish audit event")
	}
}
