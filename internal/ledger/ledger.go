package ledger

import (
	"sync"
	"time"

	"github.com/gallerynet/settlement-engine/internal/access"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/event"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"go.uber.org/zap"
)

// Ledger is the append-only per-asset ownership history. Records are never
// mutated or deleted; the current owner is the last record.
type Ledger interface {
	RecordTransfer(caller, assetId, newOwner string, timestamp time.Time) error
	GetHistory(assetId string) []entity.OwnershipRecord
	GetCurrentOwner(assetId string) (string, bool)
}

type ledger struct {
	mu      sync.RWMutex
	history map[string][]entity.OwnershipRecord
	access  access.Controller
}

func NewLedger(accessCtrl access.Controller) Ledger {
	return &ledger{history: map[string][]entity.OwnershipRecord{}, access: accessCtrl}
}

// RecordTransfer appends (newOwner, timestamp) to the asset's history.
// Timestamps are supplied by the caller's clock and are not re-ordered.
func (l *ledger) RecordTransfer(caller, assetId, newOwner string, timestamp time.Time) error {
	if err := l.access.RequireRole(access.RoleTransferAuthority, caller); err != nil {
		return err
	}
	if newOwner == "" || assetId == "" {
		return settle.ErrInvalidParameter
	}

	l.mu.Lock()
	previousOwner := entity.UnassignedOwner
	if records := l.history[assetId]; len(records) > 0 {
		previousOwner = records[len(records)-1].Owner
	}

	record := entity.OwnershipRecord{
		AssetId:   assetId,
		Owner:     newOwner,
		Seq:       len(l.history[assetId]),
		Timestamp: timestamp,
	}
	l.history[assetId] = append(l.history[assetId], record)
	l.mu.Unlock()

	zap.L().With(
		zap.String("assetId", assetId),
		zap.String("previousOwner", previousOwner),
		zap.String("newOwner", newOwner),
	).Info("OwnershipLedger: Transfer recorded")

	ev := entity.NewAuditEvent(string(event.OwnershipTransferredEvent), assetId).
		WithPrincipal("previousOwner", previousOwner).
		WithPrincipal("newOwner", newOwner)
	ev.Ownership = &record
	event.EmitEvent(event.OwnershipTransferredEvent, ev)

	return nil
}

func (l *ledger) GetHistory(assetId string) []entity.OwnershipRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]entity.OwnershipRecord, len(l.history[assetId]))
	copy(records, l.history[assetId])

	return records
}

func (l *ledger) GetCurrentOwner(assetId string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := l.history[assetId]
	if len(records) == 0 {
		return "", false
	}

	return records[len(records)-1].Owner, true
}
