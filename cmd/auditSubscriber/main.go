package main

import (
	"encoding/json"

	"github.com/gallerynet/settlement-engine/internal/config"
	definitions "github.com/gallerynet/settlement-engine/internal/config/di"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/messenger"
	"go.uber.org/zap"
)

func main() {
	config.Init()

	container, err := definitions.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	messageService, _ := container.Get("messenger").(messenger.MessageService)
	if messageService == nil {
		zap.L().Fatal("AMQP_URI is required to subscribe to the audit trail")
	}

	zap.L().Info("Subscribing to audit trail")

	if err := messageService.ConsumeMessages(messenger.AuditTrail, handleAuditMessage); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to consume audit trail")
	}
}

func handleAuditMessage(msg string) {
	var ev entity.AuditEvent
	if err := json.Unmarshal([]byte(msg), &ev); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to read audit message")
		return
	}

	zap.L().With(
		zap.String("id", ev.Id),
		zap.String("type", ev.Type),
		zap.String("assetId", ev.AssetId),
		zap.Uint64("auctionId", ev.AuctionId),
		zap.Any("principals", ev.Principals),
		zap.Any("amounts", ev.Amounts),
	).Info("Audit event")
}
