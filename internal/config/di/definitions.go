package di

import (
	"github.com/gallerynet/settlement-engine/internal/access"
	"github.com/gallerynet/settlement-engine/internal/api"
	"github.com/gallerynet/settlement-engine/internal/auditor"
	"github.com/gallerynet/settlement-engine/internal/config"
	"github.com/gallerynet/settlement-engine/internal/elastic_search"
	"github.com/gallerynet/settlement-engine/internal/engine"
	"github.com/gallerynet/settlement-engine/internal/fees"
	"github.com/gallerynet/settlement-engine/internal/ledger"
	"github.com/gallerynet/settlement-engine/internal/messenger"
	"github.com/gallerynet/settlement-engine/internal/payment"
	"github.com/gallerynet/settlement-engine/internal/registry"
	"github.com/gallerynet/settlement-engine/internal/repository"
	"github.com/gallerynet/settlement-engine/internal/royalty"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "access",
		Build: func(ctn di.Container) (interface{}, error) {
			ctrl := access.NewController(config.Get().AdminPrincipals...)
			ctrl.GrantOnInit(access.RoleTransferAuthority, config.Get().EnginePrincipal)

			return ctrl, nil
		},
	},
	{
		Name: "bank",
		Build: func(ctn di.Container) (interface{}, error) {
			return payment.NewBank(payment.NewLogGateway()), nil
		},
	},
	{
		Name: "fees",
		Build: func(ctn di.Container) (interface{}, error) {
			schedule, err := fees.NewSchedule(
				ctn.Get("access").(access.Controller),
				ctn.Get("bank").(payment.Bank),
				config.Get().FeeBeneficiary,
				config.Get().DefaultFeeBps,
			)
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Invalid fee configuration")
			}

			return schedule, nil
		},
	},
	{
		Name: "royalty",
		Build: func(ctn di.Container) (interface{}, error) {
			return royalty.NewRegistry(
				ctn.Get("access").(access.Controller),
				ctn.Get("bank").(payment.Bank),
			), nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			return ledger.NewLedger(ctn.Get("access").(access.Controller)), nil
		},
	},
	{
		Name: "artwork.registry",
		Build: func(ctn di.Container) (interface{}, error) {
			if config.Get().Registry.Url == "" {
				return registry.NewMemoryRegistry(), nil
			}

			retryClient := retryablehttp.NewClient()
			retryClient.Logger = nil
			retryClient.RetryMax = 3

			return registry.NewHttpRegistry(config.Get().Registry.Url, retryClient), nil
		},
	},
	{
		Name: "engine",
		Build: func(ctn di.Container) (interface{}, error) {
			return engine.NewTradeEngine(
				ctn.Get("access").(access.Controller),
				ctn.Get("bank").(payment.Bank),
				ctn.Get("fees").(fees.Schedule),
				ctn.Get("royalty").(royalty.Registry),
				ctn.Get("ledger").(ledger.Ledger),
				ctn.Get("artwork.registry").(registry.Registry),
				config.Get().EnginePrincipal,
				config.Get().EscrowAccount,
				config.Get().RequireRegisteredAssets,
			), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			if config.Get().Amqp.Uri == "" {
				return (messenger.MessageService)(nil), nil
			}

			return messenger.NewMessenger(config.Get().Amqp.Uri), nil
		},
	},
	{
		Name: "auditor",
		Build: func(ctn di.Container) (interface{}, error) {
			messengerService, _ := ctn.Get("messenger").(messenger.MessageService)

			return auditor.NewAuditor(
				ctn.Get("elastic").(elastic_search.Index),
				messengerService,
			), nil
		},
	},
	{
		Name: "listing.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewListingRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "auction.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewAuctionRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "ownership.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewOwnershipRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "audit.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewAuditRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "api.server",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("engine").(engine.TradeEngine),
				ctn.Get("fees").(fees.Schedule),
				ctn.Get("royalty").(royalty.Registry),
				ctn.Get("ledger").(ledger.Ledger),
				ctn.Get("bank").(payment.Bank),
				ctn.Get("audit.repo").(repository.AuditRepository),
			), nil
		},
	},
}

func NewContainer() (di.Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return builder.Build(), nil
}
