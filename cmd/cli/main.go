package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gallerynet/settlement-engine/internal/config"
	definitions "github.com/gallerynet/settlement-engine/internal/config/di"
	"github.com/gallerynet/settlement-engine/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	listingRepo   repository.ListingRepository
	auctionRepo   repository.AuctionRepository
	ownershipRepo repository.OwnershipRepository
	auditRepo     repository.AuditRepository
)

func main() {
	config.Init()

	container, err := definitions.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	listingRepo = container.Get("listing.repo").(repository.ListingRepository)
	auctionRepo = container.Get("auction.repo").(repository.AuctionRepository)
	ownershipRepo = container.Get("ownership.repo").(repository.OwnershipRepository)
	auditRepo = container.Get("audit.repo").(repository.AuditRepository)

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "listings",
				Usage:  "Show active listings",
				Action: showListings,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: 20, Usage: "Max listings to return"},
					&cli.IntFlag{Name: "from", Value: 0, Usage: "Offset into the result set"},
				},
			},
			{
				Name:   "auctions",
				Usage:  "Show open auctions",
				Action: showAuctions,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: 20, Usage: "Max auctions to return"},
					&cli.IntFlag{Name: "from", Value: 0, Usage: "Offset into the result set"},
				},
			},
			{
				Name:      "history",
				Usage:     "Show the ownership history of an asset",
				ArgsUsage: "<assetId>",
				Action:    showHistory,
			},
			{
				Name:      "owner",
				Usage:     "Show the current owner of an asset",
				ArgsUsage: "<assetId>",
				Action:    showOwner,
			},
			{
				Name:   "audit",
				Usage:  "Show recent audit events, optionally for a single asset",
				Action: showAudit,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "asset", Value: "", Usage: "Filter events by asset id"},
					&cli.IntFlag{Name: "size", Value: 50, Usage: "Max events to return"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func showListings(c *cli.Context) error {
	listings, err := listingRepo.GetActiveListings(c.Int("size"), c.Int("from"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to fetch listings")
		return err
	}

	return printJson(listings)
}

func showAuctions(c *cli.Context) error {
	auctions, err := auctionRepo.GetOpenAuctions(c.Int("size"), c.Int("from"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to fetch auctions")
		return err
	}

	return printJson(auctions)
}

func showHistory(c *cli.Context) error {
	assetId := c.Args().First()
	if assetId == "" {
		zap.L().Error("No asset id provided")
		return nil
	}

	records, err := ownershipRepo.GetHistory(assetId)
	if err != nil {
		zap.S().With(zap.Error(err)).Errorf("Failed to fetch history for %s", assetId)
		return err
	}

	return printJson(records)
}

func showOwner(c *cli.Context) error {
	assetId := c.Args().First()
	if assetId == "" {
		zap.L().Error("No asset id provided")
		return nil
	}

	owner, err := ownershipRepo.GetCurrentOwner(assetId)
	if err != nil {
		zap.S().With(zap.Error(err)).Errorf("Failed to fetch owner of %s", assetId)
		return err
	}

	fmt.Println(owner)

	return nil
}

func showAudit(c *cli.Context) error {
	var err error
	var events interface{}

	if asset := c.String("asset"); asset != "" {
		events, err = auditRepo.GetByAsset(asset, c.Int("size"))
	} else {
		events, err = auditRepo.GetRecent(c.Int("size"))
	}

	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to fetch audit events")
		return err
	}

	return printJson(events)
}

func printJson(body interface{}) error {
	encoded, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(encoded))

	return nil
}
