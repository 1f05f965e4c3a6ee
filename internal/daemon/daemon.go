package daemon

import (
	"net/http"

	"github.com/gallerynet/settlement-engine/internal/api"
	"github.com/gallerynet/settlement-engine/internal/auditor"
	"github.com/gallerynet/settlement-engine/internal/config"
	definitions "github.com/gallerynet/settlement-engine/internal/config/di"
	"github.com/gallerynet/settlement-engine/internal/elastic_search"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var container di.Container

func Execute() {
	initialize()

	container.Get("elastic").(elastic_search.Index).InstallMappings()
	container.Get("auditor").(auditor.Auditor).Subscribe()

	serve()
}

func initialize() {
	config.Init()

	ctn, err := definitions.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	container = ctn

	zap.L().Info("Settlement Engine Started")
}

func serve() {
	router := container.Get("api.server").(api.Server).Router()

	zap.L().Info("Serving API on :" + config.Get().ApiPort)

	if err := http.ListenAndServe(":"+config.Get().ApiPort, router); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start API server")
	}
}
