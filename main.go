package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/cache"
	"github.com/safak4545x/swifttube/infrastructure/clients/innertube"
	youtubeclient "github.com/safak4545x/swifttube/infrastructure/clients/youtube"
	"github.com/safak4545x/swifttube/infrastructure/coalescer"
	"github.com/safak4545x/swifttube/infrastructure/configuration"
	"github.com/safak4545x/swifttube/infrastructure/logger"
	httpHandler "github.com/safak4545x/swifttube/interfaces/http"
	"github.com/safak4545x/swifttube/server"
	"github.com/safak4545x/swifttube/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	cfg := configuration.C

	store, err := cache.NewStore(cfg.Cache.Root, cfg.Cache.MemoryEntries)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot initialize cache store")
		os.Exit(1)
	}
	logger.GetLogger().WithField("root", cfg.Cache.Root).Info("Cache store initialized")

	resultTTL := time.Duration(cfg.Cache.ResultTTLMinutes) * time.Minute
	assetTTL := time.Duration(cfg.Cache.AssetTTLMinutes) * time.Minute
	enrichTTL := time.Duration(cfg.Cache.EnrichTTLMinutes) * time.Minute
	settingTTL := time.Duration(cfg.Cache.SettingTTLMinutes) * time.Minute

	scraper := innertube.NewClient(innertube.Identity{
		UserAgent:      cfg.Scraper.UserAgent,
		AcceptLanguage: cfg.Scraper.AcceptLanguage,
		ClientName:     cfg.Scraper.ClientName,
		ClientVersion:  cfg.Scraper.ClientVersion,
	}, innertube.WithPageLimit(cfg.Scraper.PageLimit))

	youtubeRepo, err := youtubeclient.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("YouTube Data API client unavailable - enrichment and comments degrade to empty results")
		youtubeRepo, _ = youtubeclient.NewClient(ctx, "")
	}
	logger.GetLogger().WithField("apiKeySet", cfg.YouTube.APIKey != "").Info("YouTube Data API client initialized")

	channelCoalescer := coalescer.New(
		store, enrichTTL,
		youtubeRepo.ChannelStats,
		func(s model.ChannelStats) string { return s.ChannelID },
		func(id string) string { return cache.Key("channel_stats", "id="+id) },
	)
	playlistCoalescer := coalescer.New(
		store, enrichTTL,
		youtubeRepo.PlaylistStats,
		func(s model.PlaylistStats) string { return s.PlaylistID },
		func(id string) string { return cache.Key("playlist_stats", "id="+id) },
	)
	defer channelCoalescer.Close()
	defer playlistCoalescer.Close()

	settingsUseCase := usecase.NewSettingsUseCase(store, settingTTL, cfg.Locale.Language, cfg.Locale.Region)
	browseUseCase := usecase.NewBrowseUseCase(scraper, settingsUseCase, store, resultTTL)
	playlistUseCase := usecase.NewPlaylistUseCase(scraper, settingsUseCase, store, resultTTL)
	commentUseCase := usecase.NewCommentUseCase(youtubeRepo, store, resultTTL)
	assetUseCase := usecase.NewAssetUseCase(store, assetTTL, cfg.Scraper.UserAgent)

	browseHandler := httpHandler.NewBrowseHandler(browseUseCase)
	playlistHandler := httpHandler.NewPlaylistHandler(playlistUseCase)
	commentHandler := httpHandler.NewCommentHandler(commentUseCase)
	enrichHandler := httpHandler.NewEnrichHandler(channelCoalescer, playlistCoalescer)
	settingsHandler := httpHandler.NewSettingsHandler(settingsUseCase, store)
	assetHandler := httpHandler.NewAssetHandler(assetUseCase)

	router := server.InitiateRouter(browseHandler, playlistHandler, commentHandler, enrichHandler, settingsHandler, assetHandler)

	port := cfg.App.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf("127.0.0.1:%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
