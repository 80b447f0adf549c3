package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-city-weather/internal/application"
	"telegram-city-weather/internal/config"
	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/adapter"
	"telegram-city-weather/internal/domain/ports/repository"
	"telegram-city-weather/internal/infra/adapters/geo"
	tele "telegram-city-weather/internal/infra/adapters/telegram"
	"telegram-city-weather/internal/infra/adapters/weather"
	pg "telegram-city-weather/internal/infra/db/postgres"
	"telegram-city-weather/internal/infra/db/sqlite"
	"telegram-city-weather/internal/infra/i18n"
	"telegram-city-weather/internal/infra/logging"
	"telegram-city-weather/internal/infra/metrics"
	red "telegram-city-weather/internal/infra/redis"
	"telegram-city-weather/internal/infra/session"
	"telegram-city-weather/internal/infra/web"
	"telegram-city-weather/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "console logging and no sampling")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	defaults := model.UserSettings{
		RatingType: model.RatingType(cfg.Defaults.RatingType),
		CityLimit:  cfg.Defaults.CityLimit,
		Lang:       cfg.Defaults.Lang,
	}

	// ---- Settings store ----
	var settingsRepo repository.SettingsRepository
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connect failed")
		}
		defer pool.Close()
		repo := pg.NewSettingsRepo(pool, defaults)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("postgres schema failed")
		}
		settingsRepo = repo
	default:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			logger.Fatal().Err(err).Msg("sqlite open failed")
		}
		defer db.Close()
		settingsRepo = sqlite.NewSettingsRepo(db, defaults)
	}

	// ---- City lookup, optionally cached ----
	var lookup adapter.CityLookupGateway
	geoClient, err := geo.NewClient(cfg.GeoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("geodb client failed")
	}
	lookup = geoClient
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		defer redisClient.Close()
		lookup = red.NewCachedCityLookup(lookup, redisClient, cfg.Redis.TTL, logger)
	}

	weatherClient := weather.NewClient(cfg.Weather)
	if cfg.Weather.APIKey == "" {
		logger.Warn().Msg("weather.api_key not set; temperature replies will report no data")
	}

	// ---- Use cases ----
	tracker := session.NewMemoryTracker()
	queryUC := usecase.NewQueryUseCase(lookup, tracker, logger)
	enrichUC := usecase.NewEnrichUseCase(lookup, weatherClient, logger)
	rankingUC := usecase.NewRankingUseCase(lookup, weatherClient, cfg.Bot.Workers, logger)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)

	bundle, err := i18n.NewBundle(i18n.LocalesFS, cfg.Defaults.Lang, model.LangRU, model.LangEN)
	if err != nil {
		logger.Fatal().Err(err).Msg("locales failed")
	}

	facade := application.NewBotFacade(queryUC, enrichUC, rankingUC, settingsUC, bundle, cfg.GeoDB.SearchLimit, logger)

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram init failed")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Ops server: /healthz and /metrics ----
	opsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Ops.Port),
		Handler: web.NewServer(logger).Router(),
	}
	go func() {
		logger.Info().Str("addr", opsServer.Addr).Msg("ops server listening")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("ops server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	botAdapter.StopPolling()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("ops server shutdown failed")
	}
}
