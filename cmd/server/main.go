package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secureauth/webclient/internal/api"
	"github.com/secureauth/webclient/internal/core/ports"
	"github.com/secureauth/webclient/internal/core/service"
	"github.com/secureauth/webclient/internal/gateway"
	"github.com/secureauth/webclient/internal/infrastructure/config"
	redisdb "github.com/secureauth/webclient/internal/infrastructure/db/redis"
	"github.com/secureauth/webclient/internal/infrastructure/persistence"
	"github.com/secureauth/webclient/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store ports.SessionPersistence
	var rdb *goredis.Client
	switch cfg.Session.Backend {
	case config.BackendRedis:
		var err error
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		store = redisdb.NewSessionStore(rdb)
	case config.BackendFile:
		store = persistence.NewFileStore(cfg.Session.File)
	default:
		log.Fatal().Str("backend", cfg.Session.Backend).Msg("unknown session backend")
	}

	sessions := service.NewSessionStore(ctx, store, log)
	gw := gateway.New(cfg.Auth.BaseURL, nil, log)
	e := api.NewRouter(sessions, gw, rdb, cfg.Auth.BaseURL, log)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("auth_base_url", cfg.Auth.BaseURL).
		Str("session_backend", cfg.Session.Backend).
		Msg("starting secureauth web client")

	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
