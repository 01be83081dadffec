package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/soumaysikchi/portfolio/internal/clock"
	"github.com/soumaysikchi/portfolio/internal/config"
	"github.com/soumaysikchi/portfolio/internal/logger"
	"github.com/soumaysikchi/portfolio/internal/store"
	"github.com/soumaysikchi/portfolio/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open store")
	}
	defer st.Close()

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		log.Warn().Msg("ADMIN_PASSWORD and ADMIN_PASSWORD_HASH unset, admin login disabled")
	}

	server := web.NewServer(st, web.Options{
		Lifecycle:      cfg.Lifecycle(),
		Rules:          cfg.Rules(),
		Clock:          clock.Real{},
		BasePath:       cfg.BasePath,
		Static:         os.DirFS(cfg.StaticDir),
		AllowedOrigins: cfg.AllowedOrigins,
		Admin: web.AdminOptions{
			Username:     cfg.AdminUsername,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
			TokenTTL:     cfg.AdminTokenTTL,
			JWTKey:       cfg.JWTKey,
		},
		HashSalt:         cfg.HashSalt,
		VisitorRetention: cfg.VisitorRetention,
		CommandRate:      rate.Limit(cfg.CommandRate),
		CommandBurst:     cfg.CommandBurst,
	})
	go server.RunRetention(ctx, 24*time.Hour)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("portfolio server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	server.Drain()
}
