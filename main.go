package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ladelicato/salesbot/aws"
	"github.com/ladelicato/salesbot/bot"
	"github.com/ladelicato/salesbot/config"
	"github.com/ladelicato/salesbot/instagram"
	"github.com/ladelicato/salesbot/server"
	"github.com/ladelicato/salesbot/store"
)

func main() {
	cfg := config.Load()

	st := buildStore(cfg)

	igClient := instagram.NewClient(instagram.Config{
		Username:    cfg.IGUsername,
		Password:    cfg.IGPassword,
		SessionFile: cfg.SessionFile,
	}, buildHTTPClient(cfg))

	status := bot.NewStatus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.HasCredentials() {
		go runBot(ctx, cfg, igClient, st, status)
	} else {
		log.Warn().Msg("Instagram credentials missing, reply loop disabled")
	}

	srv := server.New(st, status, cfg.DashboardOrigin, cfg.UnitPrice)

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	srv.Start(cfg.Port)
}

// runBot authenticates and hands control to the reply loop. Any startup
// authentication failure is logged and leaves the HTTP surface running
// with the bot reported offline.
func runBot(ctx context.Context, cfg *config.Config, igClient *instagram.Client, st store.Store, status *bot.Status) {
	if err := startSession(igClient); err != nil {
		switch {
		case errors.Is(err, instagram.ErrTwoFactorRequired):
			log.Error().Err(err).Msg("Two factor challenge pending, bot stays offline")
		case errors.Is(err, instagram.ErrAuthRequired):
			log.Error().Err(err).Msg("Instagram rejected the credentials, bot stays offline")
		default:
			log.Error().Err(err).Msg("Instagram authentication failed, bot stays offline")
		}
		return
	}

	b := bot.New(igClient, st, bot.Config{
		BotUserID:        igClient.SelfID(),
		ReplyText:        cfg.ReplyText,
		UnitPrice:        cfg.UnitPrice,
		InboxLimit:       cfg.InboxLimit,
		FallbackCustomer: cfg.FallbackCustomer,
	}, bot.Backoff{
		SendDelay:         cfg.SendDelay,
		SendJitter:        cfg.SendJitter,
		TickDelay:         cfg.TickDelay,
		FailureCooldown:   cfg.FailureCooldown,
		TransientCooldown: cfg.TransientCooldown,
		RateLimitCooldown: cfg.RateLimitCooldown,
	}, status)

	b.Run(ctx)
}

func startSession(igClient *instagram.Client) error {
	err := igClient.ResumeSession()
	if err == nil {
		return nil
	}

	if !errors.Is(err, instagram.ErrInvalidSession) {
		log.Warn().Err(err).Msg("Session resume failed, logging in fresh")
	}

	return igClient.Login()
}

func buildStore(cfg *config.Config) store.Store {
	if cfg.StoreBackend == "redis" {
		return store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	var mirror store.Mirror
	if cfg.S3BackupEnabled && cfg.S3Bucket != "" {
		mirror = aws.NewClient(cfg.S3Region, cfg.S3Bucket)
	}

	fs, err := store.NewFileStore(cfg.DataDir, mirror)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to open file store")
	}
	return fs
}

func buildHTTPClient(cfg *config.Config) *http.Client {
	client := &http.Client{Timeout: 30 * time.Second}

	if cfg.ProxyEnabled && cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			log.Fatal().Err(err).Str("proxy_url", cfg.ProxyURL).Msg("Invalid proxy URL")
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		log.Info().Str("proxy", proxyURL.Host).Msg("Routing Instagram traffic through proxy")
	}

	return client
}
