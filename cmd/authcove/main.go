// Command authcove runs the authentication service: environment
// configuration, PostgreSQL-backed credentials, Redis-backed token
// revocation and 2FA challenges, and Postmark for code delivery.
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

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/authcove/authcove"
	"github.com/authcove/authcove/httpapi"
	"github.com/authcove/authcove/internal/email"
	"github.com/authcove/authcove/internal/stores"
	"github.com/authcove/authcove/password"
)

type envConfig struct {
	Address       string `env:"APP_ADDRESS" envDefault:"0.0.0.0:3000"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	RedisHost     string `env:"REDIS_HOST_NAME" envDefault:"127.0.0.1"`
	PostmarkToken string `env:"POSTMARK_AUTH_TOKEN,required"`
	EmailSender   string `env:"EMAIL_SENDER" envDefault:"no-reply@authcove.dev"`
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("service exited")
	}
}

func run(logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	sender, err := authcove.ParseEmail(cfg.EmailSender)
	if err != nil {
		return fmt.Errorf("EMAIL_SENDER: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisHost + ":6379"})
	defer rdb.Close()

	hasher, err := password.NewArgon2(password.DefaultConfig())
	if err != nil {
		return fmt.Errorf("configure hasher: %w", err)
	}
	hashPool, err := password.NewPool(hasher, 0)
	if err != nil {
		return fmt.Errorf("configure hash pool: %w", err)
	}

	engine, err := authcove.New(authcove.Config{
		JWTSecret: []byte(cfg.JWTSecret),
	}, authcove.Dependencies{
		Users:        stores.NewPostgresUserStore(pool, hashPool),
		BannedTokens: stores.NewRedisBannedTokenStore(rdb, authcove.DefaultTokenTTL),
		TwoFACodes:   stores.NewRedisTwoFACodeStore(rdb, authcove.DefaultTwoFATTL),
		Email:        email.NewPostmarkClient(nil, "", sender, cfg.PostmarkToken),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           httpapi.NewServer(engine, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.Address).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
