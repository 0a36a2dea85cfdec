package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/config"
	"github.com/goliatone/portfolio-api/logger"
	"github.com/goliatone/portfolio-api/server"
	"github.com/goliatone/portfolio-api/social/google"
	"github.com/goliatone/portfolio-api/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.File)

	db, err := store.Connect(cfg.DB.DSN)
	if err != nil {
		log.Error("failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.CreateTables(context.Background(), db); err != nil {
		log.Error("failed to create tables: %v", err)
		os.Exit(1)
	}

	repo := store.NewRepositoryManager(db)

	provider := store.NewUserProvider(repo.Users()).WithLogger(log)

	auther := auth.NewAuthenticator(provider, cfg).WithLogger(log)

	opts := []server.Option{
		server.WithLogger(log),
	}

	if cfg.Google.ClientID != "" {
		opts = append(opts, server.WithSocialProvider(google.New(google.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			CallbackURL:  cfg.Google.RedirectURI,
		})))
	} else {
		log.Warn("GOOGLE_CLIENT_ID not set, social login routes disabled")
	}

	srv := server.New(cfg, auther, repo, opts...)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Error("shutdown error: %v", err)
		}
	}()

	log.Info("listening on %s:%s", cfg.Server.Host, cfg.Server.Port)
	if err := srv.Listen(); err != nil {
		log.Error("server error: %v", err)
		os.Exit(1)
	}
}
