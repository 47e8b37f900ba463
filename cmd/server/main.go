package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"inmocrm/internal/app"
	"inmocrm/internal/config"
	"inmocrm/internal/server"
	"inmocrm/internal/sheets"
	"inmocrm/internal/util"
)

func main() {
	configPath := flag.String("config", config.ConfigPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	util.InitLogger(cfg.LogLevel)

	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		slog.Error("invalid session TTL", "error", err)
		os.Exit(1)
	}

	application, err := app.New(app.Config{
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		JWTSecret:     cfg.JWTSecret,
		SessionTTL:    sessionTTL,
	})
	if err != nil {
		slog.Error("init application failed", "error", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		slog.Warn("no database configured, records are kept in memory and lost on restart")
	}

	srv, err := server.New(server.Config{
		App:                      application,
		Sheets:                   sheets.NewClient(cfg.SheetsFeedURL, cfg.SheetsUpdateURL),
		RedisAddr:                cfg.RedisAddr,
		RedisPassword:            cfg.RedisPassword,
		TrustedProxies:           cfg.TrustedProxies,
		SignupRateLimitPerMinute: cfg.SignupRateLimitPerMinute,
		LoginRateLimitPerMinute:  cfg.LoginRateLimitPerMinute,
	})
	if err != nil {
		slog.Error("init server failed", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server listening", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
