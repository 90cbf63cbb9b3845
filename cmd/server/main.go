package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogcms/internal/cache"
	"blogcms/internal/config"
	"blogcms/internal/db"
	"blogcms/internal/logger"
	"blogcms/internal/router"
	"blogcms/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash for admin.password_hash and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := services.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.StdLogger().Fatalf("load config: %v", err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer func() { _ = logger.Z().Sync() }()
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
		if cfg.Session.Secret == "secret_key_change_me" {
			stdLog.Fatalf("session.secret is still the default value")
		}
	}

	conn, err := db.Init(cfg.Database, cfg.Server.Mode)
	if err != nil {
		stdLog.Fatalf("init database: %v", err)
	}

	store, err := cache.New(cfg.Cache, cfg.Redis)
	if err != nil {
		stdLog.Fatalf("init cache: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.New(cfg, conn, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infow("server_started", "addr", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			stdLog.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infow("server_stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("server_shutdown_failed", "error", err)
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
