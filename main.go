package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/content"
	"github.com/Zachkp/showcase/internal/logging"
	"github.com/Zachkp/showcase/internal/server"
	"github.com/Zachkp/showcase/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	seeded, err := st.Seed(ctx, content.Default())
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("seeded portfolio content", zap.String("db", cfg.DBPath))
	}

	deps := server.Deps{
		Config: cfg,
		Logger: logger,
		Store:  st,
	}
	if m := server.NewSMTPMailer(cfg); m != nil {
		deps.Mailer = m
	} else {
		logger.Warn("SMTP not configured, contact messages are only stored")
	}

	srv, err := server.New(ctx, deps)
	if err != nil {
		return err
	}
	defer srv.Close()

	go srv.RunRetention(ctx, 24*time.Hour)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", httpSrv.Addr))
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Hijacked WebSocket connections are not tracked by Shutdown; srv.Close
	// ends them.
	srv.Close()
	return httpSrv.Shutdown(shutdownCtx)
}
