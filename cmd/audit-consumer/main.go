package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/config"
	"github.com/iliyamo/matrimony-admin/internal/logger"
	"github.com/iliyamo/matrimony-admin/internal/queue"
)

// audit-consumer drains the admin audit queue into <AUDIT_LOG_DIR>/audit.log.
func main() {
	cfg, err := config.LoadConsumer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl := logger.New(cfg.LogLevel, cfg.IsProd())
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := queue.Consumer{
		URL:    cfg.Audit.URL,
		Queue:  cfg.Audit.Queue,
		LogDir: cfg.Audit.LogDir,
		Log:    zl.Named("audit-consumer"),
	}
	zl.Info("audit consumer starting", zap.String("queue", cfg.Audit.Queue), zap.String("dir", cfg.Audit.LogDir))
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Fatal("audit consumer stopped", zap.Error(err))
	}
}
