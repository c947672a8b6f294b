package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skateway/dashboard"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	base := getenv("DASHBOARD_API", "http://localhost:3000")
	interval := dashboard.DefaultRefreshInterval
	if raw := os.Getenv("DASHBOARD_REFRESH"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			logger.Fatal("invalid DASHBOARD_REFRESH", zap.String("value", raw), zap.Error(err))
		}
		interval = d
	}

	api := dashboard.NewClient(base)
	board := &terminalBoard{out: os.Stdout}
	reg := dashboard.NewRegistry()

	canvases := make(map[string]dashboard.Canvas, len(dashboard.Locations))
	for _, loc := range dashboard.Locations {
		canvases[loc] = &terminalCanvas{key: loc, out: os.Stdout}
	}

	poller := dashboard.NewPoller(
		dashboard.NewCardRenderer(api, board, logger),
		dashboard.NewChartRenderer(api, reg, logger),
		canvases,
		interval,
		logger,
	)
	if err := poller.Start(); err != nil {
		logger.Fatal("failed to start poller", zap.Error(err))
	}
	defer poller.Stop()

	logger.Info("skateway dashboard polling",
		zap.String("api", base),
		zap.Duration("interval", interval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
