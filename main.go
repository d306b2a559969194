package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"chathubgo/internal/chatlog"
	"chathubgo/internal/config"
	"chathubgo/internal/http/http_server"
	"chathubgo/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Per-room append-only chat log
	store, err := chatlog.New(cfg.ChatLogDir)
	if err != nil {
		Log.Fatal("Failed to create chat log directory", zap.Error(err))
	}
	Log.Debug("Chat log directory ready", zap.String("dir", cfg.ChatLogDir))

	// 4. Room hub + WS server
	hub := ws.NewHub()
	wsSrv := ws.NewWsServer(hub, store, cfg.HistoryLines)

	// 5. HTTP + WS server
	httpServer := http_server.NewHttpServer(cfg.HttpServerPort, wsSrv, hub)
	go func() {
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()

	Log.Info("Chat hub listening", zap.Uint16("port", cfg.HttpServerPort))
	if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
