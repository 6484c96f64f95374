package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"screenmate/app/client/provider"
	"screenmate/app/config"
	"screenmate/app/server"
	"screenmate/app/service/session"
	"screenmate/app/service/turn"
	"screenmate/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, provider.NewClient)
	do.Provide(di, session.New)
	do.Provide(di, turn.New)
	do.Provide(di, server.New)

	slog.Info("Service started", "port", cfg.Server.Port)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if err = do.MustInvoke[*server.Server](di).Run(appCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server failed: %v", err)
	}
}
