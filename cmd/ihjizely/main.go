package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Motalib01/Ihjizely-sub000/internal/notify"
	"github.com/Motalib01/Ihjizely-sub000/internal/outbox"
	"github.com/Motalib01/Ihjizely-sub000/internal/repository"
	"github.com/Motalib01/Ihjizely-sub000/internal/scheduler"
	"github.com/Motalib01/Ihjizely-sub000/internal/service"
	transport "github.com/Motalib01/Ihjizely-sub000/internal/transport/http"
	"github.com/Motalib01/Ihjizely-sub000/pkg/clock"
	"github.com/Motalib01/Ihjizely-sub000/pkg/config"
	"github.com/Motalib01/Ihjizely-sub000/pkg/db"
	"github.com/Motalib01/Ihjizely-sub000/pkg/mq"
	"github.com/Motalib01/Ihjizely-sub000/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	return v
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := must(config.Load())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTLPEndpoint != "" {
		shutdown := must(obs.InitTracer(ctx, "ihjizely", cfg.OTLPEndpoint, cfg.Env))
		defer func() { _ = shutdown(context.Background()) }()
	}

	gdb := must(db.Open(cfg.PostgresDSN))

	bookingRepo := repository.NewBookingRepo(gdb)
	propertyRepo := repository.NewPropertyRepo(gdb)
	outboxRepo := repository.NewOutboxRepo(gdb, cfg.OutboxMaxAttempts)
	must(0, bookingRepo.Migrate())
	must(0, propertyRepo.Migrate())
	must(0, outboxRepo.Migrate())

	clk := clock.System()
	bookingSvc := service.NewBookingSvc(bookingRepo, clk, log)
	propertySvc := service.NewPropertySvc(propertyRepo, clk)

	// Event handlers: console notifications always; broker relay when
	// RabbitMQ is configured.
	reg := outbox.NewRegistry()
	notify.RegisterAll(reg, notify.NewConsole(log))
	if cfg.RabbitURL != "" {
		pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.EventExchange))
		defer pub.Close()
		notify.RegisterRelay(reg, pub)
		log.Info("broker relay enabled", "exchange", cfg.EventExchange)
	}

	dispatcher := outbox.NewDispatcher(outboxRepo, reg, clk, cfg.OutboxBatchSize, log)
	sweeper := service.NewSweeper(bookingSvc, clk, log)
	go scheduler.Loop(ctx, "outbox-dispatch", cfg.OutboxPollInterval, cfg.JobRunTimeout, dispatcher.Run, log)
	go scheduler.Loop(ctx, "expiration-sweep", cfg.SweepInterval, cfg.JobRunTimeout, sweeper.Run, log)

	router := transport.NewRouter(bookingSvc, propertySvc)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")

	cancel()
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
	log.Info("stopped")
}
