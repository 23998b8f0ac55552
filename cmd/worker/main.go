package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/efebarandurmaz/svgsmith/internal/app"
	"github.com/efebarandurmaz/svgsmith/internal/config"
	"github.com/efebarandurmaz/svgsmith/internal/server"
	temporalmod "github.com/efebarandurmaz/svgsmith/internal/temporal"

	temporalclient "go.temporal.io/sdk/client"
	sdklog "go.temporal.io/sdk/log"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	temporalmod.SetDependencies(&temporalmod.Dependencies{
		Converter: a.Converter,
		Settings:  app.Settings(cfg),
		Logger:    a.Logger,
	})

	c, err := temporalclient.Dial(temporalclient.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
		Logger:    sdklog.NewStructuredLogger(a.Logger),
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}

	w, err := temporalmod.StartWorker(c, cfg.Temporal.TaskQueue)
	if err != nil {
		c.Close()
		log.Fatalf("worker: %v", err)
	}

	srv := server.NewGracefulServer(&server.HealthConfig{Version: app.Version}, &server.ShutdownConfig{Logger: a.Logger})
	srv.Health.RegisterCheck("temporal", server.TemporalHealthChecker(func(ctx context.Context) error {
		_, err := c.CheckHealth(ctx, &temporalclient.CheckHealthRequest{})
		return err
	}))
	srv.Health.RegisterCheck("output", server.OutputDirHealthChecker(cfg.Output.Dir))
	if cfg.Format.Formatter == "prettier" {
		srv.Health.RegisterCheck("formatter", server.FormatterHealthChecker(cfg.Format.Binary))
	}
	srv.Health.Handle("/metrics", a.Metrics.Handler())

	srv.RegisterHook(server.TemporalWorkerShutdownHook(w.Stop))
	srv.RegisterHook(server.TemporalClientShutdownHook(c.Close))
	srv.RegisterHook(server.TracingShutdownHook(a.Shutdown))

	srv.Start(cfg.Temporal.HTTPAddr)
	fmt.Printf("Worker started on task queue: %s (http %s)\n", cfg.Temporal.TaskQueue, cfg.Temporal.HTTPAddr)

	srv.Wait()
	fmt.Println("Worker stopped")
}
