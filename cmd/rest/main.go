package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"incorporate-run-be/internal/bootstrap"
	"incorporate-run-be/internal/config"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/server"
	"incorporate-run-be/internal/tracer"
	"incorporate-run-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracing (off unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	var gormDB *gorm.DB
	if cfg.Database.Driver != "memory" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 4. Bootstrap Dependencies (Container)
	infra, err := bootstrap.NewInfrastructure(gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to initialize infrastructure: %v", err)
	}
	container := bootstrap.NewContainer(cfg, infra, sysLogger)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	if err := container.Start(ctx); err != nil {
		log.Panicf("Unable to start background workers: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container, sysLogger)
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			sysLogger.Error("SERVER", "Shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	if err := srv.Run(); err != nil {
		sysLogger.Error("SERVER", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
